package service

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// TrendPage is one page of trending topics ordered by link count.
type TrendPage struct {
	Trends     []models.Trend
	TotalCount int
}

// TrendTimelinePage is one page of the tweets linked to a single topic,
// newest first.
type TrendTimelinePage struct {
	Trend      *models.Trend
	Items      []*models.Interaction
	TotalCount int
}

// TrendService serves trending topic listings and per-topic timelines.
type TrendService struct {
	trendRepo repository.TrendRepository
}

// NewTrendService creates a new TrendService.
func NewTrendService(trendRepo repository.TrendRepository) *TrendService {
	return &TrendService{trendRepo: trendRepo}
}

// ListTrends returns one page of trends ordered by how many interactions
// reference each. Pages are cached briefly since the ordering only
// shifts as new tweets land.
func (s *TrendService) ListTrends(ctx context.Context, params pagination.Params) (*TrendPage, pagination.Params, error) {
	total, err := s.trendRepo.CountTrends(ctx)
	if err != nil {
		return nil, params, err
	}
	params = params.ClampOffset(int(total))

	var page TrendPage
	key := cache.TrendListKey(params.Limit, params.Offset)
	err = cache.Aside(ctx, key, &page, cache.TrendListTTL, func() error {
		trends, loadErr := s.trendRepo.ListSorted(ctx, params.Limit, params.Offset)
		if loadErr != nil {
			return loadErr
		}
		page = TrendPage{Trends: trends, TotalCount: int(total)}
		return nil
	})
	if err != nil {
		return nil, params, err
	}
	return &page, params, nil
}

// TrendTimeline returns one page of the interactions linked to the
// given topic, most recent first. Unknown topics are a not-found error.
func (s *TrendService) TrendTimeline(ctx context.Context, topic string, viewerID uint, params pagination.Params) (*TrendTimelinePage, pagination.Params, error) {
	trend, err := s.trendRepo.GetByText(ctx, topic)
	if err != nil {
		return nil, params, err
	}

	total, err := s.trendRepo.CountLinkedInteractions(ctx, trend.ID)
	if err != nil {
		return nil, params, err
	}
	params = params.ClampOffset(int(total))

	items, err := s.trendRepo.LinkedInteractions(ctx, trend.ID, viewerID, params.Limit, params.Offset)
	if err != nil {
		return nil, params, err
	}

	return &TrendTimelinePage{
		Trend:      trend,
		Items:      items,
		TotalCount: int(total),
	}, params, nil
}
