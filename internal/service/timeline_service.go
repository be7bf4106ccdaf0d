// Package service implements the application's business logic on top of
// the repository layer.
package service

import (
	"context"
	"time"

	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/rank"
	"quill/internal/repository"
)

// TimelineItem is one served feed entry. Parent is resolved only for
// RETWEET items; a soft-deleted parent still renders its raw fields.
type TimelineItem struct {
	Main   *models.Interaction `json:"mainInteraction"`
	Parent *models.Interaction `json:"parentInteraction"`
}

// TimelinePage is the result of one feed computation.
type TimelinePage struct {
	Items      []TimelineItem
	TotalCount int
}

// TimelineService assembles viewer-specific ranked feeds. Reading a page
// records a view for every shown item, which feeds the next computation's
// scores for all viewers.
type TimelineService struct {
	userRepo        repository.UserRepository
	interactionRepo repository.InteractionRepository
	now             func() time.Time
}

// NewTimelineService creates a new TimelineService.
func NewTimelineService(userRepo repository.UserRepository, interactionRepo repository.InteractionRepository) *TimelineService {
	return &TimelineService{
		userRepo:        userRepo,
		interactionRepo: interactionRepo,
		now:             time.Now,
	}
}

// ComputeTimeline builds one ranked page for the viewer. The offset is
// clamped against the live total; params are assumed pre-sanitized.
// The total and the candidate fetch are separate reads, so a concurrent
// write between them can skew itemsCount against totalCount. Accepted.
func (s *TimelineService) ComputeTimeline(ctx context.Context, viewerID uint, params pagination.Params) (*TimelinePage, pagination.Params, error) {
	followees, err := s.userRepo.FolloweeIDs(ctx, viewerID)
	if err != nil {
		return nil, params, err
	}
	authorIDs := append([]uint{viewerID}, followees...)

	total, err := s.interactionRepo.CountByAuthors(ctx, authorIDs,
		[]string{models.InteractionTweet, models.InteractionRetweet})
	if err != nil {
		return nil, params, err
	}
	params = params.ClampOffset(int(total))

	if total == 0 {
		return &TimelinePage{Items: []TimelineItem{}, TotalCount: 0}, params, nil
	}

	candidates, err := s.interactionRepo.FetchCandidates(ctx, authorIDs, viewerID)
	if err != nil {
		return nil, params, err
	}

	totalInteractions, err := s.interactionRepo.TotalInteractions(ctx)
	if err != nil {
		return nil, params, err
	}

	ordered := s.rankCandidates(candidates, totalInteractions)

	// Slice the requested page out of the ranked set.
	start := params.Offset
	if start > len(ordered) {
		start = len(ordered)
	}
	end := start + params.Limit
	if end > len(ordered) {
		end = len(ordered)
	}
	page := ordered[start:end]

	items := make([]TimelineItem, 0, len(page))
	viewIDs := make([]uint, 0, 2*len(page))
	for _, interaction := range page {
		item := TimelineItem{Main: interaction}
		if interaction.Type == models.InteractionRetweet {
			item.Parent = interaction.Parent
		}
		items = append(items, item)

		viewIDs = append(viewIDs, interaction.ID)
		if item.Parent != nil {
			viewIDs = append(viewIDs, item.Parent.ID)
		}
	}

	// Reading the page is what makes these items "seen": the write-back
	// feeds every future ranking, for any viewer.
	if err := s.interactionRepo.RecordViews(ctx, viewerID, viewIDs); err != nil {
		return nil, params, err
	}

	return &TimelinePage{Items: items, TotalCount: int(total)}, params, nil
}

// rankCandidates orders the candidate set by descending score.
func (s *TimelineService) rankCandidates(candidates []*models.Interaction, totalInteractions int64) []*models.Interaction {
	byID := make(map[uint]*models.Interaction, len(candidates))
	rankable := make([]rank.Candidate, 0, len(candidates))
	for _, c := range candidates {
		byID[c.ID] = c
		rankable = append(rankable, rank.Candidate{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			Counters: rank.Counters{
				Likes:    c.LikesCount,
				Views:    c.ViewsCount,
				Retweets: c.RetweetsCount,
				Comments: c.CommentsCount,
			},
		})
	}

	rank.Sort(rankable, totalInteractions, s.now())

	ordered := make([]*models.Interaction, 0, len(rankable))
	for _, r := range rankable {
		ordered = append(ordered, byID[r.ID])
	}
	return ordered
}
