package service

import (
	"context"
	"testing"

	"quill/internal/models"
	"quill/internal/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListTrendsReturnsSortedPage(t *testing.T) {
	t.Parallel()

	trendRepo := noopTrendRepo()
	trendRepo.countTrendsFn = func(_ context.Context) (int64, error) { return 3, nil }
	trendRepo.listSortedFn = func(_ context.Context, limit, offset int) ([]models.Trend, error) {
		assert.Equal(t, 2, limit)
		assert.Equal(t, 0, offset)
		return []models.Trend{
			{ID: 1, Text: "go", LinksCount: 9},
			{ID: 2, Text: "news", LinksCount: 4},
		}, nil
	}

	svc := NewTrendService(trendRepo)
	page, _, err := svc.ListTrends(context.Background(), pagination.Params{Limit: 2})

	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	require.Len(t, page.Trends, 2)
	assert.Equal(t, "go", page.Trends[0].Text)
}

func TestListTrendsClampsOffset(t *testing.T) {
	t.Parallel()

	trendRepo := noopTrendRepo()
	trendRepo.countTrendsFn = func(_ context.Context) (int64, error) { return 2, nil }
	trendRepo.listSortedFn = func(_ context.Context, _, offset int) ([]models.Trend, error) {
		assert.Equal(t, 2, offset)
		return nil, nil
	}

	svc := NewTrendService(trendRepo)
	_, params, err := svc.ListTrends(context.Background(), pagination.Params{Limit: 10, Offset: 50})

	require.NoError(t, err)
	assert.Equal(t, 2, params.Offset)
}

func TestTrendTimelineUnknownTopic(t *testing.T) {
	t.Parallel()

	trendRepo := noopTrendRepo()
	trendRepo.getByTextFn = func(_ context.Context, text string) (*models.Trend, error) {
		return nil, models.NewNotFoundError("Trend", text)
	}

	svc := NewTrendService(trendRepo)
	_, _, err := svc.TrendTimeline(context.Background(), "nope", 1, pagination.Params{Limit: 10})
	assert.True(t, models.IsNotFound(err))
}

func TestTrendTimelineIsCaseSensitive(t *testing.T) {
	t.Parallel()

	var requested string
	trendRepo := noopTrendRepo()
	trendRepo.getByTextFn = func(_ context.Context, text string) (*models.Trend, error) {
		requested = text
		return &models.Trend{ID: 1, Text: text}, nil
	}

	svc := NewTrendService(trendRepo)
	_, _, err := svc.TrendTimeline(context.Background(), "GoLang", 1, pagination.Params{Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, "GoLang", requested, "topic lookup preserves exact case")
}

func TestTrendTimelineReturnsPage(t *testing.T) {
	t.Parallel()

	trendRepo := noopTrendRepo()
	trendRepo.countLinkedInteractionsFn = func(_ context.Context, trendID uint) (int64, error) {
		assert.Equal(t, uint(1), trendID)
		return 5, nil
	}
	trendRepo.linkedInteractionsFn = func(_ context.Context, trendID, viewerID uint, limit, offset int) ([]*models.Interaction, error) {
		assert.Equal(t, uint(1), trendID)
		assert.Equal(t, uint(7), viewerID)
		assert.Equal(t, 2, limit)
		assert.Equal(t, 2, offset)
		return []*models.Interaction{{ID: 30}, {ID: 29}}, nil
	}

	svc := NewTrendService(trendRepo)
	page, _, err := svc.TrendTimeline(context.Background(), "go", 7, pagination.Params{Limit: 2, Offset: 2})

	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "go", page.Trend.Text)
}
