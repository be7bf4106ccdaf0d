package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TrendRepository defines persistence operations for trends and their links.
type TrendRepository interface {
	FindOrCreate(ctx context.Context, text string) (*models.Trend, error)
	Link(ctx context.Context, trendID, interactionID uint) error
	CountTrends(ctx context.Context) (int64, error)
	ListSorted(ctx context.Context, limit, offset int) ([]models.Trend, error)
	GetByText(ctx context.Context, text string) (*models.Trend, error)
	CountLinkedInteractions(ctx context.Context, trendID uint) (int64, error)
	LinkedInteractions(ctx context.Context, trendID uint, viewerID uint, limit, offset int) ([]*models.Interaction, error)
}

type trendRepository struct {
	db *gorm.DB
}

// NewTrendRepository creates a new trend repository.
func NewTrendRepository(db *gorm.DB) TrendRepository {
	return &trendRepository{db: db}
}

// FindOrCreate resolves a trend by exact text, inserting it if absent.
// The unique index on text plus ON CONFLICT DO NOTHING makes concurrent
// creation of a brand-new topic converge on a single row.
func (r *trendRepository) FindOrCreate(ctx context.Context, text string) (*models.Trend, error) {
	trend := models.Trend{Text: text}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "text"}},
			DoNothing: true,
		}).
		Create(&trend).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if trend.ID == 0 {
		// Insert hit the conflict path; the row already exists.
		if err := r.db.WithContext(ctx).Where("text = ?", text).First(&trend).Error; err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &trend, nil
}

// Link attaches one interaction occurrence to a trend. Repeated hashtags
// in one text produce one link each.
func (r *trendRepository) Link(ctx context.Context, trendID, interactionID uint) error {
	link := models.TrendLink{TrendID: trendID, InteractionID: interactionID}
	if err := r.db.WithContext(ctx).Create(&link).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *trendRepository) CountTrends(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Trend{}).Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// ListSorted returns trends ordered by link count descending. links_count
// is a SELECT alias resolved into the non-persisted LinksCount field.
func (r *trendRepository) ListSorted(ctx context.Context, limit, offset int) ([]models.Trend, error) {
	var trends []models.Trend
	err := r.db.WithContext(ctx).
		Model(&models.Trend{}).
		Select("trends.*, (SELECT COUNT(*) FROM trend_links WHERE trend_links.trend_id = trends.id) AS links_count").
		Order("links_count DESC, trends.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&trends).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return trends, nil
}

func (r *trendRepository) GetByText(ctx context.Context, text string) (*models.Trend, error) {
	var trend models.Trend
	if err := r.db.WithContext(ctx).Where("text = ?", text).First(&trend).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Trend", text)
		}
		return nil, models.NewInternalError(err)
	}
	return &trend, nil
}

func (r *trendRepository) CountLinkedInteractions(ctx context.Context, trendID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Joins("JOIN trend_links ON trend_links.interaction_id = interactions.id").
		Where("trend_links.trend_id = ?", trendID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// LinkedInteractions returns the non-deleted interactions linked to a
// trend, newest first, with aggregates and viewer flags attached.
func (r *trendRepository) LinkedInteractions(ctx context.Context, trendID uint, viewerID uint, limit, offset int) ([]*models.Interaction, error) {
	var interactions []*models.Interaction
	err := applyAggregates(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Preload("Media", orderMedia).
		Preload("Parent", unscopedParent).
		Preload("Parent.Author").
		Preload("Parent.Media", orderMedia).
		Joins("JOIN trend_links ON trend_links.interaction_id = interactions.id").
		Where("trend_links.trend_id = ?", trendID).
		Order("interactions.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&interactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return interactions, nil
}
