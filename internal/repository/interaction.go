package repository

import (
	"context"
	"errors"

	"quill/internal/middleware"
	"quill/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InteractionRepository defines persistence operations for interactions,
// their aggregates, and the view write-back.
type InteractionRepository interface {
	Create(ctx context.Context, interaction *models.Interaction) error
	GetByID(ctx context.Context, id uint) (*models.Interaction, error)
	SoftDelete(ctx context.Context, id uint) error
	CountByAuthors(ctx context.Context, authorIDs []uint, types []string) (int64, error)
	TotalInteractions(ctx context.Context) (int64, error)
	FetchCandidates(ctx context.Context, authorIDs []uint, viewerID uint) ([]*models.Interaction, error)
	RecordViews(ctx context.Context, viewerID uint, interactionIDs []uint) error
	Like(ctx context.Context, userID, interactionID uint) error
	Unlike(ctx context.Context, userID, interactionID uint) error
	AddMentions(ctx context.Context, interactionID uint, userIDs []uint) error
}

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository creates a new interaction repository.
func NewInteractionRepository(db *gorm.DB) InteractionRepository {
	return &interactionRepository{db: db}
}

func (r *interactionRepository) Create(ctx context.Context, interaction *models.Interaction) error {
	if err := r.db.WithContext(ctx).Create(interaction).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) GetByID(ctx context.Context, id uint) (*models.Interaction, error) {
	var interaction models.Interaction
	err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Media", orderMedia).
		First(&interaction, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Interaction", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &interaction, nil
}

func (r *interactionRepository) SoftDelete(ctx context.Context, id uint) error {
	// Soft deletion is non-cascading: children keep their parent reference.
	res := r.db.WithContext(ctx).Delete(&models.Interaction{}, id)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Interaction", id)
	}
	return nil
}

func (r *interactionRepository) CountByAuthors(ctx context.Context, authorIDs []uint, types []string) (int64, error) {
	if len(authorIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("author_id IN ? AND type IN ?", authorIDs, types).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// TotalInteractions counts every interaction row ever written, including
// soft-deleted ones. The ranking formula normalizes by this figure.
func (r *interactionRepository) TotalInteractions(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Unscoped().
		Model(&models.Interaction{}).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

// applyAggregates adds subqueries to fetch counters and viewer flags in a
// single query. Counts come back through the non-persisted gorm:"->" fields.
func applyAggregates(db *gorm.DB, viewerID uint) *gorm.DB {
	selectQuery := "interactions.*, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.interaction_id = interactions.id) AS likes_count, " +
		"(SELECT COUNT(*) FROM views WHERE views.interaction_id = interactions.id) AS views_count, " +
		"(SELECT COUNT(*) FROM interactions r WHERE r.parent_interaction_id = interactions.id AND r.type = 'RETWEET' AND r.deleted_at IS NULL) AS retweets_count, " +
		"(SELECT COUNT(*) FROM interactions c WHERE c.parent_interaction_id = interactions.id AND c.type = 'COMMENT' AND c.deleted_at IS NULL) AS comments_count"

	if viewerID != 0 {
		return db.Select(selectQuery+
			", EXISTS(SELECT 1 FROM likes WHERE likes.interaction_id = interactions.id AND likes.user_id = ?) AS is_user_liked"+
			", EXISTS(SELECT 1 FROM interactions r WHERE r.parent_interaction_id = interactions.id AND r.type = 'RETWEET' AND r.author_id = ?) AS is_user_retweeted"+
			", EXISTS(SELECT 1 FROM interactions c WHERE c.parent_interaction_id = interactions.id AND c.type = 'COMMENT' AND c.author_id = ?) AS is_user_commented",
			viewerID, viewerID, viewerID)
	}

	return db.Select(selectQuery + ", false AS is_user_liked, false AS is_user_retweeted, false AS is_user_commented")
}

func orderMedia(db *gorm.DB) *gorm.DB {
	return db.Order("media.position ASC")
}

// unscopedParent loads the parent even when it has been soft-deleted.
// A reposted-then-deleted parent still renders its raw fields.
func unscopedParent(db *gorm.DB) *gorm.DB {
	return db.Unscoped()
}

// FetchCandidates returns every non-deleted TWEET or RETWEET authored by
// the given set, with aggregate counters, viewer flags, author, media, and
// resolved parent attached. Ordering is left to the caller.
func (r *interactionRepository) FetchCandidates(ctx context.Context, authorIDs []uint, viewerID uint) ([]*models.Interaction, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}

	var interactions []*models.Interaction
	err := applyAggregates(r.db.WithContext(ctx), viewerID).
		Preload("Author").
		Preload("Media", orderMedia).
		Preload("Parent", unscopedParent).
		Preload("Parent.Author").
		Preload("Parent.Media", orderMedia).
		Where("author_id IN ? AND type IN ?", authorIDs, []string{models.InteractionTweet, models.InteractionRetweet}).
		Find(&interactions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return interactions, nil
}

// RecordViews writes one view row per (viewer, interaction) pair.
// ON CONFLICT DO NOTHING keeps the write idempotent under concurrency.
func (r *interactionRepository) RecordViews(ctx context.Context, viewerID uint, interactionIDs []uint) error {
	if len(interactionIDs) == 0 {
		return nil
	}

	views := make([]models.View, 0, len(interactionIDs))
	seen := make(map[uint]struct{}, len(interactionIDs))
	for _, id := range interactionIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		views = append(views, models.View{UserID: viewerID, InteractionID: id})
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "interaction_id"}},
			DoNothing: true,
		}).
		Create(&views).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	middleware.ViewsRecorded.Add(float64(len(views)))
	return nil
}

func (r *interactionRepository) Like(ctx context.Context, userID, interactionID uint) error {
	// Atomic under races; duplicate likes collapse into one row.
	err := r.db.WithContext(ctx).Exec(
		`INSERT INTO likes (user_id, interaction_id, created_at)
		 VALUES (?, ?, NOW())
		 ON CONFLICT (user_id, interaction_id) DO NOTHING`,
		userID, interactionID,
	).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) Unlike(ctx context.Context, userID, interactionID uint) error {
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND interaction_id = ?", userID, interactionID).
		Delete(&models.Like{}).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *interactionRepository) AddMentions(ctx context.Context, interactionID uint, userIDs []uint) error {
	if len(userIDs) == 0 {
		return nil
	}
	mentions := make([]models.Mention, 0, len(userIDs))
	for _, uid := range userIDs {
		mentions = append(mentions, models.Mention{UserID: uid, InteractionID: interactionID})
	}
	if err := r.db.WithContext(ctx).Create(&mentions).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
