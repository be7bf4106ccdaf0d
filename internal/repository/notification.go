package repository

import (
	"context"

	"quill/internal/middleware"
	"quill/internal/models"

	"gorm.io/gorm"
)

// NotificationRepository defines persistence operations for the raw
// notification stream.
type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	FetchStream(ctx context.Context, recipientID uint, unseenOnly bool) ([]models.Notification, error)
	MarkAllSeen(ctx context.Context, recipientID uint) error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return models.NewInternalError(err)
	}
	middleware.NotificationsCreated.WithLabelValues(notification.Action).Inc()
	return nil
}

// FetchStream returns the recipient's notifications newest first. Rows
// whose interaction has been soft-deleted are filtered out up front;
// FOLLOW rows carry no interaction and always pass. For REPLY rows the
// triggering comment and its (possibly soft-deleted) parent are loaded so
// the aggregator can surface the recipient's own content.
func (r *notificationRepository) FetchStream(ctx context.Context, recipientID uint, unseenOnly bool) ([]models.Notification, error) {
	query := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("Interaction").
		Preload("Interaction.Author").
		Preload("Interaction.Parent", unscopedParent).
		Preload("Interaction.Parent.Author").
		Joins("LEFT JOIN interactions ON interactions.id = notifications.interaction_id").
		Where("notifications.recipient_id = ?", recipientID).
		Where("notifications.action = ? OR (interactions.id IS NOT NULL AND interactions.deleted_at IS NULL)", models.ActionFollow).
		Order("notifications.created_at DESC, notifications.id DESC")

	if unseenOnly {
		query = query.Where("notifications.seen = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return notifications, nil
}

func (r *notificationRepository) MarkAllSeen(ctx context.Context, recipientID uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("recipient_id = ? AND seen = ?", recipientID, false).
		Update("seen", true).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
