package service

import (
	"context"

	"quill/internal/cache"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"
)

// UserService handles profile lookups and the follow graph.
type UserService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	notifier         *notifications.Notifier
}

func NewUserService(
	userRepo repository.UserRepository,
	notificationRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, username)
}

// Follow adds a follow edge and notifies the followee. Following
// yourself is rejected; following twice is a no-op.
func (s *UserService) Follow(ctx context.Context, followerID, followeeID uint) error {
	if followerID == followeeID {
		return models.NewValidationError("You can not follow yourself")
	}

	// Confirms the followee exists before writing the edge.
	followee, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return err
	}

	if err := s.userRepo.Follow(ctx, followerID, followee.ID); err != nil {
		return err
	}

	notification := &models.Notification{
		RecipientID: followee.ID,
		FromUserID:  followerID,
		Action:      models.ActionFollow,
	}
	if err := s.notificationRepo.Create(ctx, notification); err == nil {
		s.notifier.NotificationCreated(ctx, notification)
	}

	cache.InvalidateUser(ctx, followee.ID)
	return nil
}

// Unfollow removes the edge. Unfollowing someone you never followed is
// a no-op and triggers no notification.
func (s *UserService) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	if err := s.userRepo.Unfollow(ctx, followerID, followeeID); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, followeeID)
	return nil
}
