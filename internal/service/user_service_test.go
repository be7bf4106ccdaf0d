package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRejectsSelf(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), noopNotificationRepo(), nil)
	err := svc.Follow(context.Background(), 1, 1)
	assertValidationError(t, err)
}

func TestFollowNotifiesFollowee(t *testing.T) {
	t.Parallel()

	followed := [2]uint{}
	userRepo := noopUserRepo()
	userRepo.followFn = func(_ context.Context, followerID, followeeID uint) error {
		followed = [2]uint{followerID, followeeID}
		return nil
	}

	notificationRepo := noopNotificationRepo()
	svc := NewUserService(userRepo, notificationRepo, nil)

	require.NoError(t, svc.Follow(context.Background(), 1, 2))
	assert.Equal(t, [2]uint{1, 2}, followed)

	require.Len(t, notificationRepo.created, 1)
	n := notificationRepo.created[0]
	assert.Equal(t, models.ActionFollow, n.Action)
	assert.Equal(t, uint(2), n.RecipientID)
	assert.Equal(t, uint(1), n.FromUserID)
	assert.Nil(t, n.InteractionID, "follow notifications carry no subject")
}

func TestFollowUnknownFollowee(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}

	svc := NewUserService(userRepo, noopNotificationRepo(), nil)
	err := svc.Follow(context.Background(), 1, 404)
	assert.True(t, models.IsNotFound(err))
}

func TestFollowPropagatesRepoError(t *testing.T) {
	t.Parallel()

	boom := errors.New("db down")
	userRepo := noopUserRepo()
	userRepo.followFn = func(_ context.Context, _, _ uint) error { return boom }

	notificationRepo := noopNotificationRepo()
	svc := NewUserService(userRepo, notificationRepo, nil)

	err := svc.Follow(context.Background(), 1, 2)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, notificationRepo.created)
}

func TestUnfollowCreatesNoNotification(t *testing.T) {
	t.Parallel()

	notificationRepo := noopNotificationRepo()
	svc := NewUserService(noopUserRepo(), notificationRepo, nil)

	require.NoError(t, svc.Unfollow(context.Background(), 1, 2))
	assert.Empty(t, notificationRepo.created)
}
