package service

import (
	"context"
	"errors"
	"testing"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	resolveUsernamesFn func(context.Context, []string) ([]models.User, error)
	followFn           func(context.Context, uint, uint) error
	unfollowFn         func(context.Context, uint, uint) error
	followeeIDsFn      func(context.Context, uint) ([]uint, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) ResolveUsernames(ctx context.Context, usernames []string) ([]models.User, error) {
	return s.resolveUsernamesFn(ctx, usernames)
}
func (s *userRepoStub) Follow(ctx context.Context, followerID, followeeID uint) error {
	return s.followFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) Unfollow(ctx context.Context, followerID, followeeID uint) error {
	return s.unfollowFn(ctx, followerID, followeeID)
}
func (s *userRepoStub) FolloweeIDs(ctx context.Context, followerID uint) ([]uint, error) {
	return s.followeeIDsFn(ctx, followerID)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.User, error) { return &models.User{ID: id}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return &models.User{}, nil },
		getByUsernameFn: func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{}, nil
		},
		resolveUsernamesFn: func(_ context.Context, _ []string) ([]models.User, error) { return nil, nil },
		followFn:           func(_ context.Context, _, _ uint) error { return nil },
		unfollowFn:         func(_ context.Context, _, _ uint) error { return nil },
		followeeIDsFn:      func(_ context.Context, _ uint) ([]uint, error) { return nil, nil },
	}
}

// interactionRepoStub is a stub for repository.InteractionRepository.
type interactionRepoStub struct {
	createFn            func(context.Context, *models.Interaction) error
	getByIDFn           func(context.Context, uint) (*models.Interaction, error)
	softDeleteFn        func(context.Context, uint) error
	countByAuthorsFn    func(context.Context, []uint, []string) (int64, error)
	totalInteractionsFn func(context.Context) (int64, error)
	fetchCandidatesFn   func(context.Context, []uint, uint) ([]*models.Interaction, error)
	recordViewsFn       func(context.Context, uint, []uint) error
	likeFn              func(context.Context, uint, uint) error
	unlikeFn            func(context.Context, uint, uint) error
	addMentionsFn       func(context.Context, uint, []uint) error
}

func (s *interactionRepoStub) Create(ctx context.Context, interaction *models.Interaction) error {
	return s.createFn(ctx, interaction)
}
func (s *interactionRepoStub) GetByID(ctx context.Context, id uint) (*models.Interaction, error) {
	return s.getByIDFn(ctx, id)
}
func (s *interactionRepoStub) SoftDelete(ctx context.Context, id uint) error {
	return s.softDeleteFn(ctx, id)
}
func (s *interactionRepoStub) CountByAuthors(ctx context.Context, authorIDs []uint, types []string) (int64, error) {
	return s.countByAuthorsFn(ctx, authorIDs, types)
}
func (s *interactionRepoStub) TotalInteractions(ctx context.Context) (int64, error) {
	return s.totalInteractionsFn(ctx)
}
func (s *interactionRepoStub) FetchCandidates(ctx context.Context, authorIDs []uint, viewerID uint) ([]*models.Interaction, error) {
	return s.fetchCandidatesFn(ctx, authorIDs, viewerID)
}
func (s *interactionRepoStub) RecordViews(ctx context.Context, viewerID uint, interactionIDs []uint) error {
	return s.recordViewsFn(ctx, viewerID, interactionIDs)
}
func (s *interactionRepoStub) Like(ctx context.Context, userID, interactionID uint) error {
	return s.likeFn(ctx, userID, interactionID)
}
func (s *interactionRepoStub) Unlike(ctx context.Context, userID, interactionID uint) error {
	return s.unlikeFn(ctx, userID, interactionID)
}
func (s *interactionRepoStub) AddMentions(ctx context.Context, interactionID uint, userIDs []uint) error {
	return s.addMentionsFn(ctx, interactionID, userIDs)
}

func noopInteractionRepo() *interactionRepoStub {
	nextID := uint(100)
	return &interactionRepoStub{
		createFn: func(_ context.Context, i *models.Interaction) error {
			nextID++
			i.ID = nextID
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Interaction, error) {
			return &models.Interaction{ID: id, Type: models.InteractionTweet}, nil
		},
		softDeleteFn:        func(_ context.Context, _ uint) error { return nil },
		countByAuthorsFn:    func(_ context.Context, _ []uint, _ []string) (int64, error) { return 0, nil },
		totalInteractionsFn: func(_ context.Context) (int64, error) { return 0, nil },
		fetchCandidatesFn: func(_ context.Context, _ []uint, _ uint) ([]*models.Interaction, error) {
			return nil, nil
		},
		recordViewsFn: func(_ context.Context, _ uint, _ []uint) error { return nil },
		likeFn:        func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:      func(_ context.Context, _, _ uint) error { return nil },
		addMentionsFn: func(_ context.Context, _ uint, _ []uint) error { return nil },
	}
}

// trendRepoStub is a stub for repository.TrendRepository.
type trendRepoStub struct {
	findOrCreateFn            func(context.Context, string) (*models.Trend, error)
	linkFn                    func(context.Context, uint, uint) error
	countTrendsFn             func(context.Context) (int64, error)
	listSortedFn              func(context.Context, int, int) ([]models.Trend, error)
	getByTextFn               func(context.Context, string) (*models.Trend, error)
	countLinkedInteractionsFn func(context.Context, uint) (int64, error)
	linkedInteractionsFn      func(context.Context, uint, uint, int, int) ([]*models.Interaction, error)
}

func (s *trendRepoStub) FindOrCreate(ctx context.Context, text string) (*models.Trend, error) {
	return s.findOrCreateFn(ctx, text)
}
func (s *trendRepoStub) Link(ctx context.Context, trendID, interactionID uint) error {
	return s.linkFn(ctx, trendID, interactionID)
}
func (s *trendRepoStub) CountTrends(ctx context.Context) (int64, error) {
	return s.countTrendsFn(ctx)
}
func (s *trendRepoStub) ListSorted(ctx context.Context, limit, offset int) ([]models.Trend, error) {
	return s.listSortedFn(ctx, limit, offset)
}
func (s *trendRepoStub) GetByText(ctx context.Context, text string) (*models.Trend, error) {
	return s.getByTextFn(ctx, text)
}
func (s *trendRepoStub) CountLinkedInteractions(ctx context.Context, trendID uint) (int64, error) {
	return s.countLinkedInteractionsFn(ctx, trendID)
}
func (s *trendRepoStub) LinkedInteractions(ctx context.Context, trendID, viewerID uint, limit, offset int) ([]*models.Interaction, error) {
	return s.linkedInteractionsFn(ctx, trendID, viewerID, limit, offset)
}

func noopTrendRepo() *trendRepoStub {
	nextID := uint(0)
	return &trendRepoStub{
		findOrCreateFn: func(_ context.Context, text string) (*models.Trend, error) {
			nextID++
			return &models.Trend{ID: nextID, Text: text}, nil
		},
		linkFn:        func(_ context.Context, _, _ uint) error { return nil },
		countTrendsFn: func(_ context.Context) (int64, error) { return 0, nil },
		listSortedFn:  func(_ context.Context, _, _ int) ([]models.Trend, error) { return nil, nil },
		getByTextFn: func(_ context.Context, text string) (*models.Trend, error) {
			return &models.Trend{ID: 1, Text: text}, nil
		},
		countLinkedInteractionsFn: func(_ context.Context, _ uint) (int64, error) { return 0, nil },
		linkedInteractionsFn: func(_ context.Context, _, _ uint, _, _ int) ([]*models.Interaction, error) {
			return nil, nil
		},
	}
}

// notificationRepoStub is a stub for repository.NotificationRepository.
// created records every row passed to Create.
type notificationRepoStub struct {
	created       []*models.Notification
	createFn      func(context.Context, *models.Notification) error
	fetchStreamFn func(context.Context, uint, bool) ([]models.Notification, error)
	markAllSeenFn func(context.Context, uint) error
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	if s.createFn != nil {
		if err := s.createFn(ctx, notification); err != nil {
			return err
		}
	}
	s.created = append(s.created, notification)
	return nil
}
func (s *notificationRepoStub) FetchStream(ctx context.Context, recipientID uint, unseenOnly bool) ([]models.Notification, error) {
	return s.fetchStreamFn(ctx, recipientID, unseenOnly)
}
func (s *notificationRepoStub) MarkAllSeen(ctx context.Context, recipientID uint) error {
	if s.markAllSeenFn != nil {
		return s.markAllSeenFn(ctx, recipientID)
	}
	return nil
}

func noopNotificationRepo() *notificationRepoStub {
	return &notificationRepoStub{
		fetchStreamFn: func(_ context.Context, _ uint, _ bool) ([]models.Notification, error) {
			return nil, nil
		},
	}
}

// assertValidationError asserts that err is an AppError with code VALIDATION_ERROR.
func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

// assertUnauthorizedError asserts that err is an AppError with code UNAUTHORIZED.
func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
