package service

import (
	"context"

	"quill/internal/cache"
	"quill/internal/extract"
	"quill/internal/middleware"
	"quill/internal/models"
	"quill/internal/notifications"
	"quill/internal/repository"
)

// InteractionService implements the write path for tweets, replies,
// retweets, and likes, including mention/trend extraction and the
// notification fan-out each action triggers.
type InteractionService struct {
	interactionRepo  repository.InteractionRepository
	userRepo         repository.UserRepository
	trendRepo        repository.TrendRepository
	notificationRepo repository.NotificationRepository
	notifier         *notifications.Notifier
}

// NewInteractionService creates a new InteractionService.
func NewInteractionService(
	interactionRepo repository.InteractionRepository,
	userRepo repository.UserRepository,
	trendRepo repository.TrendRepository,
	notificationRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
) *InteractionService {
	return &InteractionService{
		interactionRepo:  interactionRepo,
		userRepo:         userRepo,
		trendRepo:        trendRepo,
		notificationRepo: notificationRepo,
		notifier:         notifier,
	}
}

// CreateTweetResult carries the created interaction together with what
// the extractor found in its text.
type CreateTweetResult struct {
	Interaction *models.Interaction `json:"interaction"`
	Mentions    []string            `json:"mentions"`
	Trends      []string            `json:"trends"`
}

// CreateTweet persists a new top-level tweet, resolves its mentions,
// links its hashtags, and queues MENTION notifications.
func (s *InteractionService) CreateTweet(ctx context.Context, authorID uint, text string, media []string) (*CreateTweetResult, error) {
	if text == "" && len(media) == 0 {
		return nil, models.NewValidationError("Tweet can not be empty")
	}

	interaction := &models.Interaction{
		AuthorID: authorID,
		Type:     models.InteractionTweet,
	}
	if text != "" {
		interaction.Text = &text
	}
	for i, fileName := range media {
		interaction.Media = append(interaction.Media, models.Media{FileName: fileName, Position: i})
	}

	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}

	mentioned, trends, err := s.processEntities(ctx, interaction, text)
	if err != nil {
		return nil, err
	}

	usernames := make([]string, 0, len(mentioned))
	for _, u := range mentioned {
		usernames = append(usernames, u.Username)
	}

	return &CreateTweetResult{
		Interaction: interaction,
		Mentions:    usernames,
		Trends:      trends,
	}, nil
}

// CreateReply persists a COMMENT under the parent and notifies its author.
func (s *InteractionService) CreateReply(ctx context.Context, authorID, parentID uint, text string) (*CreateTweetResult, error) {
	if text == "" {
		return nil, models.NewValidationError("Reply can not be empty")
	}

	parent, err := s.interactionRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		AuthorID:            authorID,
		Type:                models.InteractionComment,
		Text:                &text,
		ParentInteractionID: &parent.ID,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}

	mentioned, trends, err := s.processEntities(ctx, interaction, text)
	if err != nil {
		return nil, err
	}

	// The reply notification points at the triggering comment; the
	// aggregator resolves the replied-to parent from it.
	if parent.AuthorID != authorID {
		s.createNotification(ctx, &models.Notification{
			RecipientID:   parent.AuthorID,
			FromUserID:    authorID,
			Action:        models.ActionReply,
			InteractionID: &interaction.ID,
		})
	}

	usernames := make([]string, 0, len(mentioned))
	for _, u := range mentioned {
		usernames = append(usernames, u.Username)
	}

	return &CreateTweetResult{
		Interaction: interaction,
		Mentions:    usernames,
		Trends:      trends,
	}, nil
}

// CreateRetweet persists a RETWEET of the parent and notifies its author.
func (s *InteractionService) CreateRetweet(ctx context.Context, authorID, parentID uint) (*models.Interaction, error) {
	parent, err := s.interactionRepo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}

	interaction := &models.Interaction{
		AuthorID:            authorID,
		Type:                models.InteractionRetweet,
		ParentInteractionID: &parent.ID,
	}
	if err := s.interactionRepo.Create(ctx, interaction); err != nil {
		return nil, err
	}

	if parent.AuthorID != authorID {
		s.createNotification(ctx, &models.Notification{
			RecipientID:   parent.AuthorID,
			FromUserID:    authorID,
			Action:        models.ActionRetweet,
			InteractionID: &parent.ID,
		})
	}

	return interaction, nil
}

// Like records a like and notifies the interaction's author.
func (s *InteractionService) Like(ctx context.Context, userID, interactionID uint) error {
	interaction, err := s.interactionRepo.GetByID(ctx, interactionID)
	if err != nil {
		return err
	}

	if err := s.interactionRepo.Like(ctx, userID, interactionID); err != nil {
		return err
	}

	if interaction.AuthorID != userID {
		s.createNotification(ctx, &models.Notification{
			RecipientID:   interaction.AuthorID,
			FromUserID:    userID,
			Action:        models.ActionLike,
			InteractionID: &interaction.ID,
		})
	}
	return nil
}

// Unlike removes a like. Removing a like that never existed is a no-op.
func (s *InteractionService) Unlike(ctx context.Context, userID, interactionID uint) error {
	return s.interactionRepo.Unlike(ctx, userID, interactionID)
}

// Delete soft-deletes the caller's own interaction.
func (s *InteractionService) Delete(ctx context.Context, userID, interactionID uint) error {
	interaction, err := s.interactionRepo.GetByID(ctx, interactionID)
	if err != nil {
		return err
	}
	if interaction.AuthorID != userID {
		return models.NewUnauthorizedError("You can only delete your own interactions")
	}
	return s.interactionRepo.SoftDelete(ctx, interactionID)
}

// processEntities extracts mentions and hashtags from the text, persists
// mention rows and trend links, and queues MENTION notifications for
// everyone resolved (except the author mentioning themselves).
// Unresolvable handles are dropped silently.
func (s *InteractionService) processEntities(ctx context.Context, interaction *models.Interaction, text string) ([]models.User, []string, error) {
	entities := extract.FromText(text)

	resolved, err := s.userRepo.ResolveUsernames(ctx, entities.Mentions)
	if err != nil {
		return nil, nil, err
	}

	if len(resolved) > 0 {
		userIDs := make([]uint, 0, len(resolved))
		for _, u := range resolved {
			userIDs = append(userIDs, u.ID)
		}
		if err := s.interactionRepo.AddMentions(ctx, interaction.ID, userIDs); err != nil {
			return nil, nil, err
		}

		for _, u := range resolved {
			if u.ID == interaction.AuthorID {
				continue
			}
			s.createNotification(ctx, &models.Notification{
				RecipientID:   u.ID,
				FromUserID:    interaction.AuthorID,
				Action:        models.ActionMention,
				InteractionID: &interaction.ID,
			})
		}
	}

	// Each hashtag occurrence links once, including repeats of the same
	// token within one text.
	for _, topic := range entities.Trends {
		trend, err := s.trendRepo.FindOrCreate(ctx, topic)
		if err != nil {
			return nil, nil, err
		}
		if err := s.trendRepo.Link(ctx, trend.ID, interaction.ID); err != nil {
			return nil, nil, err
		}
	}
	if len(entities.Trends) > 0 {
		cache.InvalidateTrendLists(ctx)
	}

	return resolved, entities.Trends, nil
}

// createNotification stores the row and publishes the event. Storage
// failures are swallowed after logging: a missed notification never
// fails the triggering action.
func (s *InteractionService) createNotification(ctx context.Context, notification *models.Notification) {
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to store notification",
			"action", notification.Action,
			"recipient_id", notification.RecipientID,
			"error", err)
		return
	}
	s.notifier.NotificationCreated(ctx, notification)
}
