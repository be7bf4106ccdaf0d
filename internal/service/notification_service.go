package service

import (
	"context"
	"fmt"

	"quill/internal/models"
	"quill/internal/pagination"
	"quill/internal/repository"
)

// NotificationService turns the raw notification stream into display
// groups and tracks the seen flag.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// NotificationPage is one paginated slice of coalesced groups.
type NotificationPage struct {
	Groups     []models.NotificationGroup
	TotalCount int
}

// ListNotifications fetches the recipient's stream, coalesces it, and
// slices the requested page out of the grouped result. A successful read
// marks every notification of the recipient as seen.
func (s *NotificationService) ListNotifications(ctx context.Context, recipientID uint, params pagination.Params) (*NotificationPage, pagination.Params, error) {
	stream, err := s.notificationRepo.FetchStream(ctx, recipientID, false)
	if err != nil {
		return nil, params, err
	}

	groups := Coalesce(stream)
	total := len(groups)
	params = params.ClampOffset(total)

	start := params.Offset
	if start > total {
		start = total
	}
	end := start + params.Limit
	if end > total {
		end = total
	}

	if err := s.notificationRepo.MarkAllSeen(ctx, recipientID); err != nil {
		return nil, params, err
	}

	return &NotificationPage{Groups: groups[start:end], TotalCount: total}, params, nil
}

// UnseenCount folds the unseen rows with the same predicate and returns
// only the number of resulting groups. Nothing is marked seen.
func (s *NotificationService) UnseenCount(ctx context.Context, recipientID uint) (int, error) {
	stream, err := s.notificationRepo.FetchStream(ctx, recipientID, true)
	if err != nil {
		return 0, err
	}
	return len(Coalesce(stream)), nil
}

// Coalesce collapses a time-descending notification stream into display
// groups with a single-slot lookback: a row merges into the previous
// group iff the action matches and, for everything but FOLLOW, the
// subject interaction matches. Non-adjacent duplicates stay separate.
func Coalesce(stream []models.Notification) []models.NotificationGroup {
	groups := make([]models.NotificationGroup, 0, len(stream))
	var opener *models.Notification // raw row that opened the last group

	for i := range stream {
		n := &stream[i]

		if opener != nil && mergeable(opener, n) {
			// The newer row keeps the slot; only the text switches to
			// the grouped phrasing.
			last := &groups[len(groups)-1]
			last.Text = groupedText(last)
			continue
		}

		groups = append(groups, newGroup(n))
		opener = n
	}

	return groups
}

func mergeable(opener, n *models.Notification) bool {
	if opener.Action != n.Action {
		return false
	}
	if n.Action == models.ActionFollow {
		return true
	}
	return opener.InteractionID != nil && n.InteractionID != nil &&
		*opener.InteractionID == *n.InteractionID
}

func newGroup(n *models.Notification) models.NotificationGroup {
	group := models.NotificationGroup{
		Action:      n.Action,
		CreatedDate: n.CreatedAt,
		FromUser:    n.FromUser.Summary(),
		Interaction: n.Interaction,
	}

	if n.Action == models.ActionReply && n.Interaction != nil {
		// What the recipient sees as "their" content is the replied-to
		// parent; the triggering comment rides along separately.
		group.Reply = n.Interaction
		group.Interaction = n.Interaction.Parent
	}

	group.Text = singularText(&group)
	return group
}

// subjectType names the content the notification is about, for phrasing.
func subjectType(g *models.NotificationGroup) string {
	if g.Interaction == nil {
		return ""
	}
	return g.Interaction.Type
}

func singularText(g *models.NotificationGroup) string {
	username := g.FromUser.Username
	switch g.Action {
	case models.ActionFollow:
		return fmt.Sprintf("%s has followed you", username)
	case models.ActionLike:
		return fmt.Sprintf("%s has Liked your %s", username, subjectType(g))
	case models.ActionRetweet:
		return fmt.Sprintf("%s has reposted your %s", username, subjectType(g))
	case models.ActionReply:
		return fmt.Sprintf("%s has replied to your %s", username, subjectType(g))
	case models.ActionMention:
		return fmt.Sprintf("%s has mentioned you in a %s", username, subjectType(g))
	default:
		return username
	}
}

func groupedText(g *models.NotificationGroup) string {
	username := g.FromUser.Username
	switch g.Action {
	case models.ActionFollow:
		return fmt.Sprintf("%s and others have followed you", username)
	case models.ActionLike:
		return fmt.Sprintf("%s and others have Liked your %s", username, subjectType(g))
	case models.ActionRetweet:
		return fmt.Sprintf("%s and others have reposted your %s", username, subjectType(g))
	case models.ActionReply:
		return fmt.Sprintf("%s and others have replied to your %s", username, subjectType(g))
	case models.ActionMention:
		return fmt.Sprintf("%s and others have mentioned you in a %s", username, subjectType(g))
	default:
		return username
	}
}
