// Package notifications publishes created notification events to Redis
// pub/sub channels. Actual push delivery is a downstream consumer's job.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quill/internal/middleware"
	"quill/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Event is the payload published for one created notification.
type Event struct {
	ID            string    `json:"id"`
	Action        string    `json:"action"`
	RecipientID   uint      `json:"recipient_id"`
	FromUserID    uint      `json:"from_user_id"`
	InteractionID *uint     `json:"interaction_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Notifier provides helpers to publish notification events into Redis channels.
// All methods are safe to call with a nil receiver or nil client.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// NotificationCreated publishes the event for a freshly stored notification
// to the recipient's channel. Publish failures are logged, not propagated;
// a missed push never fails the action that produced the notification.
func (n *Notifier) NotificationCreated(ctx context.Context, notification *models.Notification) {
	if n == nil || n.rdb == nil {
		return
	}

	event := Event{
		ID:            uuid.NewString(),
		Action:        notification.Action,
		RecipientID:   notification.RecipientID,
		FromUserID:    notification.FromUserID,
		InteractionID: notification.InteractionID,
		CreatedAt:     notification.CreatedAt,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "notification event marshal failed", "error", err)
		return
	}

	channel := fmt.Sprintf("notifications:user:%d", notification.RecipientID)
	if err := n.rdb.Publish(ctx, channel, payload).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "notification event publish failed",
			"channel", channel, "error", err)
	}
}

// StartPatternSubscriber subscribes to every user notification channel and
// calls onMessage for each incoming event. Used by delivery consumers.
func (n *Notifier) StartPatternSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "notifications:user:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				onMessage(msg.Channel, msg.Payload)
			}
		}
	}()

	return nil
}
