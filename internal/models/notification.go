package models

import "time"

// Notification actions.
const (
	ActionFollow  = "FOLLOW"
	ActionLike    = "LIKE"
	ActionRetweet = "RETWEET"
	ActionReply   = "REPLY"
	ActionMention = "MENTION"
)

// Notification is one raw event in a recipient's stream. InteractionID is
// null only for FOLLOW. Rows are created by the triggering action and
// mutated only when marked seen. A notification whose interaction has been
// soft-deleted is invisible; FOLLOW rows always remain visible.
type Notification struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	RecipientID   uint         `gorm:"not null;index" json:"recipient_id"`
	FromUserID    uint         `gorm:"not null" json:"from_user_id"`
	FromUser      User         `gorm:"foreignKey:FromUserID" json:"from_user"`
	Action        string       `gorm:"not null" json:"action"`
	InteractionID *uint        `json:"interaction_id,omitempty"`
	Interaction   *Interaction `gorm:"foreignKey:InteractionID" json:"interaction,omitempty"`
	Seen          bool         `gorm:"not null;default:false;index" json:"seen"`
	CreatedAt     time.Time    `json:"created_at"`
}

// NotificationGroup is one display entry after coalescing adjacent
// same-subject events. For REPLY groups, Interaction is the replied-to
// parent (the recipient's own content) and Reply is the triggering
// comment.
type NotificationGroup struct {
	Action      string       `json:"action"`
	CreatedDate time.Time    `json:"createdDate"`
	Interaction *Interaction `json:"interaction"`
	Reply       *Interaction `json:"reply,omitempty"`
	FromUser    UserSummary  `json:"fromUser"`
	Text        string       `json:"text"`
}
