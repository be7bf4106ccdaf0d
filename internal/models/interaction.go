package models

import (
	"time"

	"gorm.io/gorm"
)

// Interaction types. A COMMENT is a reply to its parent interaction.
const (
	InteractionTweet   = "TWEET"
	InteractionRetweet = "RETWEET"
	InteractionComment = "COMMENT"
)

// Interaction is a tweet, retweet, or comment. RETWEET and COMMENT rows
// always carry a parent reference; TWEET rows never do. Deletion is soft
// and non-cascading, so children may hold dangling parent references.
type Interaction struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	AuthorID            uint           `gorm:"not null;index" json:"author_id"`
	Author              User           `gorm:"foreignKey:AuthorID" json:"author"`
	Type                string         `gorm:"not null;index" json:"type"`
	Text                *string        `gorm:"type:text" json:"text"`
	ParentInteractionID *uint          `gorm:"index" json:"parent_interaction_id,omitempty"`
	Parent              *Interaction   `gorm:"foreignKey:ParentInteractionID" json:"-"`
	Media               []Media        `gorm:"foreignKey:InteractionID" json:"media,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	// Aggregates are not persisted; computed at query time.
	LikesCount    int `gorm:"->" json:"likes_count"`
	ViewsCount    int `gorm:"->" json:"views_count"`
	RetweetsCount int `gorm:"->" json:"retweets_count"`
	CommentsCount int `gorm:"->" json:"comments_count"`

	// Viewer flags are computed per request, never persisted.
	IsUserLiked     bool `gorm:"->" json:"is_user_liked"`
	IsUserRetweeted bool `gorm:"->" json:"is_user_retweeted"`
	IsUserCommented bool `gorm:"->" json:"is_user_commented"`
}

// Media is an ordered attachment on an interaction.
type Media struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InteractionID uint      `gorm:"not null;index" json:"interaction_id"`
	FileName      string    `gorm:"not null" json:"file_name"`
	Position      int       `gorm:"not null;default:0" json:"position"`
	CreatedAt     time.Time `json:"created_at"`
}

// Like marks that a user liked an interaction. The pair is unique.
type Like struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index;uniqueIndex:idx_like_pair" json:"user_id"`
	InteractionID uint      `gorm:"not null;index;uniqueIndex:idx_like_pair" json:"interaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// View records that a user has seen an interaction. Append-only and
// idempotent: re-recording the same pair leaves a single row.
type View struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index;uniqueIndex:idx_view_pair" json:"user_id"`
	InteractionID uint      `gorm:"not null;index;uniqueIndex:idx_view_pair" json:"interaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// Mention links an interaction to a user referenced in its text.
type Mention struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	InteractionID uint      `gorm:"not null;index" json:"interaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsTopLevel reports whether the interaction appears on timelines.
func (i *Interaction) IsTopLevel() bool {
	return i.Type == InteractionTweet || i.Type == InteractionRetweet
}
