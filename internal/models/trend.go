package models

import "time"

// Trend is a hashtag topic. Text is exact and case-sensitive; uniqueness
// is enforced by the database so concurrent creation resolves via upsert
// instead of read-then-write.
type Trend struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"unique;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`

	// LinksCount is computed at query time when listing trends.
	LinksCount int `gorm:"->" json:"count"`
}

// TrendLink associates a trend with one interaction that used it. A text
// that repeats a hashtag produces one link per occurrence.
type TrendLink struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	TrendID       uint      `gorm:"not null;index" json:"trend_id"`
	InteractionID uint      `gorm:"not null;index" json:"interaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}
