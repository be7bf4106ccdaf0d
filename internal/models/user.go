// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the Quill application.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"unique;not null" json:"username"`
	Name      string         `json:"name"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Bio       string         `json:"bio"`
	Avatar    string         `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// UserSummary is the compact author representation embedded in feed and
// notification payloads.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar"`
}

// Summary returns the compact representation of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Avatar:   u.Avatar,
	}
}

// Follow is a directed edge in the follow graph: follower -> followee.
// The pair is unique.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follow_pair" json:"follower_id"`
	FolloweeID uint      `gorm:"not null;index;uniqueIndex:idx_follow_pair" json:"followee_id"`
	Follower   User      `gorm:"foreignKey:FollowerID" json:"-"`
	Followee   User      `gorm:"foreignKey:FolloweeID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}
