// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"quill/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var topics = []string{
	"golang", "programming", "news", "music", "movies", "gaming",
	"fitness", "travel", "food", "crypto", "ai", "homelab",
	"coffee", "books", "science",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	//nolint:gosec // Weak random number generator is fine for seeding
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := strings.ToLower(gofakeit.Username()) + fmt.Sprintf("%d", gofakeit.Number(100, 999))
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)

	user := &models.User{
		Username: username,
		Name:     gofakeit.Name(),
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: string(hashedPassword),
		Bio:      gofakeit.Sentence(10),
		Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// TweetText generates tweet text that sometimes carries hashtags and
// sometimes mentions one of the given users.
func (f *Factory) TweetText(users []models.User) string {
	text := gofakeit.Sentence(f.r.Intn(15) + 3)

	if f.r.Float32() < 0.4 {
		text += " #" + topics[f.r.Intn(len(topics))]
	}
	if f.r.Float32() < 0.15 {
		text += " #" + topics[f.r.Intn(len(topics))]
	}
	if len(users) > 0 && f.r.Float32() < 0.2 {
		text += " @" + users[f.r.Intn(len(users))].Username
	}

	return text
}

// MediaFileNames returns zero or more attachment names for a tweet.
func (f *Factory) MediaFileNames() []string {
	if f.r.Float32() > 0.25 {
		return nil
	}
	count := f.r.Intn(2) + 1
	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		names = append(names, fmt.Sprintf("%s.webp", gofakeit.UUID()))
	}
	return names
}

// BackdateInteraction spreads an interaction's creation time over the
// last maxDays days so ranking decay has something to work with.
func (f *Factory) BackdateInteraction(ctx context.Context, interactionID uint, maxDays int) error {
	if maxDays <= 0 {
		maxDays = 14
	}
	createdAt := time.Now().
		Add(-time.Duration(f.r.Intn(maxDays*24)) * time.Hour).
		Add(-time.Duration(f.r.Intn(60)) * time.Minute)
	return f.db.WithContext(ctx).
		Model(&models.Interaction{}).
		Where("id = ?", interactionID).
		Update("created_at", createdAt).Error
}
