package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"quill/internal/models"
	"quill/internal/repository"
	"quill/internal/service"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumTweets   int
	ShouldClean bool
}

// Seed populates the database with test data. Tweets, replies, retweets,
// likes, and follows go through the regular services so trends, mentions,
// and notifications come out of the same code paths the API uses.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users and %d tweets...", opts.NumUsers, opts.NumTweets)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	ctx := context.Background()
	factory := NewFactory(db)

	userRepo := repository.NewUserRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	trendRepo := repository.NewTrendRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	userService := service.NewUserService(userRepo, notificationRepo, nil)
	interactionService := service.NewInteractionService(interactionRepo, userRepo, trendRepo, notificationRepo, nil)

	users, err := createUsers(factory, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("✓ %d test users created", len(users))

	follows, err := createFollowMesh(ctx, userService, users, factory.r)
	if err != nil {
		return fmt.Errorf("failed to create follow graph: %w", err)
	}
	log.Printf("✓ %d follow edges created", follows)

	tweets, err := createTweets(ctx, interactionService, factory, users, opts.NumTweets)
	if err != nil {
		return fmt.Errorf("failed to create tweets: %w", err)
	}
	log.Printf("✓ %d tweets created", len(tweets))

	replies, retweets := createEngagement(ctx, interactionService, factory, users, tweets)
	log.Printf("✓ %d replies and %d retweets created", replies, retweets)

	likes, views := createLikesAndViews(ctx, interactionService, interactionRepo, factory.r, users, tweets)
	log.Printf("✓ %d likes and %d views created", likes, views)

	log.Println("🎉 Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("🗑️  Clearing existing data...")
	sql := `TRUNCATE TABLE notifications, trend_links, trends, mentions, views, likes, media, interactions, follows, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(factory *Factory, count int) ([]models.User, error) {
	users := make([]models.User, 0, count)

	// Always include some fixed accounts so a dev can just log in.
	if count >= 3 {
		for _, name := range []string{"quill", "alice", "test"} {
			user, err := factory.CreateUser(func(u *models.User) {
				u.Username = name
				u.Email = fmt.Sprintf("%s@example.com", name)
				u.Bio = "One of the OGs."
			})
			if err == nil {
				users = append(users, *user)
			}
		}
	}

	for i := len(users); i < count; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			log.Printf("Failed to create user: %v", err)
			continue
		}
		users = append(users, *user)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d users...", i)
		}
	}

	return users, nil
}

// createFollowMesh gives every user a handful of followees so each
// timeline has content. Self follows and duplicate edges are skipped by
// the service and the unique index respectively.
func createFollowMesh(ctx context.Context, users *service.UserService, all []models.User, r *rand.Rand) (int, error) {
	if len(all) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range all {
		followCount := r.Intn(6) + 2
		for i := 0; i < followCount; i++ {
			followee := all[r.Intn(len(all))]
			if followee.ID == follower.ID {
				continue
			}
			if err := users.Follow(ctx, follower.ID, followee.ID); err != nil {
				continue
			}
			created++
		}
	}
	return created, nil
}

func createTweets(ctx context.Context, interactions *service.InteractionService, factory *Factory, users []models.User, count int) ([]models.Interaction, error) {
	tweets := make([]models.Interaction, 0, count)

	for i := 0; i < count; i++ {
		author := users[factory.r.Intn(len(users))]

		result, err := interactions.CreateTweet(ctx, author.ID, factory.TweetText(users), factory.MediaFileNames())
		if err != nil {
			log.Printf("Failed to create tweet: %v", err)
			continue
		}

		if err := factory.BackdateInteraction(ctx, result.Interaction.ID, 14); err != nil {
			log.Printf("Failed to backdate tweet %d: %v", result.Interaction.ID, err)
		}
		tweets = append(tweets, *result.Interaction)

		if i%100 == 0 && i > 0 {
			log.Printf("Created %d tweets...", i)
		}
	}

	return tweets, nil
}

func createEngagement(ctx context.Context, interactions *service.InteractionService, factory *Factory, users []models.User, tweets []models.Interaction) (replies, retweets int) {
	for _, tweet := range tweets {
		if factory.r.Float32() < 0.35 {
			replier := users[factory.r.Intn(len(users))]
			if _, err := interactions.CreateReply(ctx, replier.ID, tweet.ID, factory.TweetText(nil)); err == nil {
				replies++
			}
		}
		if factory.r.Float32() < 0.2 {
			retweeter := users[factory.r.Intn(len(users))]
			if retweeter.ID == tweet.AuthorID {
				continue
			}
			if _, err := interactions.CreateRetweet(ctx, retweeter.ID, tweet.ID); err == nil {
				retweets++
			}
		}
	}
	return replies, retweets
}

func createLikesAndViews(ctx context.Context, interactions *service.InteractionService, interactionRepo repository.InteractionRepository, r *rand.Rand, users []models.User, tweets []models.Interaction) (likes, views int) {
	for _, tweet := range tweets {
		likeCount := r.Intn(5)
		for i := 0; i < likeCount; i++ {
			liker := users[r.Intn(len(users))]
			if liker.ID == tweet.AuthorID {
				continue
			}
			if err := interactions.Like(ctx, liker.ID, tweet.ID); err == nil {
				likes++
			}
		}

		viewCount := r.Intn(12)
		for i := 0; i < viewCount; i++ {
			viewer := users[r.Intn(len(users))]
			if err := interactionRepo.RecordViews(ctx, viewer.ID, []uint{tweet.ID}); err == nil {
				views++
			}
		}
	}
	return likes, views
}
