// Command main runs the database seeder for Quill.
package main

import (
	"flag"
	"log"

	"quill/internal/config"
	"quill/internal/database"
	"quill/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numTweets := flag.Int("tweets", 400, "Number of tweets to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("🌱 Database Seeder")
	log.Println("==================")
	log.Printf("Target: %d users, %d tweets, clean=%v\n", *numUsers, *numTweets, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(db, seed.Options{
		NumUsers:    *numUsers,
		NumTweets:   *numTweets,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("✨ All done! Your database is now populated with test data.")
	log.Println("📧 All test users have the password: password123")
}
