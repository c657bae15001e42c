// Command main runs the database seeder for PawHaven.
package main

import (
	"flag"
	"log"

	"pawhaven/internal/config"
	"pawhaven/internal/database"
	"pawhaven/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numShelters := flag.Int("shelters", 10, "Number of shelters to create")
	numStores := flag.Int("stores", 12, "Number of stores to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	preset := flag.String("preset", "", "Apply a named seeder preset (minimal, demo, mega)")
	flag.Parse()

	log.Println("Database seeder")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db, seed.Options{})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if *preset != "" {
		if err := s.ApplyPreset(*preset); err != nil {
			log.Fatalf("Preset seeding failed: %v", err)
		}
	} else {
		users, err := s.SeedCommunity(*numUsers, *numPosts)
		if err != nil {
			log.Fatalf("Community seeding failed: %v", err)
		}
		if err := s.SeedApprovals(users, *numShelters, *numStores, 8); err != nil {
			log.Fatalf("Approval seeding failed: %v", err)
		}
	}

	log.Println("Done. All test users have the password: password123")
}
