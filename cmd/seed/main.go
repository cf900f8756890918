// Command main runs the database seeder for PromptStash.
package main

import (
	"flag"
	"log"

	"promptstash/internal/config"
	"promptstash/internal/database"
	"promptstash/internal/seed"
)

func main() {
	numProfiles := flag.Int("profiles", 25, "Number of profiles to create")
	numPrompts := flag.Int("prompts", 100, "Number of prompts to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d profiles, %d prompts, clean=%v\n", *numProfiles, *numPrompts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := seed.Seed(database.DB, seed.Options{
		NumProfiles: *numProfiles,
		NumPrompts:  *numPrompts,
		ShouldClean: *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}
