// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"promptstash/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumProfiles int
	NumPrompts  int
	ShouldClean bool
}

var promptTitles = map[string][]string{
	"coding": {
		"Code Reviewer", "Bug Hunter", "SQL Query Explainer", "Regex Builder",
		"API Design Critic", "Test Case Generator",
	},
	"writing": {
		"Essay Grader", "Blog Outliner", "Tone Rewriter", "Headline Generator",
		"Story Continuation",
	},
	"marketing": {
		"Ad Copy Generator", "Landing Page Critic", "Email Subject Tester",
		"Persona Builder",
	},
	"productivity": {
		"Meeting Summarizer", "Daily Planner", "Decision Matrix",
		"Inbox Triage Assistant",
	},
	"design": {
		"UI Copy Polisher", "Color Palette Advisor", "Accessibility Auditor",
		"Design Brief Writer",
	},
}

// Seed populates the database with demo profiles, prompts and votes.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d profiles and %d prompts...", opts.NumProfiles, opts.NumPrompts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	gofakeit.Seed(time.Now().UnixNano())

	profiles, err := seedProfiles(db, opts.NumProfiles)
	if err != nil {
		return fmt.Errorf("seeding profiles: %w", err)
	}

	prompts, err := seedPrompts(db, profiles, opts.NumPrompts)
	if err != nil {
		return fmt.Errorf("seeding prompts: %w", err)
	}

	if err := seedVotes(db, profiles, prompts); err != nil {
		return fmt.Errorf("seeding votes: %w", err)
	}

	log.Println("Database seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	for _, model := range []any{&models.Vote{}, &models.Prompt{}, &models.Profile{}} {
		if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func seedProfiles(db *gorm.DB, n int) ([]models.Profile, error) {
	// All seeded accounts share one password to keep local logins simple.
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, n+1)

	admin := models.Profile{
		Email:    "admin@promptstash.local",
		Name:     "Admin",
		Password: string(hashed),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, err
	}
	profiles = append(profiles, admin)

	for i := 0; i < n; i++ {
		profile := models.Profile{
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Name:     gofakeit.Name(),
			Password: string(hashed),
			Role:     models.RoleUser,
		}
		if err := db.Create(&profile).Error; err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func seedPrompts(db *gorm.DB, profiles []models.Profile, n int) ([]models.Prompt, error) {
	prompts := make([]models.Prompt, 0, n)
	for i := 0; i < n; i++ {
		category := models.Categories[rand.Intn(len(models.Categories))]
		titles := promptTitles[category]

		prompt := models.Prompt{
			Title:       fmt.Sprintf("%s #%d", titles[rand.Intn(len(titles))], i+1),
			Description: gofakeit.Sentence(12),
			Content:     gofakeit.Paragraph(2, 4, 8, "\n"),
			Category:    category,
			Tags:        models.StringList{gofakeit.Word(), gofakeit.Word()},
			Published:   rand.Intn(10) < 8, // roughly 80% published
			AuthorID:    profiles[rand.Intn(len(profiles))].ID,
		}
		if err := db.Create(&prompt).Error; err != nil {
			return nil, err
		}
		prompts = append(prompts, prompt)
	}
	return prompts, nil
}

func seedVotes(db *gorm.DB, profiles []models.Profile, prompts []models.Prompt) error {
	for _, prompt := range prompts {
		if !prompt.Published {
			continue
		}
		var up, down int
		for _, profile := range profiles {
			// Around a third of users voted on any given prompt.
			if rand.Intn(3) != 0 {
				continue
			}
			voteType := models.VoteUp
			if rand.Intn(4) == 0 {
				voteType = models.VoteDown
			}
			vote := models.Vote{
				UserID:   profile.ID,
				PromptID: prompt.ID,
				VoteType: voteType,
			}
			if err := db.Create(&vote).Error; err != nil {
				return err
			}
			if voteType == models.VoteUp {
				up++
			} else {
				down++
			}
		}
		// Keep the persisted counters in step with the rows just created.
		if err := db.Model(&models.Prompt{}).Where("id = ?", prompt.ID).
			Updates(map[string]any{"upvotes": up, "downvotes": down}).Error; err != nil {
			return err
		}
	}
	return nil
}
