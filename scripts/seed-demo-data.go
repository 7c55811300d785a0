package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/townboard/townboard/internal/auth"
	"github.com/townboard/townboard/internal/model"
	"github.com/townboard/townboard/internal/repository"
)

// Seeds a handful of demo users, events and comments so a fresh
// deployment has something to show. Safe to re-run: existing emails are
// skipped.
func main() {
	var (
		databaseURL = flag.String("database-url", os.Getenv("DATABASE_URL"), "PostgreSQL connection string")
		password    = flag.String("password", "password123", "Password for the demo accounts")
	)
	flag.Parse()

	if *databaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo, err := repository.New(ctx, *databaseURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, "connect database:", err)
		os.Exit(1)
	}
	defer repo.Close()

	if err := seed(ctx, repo, *password); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	fmt.Println("demo data seeded")
}

func seed(ctx context.Context, repo *repository.Repository, password string) error {
	hasher := auth.NewArgon2Hasher()
	hash, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	users := []*model.User{
		{ID: ulid.Make().String(), Name: "John Doe", Email: "john@example.com", PasswordHash: hash, CreatedAt: time.Now().UTC()},
		{ID: ulid.Make().String(), Name: "Jane Smith", Email: "jane@example.com", PasswordHash: hash, CreatedAt: time.Now().UTC()},
		{ID: ulid.Make().String(), Name: "Sam Lee", Email: "sam@example.com", PasswordHash: hash, CreatedAt: time.Now().UTC()},
	}

	for i, user := range users {
		if err := repo.CreateUser(ctx, user); err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				existing, lookupErr := repo.GetUserByEmail(ctx, user.Email)
				if lookupErr != nil {
					return fmt.Errorf("lookup %s: %w", user.Email, lookupErr)
				}
				users[i] = existing
				continue
			}
			return fmt.Errorf("create user %s: %w", user.Email, err)
		}
	}

	john, jane, sam := users[0], users[1], users[2]

	events := []*model.Event{
		{
			ID:          ulid.Make().String(),
			Title:       "Neighborhood Cleanup",
			Description: "Join us to clean up the riverside trail. Gloves and bags provided.",
			Date:        "2026-09-12",
			Time:        "09:00",
			Location:    "Riverside Park",
			Category:    model.CategoryCommunity,
			Organizer:   john.Name,
			CreatorID:   john.ID,
		},
		{
			ID:          ulid.Make().String(),
			Title:       "Farmers Market",
			Description: "Weekly market with local produce, baked goods and crafts.",
			Date:        "2026-09-13",
			Time:        "10:00",
			Location:    "Town Square",
			Category:    model.CategoryMarket,
			Organizer:   "Town Market Association",
			CreatorID:   jane.ID,
		},
		{
			ID:          ulid.Make().String(),
			Title:       "Yoga in the Park",
			Description: "Outdoor yoga session for all levels. Bring your own mat.",
			Date:        "2026-09-14",
			Time:        "07:30",
			Location:    "Riverside Park",
			Category:    model.CategoryFitness,
			Organizer:   sam.Name,
			CreatorID:   sam.ID,
		},
		{
			ID:          ulid.Make().String(),
			Title:       "Art Workshop",
			Description: "Watercolor basics with a local artist. Materials included.",
			Date:        "2026-09-20",
			Time:        "14:00",
			Location:    "Community Center",
			Category:    model.CategoryArt,
			Organizer:   jane.Name,
			CreatorID:   jane.ID,
		},
	}

	for _, event := range events {
		if err := repo.CreateEvent(ctx, event); err != nil {
			return fmt.Errorf("create event %s: %w", event.Title, err)
		}
	}

	comments := []*model.Comment{
		{
			ID:        ulid.Make().String(),
			EventID:   events[0].ID,
			UserID:    jane.ID,
			UserName:  jane.Name,
			Text:      "Count me in, see you Saturday!",
			CreatedAt: time.Now().UTC(),
		},
		{
			ID:        ulid.Make().String(),
			EventID:   events[2].ID,
			UserID:    john.ID,
			UserName:  john.Name,
			Text:      "Is the session still on if it rains?",
			CreatedAt: time.Now().UTC(),
		},
	}

	for _, comment := range comments {
		if err := repo.CreateComment(ctx, comment); err != nil {
			return fmt.Errorf("create comment: %w", err)
		}
	}

	return nil
}
