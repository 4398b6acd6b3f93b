package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/repository"
	"github.com/google/uuid"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

// seed inserts two demo users and a direct chat between them, so a fresh
// environment has something to send messages to. Re-running is harmless.
func seed(ctx context.Context, db *sql.DB) error {
	users := repository.NewUserRepository(db)
	chats := repository.NewChatRepository(db)

	now := time.Now().UTC()
	alice := domain.User{
		ID:          uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Username:    "alice",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	bob := domain.User{
		ID:          uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Username:    "bob",
		Email:       "bob@example.com",
		DisplayName: "Bob",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	for _, u := range []domain.User{alice, bob} {
		if err := users.Create(ctx, &u); err != nil {
			if errors.Is(err, apperrors.ErrInvalidInput) {
				log.Printf("user %s already exists, skipping", u.Username)
				continue
			}
			return err
		}
	}

	chat := domain.Chat{
		ID:           uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		Participants: []uuid.UUID{alice.ID, bob.ID},
		CreatedAt:    now,
	}
	if err := chats.Create(ctx, &chat); err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			log.Printf("demo chat already exists, skipping")
			return nil
		}
		return err
	}
	return nil
}
