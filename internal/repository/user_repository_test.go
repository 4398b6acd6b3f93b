package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

func TestUserRepositoryGetUserByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	createdAt := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "display_name", "avatar_url",
			"is_online", "last_seen_at", "created_at", "updated_at",
		}).AddRow(userID.String(), "alice", "alice@example.com", "Alice", "http://a/alice.png",
			true, nil, createdAt, createdAt))

	repo := NewUserRepository(db)
	user, err := repo.GetUserByID(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, userID, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.LastSeenAt.Valid)
	assert.Equal(t, "alice", user.Summary().Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryGetUserByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	userID := uuid.New()
	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "username", "email", "display_name", "avatar_url",
			"is_online", "last_seen_at", "created_at", "updated_at",
		}))

	repo := NewUserRepository(db)
	_, err = repo.GetUserByID(context.Background(), userID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
