package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

func TestMessageRepositoryCreateWithAttachments(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	msg := domain.Message{
		ID:        uuid.New(),
		ChatID:    uuid.New(),
		SenderID:  uuid.New(),
		Content:   "hello",
		CreatedAt: time.Now().UTC(),
	}
	msg.Attachments = []domain.Attachment{
		{ID: uuid.New(), MessageID: msg.ID, URL: "http://files/a.png", Path: "/up/a.png"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO messages").
		WithArgs(msg.ID, msg.ChatID, msg.SenderID, msg.Content, msg.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO attachments").
		WithArgs(msg.Attachments[0].ID, msg.ID, msg.Attachments[0].URL, msg.Attachments[0].Path).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewMessageRepository(db)
	require.NoError(t, repo.Create(context.Background(), &msg))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT id, chat_id, sender_id, content, created_at").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "chat_id", "sender_id", "content", "created_at"}))

	repo := NewMessageRepository(db)
	_, err = repo.GetByID(context.Background(), id)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryDeleteMissingRow(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("DELETE FROM messages").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMessageRepository(db)
	assert.ErrorIs(t, repo.Delete(context.Background(), id), apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryFindMessagesWithSender(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	chatID := uuid.New()
	senderID := uuid.New()
	msgID := uuid.New()
	attID := uuid.New()
	createdAt := time.Now().UTC()

	mock.ExpectQuery("SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at").
		WithArgs(chatID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "chat_id", "sender_id", "content", "created_at",
			"username", "avatar_url", "email",
		}).AddRow(msgID.String(), chatID.String(), senderID.String(), "hello", createdAt, "alice", "http://a.png", "alice@example.com"))

	mock.ExpectQuery("SELECT id, message_id, url, path").
		WithArgs(msgID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "message_id", "url", "path"}).
			AddRow(attID.String(), msgID.String(), "http://files/x.png", "/up/x.png"))

	repo := NewMessageRepository(db)
	messages, err := repo.FindMessagesWithSender(context.Background(), MessageFilter{
		ChatID: uuid.NullUUID{UUID: chatID, Valid: true},
	}, SortNewestFirst)
	require.NoError(t, err)

	require.Len(t, messages, 1)
	assert.Equal(t, "hello", messages[0].Content)
	assert.Equal(t, "alice", messages[0].Sender.Username)
	assert.Equal(t, "alice@example.com", messages[0].Sender.Email)
	require.Len(t, messages[0].Attachments, 1)
	assert.Equal(t, "http://files/x.png", messages[0].Attachments[0].URL)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMessageRepositoryGetLatestMessageEmptyChat(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	chatID := uuid.New()
	mock.ExpectQuery("ORDER BY created_at DESC").
		WithArgs(chatID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "chat_id", "sender_id", "content", "created_at"}))

	repo := NewMessageRepository(db)
	_, err = repo.GetLatestMessage(context.Background(), chatID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
