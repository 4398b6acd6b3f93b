package repository

import (
	"context"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/google/uuid"
)

// Sort orders for message queries.
type Sort string

const (
	SortNewestFirst Sort = "created_at DESC"
	SortOldestFirst Sort = "created_at ASC"
)

// MessageFilter narrows message queries. Zero-valued fields are ignored.
type MessageFilter struct {
	ChatID    uuid.NullUUID
	MessageID uuid.NullUUID
}

type ChatRepository interface {
	Create(ctx context.Context, c *domain.Chat) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Chat, error)
	// GetByIDForParticipant resolves a chat by id and membership of userID
	// in a single combined lookup.
	GetByIDForParticipant(ctx context.Context, id, userID uuid.UUID) (domain.Chat, error)
	UpdateLastMessage(ctx context.Context, chatID uuid.UUID, messageID uuid.NullUUID) error
}

type MessageRepository interface {
	Create(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (domain.Message, error)
	Delete(ctx context.Context, id uuid.UUID) error
	GetLatestMessage(ctx context.Context, chatID uuid.UUID) (domain.Message, error)
	// FindMessagesWithSender joins each matching message with its sender
	// summary, keeping the storage technology behind one explicit method.
	FindMessagesWithSender(ctx context.Context, filter MessageFilter, sort Sort) ([]domain.MessageWithSender, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}
