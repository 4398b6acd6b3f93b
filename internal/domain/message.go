package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message represents the messages table.
type Message struct {
	ID          uuid.UUID    `json:"id"`
	ChatID      uuid.UUID    `json:"chat_id"`
	SenderID    uuid.UUID    `json:"sender_id"`
	Content     string       `json:"content"`
	Attachments []Attachment `json:"attachments"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Attachment represents the attachments table. Path is the local storage
// location used for deletion; URL is the publicly resolvable address.
type Attachment struct {
	ID        uuid.UUID `json:"id"`
	MessageID uuid.UUID `json:"message_id"`
	URL       string    `json:"url"`
	Path      string    `json:"-"`
}

// SenderSummary is the subset of sender fields exposed on enriched messages.
type SenderSummary struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
	Email     string `json:"email"`
}

// MessageWithSender is a message enriched with its sender summary.
type MessageWithSender struct {
	Message
	Sender SenderSummary `json:"sender"`
}
