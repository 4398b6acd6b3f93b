package domain

import (
	"time"

	"github.com/google/uuid"
)

// Chat represents the chats table. Participants are ordered by their
// position column in chat_participants.
type Chat struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"` // Optional, for group chats
	IsGroup       bool          `json:"is_group"`
	Participants  []uuid.UUID   `json:"participants"`
	LastMessageID uuid.NullUUID `json:"last_message_id"`
	CreatedAt     time.Time     `json:"created_at"`
}

// HasParticipant reports whether userID is a member of the chat.
func (c Chat) HasParticipant(userID uuid.UUID) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
