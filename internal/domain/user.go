package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// User represents the users table.
type User struct {
	ID          uuid.UUID
	Username    string
	Email       string
	DisplayName string
	AvatarURL   string
	IsOnline    bool
	LastSeenAt  sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary trims a user down to the fields exposed alongside messages.
func (u User) Summary() SenderSummary {
	return SenderSummary{
		Username:  u.Username,
		AvatarURL: u.AvatarURL,
		Email:     u.Email,
	}
}
