package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/google/uuid"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

type userRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO users (id, username, email, display_name, avatar_url, is_online, last_seen_at, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    `,
		u.ID,
		u.Username,
		u.Email,
		u.DisplayName,
		u.AvatarURL,
		u.IsOnline,
		u.LastSeenAt,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil && isUniqueViolation(err) {
		return apperrors.ErrInvalidInput
	}
	return err
}

func (r *userRepository) GetUserByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var u domain.User
	err := r.db.QueryRowContext(ctx, `
        SELECT id, username, email, display_name, avatar_url, is_online, last_seen_at, created_at, updated_at
        FROM users
        WHERE id = $1
    `, id).Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.DisplayName,
		&u.AvatarURL,
		&u.IsOnline,
		&u.LastSeenAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, apperrors.ErrNotFound
		}
		return domain.User{}, err
	}
	return u, nil
}
