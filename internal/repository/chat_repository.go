package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/google/uuid"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

type chatRepository struct {
	db DBTX
}

func NewChatRepository(db DBTX) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) Create(ctx context.Context, c *domain.Chat) error {
	return WithTx(ctx, r.db, func(tx DBTX) error {
		_, err := tx.ExecContext(ctx, `
        INSERT INTO chats (id, name, is_group, last_message_id, created_at)
        VALUES ($1,$2,$3,$4,$5)
    `, c.ID, c.Name, c.IsGroup, c.LastMessageID, c.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrInvalidInput
			}
			return err
		}
		for i, userID := range c.Participants {
			if _, err := tx.ExecContext(ctx, `
        INSERT INTO chat_participants (chat_id, user_id, position)
        VALUES ($1,$2,$3)
    `, c.ID, userID, i); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *chatRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Chat, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, name, is_group, last_message_id, created_at
        FROM chats
        WHERE id = $1
    `, id)
	return r.scanChat(ctx, row)
}

func (r *chatRepository) GetByIDForParticipant(ctx context.Context, id, userID uuid.UUID) (domain.Chat, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT c.id, c.name, c.is_group, c.last_message_id, c.created_at
        FROM chats c
        JOIN chat_participants p ON p.chat_id = c.id
        WHERE c.id = $1 AND p.user_id = $2
    `, id, userID)
	return r.scanChat(ctx, row)
}

func (r *chatRepository) UpdateLastMessage(ctx context.Context, chatID uuid.UUID, messageID uuid.NullUUID) error {
	res, err := r.db.ExecContext(ctx, `
        UPDATE chats SET last_message_id = $1 WHERE id = $2
    `, messageID, chatID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *chatRepository) scanChat(ctx context.Context, row *sql.Row) (domain.Chat, error) {
	var c domain.Chat
	err := row.Scan(&c.ID, &c.Name, &c.IsGroup, &c.LastMessageID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Chat{}, apperrors.ErrNotFound
		}
		return domain.Chat{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
        SELECT user_id FROM chat_participants
        WHERE chat_id = $1
        ORDER BY position ASC
    `, c.ID)
	if err != nil {
		return domain.Chat{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var userID uuid.UUID
		if err := rows.Scan(&userID); err != nil {
			return domain.Chat{}, err
		}
		c.Participants = append(c.Participants, userID)
	}
	if err := rows.Err(); err != nil {
		return domain.Chat{}, err
	}
	return c, nil
}
