package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/google/uuid"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

type messageRepository struct {
	db DBTX
}

func NewMessageRepository(db DBTX) MessageRepository {
	return &messageRepository{db: db}
}

// Create inserts the message and its attachment rows atomically.
func (r *messageRepository) Create(ctx context.Context, m *domain.Message) error {
	return WithTx(ctx, r.db, func(tx DBTX) error {
		_, err := tx.ExecContext(ctx, `
        INSERT INTO messages (id, chat_id, sender_id, content, created_at)
        VALUES ($1,$2,$3,$4,$5)
    `, m.ID, m.ChatID, m.SenderID, m.Content, m.CreatedAt)
		if err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrInvalidInput
			}
			return err
		}
		for _, a := range m.Attachments {
			if _, err := tx.ExecContext(ctx, `
        INSERT INTO attachments (id, message_id, url, path)
        VALUES ($1,$2,$3,$4)
    `, a.ID, a.MessageID, a.URL, a.Path); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *messageRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Message, error) {
	var m domain.Message
	err := r.db.QueryRowContext(ctx, `
        SELECT id, chat_id, sender_id, content, created_at
        FROM messages
        WHERE id = $1
    `, id).Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, apperrors.ErrNotFound
		}
		return domain.Message{}, err
	}

	attachments, err := r.loadAttachments(ctx, []uuid.UUID{m.ID})
	if err != nil {
		return domain.Message{}, err
	}
	m.Attachments = attachments[m.ID]
	return m, nil
}

func (r *messageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = $1`, id)
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

func (r *messageRepository) GetLatestMessage(ctx context.Context, chatID uuid.UUID) (domain.Message, error) {
	var m domain.Message
	err := r.db.QueryRowContext(ctx, `
        SELECT id, chat_id, sender_id, content, created_at
        FROM messages
        WHERE chat_id = $1
        ORDER BY created_at DESC
        LIMIT 1
    `, chatID).Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Message{}, apperrors.ErrNotFound
		}
		return domain.Message{}, err
	}
	return m, nil
}

func (r *messageRepository) FindMessagesWithSender(ctx context.Context, filter MessageFilter, sort Sort) ([]domain.MessageWithSender, error) {
	query := `
        SELECT m.id, m.chat_id, m.sender_id, m.content, m.created_at,
               u.username, u.avatar_url, u.email
        FROM messages m
        JOIN users u ON u.id = m.sender_id
    `
	var (
		conditions []string
		args       []interface{}
	)
	if filter.ChatID.Valid {
		args = append(args, filter.ChatID.UUID)
		conditions = append(conditions, fmt.Sprintf("m.chat_id = $%d", len(args)))
	}
	if filter.MessageID.Valid {
		args = append(args, filter.MessageID.UUID)
		conditions = append(conditions, fmt.Sprintf("m.id = $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	if sort == "" {
		sort = SortNewestFirst
	}
	query += " ORDER BY m." + string(sort)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		messages []domain.MessageWithSender
		ids      []uuid.UUID
	)
	for rows.Next() {
		var m domain.MessageWithSender
		if err := rows.Scan(
			&m.ID,
			&m.ChatID,
			&m.SenderID,
			&m.Content,
			&m.CreatedAt,
			&m.Sender.Username,
			&m.Sender.AvatarURL,
			&m.Sender.Email,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
		ids = append(ids, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return messages, nil
	}

	attachments, err := r.loadAttachments(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range messages {
		messages[i].Attachments = attachments[messages[i].ID]
	}
	return messages, nil
}

func (r *messageRepository) loadAttachments(ctx context.Context, messageIDs []uuid.UUID) (map[uuid.UUID][]domain.Attachment, error) {
	if len(messageIDs) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(messageIDs))
	for i, id := range messageIDs {
		args[i] = id
	}
	query := fmt.Sprintf(`
        SELECT id, message_id, url, path
        FROM attachments
        WHERE message_id IN (%s)
        ORDER BY id
    `, buildPlaceholders(1, len(messageIDs)))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[uuid.UUID][]domain.Attachment)
	for rows.Next() {
		var a domain.Attachment
		if err := rows.Scan(&a.ID, &a.MessageID, &a.URL, &a.Path); err != nil {
			return nil, err
		}
		result[a.MessageID] = append(result[a.MessageID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
