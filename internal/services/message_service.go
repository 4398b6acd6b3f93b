package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/events"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/repository"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/storage"
	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/logger"
	"github.com/google/uuid"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

// ContentGate decides the effective content to store for a candidate text.
type ContentGate interface {
	Evaluate(ctx context.Context, text string) (string, error)
}

type MessageService struct {
	chatRepo    repository.ChatRepository
	messageRepo repository.MessageRepository
	gate        ContentGate
	storage     storage.Storage
	notifier    events.Notifier
	logger      *logger.Logger
}

func NewMessageService(
	chatRepo repository.ChatRepository,
	messageRepo repository.MessageRepository,
	gate ContentGate,
	store storage.Storage,
	notifier events.Notifier,
	l *logger.Logger,
) *MessageService {
	return &MessageService{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		gate:        gate,
		storage:     store,
		notifier:    notifier,
		logger:      l,
	}
}

// GetAllMessages returns every message of the chat enriched with its sender
// summary, newest first.
func (s *MessageService) GetAllMessages(ctx context.Context, chatID, userID uuid.UUID) ([]domain.MessageWithSender, error) {
	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: chat %s", apperrors.ErrNotFound, chatID)
		}
		return nil, err
	}
	if !chat.HasParticipant(userID) {
		return nil, fmt.Errorf("%w: user is not a chat participant", apperrors.ErrInvalidInput)
	}

	messages, err := s.messageRepo.FindMessagesWithSender(ctx, repository.MessageFilter{
		ChatID: uuid.NullUUID{UUID: chatID, Valid: true},
	}, repository.SortNewestFirst)
	if err != nil {
		return nil, err
	}
	if messages == nil {
		// An empty chat still serializes as a JSON array.
		messages = []domain.MessageWithSender{}
	}
	return messages, nil
}

// SendMessage moderates content, persists the message with its attachments,
// bumps the chat's last-message pointer and fans out a message-received
// event to every other participant.
func (s *MessageService) SendMessage(ctx context.Context, chatID, senderID uuid.UUID, content string, uploads []storage.Upload) (domain.MessageWithSender, error) {
	if content == "" && len(uploads) == 0 {
		return domain.MessageWithSender{}, fmt.Errorf("%w: message content or attachments required", apperrors.ErrInvalidInput)
	}

	// The classifier is called unconditionally, empty content included; its
	// verdict for an empty string is backend-dependent and must not be
	// assumed safe.
	effective, err := s.gate.Evaluate(ctx, content)
	if err != nil {
		return domain.MessageWithSender{}, err
	}

	chat, err := s.chatRepo.GetByID(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.MessageWithSender{}, fmt.Errorf("%w: chat %s", apperrors.ErrNotFound, chatID)
		}
		return domain.MessageWithSender{}, err
	}

	msg := domain.Message{
		ID:        uuid.New(),
		ChatID:    chatID,
		SenderID:  senderID,
		Content:   effective,
		CreatedAt: time.Now().UTC(),
	}
	for _, upload := range uploads {
		stored, err := s.storage.Save(ctx, upload)
		if err != nil {
			return domain.MessageWithSender{}, fmt.Errorf("store attachment: %w", err)
		}
		msg.Attachments = append(msg.Attachments, domain.Attachment{
			ID:        uuid.New(),
			MessageID: msg.ID,
			URL:       stored.URL,
			Path:      stored.Path,
		})
	}

	if err := s.messageRepo.Create(ctx, &msg); err != nil {
		return domain.MessageWithSender{}, err
	}
	if err := s.chatRepo.UpdateLastMessage(ctx, chatID, uuid.NullUUID{UUID: msg.ID, Valid: true}); err != nil {
		return domain.MessageWithSender{}, err
	}

	enriched, err := s.messageRepo.FindMessagesWithSender(ctx, repository.MessageFilter{
		MessageID: uuid.NullUUID{UUID: msg.ID, Valid: true},
	}, repository.SortNewestFirst)
	if err != nil {
		return domain.MessageWithSender{}, err
	}
	if len(enriched) == 0 {
		return domain.MessageWithSender{}, fmt.Errorf("%w: created message %s missing on re-read", apperrors.ErrInternal, msg.ID)
	}

	s.fanOut(ctx, chat, senderID, events.EventMessageReceived, enriched[0])
	return enriched[0], nil
}

// DeleteMessage removes a message the acting user authored, recomputes the
// chat's last-message pointer when needed and fans out a message-deleted
// event.
func (s *MessageService) DeleteMessage(ctx context.Context, chatID, messageID, userID uuid.UUID) (domain.Message, error) {
	chat, err := s.chatRepo.GetByIDForParticipant(ctx, chatID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Message{}, fmt.Errorf("%w: chat %s", apperrors.ErrNotFound, chatID)
		}
		return domain.Message{}, err
	}

	msg, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return domain.Message{}, fmt.Errorf("%w: message %s", apperrors.ErrNotFound, messageID)
		}
		return domain.Message{}, err
	}
	if msg.SenderID != userID {
		return domain.Message{}, fmt.Errorf("%w: only the sender can delete a message", apperrors.ErrForbidden)
	}

	// Attachment file removal is best effort; a failed file never blocks
	// deletion of the message record.
	for _, a := range msg.Attachments {
		if err := s.storage.Remove(ctx, a.Path); err != nil {
			s.logger.WarnfCtx(ctx, "failed to remove attachment file %s: %v", a.Path, err)
		}
	}

	if err := s.messageRepo.Delete(ctx, messageID); err != nil {
		return domain.Message{}, err
	}

	if chat.LastMessageID.Valid && chat.LastMessageID.UUID == messageID {
		latest, err := s.messageRepo.GetLatestMessage(ctx, chat.ID)
		pointer := uuid.NullUUID{}
		switch {
		case err == nil:
			pointer = uuid.NullUUID{UUID: latest.ID, Valid: true}
		case !errors.Is(err, apperrors.ErrNotFound):
			return domain.Message{}, err
		}
		if err := s.chatRepo.UpdateLastMessage(ctx, chat.ID, pointer); err != nil {
			return domain.Message{}, err
		}
	}

	s.fanOut(ctx, chat, userID, events.EventMessageDeleted, msg)
	return msg, nil
}

// fanOut emits an event to every chat participant except the actor.
// Delivery is fire-and-forget; failures are logged and ignored.
func (s *MessageService) fanOut(ctx context.Context, chat domain.Chat, actor uuid.UUID, event string, payload interface{}) {
	if s.notifier == nil {
		return
	}
	for _, participant := range chat.Participants {
		if participant == actor {
			continue
		}
		if err := s.notifier.Emit(ctx, participant.String(), event, payload); err != nil {
			s.logger.WarnfCtx(ctx, "failed to emit %s to user %s: %v", event, participant, err)
		}
	}
}
