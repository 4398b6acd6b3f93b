package httpdto

import "github.com/Smee1/Mindful-Messaging-Chatbot/internal/domain"

type MessageListResponse struct {
	Messages []domain.MessageWithSender `json:"messages"`
}
