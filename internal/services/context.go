package services

import (
	"context"

	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/logger"
	"github.com/google/uuid"
)

type userIDKey struct{}

// WithUserContext stores the acting user on the request context. The string
// form also feeds the logger's per-request fields.
func WithUserContext(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey{}, userID)
	return context.WithValue(ctx, logger.UserIdKey, userID.String())
}

// UserIDFromContext extracts the acting user set by the auth middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}
