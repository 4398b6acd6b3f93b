package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event names pushed to chat participants.
const (
	EventMessageReceived = "message-received"
	EventMessageDeleted  = "message-deleted"
)

// UserChannel is the Redis channel carrying events for one user.
func UserChannel(userID string) string {
	return "channel:user:" + userID
}

// Envelope wraps an event on the wire.
type Envelope struct {
	Event     string          `json:"event"`
	Payload   json.RawMessage `json:"payload"`
	EmittedAt time.Time       `json:"emitted_at"`
}

// Notifier pushes an event to a single user. Implementations are
// fire-and-forget from the caller's point of view; delivery is best effort.
type Notifier interface {
	Emit(ctx context.Context, userID string, event string, payload interface{}) error
}

// Subscriber consumes raw event payloads from one or more channels.
type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error
}
