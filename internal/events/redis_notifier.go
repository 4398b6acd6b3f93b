package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisNotifier publishes user events to per-user Redis pub/sub channels.
type RedisNotifier struct {
	client *redis.Client
}

func NewRedisNotifier(client *redis.Client) *RedisNotifier {
	return &RedisNotifier{client: client}
}

func (n *RedisNotifier) Emit(ctx context.Context, userID string, event string, payload interface{}) error {
	data, err := marshalEnvelope(event, payload)
	if err != nil {
		return err
	}
	return n.client.Publish(ctx, UserChannel(userID), data).Err()
}

// marshalEnvelope wraps payload in the wire envelope, stamping emission time.
func marshalEnvelope(event string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	data, err := json.Marshal(Envelope{
		Event:     event,
		Payload:   raw,
		EmittedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal envelope: %w", err)
	}
	return data, nil
}
