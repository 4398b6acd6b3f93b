package websocket

import (
	"context"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/events"
)

// RedisBridge forwards pub/sub payloads from per-user Redis channels to the
// hub, so events emitted by any API instance reach locally connected clients.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.UserChannel("*")}, func(channel string, payload []byte) {
		b.hub.Broadcast(channel, payload)
	})
}
