package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Client is one WebSocket connection bound to an authenticated user.
type Client struct {
	ID      string
	UserID  string
	Channel string          // channel this connection receives events from
	Conn    *websocket.Conn
	Send    chan []byte
	mu      sync.Mutex // protects conn writes
}

func NewClient(conn *websocket.Conn, userID, channel string) *Client {
	return &Client{
		ID:      uuid.New().String(),
		UserID:  userID,
		Channel: channel,
		Conn:    conn,
		Send:    make(chan []byte, 256),
	}
}

// WriteLoop drains the Send channel onto the connection, pinging on idle.
func (c *Client) WriteLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.close()
			return
		case msg, ok := <-c.Send:
			if !ok {
				c.close()
				return
			}
			c.mu.Lock()
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
			c.mu.Unlock()
		case <-ticker.C:
			c.mu.Lock()
			_ = c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			_ = c.Conn.WriteMessage(websocket.PingMessage, []byte("ping"))
			c.mu.Unlock()
		}
	}
}

func (c *Client) close() {
	c.mu.Lock()
	_ = c.Conn.Close()
	c.mu.Unlock()
}

// SendMessage queues a payload without blocking; full buffers drop.
func (c *Client) SendMessage(msg []byte) {
	select {
	case c.Send <- msg:
	default:
	}
}
