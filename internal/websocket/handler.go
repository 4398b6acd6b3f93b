package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/events"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/services"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/transport/httpdto"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type Handler struct {
	auth *services.AuthService
	hub  *Hub
}

func NewHandler(auth *services.AuthService, hub *Hub) *Handler {
	return &Handler{auth: auth, hub: hub}
}

// Connect upgrades the request and subscribes the connection to the
// authenticated user's event channel.
func (h *Handler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	claims, err := h.auth.ParseAccessToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := NewClient(conn, claims.UserID, events.UserChannel(claims.UserID))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	h.hub.Register(client)
	go client.WriteLoop(ctx)

	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	}

	h.hub.Unregister(client)
}
