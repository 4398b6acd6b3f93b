package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/services"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/storage"
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/transport/httpdto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

type MessageHandler struct {
	service *services.MessageService
}

func NewMessageHandler(service *services.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// List handles GET /chats/:chatId/messages.
func (h *MessageHandler) List(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	messages, err := h.service.GetAllMessages(c.Request.Context(), chatID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.MessageListResponse{Messages: messages}))
}

// Send handles POST /chats/:chatId/messages (multipart: content,
// attachments[]).
func (h *MessageHandler) Send(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	content := c.PostForm("content")

	uploads, closeFiles, err := collectUploads(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid attachments", "INVALID_REQUEST"))
		return
	}
	defer closeFiles()

	msg, err := h.service.SendMessage(c.Request.Context(), chatID, userID, content, uploads)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(msg))
}

// Delete handles DELETE /chats/:chatId/messages/:messageId.
func (h *MessageHandler) Delete(c *gin.Context) {
	chatID, err := uuid.Parse(c.Param("chatId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid chat id", "INVALID_REQUEST"))
		return
	}
	messageID, err := uuid.Parse(c.Param("messageId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid message id", "INVALID_REQUEST"))
		return
	}
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	msg, err := h.service.DeleteMessage(c.Request.Context(), chatID, messageID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(msg))
}

func collectUploads(c *gin.Context) ([]storage.Upload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		// No multipart body at all: content-only sends are valid.
		return nil, func() {}, nil
	}

	headers := form.File["attachments[]"]
	if len(headers) == 0 {
		headers = form.File["attachments"]
	}

	var (
		uploads []storage.Upload
		opened  []multipart.File
	)
	closeFiles := func() {
		for _, f := range opened {
			f.Close()
		}
	}
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			closeFiles()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		uploads = append(uploads, storage.Upload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Size:        header.Size,
			Content:     f,
		})
	}
	return uploads, closeFiles, nil
}

func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), httpdto.NewErrorFrom(err))
}
