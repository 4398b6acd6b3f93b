package middleware

import (
	"github.com/Smee1/Mindful-Messaging-Chatbot/internal/transport/httpdto"
	"github.com/Smee1/Mindful-Messaging-Chatbot/pkg/logger"
	"github.com/gin-gonic/gin"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

func ErrorHandler(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		if l != nil {
			l.ErrorfCtx(c.Request.Context(), "request error: %s", err.Error())
		}
		c.JSON(apperrors.HTTPStatus(err), httpdto.NewErrorFrom(err))
	}
}
