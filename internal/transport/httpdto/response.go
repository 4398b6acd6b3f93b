package httpdto

import (
	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

// Response is the envelope every JSON endpoint returns. Code carries the
// machine-readable error code from the sentinel taxonomy.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
}

func NewSuccessResponse[T any](data T) Response[T] {
	return Response[T]{
		Success: true,
		Data:    data,
	}
}

func NewErrorResponse(message string, code string) Response[any] {
	return Response[any]{
		Success: false,
		Error:   message,
		Code:    code,
	}
}

// NewErrorFrom maps a service error to its envelope, deriving the code
// from the error chain.
func NewErrorFrom(err error) Response[any] {
	return NewErrorResponse(err.Error(), apperrors.Code(err))
}
