package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)
	userID := uuid.New().String()

	token, err := svc.IssueAccessToken(userID)
	require.NoError(t, err)

	claims, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseAccessTokenEmpty(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)

	_, err := svc.ParseAccessToken("")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseAccessTokenGarbage(t *testing.T) {
	svc := NewAuthService("secret", time.Hour)

	_, err := svc.ParseAccessToken("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseAccessTokenWrongSecret(t *testing.T) {
	issuer := NewAuthService("secret-a", time.Hour)
	verifier := NewAuthService("secret-b", time.Hour)

	token, err := issuer.IssueAccessToken(uuid.New().String())
	require.NoError(t, err)

	_, err = verifier.ParseAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestParseAccessTokenExpired(t *testing.T) {
	svc := NewAuthService("secret", -time.Minute)

	token, err := svc.IssueAccessToken(uuid.New().String())
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}
