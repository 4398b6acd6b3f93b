package services

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/Smee1/Mindful-Messaging-Chatbot/pkg/errors"
)

// AuthService validates bearer tokens carrying the acting user. Token
// issuance happens out of band; IssueAccessToken exists for tooling and
// tests.
type AuthService struct {
	jwtSecret []byte
	expiry    time.Duration
}

type AccessClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewAuthService(secret string, expiry time.Duration) *AuthService {
	return &AuthService{jwtSecret: []byte(secret), expiry: expiry}
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, apperrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, apperrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return AccessClaims{}, apperrors.ErrUnauthorized
	}
	return *claims, nil
}

func (s *AuthService) IssueAccessToken(userID string) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
