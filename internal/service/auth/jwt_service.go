// Package auth issues and validates the HS256 access tokens that identify the
// caller of every task operation.
package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TokenTypeAccess is the only token type this service issues or accepts.
const TokenTypeAccess = "access"

// JWTService defines operations for managing JWT access tokens.
type JWTService interface {
	// GenerateToken creates a signed access token for user.
	GenerateToken(ctx context.Context, user domain.User) (string, error)

	// ValidateToken validates the token and extracts its claims.
	// Returns ErrInvalidToken, ErrExpiredToken, ErrTokenNotYetValid or ErrWrongTokenType.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated content of an access token.
type Claims struct {
	UserID    uuid.UUID `json:"uid,omitempty"`
	Username  string    `json:"name,omitempty"`
	TokenType string    `json:"type,omitempty"`

	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}

// User returns the caller identity carried by the claims.
func (c *Claims) User() domain.User {
	return domain.User{ID: c.UserID, Username: c.Username}
}
