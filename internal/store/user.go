package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// UserStore persists the identities that own tasks.
// Users are provisioned by an operator; the HTTP API never writes them.
type UserStore interface {
	// Create saves a new user.
	// Returns ErrUsernameExists if the username is taken and
	// domain validation errors if the user is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
