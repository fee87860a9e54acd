package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
)

// UserStore defines persistence for user accounts.
type UserStore interface {
	// Create saves a new user. The user's plaintext Password field must be
	// hashed by the caller before Create is invoked; Create persists
	// HashedPassword only. Returns ErrEmailExists if the email is taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByEmail retrieves a user by email address.
	// Returns ErrUserNotFound when no user matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByID retrieves a user by ID.
	// Returns ErrUserNotFound when no user matches.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
