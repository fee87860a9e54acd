package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the user,
	// embedding the role and learning preferences so handlers can default
	// AI requests without a user lookup.
	GenerateToken(ctx context.Context, user *domain.User) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken, ErrTokenNotYetValid, or
	// ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the validated identity extracted from a JWT.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid"`

	// Role is the user's role ("student" or "teacher").
	Role string `json:"role"`

	// PreferredDifficulty is the user's default content difficulty.
	PreferredDifficulty domain.Difficulty `json:"difficulty,omitempty"`

	// PreferredLanguage is the user's default content language.
	PreferredLanguage string `json:"language,omitempty"`

	// Standard registered JWT claims
	Subject   string    `json:"sub,omitempty"`
	IssuedAt  time.Time `json:"iat,omitempty"`
	ExpiresAt time.Time `json:"exp,omitempty"`
	ID        string    `json:"jti,omitempty"`
}
