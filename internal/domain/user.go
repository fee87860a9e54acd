package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Minimum password length accepted at registration.
const MinPasswordLength = 12

// User roles.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// User represents a registered learner or teacher. Password holds the
// plaintext only between request decoding and hashing; it is never stored
// or serialized.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Password       string    `json:"-"`
	HashedPassword string    `json:"-"`
	Role           string    `json:"role"`

	// Preferences applied as defaults when the user does not specify
	// difficulty or language explicitly.
	PreferredDifficulty Difficulty `json:"preferred_difficulty"`
	PreferredLanguage   string     `json:"preferred_language"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewUser creates a User with a generated ID, default preferences, and the
// current timestamps. Returns an error if validation fails.
func NewUser(email, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:                  uuid.New(),
		Email:               email,
		Password:            password,
		Role:                RoleStudent,
		PreferredDifficulty: DifficultyIntermediate,
		PreferredLanguage:   "en",
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Validate checks the user invariants.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return fmt.Errorf("%w: user ID cannot be empty", ErrValidation)
	}
	if !strings.Contains(u.Email, "@") || strings.HasPrefix(u.Email, "@") || strings.HasSuffix(u.Email, "@") {
		return ErrInvalidEmail
	}
	if u.Password != "" && len(u.Password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters", ErrInvalidPassword, MinPasswordLength)
	}
	if u.Password == "" && u.HashedPassword == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidPassword)
	}
	if u.PreferredDifficulty != "" && !u.PreferredDifficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, u.PreferredDifficulty)
	}
	return nil
}
