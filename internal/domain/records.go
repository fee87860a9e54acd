package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChatMessage records one generated explanation delivered to a user.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Message   string    `json:"message"`
	Response  string    `json:"response"`
	SessionID string    `json:"session_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessage creates a ChatMessage with a generated ID and the current
// timestamp.
func NewChatMessage(userID uuid.UUID, message, response, sessionID string) *ChatMessage {
	return &ChatMessage{
		ID:        uuid.New(),
		UserID:    userID,
		Message:   message,
		Response:  response,
		SessionID: sessionID,
		CreatedAt: time.Now().UTC(),
	}
}

// Validate checks the chat message invariants.
func (m *ChatMessage) Validate() error {
	if m.ID == uuid.Nil {
		return fmt.Errorf("%w: chat message ID cannot be empty", ErrValidation)
	}
	if m.UserID == uuid.Nil {
		return fmt.Errorf("%w: chat message user ID cannot be empty", ErrValidation)
	}
	if m.Response == "" {
		return fmt.Errorf("%w: chat message response cannot be empty", ErrValidation)
	}
	return nil
}

// QuizResult records a completed quiz attempt.
type QuizResult struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Topic            string    `json:"topic"`
	Score            int       `json:"score"`
	TotalQuestions   int       `json:"total_questions"`
	TimeTakenSeconds int       `json:"time_taken_seconds"`
	CompletedAt      time.Time `json:"completed_at"`
}

// NewQuizResult creates a QuizResult with a generated ID and the current
// timestamp.
func NewQuizResult(userID uuid.UUID, topic string, score, totalQuestions, timeTakenSeconds int) *QuizResult {
	return &QuizResult{
		ID:               uuid.New(),
		UserID:           userID,
		Topic:            topic,
		Score:            score,
		TotalQuestions:   totalQuestions,
		TimeTakenSeconds: timeTakenSeconds,
		CompletedAt:      time.Now().UTC(),
	}
}

// Validate checks the quiz result invariants.
func (r *QuizResult) Validate() error {
	if r.ID == uuid.Nil {
		return fmt.Errorf("%w: quiz result ID cannot be empty", ErrValidation)
	}
	if r.UserID == uuid.Nil {
		return fmt.Errorf("%w: quiz result user ID cannot be empty", ErrValidation)
	}
	if r.Topic == "" {
		return fmt.Errorf("%w: quiz result topic cannot be empty", ErrValidation)
	}
	if r.TotalQuestions <= 0 {
		return fmt.Errorf("%w: quiz result must cover at least one question", ErrValidation)
	}
	return nil
}

// Progress is a user's accumulated learning progress within one subject.
type Progress struct {
	UserID    uuid.UUID `json:"user_id"`
	Subject   string    `json:"subject"`
	XP        int       `json:"xp"`
	Streak    int       `json:"streak"`
	Level     string    `json:"level"`
	Badges    []string  `json:"badges,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressDelta describes an incremental progress update after a graded
// quiz. XPDelta is added to the stored total; Level and Streak replace the
// stored values; Badges are merged without duplicates.
type ProgressDelta struct {
	XPDelta int
	Streak  int
	Level   string
	Badges  []string
}

// MergeBadges returns existing with any badges from earned appended,
// preserving order and skipping duplicates.
func MergeBadges(existing, earned []string) []string {
	seen := make(map[string]struct{}, len(existing))
	merged := make([]string, 0, len(existing)+len(earned))
	for _, b := range existing {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		merged = append(merged, b)
	}
	for _, b := range earned {
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		merged = append(merged, b)
	}
	return merged
}
