package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
)

// RecordStore persists the side effects of generation and grading: chat
// history, quiz results, and per-subject progress. All writes are
// fire-and-forget from the orchestrator's perspective; failures are logged
// by the caller, never propagated into domain results.
type RecordStore interface {
	// SaveChatMessage persists one generated explanation exchange.
	SaveChatMessage(ctx context.Context, msg *domain.ChatMessage) error

	// SaveQuizResult persists one completed quiz attempt.
	SaveQuizResult(ctx context.Context, result *domain.QuizResult) error

	// UpdateProgress applies an incremental progress update for the user
	// and subject, creating the record when absent. XP accumulates;
	// level and streak are replaced; badges merge without duplicates.
	UpdateProgress(ctx context.Context, userID uuid.UUID, subject string, delta domain.ProgressDelta) error

	// GetProgress retrieves the progress record for the user and subject.
	// Returns ErrProgressNotFound when none exists.
	GetProgress(ctx context.Context, userID uuid.UUID, subject string) (*domain.Progress, error)
}
