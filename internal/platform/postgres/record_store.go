package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
	"github.com/tutorium/tutor-api/internal/platform/logger"
	"github.com/tutorium/tutor-api/internal/store"
)

// PostgresRecordStore implements the store.RecordStore interface using a
// PostgreSQL database as the storage backend.
type PostgresRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
	now    func() time.Time
}

// NewPostgresRecordStore creates a new PostgreSQL implementation of the
// RecordStore interface. If logger is nil, a default logger will be used.
func NewPostgresRecordStore(db store.DBTX, logger *slog.Logger) *PostgresRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "record_store")),
		now:    time.Now,
	}
}

// Ensure PostgresRecordStore implements store.RecordStore interface
var _ store.RecordStore = (*PostgresRecordStore)(nil)

// SaveChatMessage implements store.RecordStore.SaveChatMessage
// Returns store.ErrInvalidEntity when the referenced user does not exist.
func (s *PostgresRecordStore) SaveChatMessage(ctx context.Context, msg *domain.ChatMessage) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO chat_messages (id, user_id, message, response, session_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		msg.ID,
		msg.UserID,
		msg.Message,
		msg.Response,
		msg.SessionID,
		msg.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, msg.UserID)
		}
		log.Error("failed to save chat message",
			slog.String("error", err.Error()),
			slog.String("user_id", msg.UserID.String()))
		return store.NewStoreError("chat_message", "create", err)
	}

	log.Debug("chat message saved",
		slog.String("message_id", msg.ID.String()),
		slog.String("user_id", msg.UserID.String()))
	return nil
}

// SaveQuizResult implements store.RecordStore.SaveQuizResult
func (s *PostgresRecordStore) SaveQuizResult(ctx context.Context, result *domain.QuizResult) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := result.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO quiz_results (id, user_id, topic, score, total_questions, time_taken_seconds, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		result.ID,
		result.UserID,
		result.Topic,
		result.Score,
		result.TotalQuestions,
		result.TimeTakenSeconds,
		result.CompletedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, result.UserID)
		}
		log.Error("failed to save quiz result",
			slog.String("error", err.Error()),
			slog.String("user_id", result.UserID.String()))
		return store.NewStoreError("quiz_result", "create", err)
	}

	log.Debug("quiz result saved",
		slog.String("result_id", result.ID.String()),
		slog.String("user_id", result.UserID.String()))
	return nil
}

// UpdateProgress implements store.RecordStore.UpdateProgress
// XP accumulates, level and streak are replaced, and badges merge without
// duplicates. The read and write are not wrapped in a transaction:
// concurrent grades for the same (user, subject) resolve last-writer-wins,
// which is acceptable for best-effort progress tracking.
func (s *PostgresRecordStore) UpdateProgress(
	ctx context.Context,
	userID uuid.UUID,
	subject string,
	delta domain.ProgressDelta,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if userID == uuid.Nil {
		return fmt.Errorf("%w: user ID is required", store.ErrInvalidEntity)
	}
	if subject == "" {
		return fmt.Errorf("%w: subject is required", store.ErrInvalidEntity)
	}

	current, err := s.GetProgress(ctx, userID, subject)
	if err != nil && !errors.Is(err, store.ErrProgressNotFound) {
		return err
	}

	next := domain.Progress{
		UserID:    userID,
		Subject:   subject,
		XP:        delta.XPDelta,
		Streak:    delta.Streak,
		Level:     delta.Level,
		Badges:    delta.Badges,
		UpdatedAt: s.now().UTC(),
	}
	if current != nil {
		next.XP = current.XP + delta.XPDelta
		next.Badges = domain.MergeBadges(current.Badges, delta.Badges)
	}

	badges, err := json.Marshal(next.Badges)
	if err != nil {
		return store.NewStoreError("progress", "update", err)
	}

	query := `
		INSERT INTO user_progress (user_id, subject, xp, streak, level, badges, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, subject) DO UPDATE SET
			xp = EXCLUDED.xp,
			streak = EXCLUDED.streak,
			level = EXCLUDED.level,
			badges = EXCLUDED.badges,
			updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		next.UserID,
		next.Subject,
		next.XP,
		next.Streak,
		next.Level,
		badges,
		next.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: user %s not found", store.ErrInvalidEntity, userID)
		}
		log.Error("failed to update progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("subject", subject))
		return store.NewStoreError("progress", "update", err)
	}

	log.Debug("progress updated",
		slog.String("user_id", userID.String()),
		slog.String("subject", subject),
		slog.Int("xp", next.XP))
	return nil
}

// GetProgress implements store.RecordStore.GetProgress
// Returns store.ErrProgressNotFound when no record exists.
func (s *PostgresRecordStore) GetProgress(
	ctx context.Context,
	userID uuid.UUID,
	subject string,
) (*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, subject, xp, streak, level, badges, updated_at
		FROM user_progress
		WHERE user_id = $1 AND subject = $2
	`

	var progress domain.Progress
	var badges []byte
	err := s.db.QueryRowContext(ctx, query, userID, subject).Scan(
		&progress.UserID,
		&progress.Subject,
		&progress.XP,
		&progress.Streak,
		&progress.Level,
		&badges,
		&progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		log.Error("failed to get progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("subject", subject))
		return nil, store.NewStoreError("progress", "get", err)
	}

	if len(badges) > 0 {
		if err := json.Unmarshal(badges, &progress.Badges); err != nil {
			return nil, store.NewStoreError("progress", "get", err)
		}
	}
	return &progress, nil
}
