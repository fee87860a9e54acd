package generation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
)

// Scoring constants for quiz grading.
const (
	xpPerCorrectAnswer = 10
	xpPassBonus        = 50
	passThreshold      = 80.0
	masteryThreshold   = 90.0
	remedialThreshold  = 70.0
)

// badgeQuizMaster is awarded for scoring at or above the mastery threshold.
const badgeQuizMaster = "quiz_master"

// GradeResult summarizes a graded quiz attempt.
type GradeResult struct {
	Score       int      `json:"score"`
	TotalPoints int      `json:"totalPoints"`
	Percentage  float64  `json:"percentage"`
	Feedback    []string `json:"feedback"`
	Suggestions []string `json:"suggestions"`
	XPGained    int      `json:"xpGained"`
}

// GradeQuiz grades the submitted answers against the quiz, keyed by
// question ID. Unanswered questions count as incorrect. Grading is purely
// local: it consumes no rate budget and never invokes the model. When
// userID is set and a record store is configured, the result and a progress
// update are persisted best-effort; persistence failures are logged and
// never affect the returned result.
func (o *Orchestrator) GradeQuiz(
	ctx context.Context,
	quiz *domain.Quiz,
	answers map[int]string,
	userID uuid.UUID,
) (*GradeResult, error) {
	if quiz == nil {
		return nil, fmt.Errorf("%w: quiz cannot be nil", ErrInvalidArgument)
	}
	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	var (
		score    int
		total    int
		correct  int
		feedback = make([]string, 0, len(quiz.Questions))
	)
	for i := range quiz.Questions {
		q := &quiz.Questions[i]
		total += q.Points

		if answer, ok := answers[q.ID]; ok && q.IsCorrect(answer) {
			score += q.Points
			correct++
			feedback = append(feedback, "✅ "+q.Explanation)
		} else {
			feedback = append(feedback, "❌ "+q.Explanation)
		}
	}

	percentage := float64(score) / float64(total) * 100

	xp := correct * xpPerCorrectAnswer
	if percentage >= passThreshold {
		xp += xpPassBonus
	}

	result := &GradeResult{
		Score:       score,
		TotalPoints: total,
		Percentage:  percentage,
		Feedback:    feedback,
		Suggestions: suggestionsFor(percentage),
		XPGained:    xp,
	}

	o.persistGrade(ctx, quiz, result, userID, correct, percentage)
	return result, nil
}

// suggestionsFor returns study suggestions for the score percentage.
func suggestionsFor(percentage float64) []string {
	switch {
	case percentage >= masteryThreshold:
		return []string{
			"Try the next difficulty level",
			"Teach the topic to someone else to cement your mastery",
			"Explore advanced applications of the topic",
		}
	case percentage >= remedialThreshold:
		return []string{
			"Review the questions you missed",
			"Retake the quiz to confirm your understanding",
			"Explore a related topic to broaden context",
		}
	default:
		return []string{
			"Review the explanations for the questions you missed",
			"Revisit the topic basics before trying again",
			"Try an easier difficulty to rebuild confidence",
		}
	}
}

// levelFor maps a score percentage to a progress level label.
func levelFor(percentage float64) string {
	switch {
	case percentage >= masteryThreshold:
		return "advanced"
	case percentage >= remedialThreshold:
		return "proficient"
	default:
		return "developing"
	}
}

// persistGrade saves the quiz result and applies the progress update.
// Both writes are best-effort.
func (o *Orchestrator) persistGrade(
	ctx context.Context,
	quiz *domain.Quiz,
	result *GradeResult,
	userID uuid.UUID,
	correct int,
	percentage float64,
) {
	if o.records == nil || userID == uuid.Nil {
		return
	}

	record := domain.NewQuizResult(userID, quiz.Topic, correct, len(quiz.Questions), 0)
	if err := o.records.SaveQuizResult(ctx, record); err != nil {
		o.logger.Warn("failed to persist quiz result",
			slog.String("user_id", userID.String()),
			slog.String("quiz_id", quiz.ID),
			slog.String("error", err.Error()))
	}

	var badges []string
	if percentage >= masteryThreshold {
		badges = []string{badgeQuizMaster}
	}
	delta := domain.ProgressDelta{
		XPDelta: result.XPGained,
		Streak:  1,
		Level:   levelFor(percentage),
		Badges:  badges,
	}
	if err := o.records.UpdateProgress(ctx, userID, quiz.Topic, delta); err != nil {
		o.logger.Warn("failed to update progress",
			slog.String("user_id", userID.String()),
			slog.String("subject", quiz.Topic),
			slog.String("error", err.Error()))
	}
}
