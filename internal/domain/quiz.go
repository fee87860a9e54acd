package domain

import (
	"fmt"
)

// QuestionKind identifies the answer format of a quiz question.
type QuestionKind string

// Supported question kinds.
const (
	QuestionMultipleChoice QuestionKind = "multiple-choice"
	QuestionTrueFalse      QuestionKind = "true-false"
	QuestionShortAnswer    QuestionKind = "short-answer"
)

// IsValid reports whether k is one of the supported question kinds.
func (k QuestionKind) IsValid() bool {
	switch k {
	case QuestionMultipleChoice, QuestionTrueFalse, QuestionShortAnswer:
		return true
	default:
		return false
	}
}

// Question is a single quiz question. Options is only populated for
// multiple-choice questions. AcceptableAnswers lists additional answers
// treated as correct beyond CorrectAnswer.
type Question struct {
	ID                int          `json:"id"`
	Kind              QuestionKind `json:"kind"`
	Prompt            string       `json:"prompt"`
	Options           []string     `json:"options,omitempty"`
	CorrectAnswer     string       `json:"correct_answer"`
	AcceptableAnswers []string     `json:"acceptable_answers,omitempty"`
	Explanation       string       `json:"explanation"`
	Points            int          `json:"points"`
}

// IsCorrect reports whether the submitted answer matches the question's
// correct answer or any of its acceptable alternatives. Comparison is by
// exact equality.
func (q *Question) IsCorrect(submitted string) bool {
	if submitted == q.CorrectAnswer {
		return true
	}
	for _, a := range q.AcceptableAnswers {
		if submitted == a {
			return true
		}
	}
	return false
}

// Validate checks the question invariants. For multiple-choice questions the
// correct answer must be a member of the options list.
func (q *Question) Validate() error {
	if !q.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidQuestionKind, q.Kind)
	}
	if q.Prompt == "" {
		return fmt.Errorf("%w: question %d has no prompt", ErrValidation, q.ID)
	}
	if q.CorrectAnswer == "" {
		return fmt.Errorf("%w: question %d has no correct answer", ErrValidation, q.ID)
	}
	if q.Points <= 0 {
		return fmt.Errorf("%w: question %d has non-positive point value", ErrValidation, q.ID)
	}
	if q.Kind == QuestionMultipleChoice {
		if len(q.Options) == 0 {
			return fmt.Errorf("%w: question %d is multiple-choice but has no options", ErrValidation, q.ID)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf(
				"%w: question %d correct answer is not among the options",
				ErrValidation, q.ID,
			)
		}
	}
	return nil
}

// Quiz is an ordered set of questions on a topic at a given difficulty.
type Quiz struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Topic            string     `json:"topic"`
	Difficulty       Difficulty `json:"difficulty"`
	TimeLimitSeconds int        `json:"time_limit_seconds,omitempty"`
	Questions        []Question `json:"questions"`
}

// TotalPoints returns the sum of the point values of all questions.
func (z *Quiz) TotalPoints() int {
	total := 0
	for i := range z.Questions {
		total += z.Questions[i].Points
	}
	return total
}

// Validate checks the quiz invariants: a non-empty question list, question
// IDs unique within the quiz, and every question individually valid.
func (z *Quiz) Validate() error {
	if z.Topic == "" {
		return ErrEmptyTopic
	}
	if !z.Difficulty.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidDifficulty, z.Difficulty)
	}
	if len(z.Questions) == 0 {
		return fmt.Errorf("%w: quiz has no questions", ErrValidation)
	}
	seen := make(map[int]struct{}, len(z.Questions))
	for i := range z.Questions {
		q := &z.Questions[i]
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate question ID %d", ErrValidation, q.ID)
		}
		seen[q.ID] = struct{}{}
		if err := q.Validate(); err != nil {
			return err
		}
	}
	return nil
}
