package generation

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
)

// Fixed values assigned to parsed quiz questions.
const (
	questionPoints     = 10
	secondsPerQuestion = 60
)

// quizSchema mirrors the JSON structure the quiz prompt instructs the model
// to emit.
type quizSchema struct {
	Questions []questionSchema `json:"questions"`
}

type questionSchema struct {
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// ResponseParser extracts typed domain objects from raw model text,
// tolerating malformed output. Parsing never fails outward: when the text
// cannot be decoded the parser substitutes the deterministic fallback for
// the same (topic, difficulty) pair.
type ResponseParser struct {
	fallback *FallbackLibrary
	logger   *slog.Logger
}

// NewResponseParser creates a ResponseParser backed by the given fallback
// library. If logger is nil, a default logger will be used.
func NewResponseParser(fallback *FallbackLibrary, logger *slog.Logger) *ResponseParser {
	if fallback == nil {
		panic("fallback cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResponseParser{
		fallback: fallback,
		logger:   logger.With(slog.String("component", "response_parser")),
	}
}

// ParseQuiz converts raw model text into a Quiz. The second return value
// reports whether the quiz came from the model (true) or from the fallback
// library (false). The returned quiz is always non-nil and valid.
func (p *ResponseParser) ParseQuiz(raw, topic string, difficulty domain.Difficulty) (*domain.Quiz, bool) {
	quiz, err := decodeQuiz(raw, topic, difficulty)
	if err != nil {
		p.logger.Debug("quiz decode failed, using fallback",
			slog.String("topic", topic),
			slog.String("difficulty", string(difficulty)),
			slog.String("error", err.Error()))
		return p.fallback.Quiz(topic, difficulty), false
	}
	return quiz, true
}

// decodeQuiz attempts a strict schema decode of the model output. Any
// missing required field, empty question list, or JSON error is reported as
// ErrInvalidResponse; the caller decides how to degrade.
func decodeQuiz(raw, topic string, difficulty domain.Difficulty) (*domain.Quiz, error) {
	payload, err := extractJSONObject(raw)
	if err != nil {
		return nil, err
	}

	var schema quizSchema
	if err := json.Unmarshal([]byte(payload), &schema); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if len(schema.Questions) == 0 {
		return nil, fmt.Errorf("%w: no questions in response", ErrInvalidResponse)
	}

	questions := make([]domain.Question, 0, len(schema.Questions))
	for i, qs := range schema.Questions {
		if qs.Question == "" {
			return nil, fmt.Errorf("%w: question %d missing question text", ErrInvalidResponse, i)
		}
		if qs.CorrectAnswer == "" {
			return nil, fmt.Errorf("%w: question %d missing correct answer", ErrInvalidResponse, i)
		}

		// Questions without options are treated as short-answer.
		kind := domain.QuestionShortAnswer
		if len(qs.Options) > 0 {
			kind = domain.QuestionMultipleChoice
		}

		questions = append(questions, domain.Question{
			ID:            i + 1,
			Kind:          kind,
			Prompt:        qs.Question,
			Options:       qs.Options,
			CorrectAnswer: qs.CorrectAnswer,
			Explanation:   qs.Explanation,
			Points:        questionPoints,
		})
	}

	quiz := &domain.Quiz{
		ID:               uuid.New().String(),
		Title:            fmt.Sprintf("%s Quiz", topic),
		Topic:            topic,
		Difficulty:       difficulty,
		TimeLimitSeconds: secondsPerQuestion * len(questions),
		Questions:        questions,
	}
	// Domain validation catches structural problems the schema decode
	// cannot, such as a multiple-choice answer missing from its options.
	if err := quiz.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return quiz, nil
}

// extractJSONObject locates the first balanced-looking JSON object region
// in text: from the first '{' to the last '}'. Models often wrap JSON in
// prose or markdown fences; this strips both.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no JSON object found in response", ErrInvalidResponse)
	}
	return text[start : end+1], nil
}
