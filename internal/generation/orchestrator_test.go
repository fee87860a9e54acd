package generation

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorium/tutor-api/internal/domain"
)

// scriptedProvider is a ModelProvider returning a fixed response or error,
// counting invocations.
type scriptedProvider struct {
	mu       sync.Mutex
	calls    int
	response string
	err      error
}

func (p *scriptedProvider) Complete(_ context.Context, _ string, _ ModelConfig) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.err != nil {
		return "", p.err
	}
	return p.response, nil
}

func (p *scriptedProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

// recordingStore is an in-memory store.RecordStore capturing writes.
type recordingStore struct {
	mu           sync.Mutex
	chatMessages []*domain.ChatMessage
	quizResults  []*domain.QuizResult
	deltas       []domain.ProgressDelta
	failAll      bool
}

var errStoreDown = errors.New("store unavailable")

func (s *recordingStore) SaveChatMessage(_ context.Context, msg *domain.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	s.chatMessages = append(s.chatMessages, msg)
	return nil
}

func (s *recordingStore) SaveQuizResult(_ context.Context, result *domain.QuizResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	s.quizResults = append(s.quizResults, result)
	return nil
}

func (s *recordingStore) UpdateProgress(_ context.Context, _ uuid.UUID, _ string, delta domain.ProgressDelta) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failAll {
		return errStoreDown
	}
	s.deltas = append(s.deltas, delta)
	return nil
}

func (s *recordingStore) GetProgress(_ context.Context, _ uuid.UUID, _ string) (*domain.Progress, error) {
	return nil, errors.New("not implemented")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestOrchestrator(t *testing.T, provider ModelProvider, records *recordingStore, cfg Config) *Orchestrator {
	t.Helper()
	var orch *Orchestrator
	var err error
	if records == nil {
		orch, err = NewOrchestrator(provider, nil, cfg, discardLogger())
	} else {
		orch, err = NewOrchestrator(provider, records, cfg, discardLogger())
	}
	require.NoError(t, err)
	return orch
}

func TestNewOrchestratorRequiresProvider(t *testing.T) {
	t.Parallel()

	_, err := NewOrchestrator(nil, nil, DefaultConfig(), discardLogger())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateExplanationCachesLiveResponses(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{response: "Gravity pulls objects toward each other."}
	records := &recordingStore{}
	orch := newTestOrchestrator(t, provider, records, DefaultConfig())

	req := ExplanationRequest{
		Topic:      "gravity",
		Difficulty: domain.DifficultyBeginner,
		UserID:     uuid.New(),
		SessionID:  "session-1",
	}

	first, err := orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, provider.response, first.Content)
	assert.InDelta(t, liveConfidence, first.Confidence, 0.001)

	second, err := orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount(), "cached request must not reach the model")

	records.mu.Lock()
	defer records.mu.Unlock()
	require.Len(t, records.chatMessages, 1, "only the live generation persists a chat message")
	assert.Equal(t, req.UserID, records.chatMessages[0].UserID)
	assert.Equal(t, provider.response, records.chatMessages[0].Response)
}

func TestGenerateExplanationFallbackIsNotCached(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{err: ErrTransientFailure}
	records := &recordingStore{}
	orch := newTestOrchestrator(t, provider, records, DefaultConfig())

	req := ExplanationRequest{Topic: "gravity", Difficulty: domain.DifficultyBeginner, UserID: uuid.New()}

	resp, err := orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err, "availability failures must degrade, not error")
	assert.InDelta(t, fallbackConfidence, resp.Confidence, 0.001)
	assert.Equal(t, cannedExplanations["gravity/beginner"], resp.Content)

	_, err = orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount(), "fallback result must not be cached")

	records.mu.Lock()
	defer records.mu.Unlock()
	assert.Empty(t, records.chatMessages, "fallback responses are never persisted")
}

func TestGenerateExplanationRateLimited(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{err: ErrTransientFailure}
	cfg := DefaultConfig()
	cfg.MaxRequests = 1
	orch := newTestOrchestrator(t, provider, nil, cfg)

	req := ExplanationRequest{Topic: "gravity"}
	_, err := orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err)

	_, err = orch.GenerateExplanation(context.Background(), req)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))

	var rle *RateLimitedError
	require.ErrorAs(t, err, &rle)
	assert.Greater(t, rle.RetryAfter, time.Duration(0))
	assert.LessOrEqual(t, rle.RetryAfter, cfg.RateWindow)
}

func TestCachedResponsesConsumeNoRateBudget(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{response: "Plants convert light into chemical energy."}
	cfg := DefaultConfig()
	cfg.MaxRequests = 1
	orch := newTestOrchestrator(t, provider, nil, cfg)

	req := ExplanationRequest{Topic: "photosynthesis"}
	_, err := orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err)

	// Budget is exhausted, but the cached answer is still served.
	_, err = orch.GenerateExplanation(context.Background(), req)
	require.NoError(t, err)

	// A different topic misses the cache and hits the empty budget.
	_, err = orch.GenerateExplanation(context.Background(), ExplanationRequest{Topic: "gravity"})
	assert.True(t, IsRateLimited(err))
}

func TestGenerateExplanationInvalidArgument(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  ExplanationRequest
	}{
		{name: "EmptyTopic", req: ExplanationRequest{}},
		{name: "UnknownDifficulty", req: ExplanationRequest{Topic: "gravity", Difficulty: "impossible"}},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := &scriptedProvider{response: "unused"}
			orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

			_, err := orch.GenerateExplanation(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Zero(t, provider.callCount(), "validation must reject before any model activity")
		})
	}
}

func TestGenerateQuizParsesAndCachesLiveOutput(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{response: "Here is your quiz:\n" + `{
		"questions": [
			{
				"question": "What force pulls a dropped ball to the ground?",
				"options": ["Magnetism", "Gravity", "Friction", "Inertia"],
				"correctAnswer": "Gravity",
				"explanation": "Earth's gravity accelerates objects toward its center."
			},
			{
				"question": "Name the unit of force.",
				"correctAnswer": "newton",
				"explanation": "Force is measured in newtons."
			}
		]
	}`}
	orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

	req := QuizRequest{Topic: "gravity", Difficulty: domain.DifficultyBeginner, QuestionCount: 2}
	quiz, err := orch.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, domain.QuestionMultipleChoice, quiz.Questions[0].Kind)
	assert.Equal(t, domain.QuestionShortAnswer, quiz.Questions[1].Kind)
	assert.Equal(t, 20, quiz.TotalPoints())

	again, err := orch.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, quiz, again)
	assert.Equal(t, 1, provider.callCount())
}

func TestGenerateQuizMalformedOutputFallsBack(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{response: "Sorry, I cannot produce JSON today."}
	orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

	req := QuizRequest{Topic: "gravity", Difficulty: domain.DifficultyBeginner}
	quiz, err := orch.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "fallback-quiz-gravity-beginner", quiz.ID)

	_, err = orch.GenerateQuiz(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount(), "fallback quiz must not be cached")
}

func TestGenerateQuizDefaults(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{response: "no json here"}
	orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

	quiz, err := orch.GenerateQuiz(context.Background(), QuizRequest{Topic: "fractions"})
	require.NoError(t, err)
	assert.Equal(t, domain.DifficultyIntermediate, quiz.Difficulty)
}

func TestGenerateLessonPlan(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{response: "A lesson plan in free text."}
	orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

	req := LessonPlanRequest{Topic: "fractions", Grade: "5th"}
	plan, err := orch.GenerateLessonPlan(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 45, plan.DurationMinutes, "duration defaults to 45 minutes")
	assert.Equal(t, "General", plan.Subject, "subject defaults to General")
	assert.False(t, plan.CreatedAt.IsZero())
	require.NoError(t, plan.Validate())

	again, err := orch.GenerateLessonPlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, plan.ID, again.ID)
	assert.Equal(t, 1, provider.callCount(), "second plan comes from cache")
}

func TestGenerateLessonPlanModelFailureStillServesPlan(t *testing.T) {
	t.Parallel()

	provider := &scriptedProvider{err: ErrTransientFailure}
	orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

	req := LessonPlanRequest{Topic: "fractions", Grade: "5th", DurationMinutes: 50, Subject: "Math"}
	plan, err := orch.GenerateLessonPlan(context.Background(), req)
	require.NoError(t, err)
	require.NoError(t, plan.Validate())

	_, err = orch.GenerateLessonPlan(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount(), "plans built during an outage are not cached")
}

func TestGenerateLessonPlanRequiresGrade(t *testing.T) {
	t.Parallel()

	orch := newTestOrchestrator(t, &scriptedProvider{}, nil, DefaultConfig())
	_, err := orch.GenerateLessonPlan(context.Background(), LessonPlanRequest{Topic: "fractions"})
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func gradeTestQuiz() *domain.Quiz {
	return &domain.Quiz{
		ID:         "quiz-1",
		Title:      "Gravity Quiz",
		Topic:      "gravity",
		Difficulty: domain.DifficultyBeginner,
		Questions: []domain.Question{
			{
				ID:            1,
				Kind:          domain.QuestionMultipleChoice,
				Prompt:        "What pulls objects toward Earth?",
				Options:       []string{"Gravity", "Magnetism"},
				CorrectAnswer: "Gravity",
				Explanation:   "Earth's mass attracts nearby objects.",
				Points:        10,
			},
			{
				ID:            2,
				Kind:          domain.QuestionTrueFalse,
				Prompt:        "Heavier objects always fall faster.",
				CorrectAnswer: "false",
				Explanation:   "In a vacuum all objects fall at the same rate.",
				Points:        10,
			},
		},
	}
}

func TestGradeQuiz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		answers         map[int]string
		wantScore       int
		wantXP          int
		wantSuggestion  string
		wantFeedback    []string
	}{
		{
			name:           "PerfectScoreEarnsBonus",
			answers:        map[int]string{1: "Gravity", 2: "false"},
			wantScore:      20,
			wantXP:         2*xpPerCorrectAnswer + xpPassBonus,
			wantSuggestion: "Try the next difficulty level",
			wantFeedback: []string{
				"✅ Earth's mass attracts nearby objects.",
				"✅ In a vacuum all objects fall at the same rate.",
			},
		},
		{
			name:           "HalfScoreNoBonus",
			answers:        map[int]string{1: "Gravity", 2: "true"},
			wantScore:      10,
			wantXP:         xpPerCorrectAnswer,
			wantSuggestion: "Review the explanations for the questions you missed",
			wantFeedback: []string{
				"✅ Earth's mass attracts nearby objects.",
				"❌ In a vacuum all objects fall at the same rate.",
			},
		},
		{
			name:           "UnansweredCountsAsIncorrect",
			answers:        map[int]string{},
			wantScore:      0,
			wantXP:         0,
			wantSuggestion: "Review the explanations for the questions you missed",
			wantFeedback: []string{
				"❌ Earth's mass attracts nearby objects.",
				"❌ In a vacuum all objects fall at the same rate.",
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			provider := &scriptedProvider{}
			orch := newTestOrchestrator(t, provider, nil, DefaultConfig())

			result, err := orch.GradeQuiz(context.Background(), gradeTestQuiz(), tc.answers, uuid.Nil)
			require.NoError(t, err)

			assert.Equal(t, tc.wantScore, result.Score)
			assert.Equal(t, 20, result.TotalPoints)
			assert.Equal(t, tc.wantXP, result.XPGained)
			assert.Equal(t, tc.wantFeedback, result.Feedback)
			require.NotEmpty(t, result.Suggestions)
			assert.Equal(t, tc.wantSuggestion, result.Suggestions[0])
			assert.Zero(t, provider.callCount(), "grading never invokes the model")
		})
	}
}

func TestGradeQuizPersistsResultAndProgress(t *testing.T) {
	t.Parallel()

	records := &recordingStore{}
	orch := newTestOrchestrator(t, &scriptedProvider{}, records, DefaultConfig())
	userID := uuid.New()

	result, err := orch.GradeQuiz(context.Background(), gradeTestQuiz(), map[int]string{1: "Gravity", 2: "false"}, userID)
	require.NoError(t, err)

	records.mu.Lock()
	defer records.mu.Unlock()
	require.Len(t, records.quizResults, 1)
	assert.Equal(t, userID, records.quizResults[0].UserID)
	assert.Equal(t, 2, records.quizResults[0].Score)
	assert.Equal(t, 2, records.quizResults[0].TotalQuestions)

	require.Len(t, records.deltas, 1)
	assert.Equal(t, result.XPGained, records.deltas[0].XPDelta)
	assert.Equal(t, "advanced", records.deltas[0].Level)
	assert.Contains(t, records.deltas[0].Badges, badgeQuizMaster)
}

func TestGradeQuizStoreFailureIsNonFatal(t *testing.T) {
	t.Parallel()

	records := &recordingStore{failAll: true}
	orch := newTestOrchestrator(t, &scriptedProvider{}, records, DefaultConfig())

	result, err := orch.GradeQuiz(context.Background(), gradeTestQuiz(), map[int]string{1: "Gravity", 2: "false"}, uuid.New())
	require.NoError(t, err, "persistence failures must not affect grading")
	assert.Equal(t, 20, result.Score)
}

func TestGradeQuizInvalidArgument(t *testing.T) {
	t.Parallel()

	orch := newTestOrchestrator(t, &scriptedProvider{}, nil, DefaultConfig())

	_, err := orch.GradeQuiz(context.Background(), nil, nil, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = orch.GradeQuiz(context.Background(), &domain.Quiz{ID: "empty"}, nil, uuid.Nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
