package generation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
	"github.com/tutorium/tutor-api/internal/store"
)

// Operation names used in cache keys and structured logs.
const (
	opExplanation = "explanation"
	opQuiz        = "quiz"
	opLessonPlan  = "lesson_plan"
)

// liveConfidence is the confidence score attached to explanations that came
// from the live model.
const liveConfidence = 0.9

// DefaultModelTimeout bounds a single model invocation. Expiry is treated
// as an invocation failure and degrades to fallback content.
const DefaultModelTimeout = 30 * time.Second

// Config tunes the orchestrator's rate limiting, caching, and model call
// behavior. Zero values fall back to the package defaults.
type Config struct {
	MaxRequests  int
	RateWindow   time.Duration
	CacheTTL     time.Duration
	ModelTimeout time.Duration
	Model        ModelConfig
}

// DefaultConfig returns the default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		MaxRequests:  DefaultMaxRequests,
		RateWindow:   DefaultRateWindow,
		CacheTTL:     DefaultCacheTTL,
		ModelTimeout: DefaultModelTimeout,
		Model:        DefaultModelConfig(),
	}
}

// Orchestrator coordinates rate limiting, caching, prompt construction,
// model invocation, parsing, and fallback content behind one façade. It
// owns the cache and rate limiter for the lifetime of the process: one
// instance represents one model-call budget.
//
// Availability failures never surface to callers; only invalid arguments
// and rate-limit denials cross the boundary as errors. Within one call the
// cache is consulted strictly before the rate limiter, and the rate limiter
// strictly before the model, so a cached answer never consumes budget.
type Orchestrator struct {
	provider ModelProvider
	records  store.RecordStore
	limiter  *RateLimiter
	fallback *FallbackLibrary
	parser   *ResponseParser
	logger   *slog.Logger

	modelTimeout time.Duration
	modelCfg     ModelConfig
	now          func() time.Time

	explanations *Cache[*domain.AIResponse]
	quizzes      *Cache[*domain.Quiz]
	plans        *Cache[*domain.LessonPlan]
}

// NewOrchestrator creates an Orchestrator. provider is required; records
// may be nil, which disables persistence side effects. If logger is nil, a
// default logger will be used.
func NewOrchestrator(
	provider ModelProvider,
	records store.RecordStore,
	cfg Config,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if provider == nil {
		return nil, fmt.Errorf("%w: model provider cannot be nil", ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "ai_orchestrator"))

	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = DefaultModelTimeout
	}
	if cfg.Model == (ModelConfig{}) {
		cfg.Model = DefaultModelConfig()
	}

	fallback := NewFallbackLibrary()
	return &Orchestrator{
		provider:     provider,
		records:      records,
		limiter:      NewRateLimiter(cfg.MaxRequests, cfg.RateWindow),
		fallback:     fallback,
		parser:       NewResponseParser(fallback, logger),
		logger:       logger,
		modelTimeout: cfg.ModelTimeout,
		modelCfg:     cfg.Model,
		now:          time.Now,
		explanations: NewCache[*domain.AIResponse](cfg.CacheTTL),
		quizzes:      NewCache[*domain.Quiz](cfg.CacheTTL),
		plans:        NewCache[*domain.LessonPlan](cfg.CacheTTL),
	}, nil
}

// ExplanationRequest carries the arguments for GenerateExplanation.
// Difficulty defaults to intermediate and Language to "en". GradeLevel,
// UserID, and SessionID are optional.
type ExplanationRequest struct {
	Topic      string
	Difficulty domain.Difficulty
	Language   string
	GradeLevel string
	UserID     uuid.UUID
	SessionID  string
}

func (r *ExplanationRequest) normalize() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic cannot be empty", ErrInvalidArgument)
	}
	if r.Difficulty == "" {
		r.Difficulty = domain.DifficultyIntermediate
	}
	if !r.Difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, r.Difficulty)
	}
	if r.Language == "" {
		r.Language = "en"
	}
	return nil
}

// QuizRequest carries the arguments for GenerateQuiz. Difficulty defaults
// to intermediate and QuestionCount to 5.
type QuizRequest struct {
	Topic         string
	Difficulty    domain.Difficulty
	QuestionCount int
	UserID        uuid.UUID
}

// MaxQuizQuestions bounds the number of questions a single quiz request may
// ask for.
const MaxQuizQuestions = 20

func (r *QuizRequest) normalize() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic cannot be empty", ErrInvalidArgument)
	}
	if r.Difficulty == "" {
		r.Difficulty = domain.DifficultyIntermediate
	}
	if !r.Difficulty.IsValid() {
		return fmt.Errorf("%w: unknown difficulty %q", ErrInvalidArgument, r.Difficulty)
	}
	if r.QuestionCount == 0 {
		r.QuestionCount = 5
	}
	if r.QuestionCount < 1 || r.QuestionCount > MaxQuizQuestions {
		return fmt.Errorf(
			"%w: question count must be between 1 and %d",
			ErrInvalidArgument, MaxQuizQuestions,
		)
	}
	return nil
}

// LessonPlanRequest carries the arguments for GenerateLessonPlan.
// DurationMinutes defaults to 45 and Subject to "General".
type LessonPlanRequest struct {
	Topic           string
	Grade           string
	DurationMinutes int
	Subject         string
}

func (r *LessonPlanRequest) normalize() error {
	if r.Topic == "" {
		return fmt.Errorf("%w: topic cannot be empty", ErrInvalidArgument)
	}
	if r.Grade == "" {
		return fmt.Errorf("%w: grade cannot be empty", ErrInvalidArgument)
	}
	if r.DurationMinutes == 0 {
		r.DurationMinutes = 45
	}
	if r.DurationMinutes < 0 {
		return fmt.Errorf("%w: duration must be positive", ErrInvalidArgument)
	}
	if r.Subject == "" {
		r.Subject = "General"
	}
	return nil
}

// GenerateExplanation produces an explanation of the topic at the requested
// difficulty. Cached responses are returned without consuming rate budget
// or touching the store. On model failure the deterministic fallback
// explanation is returned and deliberately not cached, so a later call can
// retry the live model.
func (o *Orchestrator) GenerateExplanation(
	ctx context.Context,
	req ExplanationRequest,
) (*domain.AIResponse, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	key := CacheKey(opExplanation, req.Topic, string(req.Difficulty), req.Language, req.GradeLevel)
	if cached, ok := o.explanations.Get(key); ok {
		o.logger.Debug("explanation cache hit", slog.String("topic", req.Topic))
		return cached, nil
	}

	if !o.limiter.Allow() {
		return nil, &RateLimitedError{RetryAfter: o.limiter.TimeUntilNextSlot()}
	}

	prompt := ExplanationPrompt(req.Topic, req.Difficulty, req.Language, req.GradeLevel)
	resp, live := withFallback(o.logger, opExplanation,
		func() (*domain.AIResponse, error) {
			text, err := o.complete(ctx, prompt)
			if err != nil {
				return nil, err
			}
			return &domain.AIResponse{
				Content:    text,
				Kind:       domain.ResponseExplanation,
				Confidence: liveConfidence,
			}, nil
		},
		func() *domain.AIResponse {
			return o.fallback.Explanation(req.Topic, req.Difficulty)
		},
	)

	if live {
		o.persistChatMessage(ctx, &req, resp)
		o.explanations.Set(key, resp)
	}
	return resp, nil
}

// GenerateQuiz produces a quiz on the topic. Model output is decoded with a
// strict schema; anything unparseable degrades to the fallback quiz for the
// same (topic, difficulty) pair. Only live, successfully parsed quizzes are
// cached.
func (o *Orchestrator) GenerateQuiz(ctx context.Context, req QuizRequest) (*domain.Quiz, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	key := CacheKey(opQuiz, req.Topic, string(req.Difficulty), fmt.Sprintf("%d", req.QuestionCount))
	if cached, ok := o.quizzes.Get(key); ok {
		o.logger.Debug("quiz cache hit", slog.String("topic", req.Topic))
		return cached, nil
	}

	if !o.limiter.Allow() {
		return nil, &RateLimitedError{RetryAfter: o.limiter.TimeUntilNextSlot()}
	}

	prompt := QuizPrompt(req.Topic, req.Difficulty, req.QuestionCount)
	quiz, live := withFallback(o.logger, opQuiz,
		func() (*domain.Quiz, error) {
			text, err := o.complete(ctx, prompt)
			if err != nil {
				return nil, err
			}
			parsed, ok := o.parser.ParseQuiz(text, req.Topic, req.Difficulty)
			if !ok {
				return nil, ErrInvalidResponse
			}
			return parsed, nil
		},
		func() *domain.Quiz {
			return o.fallback.Quiz(req.Topic, req.Difficulty)
		},
	)

	if live {
		o.quizzes.Set(key, quiz)
	}
	return quiz, nil
}

// GenerateLessonPlan produces a structured lesson plan. The plan content is
// always built from the deterministic template: free-text model responses
// are not parsed into the structured form. The model is still invoked on a
// cache miss so availability and rate limiting behave like the other
// operations, and only plans produced while the model was reachable are
// cached.
func (o *Orchestrator) GenerateLessonPlan(
	ctx context.Context,
	req LessonPlanRequest,
) (*domain.LessonPlan, error) {
	if err := req.normalize(); err != nil {
		return nil, err
	}

	key := CacheKey(opLessonPlan, req.Topic, req.Grade, fmt.Sprintf("%d", req.DurationMinutes), req.Subject)
	if cached, ok := o.plans.Get(key); ok {
		o.logger.Debug("lesson plan cache hit", slog.String("topic", req.Topic))
		return cached, nil
	}

	if !o.limiter.Allow() {
		return nil, &RateLimitedError{RetryAfter: o.limiter.TimeUntilNextSlot()}
	}

	prompt := LessonPlanPrompt(req.Topic, req.Grade, req.DurationMinutes, req.Subject)
	plan, live := withFallback(o.logger, opLessonPlan,
		func() (*domain.LessonPlan, error) {
			if _, err := o.complete(ctx, prompt); err != nil {
				return nil, err
			}
			return o.fallback.LessonPlan(req.Topic, req.Grade, req.DurationMinutes, req.Subject), nil
		},
		func() *domain.LessonPlan {
			return o.fallback.LessonPlan(req.Topic, req.Grade, req.DurationMinutes, req.Subject)
		},
	)
	plan.CreatedAt = o.now().UTC()

	if live {
		o.plans.Set(key, plan)
	}
	return plan, nil
}

// complete invokes the model with the orchestrator's sampling parameters
// and timeout.
func (o *Orchestrator) complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.modelTimeout)
	defer cancel()
	return o.provider.Complete(ctx, prompt, o.modelCfg)
}

// withFallback runs primary and degrades to the deterministic fallback on
// any failure, reporting whether the primary result was used. Centralizing
// the degradation here keeps the "availability failures never throw"
// invariant enforceable in one place.
func withFallback[T any](logger *slog.Logger, op string, primary func() (T, error), fallback func() T) (T, bool) {
	result, err := primary()
	if err != nil {
		logger.Warn("generation failed, serving fallback content",
			slog.String("operation", op),
			slog.String("error", err.Error()))
		return fallback(), false
	}
	return result, true
}

// persistChatMessage saves the generated explanation for a known user.
// Failures are logged only; persistence never affects the returned result.
func (o *Orchestrator) persistChatMessage(ctx context.Context, req *ExplanationRequest, resp *domain.AIResponse) {
	if o.records == nil || req.UserID == uuid.Nil {
		return
	}
	msg := domain.NewChatMessage(req.UserID, req.Topic, resp.Content, req.SessionID)
	if err := o.records.SaveChatMessage(ctx, msg); err != nil {
		o.logger.Warn("failed to persist chat message",
			slog.String("user_id", req.UserID.String()),
			slog.String("topic", req.Topic),
			slog.String("error", err.Error()))
	}
}
