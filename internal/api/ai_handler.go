package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/api/middleware"
	"github.com/tutorium/tutor-api/internal/api/shared"
	"github.com/tutorium/tutor-api/internal/domain"
	"github.com/tutorium/tutor-api/internal/generation"
)

// AIService is the orchestration façade the AI handlers depend on.
type AIService interface {
	GenerateExplanation(ctx context.Context, req generation.ExplanationRequest) (*domain.AIResponse, error)
	GenerateQuiz(ctx context.Context, req generation.QuizRequest) (*domain.Quiz, error)
	GenerateLessonPlan(ctx context.Context, req generation.LessonPlanRequest) (*domain.LessonPlan, error)
	GradeQuiz(ctx context.Context, quiz *domain.Quiz, answers map[int]string, userID uuid.UUID) (*generation.GradeResult, error)
}

// AIHandler exposes the AI generation operations over HTTP. All routes
// require authentication; the user's token claims supply default difficulty
// and language when the request omits them.
type AIHandler struct {
	service AIService
	logger  *slog.Logger
}

// NewAIHandler creates a new AIHandler with the given dependencies.
func NewAIHandler(service AIService, logger *slog.Logger) *AIHandler {
	if service == nil {
		panic("service cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AIHandler{
		service: service,
		logger:  logger.With(slog.String("component", "ai_handler")),
	}
}

// GenerateExplanation handles POST /api/ai/explanation.
func (h *AIHandler) GenerateExplanation(w http.ResponseWriter, r *http.Request) {
	var req ExplanationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserID(r)
	difficulty, language := h.requestDefaults(r, req.Difficulty, req.Language)

	resp, err := h.service.GenerateExplanation(r.Context(), generation.ExplanationRequest{
		Topic:      req.Topic,
		Difficulty: difficulty,
		Language:   language,
		GradeLevel: req.GradeLevel,
		UserID:     userID,
		SessionID:  req.SessionID,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// GenerateQuiz handles POST /api/ai/quiz.
func (h *AIHandler) GenerateQuiz(w http.ResponseWriter, r *http.Request) {
	var req QuizGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserID(r)
	difficulty, _ := h.requestDefaults(r, req.Difficulty, "")

	quiz, err := h.service.GenerateQuiz(r.Context(), generation.QuizRequest{
		Topic:         req.Topic,
		Difficulty:    difficulty,
		QuestionCount: req.QuestionCount,
		UserID:        userID,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, quiz)
}

// GenerateLessonPlan handles POST /api/ai/lesson-plan.
func (h *AIHandler) GenerateLessonPlan(w http.ResponseWriter, r *http.Request) {
	var req LessonPlanGenerationRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	plan, err := h.service.GenerateLessonPlan(r.Context(), generation.LessonPlanRequest{
		Topic:           req.Topic,
		Grade:           req.Grade,
		DurationMinutes: req.DurationMinutes,
		Subject:         req.Subject,
	})
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// GradeQuiz handles POST /api/ai/quiz/grade.
func (h *AIHandler) GradeQuiz(w http.ResponseWriter, r *http.Request) {
	var req GradeQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userID, _ := middleware.GetUserID(r)

	result, err := h.service.GradeQuiz(r.Context(), req.Quiz, req.Answers, userID)
	if err != nil {
		RespondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// requestDefaults resolves difficulty and language for a generation
// request, preferring explicit request values over the authenticated user's
// stored preferences.
func (h *AIHandler) requestDefaults(r *http.Request, difficulty, language string) (domain.Difficulty, string) {
	resolvedDifficulty := domain.Difficulty(difficulty)
	resolvedLanguage := language

	if claims, ok := middleware.GetClaims(r); ok {
		if resolvedDifficulty == "" {
			resolvedDifficulty = claims.PreferredDifficulty
		}
		if resolvedLanguage == "" {
			resolvedLanguage = claims.PreferredLanguage
		}
	}
	return resolvedDifficulty, resolvedLanguage
}
