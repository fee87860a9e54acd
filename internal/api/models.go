package api

import (
	"github.com/google/uuid"

	"github.com/tutorium/tutor-api/internal/domain"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned on successful registration or login.
type AuthResponse struct {
	Token  string    `json:"token"`
	UserID uuid.UUID `json:"user_id"`
	Role   string    `json:"role"`
}

// ExplanationRequest is the payload for explanation generation. Difficulty
// and language default from the authenticated user's preferences when
// omitted.
type ExplanationRequest struct {
	Topic      string `json:"topic" validate:"required,max=200"`
	Difficulty string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	Language   string `json:"language" validate:"omitempty,max=32"`
	GradeLevel string `json:"grade_level" validate:"omitempty,max=32"`
	SessionID  string `json:"session_id" validate:"omitempty,max=64"`
}

// QuizGenerationRequest is the payload for quiz generation.
type QuizGenerationRequest struct {
	Topic         string `json:"topic" validate:"required,max=200"`
	Difficulty    string `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	QuestionCount int    `json:"question_count" validate:"omitempty,min=1,max=20"`
}

// LessonPlanGenerationRequest is the payload for lesson plan generation.
type LessonPlanGenerationRequest struct {
	Topic           string `json:"topic" validate:"required,max=200"`
	Grade           string `json:"grade" validate:"required,max=32"`
	DurationMinutes int    `json:"duration_minutes" validate:"omitempty,min=1,max=480"`
	Subject         string `json:"subject" validate:"omitempty,max=100"`
}

// GradeQuizRequest is the payload for quiz grading. Answers are keyed by
// question ID.
type GradeQuizRequest struct {
	Quiz    *domain.Quiz   `json:"quiz" validate:"required"`
	Answers map[int]string `json:"answers" validate:"required"`
}
