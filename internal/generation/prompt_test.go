package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tutorium/tutor-api/internal/domain"
)

func TestExplanationPromptContainsInputs(t *testing.T) {
	t.Parallel()

	prompt := ExplanationPrompt("Photosynthesis", domain.DifficultyIntermediate, "es", "Grade 7")
	assert.Contains(t, prompt, "Photosynthesis")
	assert.Contains(t, prompt, "es")
	assert.Contains(t, prompt, "Grade 7")
}

func TestExplanationPromptDifficultyRegister(t *testing.T) {
	t.Parallel()

	beginner := ExplanationPrompt("Gravity", domain.DifficultyBeginner, "en", "")
	assert.Contains(t, beginner, "simple vocabulary")

	advanced := ExplanationPrompt("Gravity", domain.DifficultyAdvanced, "en", "")
	assert.Contains(t, advanced, "technical language")

	intermediate := ExplanationPrompt("Gravity", domain.DifficultyIntermediate, "en", "")
	assert.Contains(t, intermediate, "examples")

	assert.NotContains(t, beginner, "Tailor the explanation", "no grade qualifier when gradeLevel is empty")
}

func TestQuizPromptContainsInputsAndSchema(t *testing.T) {
	t.Parallel()

	prompt := QuizPrompt("World War II", domain.DifficultyAdvanced, 7)
	assert.Contains(t, prompt, "World War II")
	assert.Contains(t, prompt, "advanced")
	assert.Contains(t, prompt, "7 questions")
	assert.Contains(t, prompt, `"questions"`)
	assert.Contains(t, prompt, `"correctAnswer"`)
	assert.Contains(t, prompt, "ONLY valid JSON")
}

func TestLessonPlanPromptContainsInputs(t *testing.T) {
	t.Parallel()

	prompt := LessonPlanPrompt("The Water Cycle", "Grade 5", 45, "Science")
	assert.Contains(t, prompt, "The Water Cycle")
	assert.Contains(t, prompt, "Grade 5")
	assert.Contains(t, prompt, "45-minute")
	assert.Contains(t, prompt, "Science")
}
