package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorium/tutor-api/internal/domain"
)

func TestFallbackDeterminism(t *testing.T) {
	t.Parallel()

	lib := NewFallbackLibrary()

	// Two independent calls with the same arguments return identical
	// content.
	first := lib.Explanation("Gravity", domain.DifficultyBeginner)
	second := lib.Explanation("Gravity", domain.DifficultyBeginner)
	assert.Equal(t, first, second)

	quizA := lib.Quiz("Gravity", domain.DifficultyBeginner)
	quizB := lib.Quiz("Gravity", domain.DifficultyBeginner)
	assert.Equal(t, quizA, quizB)

	planA := lib.LessonPlan("Gravity", "Grade 6", 45, "Science")
	planB := lib.LessonPlan("Gravity", "Grade 6", 45, "Science")
	assert.Equal(t, planA, planB)
}

func TestFallbackExplanationKnownTopics(t *testing.T) {
	t.Parallel()

	lib := NewFallbackLibrary()

	resp := lib.Explanation("Gravity", domain.DifficultyBeginner)
	assert.Contains(t, resp.Content, "fall")
	assert.Equal(t, domain.ResponseExplanation, resp.Kind)
	assert.Equal(t, fallbackConfidence, resp.Confidence)
	assert.Len(t, resp.FollowUps, 2)

	// Different difficulty yields different text for a known topic.
	advanced := lib.Explanation("Gravity", domain.DifficultyAdvanced)
	assert.NotEqual(t, resp.Content, advanced.Content)

	// Topic lookup ignores case and surrounding whitespace.
	assert.Equal(t, resp.Content, lib.Explanation("  gravity ", domain.DifficultyBeginner).Content)
}

func TestFallbackExplanationGenericTemplate(t *testing.T) {
	t.Parallel()

	lib := NewFallbackLibrary()
	resp := lib.Explanation("Plate Tectonics", domain.DifficultyIntermediate)
	assert.Contains(t, resp.Content, "Plate Tectonics")
}

func TestFallbackQuizTemplate(t *testing.T) {
	t.Parallel()

	lib := NewFallbackLibrary()
	quiz := lib.Quiz("Gravity", domain.DifficultyBeginner)

	require.NoError(t, quiz.Validate())
	assert.Len(t, quiz.Questions, 2)
	assert.Equal(t, "Gravity", quiz.Topic)
	assert.Equal(t, domain.DifficultyBeginner, quiz.Difficulty)
	assert.Equal(t, 120, quiz.TimeLimitSeconds)
	assert.Equal(t, "fallback-quiz-gravity-beginner", quiz.ID)
}

func TestFallbackLessonPlanActivitySplit(t *testing.T) {
	t.Parallel()

	lib := NewFallbackLibrary()
	plan := lib.LessonPlan("Gravity", "Grade 6", 50, "Science")

	require.NoError(t, plan.Validate())
	require.Len(t, plan.Activities, 4)

	// 20/40/30/10 percent of 50 minutes, floor-rounded, in fixed order.
	durations := make([]int, 0, 4)
	for _, a := range plan.Activities {
		durations = append(durations, a.DurationMinutes)
	}
	assert.Equal(t, []int{10, 20, 15, 5}, durations)

	assert.Equal(t, "Hook", plan.Activities[0].Name)
	assert.Equal(t, "Wrap-up", plan.Activities[3].Name)
	assert.True(t, plan.CreatedAt.IsZero(), "library output carries no timestamp")
}

func TestFallbackLessonPlanMinimumActivityDuration(t *testing.T) {
	t.Parallel()

	lib := NewFallbackLibrary()
	plan := lib.LessonPlan("Gravity", "Grade 6", 5, "Science")

	for _, a := range plan.Activities {
		assert.GreaterOrEqual(t, a.DurationMinutes, 1)
	}
}
