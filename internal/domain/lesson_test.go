package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorium/tutor-api/internal/domain"
)

func validLessonPlan() *domain.LessonPlan {
	return &domain.LessonPlan{
		ID:              "plan-1",
		Title:           "Introduction to Fractions",
		Subject:         "Math",
		GradeLevel:      "Grade 4",
		DurationMinutes: 45,
		Objectives:      []string{"Understand what a fraction represents"},
		Materials:       []string{"Whiteboard", "Fraction tiles"},
		Activities: []domain.Activity{
			{ID: 1, Name: "Warm-up", Description: "Review halves and quarters", DurationMinutes: 9, Kind: domain.ActivityDiscussion},
			{ID: 2, Name: "Direct instruction", Description: "Introduce numerator and denominator", DurationMinutes: 18, Kind: domain.ActivityPresentation},
		},
		Assessment: "Exit ticket with three fraction problems",
	}
}

func TestLessonPlanValidate(t *testing.T) {
	t.Parallel()

	t.Run("valid plan passes", func(t *testing.T) {
		t.Parallel()
		require.NoError(t, validLessonPlan().Validate())
	})

	t.Run("missing objectives rejected", func(t *testing.T) {
		t.Parallel()
		plan := validLessonPlan()
		plan.Objectives = nil
		assert.ErrorIs(t, plan.Validate(), domain.ErrValidation)
	})

	t.Run("empty objective string rejected", func(t *testing.T) {
		t.Parallel()
		plan := validLessonPlan()
		plan.Objectives = []string{""}
		assert.ErrorIs(t, plan.Validate(), domain.ErrValidation)
	})

	t.Run("non-positive activity duration rejected", func(t *testing.T) {
		t.Parallel()
		plan := validLessonPlan()
		plan.Activities[0].DurationMinutes = 0
		assert.ErrorIs(t, plan.Validate(), domain.ErrValidation)
	})

	t.Run("invalid activity kind rejected", func(t *testing.T) {
		t.Parallel()
		plan := validLessonPlan()
		plan.Activities[0].Kind = "homework"
		assert.ErrorIs(t, plan.Validate(), domain.ErrInvalidActivityKind)
	})
}

func TestMergeBadges(t *testing.T) {
	t.Parallel()

	merged := domain.MergeBadges([]string{"first_quiz", "quiz_master"}, []string{"quiz_master", "streak_7"})
	assert.Equal(t, []string{"first_quiz", "quiz_master", "streak_7"}, merged)

	assert.Empty(t, domain.MergeBadges(nil, nil))
	assert.Equal(t, []string{"quiz_master"}, domain.MergeBadges(nil, []string{"quiz_master", "quiz_master"}))
}
