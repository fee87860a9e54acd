package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeBadges(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []string
		earned   []string
		want     []string
	}{
		{
			name:     "DisjointSets",
			existing: []string{"first_quiz"},
			earned:   []string{"quiz_master"},
			want:     []string{"first_quiz", "quiz_master"},
		},
		{
			name:     "DuplicateEarned",
			existing: []string{"quiz_master"},
			earned:   []string{"quiz_master"},
			want:     []string{"quiz_master"},
		},
		{
			name:     "EmptyExisting",
			existing: nil,
			earned:   []string{"quiz_master"},
			want:     []string{"quiz_master"},
		},
		{
			name:     "NothingEarned",
			existing: []string{"first_quiz"},
			earned:   nil,
			want:     []string{"first_quiz"},
		},
		{
			name:     "DuplicatesWithinExisting",
			existing: []string{"a", "a", "b"},
			earned:   []string{"b", "c"},
			want:     []string{"a", "b", "c"},
		},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MergeBadges(tc.existing, tc.earned))
		})
	}
}

func TestNewChatMessageValidate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	msg := NewChatMessage(userID, "gravity", "Gravity pulls things down.", "session-1")

	require.NoError(t, msg.Validate())
	assert.Equal(t, userID, msg.UserID)
	assert.NotEqual(t, uuid.Nil, msg.ID)
	assert.False(t, msg.CreatedAt.IsZero())

	msg.Response = ""
	assert.ErrorIs(t, msg.Validate(), ErrValidation)
}

func TestNewQuizResultValidate(t *testing.T) {
	t.Parallel()

	result := NewQuizResult(uuid.New(), "gravity", 2, 2, 95)
	require.NoError(t, result.Validate())

	result.TotalQuestions = 0
	assert.ErrorIs(t, result.Validate(), ErrValidation)
}
