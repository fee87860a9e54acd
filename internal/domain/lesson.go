package domain

import (
	"fmt"
	"time"
)

// ActivityKind identifies the format of a lesson activity.
type ActivityKind string

// Supported activity kinds.
const (
	ActivityDiscussion   ActivityKind = "discussion"
	ActivityHandsOn      ActivityKind = "hands-on"
	ActivityPresentation ActivityKind = "presentation"
	ActivityGroupWork    ActivityKind = "group-work"
)

// IsValid reports whether k is one of the supported activity kinds.
func (k ActivityKind) IsValid() bool {
	switch k {
	case ActivityDiscussion, ActivityHandsOn, ActivityPresentation, ActivityGroupWork:
		return true
	default:
		return false
	}
}

// Activity is a single timed segment of a lesson plan.
type Activity struct {
	ID              int          `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	DurationMinutes int          `json:"duration_minutes"`
	Kind            ActivityKind `json:"kind"`
}

// Validate checks the activity invariants.
func (a *Activity) Validate() error {
	if a.Name == "" {
		return fmt.Errorf("%w: activity %d has no name", ErrValidation, a.ID)
	}
	if a.DurationMinutes <= 0 {
		return fmt.Errorf("%w: activity %d has non-positive duration", ErrValidation, a.ID)
	}
	if !a.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidActivityKind, a.Kind)
	}
	return nil
}

// LessonPlan is a structured, timed teaching plan for a topic.
//
// The sum of activity durations is intended to fit within DurationMinutes
// but this is not enforced; only per-activity positivity is.
type LessonPlan struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Subject         string     `json:"subject"`
	GradeLevel      string     `json:"grade_level"`
	DurationMinutes int        `json:"duration_minutes"`
	Objectives      []string   `json:"objectives"`
	Materials       []string   `json:"materials"`
	Activities      []Activity `json:"activities"`
	Assessment      string     `json:"assessment"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Validate checks the lesson plan invariants.
func (p *LessonPlan) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: lesson plan has no title", ErrValidation)
	}
	if p.DurationMinutes <= 0 {
		return fmt.Errorf("%w: lesson plan duration must be positive", ErrValidation)
	}
	if len(p.Objectives) == 0 {
		return fmt.Errorf("%w: lesson plan has no objectives", ErrValidation)
	}
	for _, obj := range p.Objectives {
		if obj == "" {
			return fmt.Errorf("%w: lesson plan objective cannot be empty", ErrValidation)
		}
	}
	for i := range p.Activities {
		if err := p.Activities[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
