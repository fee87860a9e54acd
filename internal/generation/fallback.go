package generation

import (
	"fmt"
	"strings"

	"github.com/tutorium/tutor-api/internal/domain"
)

// fallbackConfidence is the fixed confidence score attached to canned
// explanations, deliberately lower than live model output.
const fallbackConfidence = 0.5

// FallbackLibrary supplies deterministic, pre-authored content keyed by
// (topic, difficulty), with a generic template when no specific entry
// exists. It guarantees every public generation operation can answer with
// zero model availability: identical inputs always produce identical output.
type FallbackLibrary struct {
	explanations map[string]string
}

// NewFallbackLibrary creates a library seeded with the pre-authored topic
// entries.
func NewFallbackLibrary() *FallbackLibrary {
	return &FallbackLibrary{explanations: cannedExplanations}
}

// topicKey normalizes a (topic, difficulty) pair into a lookup key.
func topicKey(topic string, difficulty domain.Difficulty) string {
	return strings.ToLower(strings.TrimSpace(topic)) + "/" + string(difficulty)
}

// slug derives a stable identifier fragment from free text.
func slug(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ' || r == '-' || r == '_':
			return '-'
		default:
			return -1
		}
	}, s)
	return strings.Trim(s, "-")
}

// cannedExplanations holds the pre-authored explanation texts. Entries are
// keyed by topicKey; topics without an entry get the generic template.
var cannedExplanations = map[string]string{
	"gravity/beginner":          "Gravity is the invisible pull that makes things fall down. The Earth pulls everything toward its center, which is why a dropped ball lands on the ground instead of floating away.",
	"gravity/intermediate":      "Gravity is the attractive force between objects with mass. Earth's gravity accelerates falling objects at about 9.8 m/s^2, and the same force keeps the Moon in orbit around us.",
	"gravity/advanced":          "Gravity is described by Newton's law of universal gravitation as F = G*m1*m2/r^2, and more fundamentally by general relativity as the curvature of spacetime produced by mass-energy.",
	"photosynthesis/beginner":   "Photosynthesis is how plants make their own food. They take in sunlight, water, and air, and turn them into sugar to grow, releasing the oxygen we breathe.",
	"photosynthesis/intermediate": "Photosynthesis converts light energy into chemical energy: chloroplasts absorb light to split water and fix carbon dioxide into glucose, releasing oxygen as a byproduct.",
	"photosynthesis/advanced":   "Photosynthesis comprises the light-dependent reactions, where photosystems II and I drive electron transport to produce ATP and NADPH, and the Calvin cycle, where RuBisCO fixes CO2 into 3-phosphoglycerate.",
	"fractions/beginner":        "A fraction shows parts of a whole. If you cut a pizza into 4 equal slices and take 1, you have 1/4 of the pizza: the bottom number counts the slices, the top counts how many you have.",
	"fractions/intermediate":    "A fraction a/b represents a parts of a whole divided into b equal parts. Equivalent fractions name the same value, and a common denominator lets you add or compare them.",
	"fractions/advanced":        "Fractions are rational numbers, the field of quotients of the integers. Every rational has a unique reduced form a/b with gcd(a,b)=1, and its decimal expansion either terminates or repeats.",
}

// Explanation returns the canned explanation for (topic, difficulty),
// falling back to a generic template when no specific entry exists.
func (f *FallbackLibrary) Explanation(topic string, difficulty domain.Difficulty) *domain.AIResponse {
	content, ok := f.explanations[topicKey(topic, difficulty)]
	if !ok {
		content = fmt.Sprintf(
			"%s is an important concept worth exploring step by step. Start with the basic definition, look at a few worked examples, and then try explaining it in your own words. A teacher or textbook section on %s can fill in the details this offline summary cannot.",
			topic, topic,
		)
	}
	return &domain.AIResponse{
		Content:    content,
		Kind:       domain.ResponseExplanation,
		Confidence: fallbackConfidence,
		FollowUps: []string{
			fmt.Sprintf("What is one real-world example of %s?", topic),
			fmt.Sprintf("How would you explain %s to a friend?", topic),
		},
	}
}

// Quiz returns the minimal two-question template quiz for (topic,
// difficulty). Output is fully deterministic, including the quiz ID.
func (f *FallbackLibrary) Quiz(topic string, difficulty domain.Difficulty) *domain.Quiz {
	return &domain.Quiz{
		ID:               fmt.Sprintf("fallback-quiz-%s-%s", slug(topic), difficulty),
		Title:            fmt.Sprintf("%s Review Quiz", topic),
		Topic:            topic,
		Difficulty:       difficulty,
		TimeLimitSeconds: 2 * 60,
		Questions: []domain.Question{
			{
				ID:     1,
				Kind:   domain.QuestionMultipleChoice,
				Prompt: fmt.Sprintf("Which of the following best describes how to build understanding of %s?", topic),
				Options: []string{
					"Memorize isolated facts without context",
					"Study the core definition, then work through examples",
					"Skip the fundamentals and start with edge cases",
					"Avoid asking questions",
				},
				CorrectAnswer: "Study the core definition, then work through examples",
				Explanation:   "Grounding examples in the core definition is the most reliable way to learn a new concept.",
				Points:        10,
			},
			{
				ID:            2,
				Kind:          domain.QuestionTrueFalse,
				Prompt:        fmt.Sprintf("Reviewing %s regularly helps move it into long-term memory.", topic),
				CorrectAnswer: "true",
				Explanation:   "Spaced review strengthens retention far more than a single cramming session.",
				Points:        10,
			},
		},
	}
}

// Activity duration shares of the total lesson duration, applied in fixed
// order: hook, explanation, hands-on practice, wrap-up.
var activitySplit = [4]struct {
	share float64
	name  string
	desc  string
	kind  domain.ActivityKind
}{
	{0.20, "Hook", "Open with a question or demonstration that connects %s to the students' everyday experience.", domain.ActivityDiscussion},
	{0.40, "Core explanation", "Present the key ideas of %s with worked examples, checking understanding as you go.", domain.ActivityPresentation},
	{0.30, "Hands-on practice", "Students work through guided exercises on %s individually or in pairs.", domain.ActivityHandsOn},
	{0.10, "Wrap-up", "Summarize the key takeaways of %s and preview the next lesson.", domain.ActivityGroupWork},
}

// LessonPlan returns the structured lesson plan template for the topic.
// Activity durations are floor-rounded proportional splits (20/40/30/10) of
// the requested total. CreatedAt is left zero so output is byte-identical
// across calls; the orchestrator stamps the timestamp on delivery.
func (f *FallbackLibrary) LessonPlan(topic, grade string, durationMinutes int, subject string) *domain.LessonPlan {
	activities := make([]domain.Activity, 0, len(activitySplit))
	for i, a := range activitySplit {
		minutes := int(float64(durationMinutes) * a.share)
		if minutes < 1 {
			minutes = 1
		}
		activities = append(activities, domain.Activity{
			ID:              i + 1,
			Name:            a.name,
			Description:     fmt.Sprintf(a.desc, topic),
			DurationMinutes: minutes,
			Kind:            a.kind,
		})
	}
	return &domain.LessonPlan{
		ID:              fmt.Sprintf("fallback-plan-%s-%s", slug(topic), slug(grade)),
		Title:           fmt.Sprintf("%s: %s", subject, topic),
		Subject:         subject,
		GradeLevel:      grade,
		DurationMinutes: durationMinutes,
		Objectives: []string{
			fmt.Sprintf("Describe the core idea of %s in their own words", topic),
			fmt.Sprintf("Apply %s to at least one concrete example", topic),
			"Identify one question for further study",
		},
		Materials: []string{
			"Whiteboard or projector",
			"Student worksheets",
			"Writing materials",
		},
		Activities: activities,
		Assessment: fmt.Sprintf("Exit ticket: each student writes a two-sentence summary of %s and answers one application question.", topic),
	}
}
