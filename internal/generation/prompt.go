package generation

import (
	"fmt"
	"strings"

	"github.com/tutorium/tutor-api/internal/domain"
)

// Prompt construction is pure text templating: no state, no side effects.
// Every input parameter appears verbatim in the produced prompt so the
// builders stay trivially testable.

// difficultyRegister returns the instruction governing vocabulary and depth
// for the requested difficulty.
func difficultyRegister(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyBeginner:
		return "Use simple vocabulary and short sentences suitable for someone new to the subject. Avoid jargon; define any term you must use."
	case domain.DifficultyAdvanced:
		return "Use precise technical language and explore the underlying mechanisms in depth. Assume strong prior knowledge."
	default:
		return "Use a moderate level of detail with concrete, relatable examples."
	}
}

// ExplanationPrompt builds the prompt for a topic explanation. gradeLevel is
// optional; when empty no grade qualifier is included.
func ExplanationPrompt(topic string, difficulty domain.Difficulty, language, gradeLevel string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a patient tutor. Explain the topic %q in %s.\n", topic, language)
	b.WriteString(difficultyRegister(difficulty))
	b.WriteString("\n")
	if gradeLevel != "" {
		fmt.Fprintf(&b, "Tailor the explanation for a %s student.\n", gradeLevel)
	}
	b.WriteString("Finish with two short follow-up questions the student could explore next.")
	return b.String()
}

// QuizPrompt builds the prompt for quiz generation. It instructs the model
// to emit strictly parseable JSON with a fixed schema so the response can be
// decoded without heuristics.
func QuizPrompt(topic string, difficulty domain.Difficulty, questionCount int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s-level quiz with %d questions about %q.\n", difficulty, questionCount, topic)
	b.WriteString("Respond with ONLY valid JSON, no markdown fences and no commentary, using exactly this schema:\n")
	b.WriteString(`{
  "questions": [
    {
      "question": "the question text",
      "options": ["option A", "option B", "option C", "option D"],
      "correctAnswer": "the correct option text",
      "explanation": "why this answer is correct"
    }
  ]
}`)
	b.WriteString("\nEvery multiple-choice question must list exactly 4 options and correctAnswer must match one of them verbatim.")
	return b.String()
}

// LessonPlanPrompt builds the prompt for lesson plan generation.
func LessonPlanPrompt(topic, grade string, durationMinutes int, subject string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-minute %s lesson plan about %q for %s students.\n", durationMinutes, subject, topic, grade)
	b.WriteString("Structure the plan with: learning objectives, required materials, ")
	b.WriteString("a sequence of timed activities, and an assessment to close the lesson.")
	return b.String()
}
