package domain

// ResponseKind identifies the type of content carried by an AIResponse.
type ResponseKind string

// ResponseExplanation is the kind used for topic explanations.
const ResponseExplanation ResponseKind = "explanation"

// AIResponse is the result of an explanation request. Confidence is the
// generator's self-reported score in [0,1]; fallback content carries a lower
// fixed confidence than live model output.
type AIResponse struct {
	Content    string       `json:"content"`
	Kind       ResponseKind `json:"kind"`
	Confidence float64      `json:"confidence"`
	FollowUps  []string     `json:"follow_ups,omitempty"`
}
