package generation

import "context"

// ModelConfig carries the sampling parameters passed to the completion
// provider on every call.
type ModelConfig struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
}

// DefaultModelConfig returns the sampling parameters used when none are
// configured.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 2048,
	}
}

// ModelProvider is the boundary between the orchestration core and the
// external LLM service. Implementations must honor ctx cancellation and may
// return an error on quota, network, or safety failures; the orchestrator
// treats any error as unavailability and degrades to fallback content.
type ModelProvider interface {
	// Complete sends the prompt to the model and returns the raw response
	// text.
	Complete(ctx context.Context, prompt string, cfg ModelConfig) (string, error)
}
