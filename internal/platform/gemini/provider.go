package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"google.golang.org/genai"

	"github.com/tutorium/tutor-api/internal/config"
	"github.com/tutorium/tutor-api/internal/generation"
)

// Default retry settings used when the configuration carries zero values.
const (
	defaultMaxRetries        = 3
	defaultRetryDelaySeconds = 2
)

// Provider calls the Gemini API to satisfy generation.ModelProvider.
type Provider struct {
	logger *slog.Logger
	client *genai.Client
	model  string

	maxRetries     int
	baseRetryDelay time.Duration
	sleep          func(ctx context.Context, d time.Duration) error
	jitter         func() float64
}

// Interface guard.
var _ generation.ModelProvider = (*Provider)(nil)

// NewProvider creates a Provider from the LLM configuration. If logger is
// nil, a default logger will be used.
func NewProvider(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (*Provider, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", generation.ErrInvalidConfig, err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	retryDelay := cfg.RetryDelaySeconds
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelaySeconds
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Provider{
		logger:         logger.With(slog.String("component", "gemini_provider")),
		client:         client,
		model:          cfg.ModelName,
		maxRetries:     maxRetries,
		baseRetryDelay: time.Duration(retryDelay) * time.Second,
		sleep:          sleepContext,
		jitter:         rng.Float64,
	}, nil
}

// Complete sends the prompt to the configured Gemini model and returns the
// generated text. Transient API failures are retried with exponential
// backoff and jitter up to the configured attempt budget; safety blocks and
// empty responses are permanent and returned immediately.
func (p *Provider) Complete(ctx context.Context, prompt string, cfg generation.ModelConfig) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("%w: prompt cannot be empty", generation.ErrInvalidArgument)
	}

	genCfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(cfg.Temperature),
		TopK:            genai.Ptr(cfg.TopK),
		TopP:            genai.Ptr(cfg.TopP),
		MaxOutputTokens: cfg.MaxOutputTokens,
	}

	var lastErr error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		text, err := p.generate(ctx, prompt, genCfg)
		if err == nil {
			p.logger.DebugContext(ctx, "Gemini API call successful",
				slog.Int("attempt", attempt+1),
				slog.Int("response_length", len(text)))
			return text, nil
		}
		lastErr = err

		if isPermanent(err) {
			p.logger.WarnContext(ctx, "permanent Gemini API error, not retrying",
				slog.Int("attempt", attempt+1),
				slog.String("error", err.Error()))
			return "", err
		}

		p.logger.WarnContext(ctx, "transient Gemini API error",
			slog.Int("attempt", attempt+1),
			slog.Int("max_attempts", p.maxRetries+1),
			slog.String("error", err.Error()))

		if attempt == p.maxRetries {
			break
		}
		if err := p.sleep(ctx, p.backoff(attempt)); err != nil {
			return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}

	return "", fmt.Errorf("%w: exceeded %d attempts: %v",
		generation.ErrTransientFailure, p.maxRetries+1, lastErr)
}

// generate performs one API call and maps the response onto the generation
// error taxonomy.
func (p *Provider) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (string, error) {
	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: response blocked", generation.ErrContentBlocked)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("%w: empty response text", generation.ErrInvalidResponse)
	}
	return text, nil
}

// backoff computes the delay before the given zero-based attempt is
// retried: baseDelay * 2^attempt scaled by a jitter factor in [0.5, 1.0).
func (p *Provider) backoff(attempt int) time.Duration {
	backoff := float64(p.baseRetryDelay) * math.Pow(2, float64(attempt))
	jitterFactor := 0.5 + p.jitter()*0.5
	return time.Duration(backoff * jitterFactor)
}

// isPermanent reports whether the error should not be retried.
func isPermanent(err error) bool {
	return errors.Is(err, generation.ErrContentBlocked) ||
		errors.Is(err, generation.ErrInvalidResponse) ||
		errors.Is(err, generation.ErrInvalidArgument)
}

// sleepContext waits for the duration or until the context is cancelled.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
