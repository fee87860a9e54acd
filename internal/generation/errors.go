package generation

import (
	"errors"
	"fmt"
	"time"
)

// Common errors returned by the generation package.
var (
	// ErrInvalidArgument is returned synchronously for bad input, before
	// any cache lookup or network activity.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidResponse is returned when the LLM response cannot be parsed
	// or is malformed. It never crosses the orchestrator's public boundary;
	// the orchestrator converts it to fallback content.
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the LLM blocks the content due to
	// safety filters.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary provider errors that
	// might resolve on retry.
	ErrTransientFailure = errors.New("transient error during content generation")

	// ErrInvalidConfig is returned when orchestrator or provider
	// configuration is invalid.
	ErrInvalidConfig = errors.New("invalid generation configuration")
)

// RateLimitedError is returned when the sliding-window admission control
// denies a model call. It is the only availability condition surfaced to
// callers, because the retry hint makes it actionable.
type RateLimitedError struct {
	// RetryAfter is the duration until the next request slot opens.
	RetryAfter time.Duration
}

// Error implements the error interface for RateLimitedError.
func (e *RateLimitedError) Error() string {
	return fmt.Sprintf("rate limit exceeded, retry after %s", e.RetryAfter)
}

// IsRateLimited reports whether err is (or wraps) a RateLimitedError.
func IsRateLimited(err error) bool {
	var rle *RateLimitedError
	return errors.As(err, &rle)
}
