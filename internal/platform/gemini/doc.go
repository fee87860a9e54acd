// Package gemini implements the generation.ModelProvider interface using
// Google's Gemini API. It owns the API client lifecycle, maps provider
// failures onto the generation package's error taxonomy, and retries
// transient failures with exponential backoff and jitter.
package gemini
