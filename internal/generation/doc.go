// Package generation orchestrates AI-assisted content generation for the
// tutoring platform. It wraps an external LLM completion provider behind
// sliding-window rate limiting, TTL response caching, structured parsing of
// model output into domain objects, and deterministic fallback content so
// that every public operation can answer even when the model is unavailable.
package generation
