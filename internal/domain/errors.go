// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDifficulty is returned when a difficulty level is not one of
	// the supported values.
	ErrInvalidDifficulty = errors.New("invalid difficulty level")

	// ErrInvalidQuestionKind is returned when a question kind is not valid.
	ErrInvalidQuestionKind = errors.New("invalid question kind")

	// ErrInvalidActivityKind is returned when a lesson activity kind is not valid.
	ErrInvalidActivityKind = errors.New("invalid activity kind")

	// ErrEmptyTopic is returned when a topic string is empty.
	ErrEmptyTopic = errors.New("topic cannot be empty")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")
)
