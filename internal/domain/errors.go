package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidLevel is returned when a word level is outside the 1..5 range.
	ErrInvalidLevel = errors.New("word level must be between 1 and 5")

	// ErrInvalidTier is returned when a proficiency tier is outside the 1..6 range.
	ErrInvalidTier = errors.New("proficiency tier must be between 1 and 6")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
