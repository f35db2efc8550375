package grading

import "errors"

// Common errors returned by the grading package
var (
	// ErrGradingFailed is returned when grading fails for any general reason
	ErrGradingFailed = errors.New("failed to grade submission")

	// ErrInvalidResponse is returned when the model response cannot be parsed
	ErrInvalidResponse = errors.New("invalid response from language model")

	// ErrContentBlocked is returned when the model blocks the content due to safety filters
	ErrContentBlocked = errors.New("content blocked by language model safety filters")

	// ErrTransientFailure is returned for temporary errors that might resolve on retry
	ErrTransientFailure = errors.New("transient error during grading")

	// ErrInvalidConfig is returned when the grader configuration is invalid
	ErrInvalidConfig = errors.New("invalid grader configuration")

	// ErrEmptySubmission is returned when the submission has no sentence to grade
	ErrEmptySubmission = errors.New("submission sentence cannot be empty")
)
