package review

import "errors"

// Review service errors
var (
	// ErrWordNotFound indicates the word being reviewed does not exist.
	ErrWordNotFound = errors.New("word not found")

	// ErrWordNotOwned indicates the word exists but the scheduling mutation
	// was attempted by someone other than its owner. Foreign approved words
	// may be practiced, never rescheduled.
	ErrWordNotOwned = errors.New("word not owned by user")

	// ErrWordNotVisible indicates the word is neither owned by the user nor
	// approved, so the user may not record attempts against it.
	ErrWordNotVisible = errors.New("word not visible to user")
)
