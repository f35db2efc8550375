// Package grading defines the interface for grading free-form written
// answers with an external language model.
package grading

import "context"

// Verdict is the graded outcome of one written answer.
type Verdict struct {
	// IsCorrect is the grader's judgment. An ambiguous model response
	// defaults to correct rather than penalizing the learner.
	IsCorrect bool `json:"is_correct"`

	// Feedback is a short explanation suitable for showing to the learner.
	Feedback string `json:"feedback,omitempty"`

	// Ambiguous reports that the model's answer could not be read as a
	// clear yes or no and the default was applied.
	Ambiguous bool `json:"ambiguous,omitempty"`
}

// Submission is one written answer to grade.
type Submission struct {
	// Word is the vocabulary item being practiced.
	Word string

	// Translation is the expected meaning of the word.
	Translation string

	// Sentence is the learner's written usage of the word.
	Sentence string

	// Language is the language the sentence should be written in.
	Language string
}

// Grader judges written answers.
type Grader interface {
	// Grade evaluates one submission. Transient upstream failures are
	// retried internally; the returned error is terminal.
	Grade(ctx context.Context, sub Submission) (*Verdict, error)
}
