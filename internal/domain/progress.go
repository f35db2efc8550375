package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProgressEntry validation errors
var (
	// ErrProgressIDEmpty is returned when a progress entry ID is empty or nil.
	ErrProgressIDEmpty = errors.New("progress entry ID cannot be empty")

	// ErrProgressWordIDEmpty is returned when a progress entry's word ID is empty or nil.
	ErrProgressWordIDEmpty = errors.New("progress entry word ID cannot be empty")

	// ErrProgressOwnerIDEmpty is returned when a progress entry's owner ID is empty or nil.
	ErrProgressOwnerIDEmpty = errors.New("progress entry owner ID cannot be empty")

	// ErrProgressElapsedNegative is returned when a progress entry's elapsed time is negative.
	ErrProgressElapsedNegative = errors.New("progress entry elapsed time cannot be negative")
)

// ProgressEntry is one row of the append-only study ledger. Exactly one
// entry is written per answer submission; entries are never mutated or
// deleted by the scheduler.
type ProgressEntry struct {
	ID        uuid.UUID `json:"id"`
	WordID    uuid.UUID `json:"word_id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	IsCorrect bool      `json:"is_correct"`
	StudiedAt time.Time `json:"studied_at"`
	Answer    string    `json:"answer,omitempty"`
	ElapsedMs int64     `json:"elapsed_ms,omitempty"`
}

// NewProgressEntry creates one ledger row for an answer submission.
// StudiedAt is fixed at write time and immutable afterward.
// Returns an error if validation fails.
func NewProgressEntry(
	ownerID, wordID uuid.UUID,
	isCorrect bool,
	answer string,
	elapsedMs int64,
	studiedAt time.Time,
) (*ProgressEntry, error) {
	entry := &ProgressEntry{
		ID:        uuid.New(),
		WordID:    wordID,
		OwnerID:   ownerID,
		IsCorrect: isCorrect,
		StudiedAt: studiedAt.UTC(),
		Answer:    answer,
		ElapsedMs: elapsedMs,
	}

	if err := entry.Validate(); err != nil {
		return nil, err
	}

	return entry, nil
}

// Validate checks if the ProgressEntry has valid data.
// Returns an error if any field fails validation.
func (p *ProgressEntry) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProgressIDEmpty
	}

	if p.WordID == uuid.Nil {
		return ErrProgressWordIDEmpty
	}

	if p.OwnerID == uuid.Nil {
		return ErrProgressOwnerIDEmpty
	}

	if p.ElapsedMs < 0 {
		return ErrProgressElapsedNegative
	}

	return nil
}
