package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Word level bounds. A word starts at MinLevel and climbs toward MaxLevel
// as the learner answers it correctly.
const (
	MinLevel = 1
	MaxLevel = 5
)

// ApprovalStatus marks whether a word is visible beyond its owner.
type ApprovalStatus string

// Possible approval status values.
const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// Word-specific validation errors
var (
	// ErrWordIDEmpty is returned when a word ID is empty or nil.
	ErrWordIDEmpty = errors.New("word ID cannot be empty")

	// ErrWordOwnerIDEmpty is returned when a word's owner ID is empty or nil.
	ErrWordOwnerIDEmpty = errors.New("word owner ID cannot be empty")

	// ErrWordTextEmpty is returned when a word's display text is empty.
	ErrWordTextEmpty = errors.New("word text cannot be empty")

	// ErrWordTranslationEmpty is returned when a word's translation is empty.
	ErrWordTranslationEmpty = errors.New("word translation cannot be empty")

	// ErrWordStatusInvalid is returned when a word's approval status is unknown.
	ErrWordStatusInvalid = errors.New("invalid word approval status")
)

// Word represents a single vocabulary item in a learner's collection.
// Level and the review timestamps are mutated only through the review path;
// everything else belongs to catalog management.
type Word struct {
	ID             uuid.UUID      `json:"id"`
	OwnerID        uuid.UUID      `json:"owner_id"`
	Text           string         `json:"text"`
	Translation    string         `json:"translation"`
	Example        string         `json:"example,omitempty"`
	Language       string         `json:"language"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
	Level          int            `json:"level"`
	NextReviewAt   *time.Time     `json:"next_review_at,omitempty"`
	LastReviewedAt *time.Time     `json:"last_reviewed_at,omitempty"`
	ReviewCount    int            `json:"review_count"`
	Tags           []Tag          `json:"tags,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// NewWord creates a new Word owned by the given user. The word starts at
// MinLevel with no review scheduled, which makes it immediately eligible for
// the due set.
// Returns an error if validation fails.
func NewWord(ownerID uuid.UUID, text, translation, example, language string) (*Word, error) {
	now := time.Now().UTC()
	word := &Word{
		ID:             uuid.New(),
		OwnerID:        ownerID,
		Text:           text,
		Translation:    translation,
		Example:        example,
		Language:       language,
		ApprovalStatus: ApprovalStatusPending,
		Level:          MinLevel,
		NextReviewAt:   nil,
		LastReviewedAt: nil,
		ReviewCount:    0,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := word.Validate(); err != nil {
		return nil, err
	}

	return word, nil
}

// Validate checks if the Word has valid data.
// Returns an error if any field fails validation.
func (w *Word) Validate() error {
	if w.ID == uuid.Nil {
		return ErrWordIDEmpty
	}

	if w.OwnerID == uuid.Nil {
		return ErrWordOwnerIDEmpty
	}

	if w.Text == "" {
		return ErrWordTextEmpty
	}

	if w.Translation == "" {
		return ErrWordTranslationEmpty
	}

	if w.Level < MinLevel || w.Level > MaxLevel {
		return ErrInvalidLevel
	}

	switch w.ApprovalStatus {
	case ApprovalStatusPending, ApprovalStatusApproved, ApprovalStatusRejected:
	default:
		return ErrWordStatusInvalid
	}

	return nil
}

// VisibleTo reports whether the word may appear in candidate sets for the
// given learner: own words always, foreign words only once approved.
// Every selector applies this same predicate.
func (w *Word) VisibleTo(ownerID uuid.UUID) bool {
	return w.OwnerID == ownerID || w.ApprovalStatus == ApprovalStatusApproved
}

// HasTag reports whether the word holds the given tag.
func (w *Word) HasTag(tagID uuid.UUID) bool {
	for _, t := range w.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}
