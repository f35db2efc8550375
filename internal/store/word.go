package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
)

// ReviewUpdate carries the four word fields that change on a review. The
// word store applies them together; callers wrap the update and the ledger
// append in one transaction.
type ReviewUpdate struct {
	Level          int
	NextReviewAt   time.Time
	LastReviewedAt time.Time
	ReviewCount    int
}

// CandidateQuery is the shared shape of every candidate selection query:
// visibility is always {owner's words} OR {approved words}, word level is
// capped by the learner's tier, and the result is bounded by Limit.
// Tie-break ordering is level ASC, then created_at DESC.
type CandidateQuery struct {
	OwnerID  uuid.UUID
	MaxLevel int
	Limit    int
}

// WordStore defines the interface for word catalog persistence, including
// the due-set and candidate selection queries.
type WordStore interface {
	// Create saves a new word. Tags already set on the word are attached.
	// Returns validation errors from the domain Word if data is invalid.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID, with tags populated.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// GetForUpdate retrieves a word with a row-level lock using
	// SELECT FOR UPDATE. Use inside a transaction when the word is about to
	// be mutated, so concurrent reviews of the same word serialize.
	// Returns ErrWordNotFound if the word does not exist.
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// Update modifies a word's catalog fields (text, translation, example,
	// language, approval status) and replaces its tag set.
	// Returns ErrWordNotFound if the word does not exist.
	Update(ctx context.Context, word *domain.Word) error

	// ApplyReview persists the scheduling fields produced by one review.
	// Returns ErrWordNotFound if the word does not exist.
	ApplyReview(ctx context.Context, id uuid.UUID, update ReviewUpdate) error

	// Delete removes a word. Progress entries and tag links cascade at the
	// schema level.
	// Returns ErrWordNotFound if the word does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByOwner returns all words owned by the given user, newest first.
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Word, error)

	// ListDue returns the owner's words whose next_review has elapsed or was
	// never set, ordered by level ASC then last_reviewed ASC with nulls
	// first. Limit <= 0 means no limit; callers normally cap the result.
	ListDue(ctx context.Context, ownerID uuid.UUID, now time.Time, limit int) ([]*domain.Word, error)

	// ListUnstudied returns visible words with zero progress entries for the
	// owner.
	ListUnstudied(ctx context.Context, q CandidateQuery) ([]*domain.Word, error)

	// ListStudiedSince returns visible words with at least one progress entry
	// for the owner at or after the given time.
	ListStudiedSince(ctx context.Context, q CandidateQuery, since time.Time) ([]*domain.Word, error)

	// ListMistakesSince returns visible words whose progress entries at or
	// after the given time contain at least one incorrect answer, ordered by
	// most recent mistake first.
	ListMistakesSince(ctx context.Context, q CandidateQuery, since time.Time) ([]*domain.Word, error)

	// ListStudied returns visible words with at least one progress entry for
	// the owner, ever.
	ListStudied(ctx context.Context, q CandidateQuery) ([]*domain.Word, error)

	// ListRecentlyStudied returns visible words ordered by the owner's most
	// recent progress entry, newest first. Used as the backfill reserve.
	ListRecentlyStudied(ctx context.Context, q CandidateQuery) ([]*domain.Word, error)

	// WithTx returns a new WordStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) WordStore
}
