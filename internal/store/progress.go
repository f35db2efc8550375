package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
)

// ProgressStore defines the interface for the append-only study ledger.
// Entries are written once and never mutated or deleted by the scheduler;
// word deletion cascades at the schema level.
type ProgressStore interface {
	// Create appends one ledger entry.
	// Returns validation errors from the domain ProgressEntry if data is invalid.
	Create(ctx context.Context, entry *domain.ProgressEntry) error

	// ListByOwner returns the owner's entries studied at or after the given
	// time, newest first. A zero since returns the full ledger.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]*domain.ProgressEntry, error)

	// CountBetween returns the number of entries the owner studied in
	// [from, to).
	CountBetween(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int, error)

	// ListStudyDays returns the distinct UTC days on which the owner studied,
	// newest first. Days are midnight-truncated timestamps.
	ListStudyDays(ctx context.Context, ownerID uuid.UUID, limit int) ([]time.Time, error)

	// WithTx returns a new ProgressStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProgressStore
}
