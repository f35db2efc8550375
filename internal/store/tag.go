package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
)

// TagStore defines the interface for tag persistence. Word-tag links are
// managed through WordStore.Create/Update.
type TagStore interface {
	// Create saves a new tag.
	// Returns ErrDuplicate if a tag with the same name exists.
	Create(ctx context.Context, tag *domain.Tag) error

	// GetByID retrieves a tag by its unique ID.
	// Returns ErrTagNotFound if the tag does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error)

	// GetByName retrieves a tag by its name.
	// Returns ErrTagNotFound if the tag does not exist.
	GetByName(ctx context.Context, name string) (*domain.Tag, error)

	// List returns all tags, ordered by name.
	List(ctx context.Context) ([]*domain.Tag, error)

	// WithTx returns a new TagStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TagStore
}
