package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
)

// ProfileStore defines the interface for learner profile persistence.
type ProfileStore interface {
	// Create saves a new learner profile.
	// Returns ErrDuplicate if the user already has a profile.
	Create(ctx context.Context, profile *domain.LearnerProfile) error

	// GetByUserID retrieves the profile for the given user.
	// Returns ErrProfileNotFound if no profile exists.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.LearnerProfile, error)

	// Update modifies an existing profile (goal, tier, cached streak fields).
	// Returns ErrProfileNotFound if no profile exists.
	Update(ctx context.Context, profile *domain.LearnerProfile) error

	// WithTx returns a new ProfileStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) ProfileStore
}
