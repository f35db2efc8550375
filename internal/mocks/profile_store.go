package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/store"
)

// MockProfileStore implements store.ProfileStore for testing.
type MockProfileStore struct {
	// Function fields for customizable behavior
	CreateFn      func(ctx context.Context, profile *domain.LearnerProfile) error
	GetByUserIDFn func(ctx context.Context, userID uuid.UUID) (*domain.LearnerProfile, error)
	UpdateFn      func(ctx context.Context, profile *domain.LearnerProfile) error

	// Data for default implementation
	Profiles map[uuid.UUID]*domain.LearnerProfile
}

var _ store.ProfileStore = (*MockProfileStore)(nil)

// NewMockProfileStore creates a new mock store with initialized defaults.
func NewMockProfileStore() *MockProfileStore {
	return &MockProfileStore{
		Profiles: make(map[uuid.UUID]*domain.LearnerProfile),
	}
}

// Create implements the ProfileStore interface.
func (m *MockProfileStore) Create(ctx context.Context, profile *domain.LearnerProfile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}
	if _, exists := m.Profiles[profile.UserID]; exists {
		return store.ErrDuplicate
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

// GetByUserID implements the ProfileStore interface.
func (m *MockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.LearnerProfile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	profile, ok := m.Profiles[userID]
	if !ok {
		return nil, store.ErrProfileNotFound
	}
	return profile, nil
}

// Update implements the ProfileStore interface.
func (m *MockProfileStore) Update(ctx context.Context, profile *domain.LearnerProfile) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, profile)
	}
	if _, ok := m.Profiles[profile.UserID]; !ok {
		return store.ErrProfileNotFound
	}
	m.Profiles[profile.UserID] = profile
	return nil
}

// WithTx implements the ProfileStore interface for transaction support.
func (m *MockProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	// For mock purposes, just return the same mock
	return m
}
