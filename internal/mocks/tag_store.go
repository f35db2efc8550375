package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/store"
)

// MockTagStore implements store.TagStore for testing.
type MockTagStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, tag *domain.Tag) error
	GetByIDFn   func(ctx context.Context, id uuid.UUID) (*domain.Tag, error)
	GetByNameFn func(ctx context.Context, name string) (*domain.Tag, error)
	ListFn      func(ctx context.Context) ([]*domain.Tag, error)

	// Data for default implementation, keyed by name.
	Tags map[string]*domain.Tag
}

var _ store.TagStore = (*MockTagStore)(nil)

// NewMockTagStore creates a new mock store with initialized defaults.
func NewMockTagStore() *MockTagStore {
	return &MockTagStore{
		Tags: make(map[string]*domain.Tag),
	}
}

// Create implements the TagStore interface.
func (m *MockTagStore) Create(ctx context.Context, tag *domain.Tag) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, tag)
	}
	if _, exists := m.Tags[tag.Name]; exists {
		return store.ErrDuplicate
	}
	m.Tags[tag.Name] = tag
	return nil
}

// GetByID implements the TagStore interface.
func (m *MockTagStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tag, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	for _, tag := range m.Tags {
		if tag.ID == id {
			return tag, nil
		}
	}
	return nil, store.ErrTagNotFound
}

// GetByName implements the TagStore interface.
func (m *MockTagStore) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(ctx, name)
	}
	tag, ok := m.Tags[name]
	if !ok {
		return nil, store.ErrTagNotFound
	}
	return tag, nil
}

// List implements the TagStore interface.
func (m *MockTagStore) List(ctx context.Context) ([]*domain.Tag, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	tags := make([]*domain.Tag, 0, len(m.Tags))
	for _, tag := range m.Tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

// WithTx implements the TagStore interface for transaction support.
func (m *MockTagStore) WithTx(tx *sql.Tx) store.TagStore {
	// For mock purposes, just return the same mock
	return m
}
