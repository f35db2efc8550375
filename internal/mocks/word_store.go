// Package mocks provides hand-written store fakes shared by service and API
// tests. Each mock follows the same pattern: optional function fields
// override behavior per test, and a map-backed default covers the common
// cases.
package mocks

import (
	"context"
	"database/sql"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/store"
)

// MockWordStore implements store.WordStore for testing.
type MockWordStore struct {
	// Function fields for customizable behavior
	CreateFn              func(ctx context.Context, word *domain.Word) error
	GetByIDFn             func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	GetForUpdateFn        func(ctx context.Context, id uuid.UUID) (*domain.Word, error)
	UpdateFn              func(ctx context.Context, word *domain.Word) error
	ApplyReviewFn         func(ctx context.Context, id uuid.UUID, update store.ReviewUpdate) error
	DeleteFn              func(ctx context.Context, id uuid.UUID) error
	ListByOwnerFn         func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Word, error)
	ListDueFn             func(ctx context.Context, ownerID uuid.UUID, now time.Time, limit int) ([]*domain.Word, error)
	ListUnstudiedFn       func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error)
	ListStudiedSinceFn    func(ctx context.Context, q store.CandidateQuery, since time.Time) ([]*domain.Word, error)
	ListMistakesSinceFn   func(ctx context.Context, q store.CandidateQuery, since time.Time) ([]*domain.Word, error)
	ListStudiedFn         func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error)
	ListRecentlyStudiedFn func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error)

	// Data for default implementation
	Words map[uuid.UUID]*domain.Word

	// ReviewUpdates records every ApplyReview call for assertions.
	ReviewUpdates map[uuid.UUID]store.ReviewUpdate
}

var _ store.WordStore = (*MockWordStore)(nil)

// NewMockWordStore creates a new mock store with initialized defaults.
func NewMockWordStore() *MockWordStore {
	return &MockWordStore{
		Words:         make(map[uuid.UUID]*domain.Word),
		ReviewUpdates: make(map[uuid.UUID]store.ReviewUpdate),
	}
}

// Add seeds the mock with words.
func (m *MockWordStore) Add(words ...*domain.Word) {
	for _, w := range words {
		m.Words[w.ID] = w
	}
}

// Create implements the WordStore interface.
func (m *MockWordStore) Create(ctx context.Context, word *domain.Word) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, word)
	}
	m.Words[word.ID] = word
	return nil
}

// GetByID implements the WordStore interface.
func (m *MockWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	word, ok := m.Words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return word, nil
}

// GetForUpdate implements the WordStore interface. The default behaves like
// GetByID; there is no row locking to fake.
func (m *MockWordStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	if m.GetForUpdateFn != nil {
		return m.GetForUpdateFn(ctx, id)
	}
	return m.GetByID(ctx, id)
}

// Update implements the WordStore interface.
func (m *MockWordStore) Update(ctx context.Context, word *domain.Word) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, word)
	}
	if _, ok := m.Words[word.ID]; !ok {
		return store.ErrWordNotFound
	}
	m.Words[word.ID] = word
	return nil
}

// ApplyReview implements the WordStore interface.
func (m *MockWordStore) ApplyReview(ctx context.Context, id uuid.UUID, update store.ReviewUpdate) error {
	if m.ApplyReviewFn != nil {
		return m.ApplyReviewFn(ctx, id, update)
	}
	word, ok := m.Words[id]
	if !ok {
		return store.ErrWordNotFound
	}
	word.Level = update.Level
	nextReview := update.NextReviewAt
	word.NextReviewAt = &nextReview
	lastReviewed := update.LastReviewedAt
	word.LastReviewedAt = &lastReviewed
	word.ReviewCount = update.ReviewCount
	m.ReviewUpdates[id] = update
	return nil
}

// Delete implements the WordStore interface.
func (m *MockWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	if _, ok := m.Words[id]; !ok {
		return store.ErrWordNotFound
	}
	delete(m.Words, id)
	return nil
}

// ListByOwner implements the WordStore interface.
func (m *MockWordStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Word, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID)
	}
	var words []*domain.Word
	for _, w := range m.Words {
		if w.OwnerID == ownerID {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		return words[i].CreatedAt.After(words[j].CreatedAt)
	})
	return words, nil
}

// ListDue implements the WordStore interface. The default applies the due
// predicate and ordering over the seeded words.
func (m *MockWordStore) ListDue(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Word, error) {
	if m.ListDueFn != nil {
		return m.ListDueFn(ctx, ownerID, now, limit)
	}
	var words []*domain.Word
	for _, w := range m.Words {
		if w.OwnerID != ownerID {
			continue
		}
		if w.NextReviewAt == nil || !w.NextReviewAt.After(now) {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Level != words[j].Level {
			return words[i].Level < words[j].Level
		}
		// nulls first on last_reviewed
		li, lj := words[i].LastReviewedAt, words[j].LastReviewedAt
		switch {
		case li == nil && lj == nil:
			return words[i].ID.String() < words[j].ID.String()
		case li == nil:
			return true
		case lj == nil:
			return false
		default:
			return li.Before(*lj)
		}
	})
	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}

// ListUnstudied implements the WordStore interface.
func (m *MockWordStore) ListUnstudied(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
	if m.ListUnstudiedFn != nil {
		return m.ListUnstudiedFn(ctx, q)
	}
	return nil, nil
}

// ListStudiedSince implements the WordStore interface.
func (m *MockWordStore) ListStudiedSince(
	ctx context.Context,
	q store.CandidateQuery,
	since time.Time,
) ([]*domain.Word, error) {
	if m.ListStudiedSinceFn != nil {
		return m.ListStudiedSinceFn(ctx, q, since)
	}
	return nil, nil
}

// ListMistakesSince implements the WordStore interface.
func (m *MockWordStore) ListMistakesSince(
	ctx context.Context,
	q store.CandidateQuery,
	since time.Time,
) ([]*domain.Word, error) {
	if m.ListMistakesSinceFn != nil {
		return m.ListMistakesSinceFn(ctx, q, since)
	}
	return nil, nil
}

// ListStudied implements the WordStore interface.
func (m *MockWordStore) ListStudied(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
	if m.ListStudiedFn != nil {
		return m.ListStudiedFn(ctx, q)
	}
	return nil, nil
}

// ListRecentlyStudied implements the WordStore interface.
func (m *MockWordStore) ListRecentlyStudied(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
	if m.ListRecentlyStudiedFn != nil {
		return m.ListRecentlyStudiedFn(ctx, q)
	}
	return nil, nil
}

// WithTx implements the WordStore interface for transaction support.
func (m *MockWordStore) WithTx(tx *sql.Tx) store.WordStore {
	// For mock purposes, just return the same mock
	return m
}
