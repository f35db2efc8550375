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

// MockProgressStore implements store.ProgressStore for testing.
type MockProgressStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, entry *domain.ProgressEntry) error
	ListByOwnerFn   func(ctx context.Context, ownerID uuid.UUID, since time.Time) ([]*domain.ProgressEntry, error)
	CountBetweenFn  func(ctx context.Context, ownerID uuid.UUID, from, to time.Time) (int, error)
	ListStudyDaysFn func(ctx context.Context, ownerID uuid.UUID, limit int) ([]time.Time, error)

	// Data for default implementation
	Entries []*domain.ProgressEntry
}

var _ store.ProgressStore = (*MockProgressStore)(nil)

// NewMockProgressStore creates a new mock store with initialized defaults.
func NewMockProgressStore() *MockProgressStore {
	return &MockProgressStore{}
}

// Create implements the ProgressStore interface.
func (m *MockProgressStore) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	m.Entries = append(m.Entries, entry)
	return nil
}

// ListByOwner implements the ProgressStore interface.
func (m *MockProgressStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	since time.Time,
) ([]*domain.ProgressEntry, error) {
	if m.ListByOwnerFn != nil {
		return m.ListByOwnerFn(ctx, ownerID, since)
	}
	var entries []*domain.ProgressEntry
	for _, e := range m.Entries {
		if e.OwnerID != ownerID {
			continue
		}
		if !since.IsZero() && e.StudiedAt.Before(since) {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].StudiedAt.After(entries[j].StudiedAt)
	})
	return entries, nil
}

// CountBetween implements the ProgressStore interface.
func (m *MockProgressStore) CountBetween(
	ctx context.Context,
	ownerID uuid.UUID,
	from, to time.Time,
) (int, error) {
	if m.CountBetweenFn != nil {
		return m.CountBetweenFn(ctx, ownerID, from, to)
	}
	count := 0
	for _, e := range m.Entries {
		if e.OwnerID != ownerID {
			continue
		}
		if !e.StudiedAt.Before(from) && e.StudiedAt.Before(to) {
			count++
		}
	}
	return count, nil
}

// ListStudyDays implements the ProgressStore interface. The default derives
// distinct UTC days from the seeded entries, newest first.
func (m *MockProgressStore) ListStudyDays(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]time.Time, error) {
	if m.ListStudyDaysFn != nil {
		return m.ListStudyDaysFn(ctx, ownerID, limit)
	}
	seen := make(map[time.Time]bool)
	for _, e := range m.Entries {
		if e.OwnerID != ownerID {
			continue
		}
		day := e.StudiedAt.UTC().Truncate(24 * time.Hour)
		seen[day] = true
	}
	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}
	return days, nil
}

// WithTx implements the ProgressStore interface for transaction support.
func (m *MockProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	// For mock purposes, just return the same mock
	return m
}
