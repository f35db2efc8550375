package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/platform/logger"
	"github.com/rillka/wordbank-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the ProgressStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ProgressStore.Create
// The ledger is append-only; there is no update or delete counterpart.
// Returns store.ErrInvalidEntity if the word or owner does not exist.
func (s *PostgresProgressStore) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := entry.Validate(); err != nil {
		log.Warn("progress entry validation failed during create",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()))
		return err
	}

	query := `
		INSERT INTO progress_entries (id, word_id, owner_id, is_correct, studied_at, answer, elapsed_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		entry.ID,
		entry.WordID,
		entry.OwnerID,
		entry.IsCorrect,
		entry.StudiedAt,
		entry.Answer,
		entry.ElapsedMs,
	)
	if err != nil {
		log.Error("failed to create progress entry",
			slog.String("error", err.Error()),
			slog.String("entry_id", entry.ID.String()),
			slog.String("word_id", entry.WordID.String()))
		return MapError(err)
	}

	log.Debug("progress entry created",
		slog.String("entry_id", entry.ID.String()),
		slog.String("word_id", entry.WordID.String()),
		slog.Bool("is_correct", entry.IsCorrect))
	return nil
}

// ListByOwner implements store.ProgressStore.ListByOwner
func (s *PostgresProgressStore) ListByOwner(
	ctx context.Context,
	ownerID uuid.UUID,
	since time.Time,
) ([]*domain.ProgressEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, word_id, owner_id, is_correct, studied_at, answer, elapsed_ms
		FROM progress_entries
		WHERE owner_id = $1 AND studied_at >= $2
		ORDER BY studied_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID, since)
	if err != nil {
		log.Error("failed to list progress entries",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var entries []*domain.ProgressEntry
	for rows.Next() {
		var entry domain.ProgressEntry
		err := rows.Scan(
			&entry.ID,
			&entry.WordID,
			&entry.OwnerID,
			&entry.IsCorrect,
			&entry.StudiedAt,
			&entry.Answer,
			&entry.ElapsedMs,
		)
		if err != nil {
			return nil, MapError(err)
		}
		entries = append(entries, &entry)
	}

	return entries, MapError(rows.Err())
}

// CountBetween implements store.ProgressStore.CountBetween
func (s *PostgresProgressStore) CountBetween(
	ctx context.Context,
	ownerID uuid.UUID,
	from, to time.Time,
) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM progress_entries
		WHERE owner_id = $1 AND studied_at >= $2 AND studied_at < $3
	`
	var count int
	if err := s.db.QueryRowContext(ctx, query, ownerID, from, to).Scan(&count); err != nil {
		return 0, MapError(err)
	}
	return count, nil
}

// ListStudyDays implements store.ProgressStore.ListStudyDays
// Days come back as midnight-truncated UTC timestamps, newest first.
func (s *PostgresProgressStore) ListStudyDays(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]time.Time, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT DISTINCT date_trunc('day', studied_at AT TIME ZONE 'UTC') AS day
		FROM progress_entries
		WHERE owner_id = $1
		ORDER BY day DESC
	`
	args := []any{ownerID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list study days",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var days []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, MapError(err)
		}
		days = append(days, day.UTC())
	}

	return days, MapError(rows.Err())
}
