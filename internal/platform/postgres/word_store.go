package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/platform/logger"
	"github.com/rillka/wordbank-api/internal/store"
)

// wordColumns is the canonical column list for scanning words.
const wordColumns = `w.id, w.owner_id, w.text, w.translation, w.example, w.language,
	w.approval_status, w.level, w.next_review_at, w.last_reviewed_at, w.review_count,
	w.created_at, w.updated_at`

// visibleCond is the catalog visibility predicate shared by every candidate
// query: a learner sees their own words plus everything approved. $1 is
// always the owner ID in queries embedding this fragment.
const visibleCond = `(w.owner_id = $1 OR w.approval_status = 'approved')`

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// WithTx implements store.WordStore.WithTx
func (s *PostgresWordStore) WithTx(tx *sql.Tx) store.WordStore {
	return &PostgresWordStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.WordStore.Create
// It saves a new word and attaches any tags already set on it.
// Returns validation errors from the domain Word if data is invalid.
// Returns store.ErrInvalidEntity if the owner does not exist.
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	query := `
		INSERT INTO words (id, owner_id, text, translation, example, language,
			approval_status, level, next_review_at, last_reviewed_at, review_count,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.OwnerID,
		word.Text,
		word.Translation,
		word.Example,
		word.Language,
		word.ApprovalStatus,
		word.Level,
		word.NextReviewAt,
		word.LastReviewedAt,
		word.ReviewCount,
		word.CreatedAt,
		word.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()),
			slog.String("owner_id", word.OwnerID.String()))
		return MapError(err)
	}

	if err := s.replaceTags(ctx, word.ID, word.Tags); err != nil {
		return err
	}

	log.Debug("word created",
		slog.String("word_id", word.ID.String()),
		slog.String("owner_id", word.OwnerID.String()))
	return nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return s.getOne(ctx, id, false)
}

// GetForUpdate implements store.WordStore.GetForUpdate
// It locks the word row with SELECT FOR UPDATE; call inside a transaction.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	return s.getOne(ctx, id, true)
}

func (s *PostgresWordStore) getOne(ctx context.Context, id uuid.UUID, forUpdate bool) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM words w WHERE w.id = $1`, wordColumns)
	if forUpdate {
		query += ` FOR UPDATE`
	}

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, MapError(err)
	}

	if err := s.attachTags(ctx, []*domain.Word{word}); err != nil {
		return nil, err
	}

	return word, nil
}

// Update implements store.WordStore.Update
// It modifies the catalog fields and replaces the tag set.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) Update(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during update",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	query := `
		UPDATE words
		SET text = $2, translation = $3, example = $4, language = $5,
			approval_status = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.Text,
		word.Translation,
		word.Example,
		word.Language,
		word.ApprovalStatus,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to update word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "word"); err != nil {
		return err
	}

	return s.replaceTags(ctx, word.ID, word.Tags)
}

// ApplyReview implements store.WordStore.ApplyReview
// It persists the four scheduling fields produced by one review.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) ApplyReview(ctx context.Context, id uuid.UUID, update store.ReviewUpdate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE words
		SET level = $2, next_review_at = $3, last_reviewed_at = $4,
			review_count = $5, updated_at = $6
		WHERE id = $1
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		id,
		update.Level,
		update.NextReviewAt,
		update.LastReviewedAt,
		update.ReviewCount,
		time.Now().UTC(),
	)
	if err != nil {
		log.Error("failed to apply review to word",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "word")
}

// Delete implements store.WordStore.Delete
// Progress entries and tag links are removed by ON DELETE CASCADE.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete word",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return MapError(err)
	}

	return CheckRowsAffected(result, "word")
}

// ListByOwner implements store.WordStore.ListByOwner
func (s *PostgresWordStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		WHERE w.owner_id = $1
		ORDER BY w.created_at DESC
	`, wordColumns)

	return s.listWords(ctx, query, ownerID)
}

// ListDue implements store.WordStore.ListDue
// Words that were never reviewed (next_review_at IS NULL) are always due.
// Weaker words surface first, then the ones unseen longest.
func (s *PostgresWordStore) ListDue(
	ctx context.Context,
	ownerID uuid.UUID,
	now time.Time,
	limit int,
) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		WHERE w.owner_id = $1
			AND (w.next_review_at IS NULL OR w.next_review_at <= $2)
		ORDER BY w.level ASC, w.last_reviewed_at ASC NULLS FIRST
	`, wordColumns)

	if limit > 0 {
		query += ` LIMIT $3`
		return s.listWords(ctx, query, ownerID, now, limit)
	}
	return s.listWords(ctx, query, ownerID, now)
}

// ListUnstudied implements store.WordStore.ListUnstudied
func (s *PostgresWordStore) ListUnstudied(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		WHERE %s AND w.level <= $2
			AND NOT EXISTS (
				SELECT 1 FROM progress_entries p
				WHERE p.word_id = w.id AND p.owner_id = $1
			)
		ORDER BY w.level ASC, w.created_at DESC
		LIMIT $3
	`, wordColumns, visibleCond)

	return s.listWords(ctx, query, q.OwnerID, q.MaxLevel, q.Limit)
}

// ListStudiedSince implements store.WordStore.ListStudiedSince
func (s *PostgresWordStore) ListStudiedSince(
	ctx context.Context,
	q store.CandidateQuery,
	since time.Time,
) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		WHERE %s AND w.level <= $2
			AND EXISTS (
				SELECT 1 FROM progress_entries p
				WHERE p.word_id = w.id AND p.owner_id = $1 AND p.studied_at >= $3
			)
		ORDER BY w.level ASC, w.created_at DESC
		LIMIT $4
	`, wordColumns, visibleCond)

	return s.listWords(ctx, query, q.OwnerID, q.MaxLevel, since, q.Limit)
}

// ListMistakesSince implements store.WordStore.ListMistakesSince
// Ordered by most recent mistake first.
func (s *PostgresWordStore) ListMistakesSince(
	ctx context.Context,
	q store.CandidateQuery,
	since time.Time,
) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		JOIN progress_entries p ON p.word_id = w.id
		WHERE p.owner_id = $1 AND p.is_correct = FALSE AND p.studied_at >= $3
			AND %s AND w.level <= $2
		GROUP BY w.id
		ORDER BY MAX(p.studied_at) DESC
		LIMIT $4
	`, wordColumns, visibleCond)

	return s.listWords(ctx, query, q.OwnerID, q.MaxLevel, since, q.Limit)
}

// ListStudied implements store.WordStore.ListStudied
func (s *PostgresWordStore) ListStudied(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		WHERE %s AND w.level <= $2
			AND EXISTS (
				SELECT 1 FROM progress_entries p
				WHERE p.word_id = w.id AND p.owner_id = $1
			)
		ORDER BY w.level ASC, w.created_at DESC
		LIMIT $3
	`, wordColumns, visibleCond)

	return s.listWords(ctx, query, q.OwnerID, q.MaxLevel, q.Limit)
}

// ListRecentlyStudied implements store.WordStore.ListRecentlyStudied
// Ordered by the owner's most recent progress entry, newest first.
func (s *PostgresWordStore) ListRecentlyStudied(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM words w
		JOIN progress_entries p ON p.word_id = w.id
		WHERE p.owner_id = $1 AND %s AND w.level <= $2
		GROUP BY w.id
		ORDER BY MAX(p.studied_at) DESC
		LIMIT $3
	`, wordColumns, visibleCond)

	return s.listWords(ctx, query, q.OwnerID, q.MaxLevel, q.Limit)
}

// listWords runs a word query, scans the rows, and hydrates tags.
func (s *PostgresWordStore) listWords(ctx context.Context, query string, args ...any) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("word query failed", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var words []*domain.Word
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			log.Error("failed to scan word row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	if err := s.attachTags(ctx, words); err != nil {
		return nil, err
	}

	return words, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWord scans one word row using the wordColumns order.
func scanWord(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	var status string
	var nextReview, lastReviewed sql.NullTime

	err := row.Scan(
		&word.ID,
		&word.OwnerID,
		&word.Text,
		&word.Translation,
		&word.Example,
		&word.Language,
		&status,
		&word.Level,
		&nextReview,
		&lastReviewed,
		&word.ReviewCount,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	word.ApprovalStatus = domain.ApprovalStatus(status)
	if nextReview.Valid {
		t := nextReview.Time
		word.NextReviewAt = &t
	}
	if lastReviewed.Valid {
		t := lastReviewed.Time
		word.LastReviewedAt = &t
	}

	return &word, nil
}

// attachTags populates Tags on the given words in one query.
func (s *PostgresWordStore) attachTags(ctx context.Context, words []*domain.Word) error {
	if len(words) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(words))
	byID := make(map[uuid.UUID]*domain.Word, len(words))
	for i, w := range words {
		ids[i] = w.ID
		byID[w.ID] = w
	}

	query := `
		SELECT wt.word_id, t.id, t.name
		FROM word_tags wt
		JOIN tags t ON t.id = wt.tag_id
		WHERE wt.word_id = ANY($1)
		ORDER BY t.name
	`
	rows, err := s.db.QueryContext(ctx, query, ids)
	if err != nil {
		return MapError(err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var wordID uuid.UUID
		var tag domain.Tag
		if err := rows.Scan(&wordID, &tag.ID, &tag.Name); err != nil {
			return MapError(err)
		}
		if word, ok := byID[wordID]; ok {
			word.Tags = append(word.Tags, tag)
		}
	}
	return MapError(rows.Err())
}

// replaceTags rewrites the word's tag links to match the given set.
func (s *PostgresWordStore) replaceTags(ctx context.Context, wordID uuid.UUID, tags []domain.Tag) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM word_tags WHERE word_id = $1`, wordID); err != nil {
		return MapError(err)
	}

	for _, tag := range tags {
		_, err := s.db.ExecContext(
			ctx,
			`INSERT INTO word_tags (word_id, tag_id) VALUES ($1, $2)`,
			wordID,
			tag.ID,
		)
		if err != nil {
			return MapError(err)
		}
	}
	return nil
}
