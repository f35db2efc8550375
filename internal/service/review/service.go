// Package review implements the due set and answer submission. Submitting a
// review is the only write path that touches a word's scheduling fields, and
// it always pairs the word mutation with a progress ledger append in one
// transaction.
package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/domain/scheduler"
	"github.com/rillka/wordbank-api/internal/platform/logger"
	"github.com/rillka/wordbank-api/internal/store"
)

// Answer carries one submitted answer.
type Answer struct {
	IsCorrect bool
	Answer    string
	ElapsedMs int64
}

// Result is what a review submission produced: the word with its new
// scheduling state and the ledger entry that recorded the answer.
type Result struct {
	Word         *domain.Word
	Entry        *domain.ProgressEntry
	IntervalDays int
}

// Service exposes the due set and the two answer paths.
type Service interface {
	// DueWords returns the user's words whose review is due (or never
	// scheduled), weakest first. Limit <= 0 returns the whole due set.
	DueWords(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Word, error)

	// SubmitReview applies one answer to an owned word: the level moves one
	// step, the next due date is set from the new level's interval, and one
	// ledger entry is appended, all atomically.
	// Returns ErrWordNotFound or ErrWordNotOwned on access failures.
	SubmitReview(ctx context.Context, ownerID, wordID uuid.UUID, answer Answer) (*Result, error)

	// RecordAttempt appends a ledger entry without touching the word's
	// schedule. Used for practicing foreign approved words, which the user
	// may drill but never reschedule.
	// Returns ErrWordNotFound or ErrWordNotVisible on access failures.
	RecordAttempt(ctx context.Context, ownerID, wordID uuid.UUID, answer Answer) (*domain.ProgressEntry, error)
}

// Verify interface compliance at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	db            *sql.DB
	wordStore     store.WordStore
	progressStore store.ProgressStore
	scheduler     scheduler.Service
	logger        *slog.Logger
	timeFunc      func() time.Time

	// runTx wraps store.RunInTransaction; injectable so unit tests can run
	// the transaction body without a database handle.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewService creates a review service.
func NewService(
	db *sql.DB,
	wordStore store.WordStore,
	progressStore store.ProgressStore,
	schedulerSvc scheduler.Service,
	log *slog.Logger,
) Service {
	if db == nil {
		panic("db cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if schedulerSvc == nil {
		panic("schedulerSvc cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	s := &serviceImpl{
		db:            db,
		wordStore:     wordStore,
		progressStore: progressStore,
		scheduler:     schedulerSvc,
		logger:        log.With(slog.String("component", "review_service")),
		timeFunc:      time.Now,
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// DueWords implements Service.DueWords.
func (s *serviceImpl) DueWords(
	ctx context.Context,
	ownerID uuid.UUID,
	limit int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	words, err := s.wordStore.ListDue(ctx, ownerID, s.timeFunc().UTC(), limit)
	if err != nil {
		log.Error("failed to list due words",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to list due words: %w", err)
	}

	log.Debug("listed due words",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(words)))
	return words, nil
}

// SubmitReview implements Service.SubmitReview.
func (s *serviceImpl) SubmitReview(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer Answer,
) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc().UTC()

	var result *Result
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		txWords := s.wordStore.WithTx(tx)
		txProgress := s.progressStore.WithTx(tx)

		// Lock the row so concurrent submissions for the same word serialize
		// and each one computes from the state the previous one committed.
		word, err := txWords.GetForUpdate(ctx, wordID)
		if err != nil {
			if errors.Is(err, store.ErrWordNotFound) {
				return ErrWordNotFound
			}
			return fmt.Errorf("failed to get word: %w", err)
		}

		if word.OwnerID != ownerID {
			log.Warn("review attempted on foreign word",
				slog.String("owner_id", ownerID.String()),
				slog.String("word_id", wordID.String()))
			return ErrWordNotOwned
		}

		state, err := s.scheduler.NextState(word.Level, answer.IsCorrect, now)
		if err != nil {
			return fmt.Errorf("failed to compute next review state: %w", err)
		}

		update := store.ReviewUpdate{
			Level:          state.Level,
			NextReviewAt:   state.NextReviewAt,
			LastReviewedAt: now,
			ReviewCount:    word.ReviewCount + 1,
		}
		if err := txWords.ApplyReview(ctx, wordID, update); err != nil {
			return fmt.Errorf("failed to apply review: %w", err)
		}

		entry, err := domain.NewProgressEntry(
			ownerID, wordID, answer.IsCorrect, answer.Answer, answer.ElapsedMs, now)
		if err != nil {
			return fmt.Errorf("failed to build progress entry: %w", err)
		}
		if err := txProgress.Create(ctx, entry); err != nil {
			return fmt.Errorf("failed to append progress entry: %w", err)
		}

		word.Level = state.Level
		word.NextReviewAt = &state.NextReviewAt
		word.LastReviewedAt = &update.LastReviewedAt
		word.ReviewCount = update.ReviewCount

		intervalDays, err := s.scheduler.IntervalDays(state.Level)
		if err != nil {
			return fmt.Errorf("failed to look up interval: %w", err)
		}

		result = &Result{Word: word, Entry: entry, IntervalDays: intervalDays}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrWordNotFound) || errors.Is(err, ErrWordNotOwned) {
			return nil, err
		}
		log.Error("failed to submit review",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("word_id", wordID.String()))
		return nil, fmt.Errorf("failed to submit review: %w", err)
	}

	log.Debug("review submitted",
		slog.String("owner_id", ownerID.String()),
		slog.String("word_id", wordID.String()),
		slog.Bool("correct", answer.IsCorrect),
		slog.Int("new_level", result.Word.Level),
		slog.Time("next_review_at", *result.Word.NextReviewAt))

	return result, nil
}

// RecordAttempt implements Service.RecordAttempt.
func (s *serviceImpl) RecordAttempt(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer Answer,
) (*domain.ProgressEntry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc().UTC()

	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	if !word.VisibleTo(ownerID) {
		log.Warn("attempt recorded against invisible word",
			slog.String("owner_id", ownerID.String()),
			slog.String("word_id", wordID.String()))
		return nil, ErrWordNotVisible
	}

	entry, err := domain.NewProgressEntry(
		ownerID, wordID, answer.IsCorrect, answer.Answer, answer.ElapsedMs, now)
	if err != nil {
		return nil, fmt.Errorf("failed to build progress entry: %w", err)
	}

	if err := s.progressStore.Create(ctx, entry); err != nil {
		log.Error("failed to append progress entry",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()),
			slog.String("word_id", wordID.String()))
		return nil, fmt.Errorf("failed to append progress entry: %w", err)
	}

	return entry, nil
}
