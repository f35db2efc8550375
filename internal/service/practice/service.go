// Package practice selects practice candidates. Every mode answers the same
// question with a different recency filter: given everything this learner is
// allowed to see, which words are worth drilling right now?
package practice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/platform/logger"
	"github.com/rillka/wordbank-api/internal/store"
)

// Mode names a candidate selection strategy.
type Mode string

// Supported practice modes.
const (
	ModeNewWords   Mode = "new-words"
	ModeMistakes   Mode = "mistakes"
	ModeWeek       Mode = "week"
	ModeThreeWeeks Mode = "3weeks"
	ModeMonth      Mode = "month"
	ModeAllStudied Mode = "all-studied"
)

// Recency windows for the time-boxed modes.
const (
	weekWindow       = 7 * 24 * time.Hour
	threeWeeksWindow = 21 * 24 * time.Hour
	monthWindow      = 30 * 24 * time.Hour
)

// ErrUnknownMode is returned when a caller requests a mode that is not in
// the strategy table. An unrecognized mode is a caller bug, never an empty
// result.
var ErrUnknownMode = errors.New("unknown practice mode")

// ErrProfileNotFound is returned when the learner has no profile; tier
// gating cannot be applied without one.
var ErrProfileNotFound = errors.New("learner profile not found")

// Valid reports whether the mode is one of the six supported strategies.
func (m Mode) Valid() bool {
	switch m {
	case ModeNewWords, ModeMistakes, ModeWeek, ModeThreeWeeks, ModeMonth, ModeAllStudied:
		return true
	default:
		return false
	}
}

// Service selects practice candidates for a learner.
type Service interface {
	// Candidates returns up to limit words eligible for the given mode.
	// Words are visible to the learner (owned or approved), capped at the
	// learner's tier level, and ordered by level ascending then newest
	// first. An empty result is a normal outcome for sparse accounts.
	// Returns ErrUnknownMode for a mode outside the strategy table.
	Candidates(ctx context.Context, ownerID uuid.UUID, mode Mode, limit int) ([]*domain.Word, error)
}

// Verify interface compliance at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	wordStore    store.WordStore
	profileStore store.ProfileStore
	logger       *slog.Logger
	timeFunc     func() time.Time
}

// NewService creates a practice candidate service.
func NewService(
	wordStore store.WordStore,
	profileStore store.ProfileStore,
	log *slog.Logger,
) Service {
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		wordStore:    wordStore,
		profileStore: profileStore,
		logger:       log.With(slog.String("component", "practice_service")),
		timeFunc:     time.Now,
	}
}

// Candidates implements Service.Candidates.
func (s *serviceImpl) Candidates(
	ctx context.Context,
	ownerID uuid.UUID,
	mode Mode,
	limit int,
) ([]*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !mode.Valid() {
		log.Warn("rejecting unknown practice mode",
			slog.String("mode", string(mode)),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}

	profile, err := s.profileStore.GetByUserID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load learner profile: %w", err)
	}

	query := store.CandidateQuery{
		OwnerID:  ownerID,
		MaxLevel: profile.ProficiencyTier.MaxWordLevel(),
		Limit:    limit,
	}
	now := s.timeFunc().UTC()

	var words []*domain.Word
	switch mode {
	case ModeNewWords:
		words, err = s.wordStore.ListUnstudied(ctx, query)
	case ModeMistakes:
		words, err = s.wordStore.ListMistakesSince(ctx, query, now.Add(-monthWindow))
	case ModeWeek:
		words, err = s.wordStore.ListStudiedSince(ctx, query, now.Add(-weekWindow))
	case ModeThreeWeeks:
		words, err = s.wordStore.ListStudiedSince(ctx, query, now.Add(-threeWeeksWindow))
	case ModeMonth:
		words, err = s.wordStore.ListStudiedSince(ctx, query, now.Add(-monthWindow))
	case ModeAllStudied:
		words, err = s.wordStore.ListStudied(ctx, query)
	}
	if err != nil {
		log.Error("failed to select practice candidates",
			slog.String("error", err.Error()),
			slog.String("mode", string(mode)),
			slog.String("owner_id", ownerID.String()))
		return nil, fmt.Errorf("failed to select %s candidates: %w", mode, err)
	}

	log.Debug("selected practice candidates",
		slog.String("mode", string(mode)),
		slog.String("owner_id", ownerID.String()),
		slog.Int("max_level", query.MaxLevel),
		slog.Int("count", len(words)))

	return words, nil
}
