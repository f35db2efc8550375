// Package session orchestrates practice sessions: it assembles the deck
// (candidates or the due set, filtered and backfilled), and dispatches each
// answer to the right persistence path.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/platform/logger"
	"github.com/rillka/wordbank-api/internal/service/practice"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/store"
	"github.com/samber/lo"
)

// ModeDue requests the due set instead of a practice candidate strategy.
const ModeDue = "due"

// LanguageAll disables the language filter.
const LanguageAll = "All"

// backfillFloor is the candidate count below which the deck is topped up
// from recently studied words. A learner who just practiced should still
// get a session, just one that prefers fresher material.
const backfillFloor = 5

// Session service errors
var (
	// ErrUnknownMode indicates the requested mode is neither "due" nor a
	// practice strategy. Rejected before any read.
	ErrUnknownMode = errors.New("unknown session mode")

	// ErrUnknownTag indicates the tag filter references a tag that does not
	// exist. Rejected before any candidate read.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrInvalidLimit indicates a non-positive session limit.
	ErrInvalidLimit = errors.New("session limit must be positive")
)

// StartRequest describes the session a learner wants.
type StartRequest struct {
	Mode     string
	Limit    int
	Language string     // empty or "All" disables the filter
	TagID    *uuid.UUID // nil disables the filter
}

// Deck is an assembled session: the ordered word list the learner will walk
// through. An empty deck means no material was available, which is a normal
// outcome, not an error.
type Deck struct {
	Mode  string
	Words []*domain.Word
}

// AnswerResult is the outcome of persisting one answer.
type AnswerResult struct {
	Word          *domain.Word
	Entry         *domain.ProgressEntry
	CorrectAnswer string
	// Scheduled reports whether this answer moved the word's review
	// schedule (owned words) or only appended to the ledger (foreign
	// approved words).
	Scheduled bool
	// Counters are the session tallies after this answer. The session is
	// client-driven, so the caller supplies its prior counters and gets
	// back the advanced copy.
	Counters Counters
}

// Service assembles decks and records answers.
type Service interface {
	// Start validates the request, fetches and filters the deck, and
	// applies the backfill rule. Returns an empty deck when nothing is
	// available.
	Start(ctx context.Context, ownerID uuid.UUID, req StartRequest) (*Deck, error)

	// SubmitAnswer persists one answer: owned words go through the review
	// path (schedule mutation plus ledger append, atomic), foreign words
	// only append to the ledger. The caller's prior session counters are
	// advanced by this answer and returned in the result.
	SubmitAnswer(ctx context.Context, ownerID, wordID uuid.UUID, answer review.Answer, prior Counters) (*AnswerResult, error)
}

// Verify interface compliance at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	practiceService practice.Service
	reviewService   review.Service
	wordStore       store.WordStore
	profileStore    store.ProfileStore
	tagStore        store.TagStore
	logger          *slog.Logger
	rng             *rand.Rand
}

// NewService creates a session orchestrator.
func NewService(
	practiceService practice.Service,
	reviewService review.Service,
	wordStore store.WordStore,
	profileStore store.ProfileStore,
	tagStore store.TagStore,
	log *slog.Logger,
) Service {
	if practiceService == nil {
		panic("practiceService cannot be nil")
	}
	if reviewService == nil {
		panic("reviewService cannot be nil")
	}
	if wordStore == nil {
		panic("wordStore cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if tagStore == nil {
		panic("tagStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		practiceService: practiceService,
		reviewService:   reviewService,
		wordStore:       wordStore,
		profileStore:    profileStore,
		tagStore:        tagStore,
		logger:          log.With(slog.String("component", "session_service")),
		rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start implements Service.Start.
func (s *serviceImpl) Start(
	ctx context.Context,
	ownerID uuid.UUID,
	req StartRequest,
) (*Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if req.Limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if req.Mode != ModeDue && !practice.Mode(req.Mode).Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, req.Mode)
	}
	if req.TagID != nil {
		if _, err := s.tagStore.GetByID(ctx, *req.TagID); err != nil {
			if errors.Is(err, store.ErrTagNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownTag, req.TagID)
			}
			return nil, fmt.Errorf("failed to validate tag filter: %w", err)
		}
	}

	var words []*domain.Word
	var err error
	if req.Mode == ModeDue {
		words, err = s.reviewService.DueWords(ctx, ownerID, req.Limit)
	} else {
		words, err = s.practiceService.Candidates(ctx, ownerID, practice.Mode(req.Mode), req.Limit)
	}
	if err != nil {
		return nil, err
	}

	words = s.applyFilters(words, req)

	words, err = s.backfill(ctx, ownerID, words, req)
	if err != nil {
		return nil, err
	}

	if practice.Mode(req.Mode) == practice.ModeAllStudied {
		s.rng.Shuffle(len(words), func(i, j int) {
			words[i], words[j] = words[j], words[i]
		})
	}

	if len(words) > req.Limit {
		words = words[:req.Limit]
	}

	log.Debug("session started",
		slog.String("owner_id", ownerID.String()),
		slog.String("mode", req.Mode),
		slog.Int("deck_size", len(words)))

	return &Deck{Mode: req.Mode, Words: words}, nil
}

// applyFilters restricts the deck by tag and language.
func (s *serviceImpl) applyFilters(words []*domain.Word, req StartRequest) []*domain.Word {
	if req.TagID != nil {
		words = lo.Filter(words, func(w *domain.Word, _ int) bool {
			return w.HasTag(*req.TagID)
		})
	}
	if req.Language != "" && req.Language != LanguageAll {
		words = lo.Filter(words, func(w *domain.Word, _ int) bool {
			return w.Language == req.Language
		})
	}
	return words
}

// backfill tops up an undersized deck from recently studied words. Reserve
// words come back most-recent-first; they are appended in reverse so the
// most recently excluded word lands last, after all fresher material.
func (s *serviceImpl) backfill(
	ctx context.Context,
	ownerID uuid.UUID,
	words []*domain.Word,
	req StartRequest,
) ([]*domain.Word, error) {
	floor := req.Limit
	if floor > backfillFloor {
		floor = backfillFloor
	}
	if len(words) >= floor {
		return words, nil
	}

	profile, err := s.profileStore.GetByUserID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile for backfill: %w", err)
	}

	reserve, err := s.wordStore.ListRecentlyStudied(ctx, store.CandidateQuery{
		OwnerID:  ownerID,
		MaxLevel: profile.ProficiencyTier.MaxWordLevel(),
		Limit:    req.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load backfill reserve: %w", err)
	}

	reserve = s.applyFilters(reserve, req)
	seen := lo.SliceToMap(words, func(w *domain.Word) (uuid.UUID, bool) {
		return w.ID, true
	})

	for i := len(reserve) - 1; i >= 0; i-- {
		if len(words) >= req.Limit {
			break
		}
		w := reserve[i]
		if seen[w.ID] {
			continue
		}
		seen[w.ID] = true
		words = append(words, w)
	}
	return words, nil
}

// SubmitAnswer implements Service.SubmitAnswer.
func (s *serviceImpl) SubmitAnswer(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer review.Answer,
	prior Counters,
) (*AnswerResult, error) {
	word, err := s.wordStore.GetByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, store.ErrWordNotFound) {
			return nil, review.ErrWordNotFound
		}
		return nil, fmt.Errorf("failed to get word: %w", err)
	}

	counters := prior.Record(answer.IsCorrect)

	if word.OwnerID == ownerID {
		result, err := s.reviewService.SubmitReview(ctx, ownerID, wordID, answer)
		if err != nil {
			return nil, err
		}
		return &AnswerResult{
			Word:          result.Word,
			Entry:         result.Entry,
			CorrectAnswer: result.Word.Translation,
			Scheduled:     true,
			Counters:      counters,
		}, nil
	}

	entry, err := s.reviewService.RecordAttempt(ctx, ownerID, wordID, answer)
	if err != nil {
		return nil, err
	}
	return &AnswerResult{
		Word:          word,
		Entry:         entry,
		CorrectAnswer: word.Translation,
		Scheduled:     false,
		Counters:      counters,
	}, nil
}
