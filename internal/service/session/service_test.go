package session

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/mocks"
	"github.com/rillka/wordbank-api/internal/service/practice"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePracticeService returns a fixed candidate list.
type fakePracticeService struct {
	candidates []*domain.Word
	err        error
	gotMode    practice.Mode
}

func (f *fakePracticeService) Candidates(
	ctx context.Context,
	ownerID uuid.UUID,
	mode practice.Mode,
	limit int,
) ([]*domain.Word, error) {
	f.gotMode = mode
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && len(f.candidates) > limit {
		return f.candidates[:limit], nil
	}
	return f.candidates, nil
}

// fakeReviewService records dispatched answers.
type fakeReviewService struct {
	due              []*domain.Word
	submittedReviews []uuid.UUID
	recordedAttempts []uuid.UUID
}

func (f *fakeReviewService) DueWords(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Word, error) {
	return f.due, nil
}

func (f *fakeReviewService) SubmitReview(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer review.Answer,
) (*review.Result, error) {
	f.submittedReviews = append(f.submittedReviews, wordID)
	word := &domain.Word{ID: wordID, OwnerID: ownerID, Translation: "translation"}
	entry := &domain.ProgressEntry{ID: uuid.New(), WordID: wordID, OwnerID: ownerID}
	return &review.Result{Word: word, Entry: entry, IntervalDays: 3}, nil
}

func (f *fakeReviewService) RecordAttempt(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer review.Answer,
) (*domain.ProgressEntry, error) {
	f.recordedAttempts = append(f.recordedAttempts, wordID)
	return &domain.ProgressEntry{ID: uuid.New(), WordID: wordID, OwnerID: ownerID}, nil
}

type testFixture struct {
	svc      *serviceImpl
	practice *fakePracticeService
	review   *fakeReviewService
	words    *mocks.MockWordStore
	profiles *mocks.MockProfileStore
	tags     *mocks.MockTagStore
	ownerID  uuid.UUID
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		practice: &fakePracticeService{},
		review:   &fakeReviewService{},
		words:    mocks.NewMockWordStore(),
		profiles: mocks.NewMockProfileStore(),
		tags:     mocks.NewMockTagStore(),
		ownerID:  uuid.New(),
	}

	profile, err := domain.NewLearnerProfile(f.ownerID, 5)
	require.NoError(t, err)
	require.NoError(t, f.profiles.Create(context.Background(), profile))

	f.svc = NewService(
		f.practice, f.review, f.words, f.profiles, f.tags, slog.Default(),
	).(*serviceImpl)
	f.svc.rng = rand.New(rand.NewSource(42))
	return f
}

func wordsOwnedBy(t *testing.T, ownerID uuid.UUID, n int) []*domain.Word {
	t.Helper()
	words := make([]*domain.Word, 0, n)
	for i := 0; i < n; i++ {
		w, err := domain.NewWord(ownerID, fmt.Sprintf("word-%d", i), "translation", "", "en")
		require.NoError(t, err)
		words = append(words, w)
	}
	return words
}

func TestStart_RejectsBadRequests(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Start(ctx, f.ownerID, StartRequest{Mode: "cram", Limit: 10})
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = f.svc.Start(ctx, f.ownerID, StartRequest{Mode: "week", Limit: 0})
	assert.ErrorIs(t, err, ErrInvalidLimit)

	missingTag := uuid.New()
	_, err = f.svc.Start(ctx, f.ownerID, StartRequest{Mode: "week", Limit: 10, TagID: &missingTag})
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestStart_EmptyDeckIsNotAnError(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: "new-words", Limit: 10})
	require.NoError(t, err)
	assert.Empty(t, deck.Words)
}

func TestStart_DueModeUsesReviewPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.review.due = wordsOwnedBy(t, f.ownerID, 6)

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: ModeDue, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, deck.Words, 6)
}

func TestStart_DueModeBackfillsWhenNothingIsDue(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.review.due = nil

	reserve := wordsOwnedBy(t, f.ownerID, 8)
	f.words.ListRecentlyStudiedFn = func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
		if len(reserve) > q.Limit {
			return reserve[:q.Limit], nil
		}
		return reserve, nil
	}

	// A learner who reviewed everything this morning still gets a deck:
	// the recently studied reserve tops up the empty due set.
	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: ModeDue, Limit: 6})
	require.NoError(t, err)
	assert.Len(t, deck.Words, 6)
}

func TestStart_LanguageFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	candidates := wordsOwnedBy(t, f.ownerID, 8)
	for i := 0; i < 5; i++ {
		candidates[i].Language = "de"
	}
	f.practice.candidates = candidates

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{
		Mode: "week", Limit: 10, Language: "de",
	})
	require.NoError(t, err)
	assert.Len(t, deck.Words, 5)
	for _, w := range deck.Words {
		assert.Equal(t, "de", w.Language)
	}

	deckAll, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{
		Mode: "week", Limit: 10, Language: LanguageAll,
	})
	require.NoError(t, err)
	assert.Len(t, deckAll.Words, 8, `"All" disables the language filter`)
}

func TestStart_TagFilter(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	tag := &domain.Tag{ID: uuid.New(), Name: "travel"}
	require.NoError(t, f.tags.Create(context.Background(), tag))

	candidates := wordsOwnedBy(t, f.ownerID, 6)
	for i := 0; i < 5; i++ {
		candidates[i].Tags = []domain.Tag{*tag}
	}
	f.practice.candidates = candidates

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{
		Mode: "month", Limit: 10, TagID: &tag.ID,
	})
	require.NoError(t, err)
	assert.Len(t, deck.Words, 5)
	for _, w := range deck.Words {
		assert.True(t, w.HasTag(tag.ID))
	}
}

func TestStart_BackfillTopsUpUndersizedDeck(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	// 3 fresh candidates, 20 recently studied words available as reserve.
	fresh := wordsOwnedBy(t, f.ownerID, 3)
	reserve := wordsOwnedBy(t, f.ownerID, 20)
	f.practice.candidates = fresh
	f.words.ListRecentlyStudiedFn = func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
		if len(reserve) > q.Limit {
			return reserve[:q.Limit], nil
		}
		return reserve, nil
	}

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: "new-words", Limit: 10})
	require.NoError(t, err)

	require.Len(t, deck.Words, 10)
	seen := make(map[uuid.UUID]bool)
	for _, w := range deck.Words {
		assert.False(t, seen[w.ID], "no duplicates after backfill")
		seen[w.ID] = true
	}
	// Fresh material leads the deck.
	for i, w := range fresh {
		assert.Equal(t, w.ID, deck.Words[i].ID)
	}
}

func TestStart_BackfillSkippedWhenFloorMet(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.practice.candidates = wordsOwnedBy(t, f.ownerID, 5)

	reserveCalled := false
	f.words.ListRecentlyStudiedFn = func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
		reserveCalled = true
		return nil, nil
	}

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: "week", Limit: 10})
	require.NoError(t, err)
	assert.Len(t, deck.Words, 5)
	assert.False(t, reserveCalled, "floor is min(limit, 5); five candidates need no backfill")
}

func TestStart_BackfillFloorCappedByLimit(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	f.practice.candidates = wordsOwnedBy(t, f.ownerID, 3)

	reserveCalled := false
	f.words.ListRecentlyStudiedFn = func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
		reserveCalled = true
		return nil, nil
	}

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: "week", Limit: 3})
	require.NoError(t, err)
	assert.Len(t, deck.Words, 3)
	assert.False(t, reserveCalled, "limit 3 lowers the floor to 3")
}

func TestStart_MostRecentlyExcludedLandsLast(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	reserve := wordsOwnedBy(t, f.ownerID, 3) // most-recent-first
	f.words.ListRecentlyStudiedFn = func(ctx context.Context, q store.CandidateQuery) ([]*domain.Word, error) {
		return reserve, nil
	}

	deck, err := f.svc.Start(context.Background(), f.ownerID, StartRequest{Mode: "new-words", Limit: 10})
	require.NoError(t, err)

	require.Len(t, deck.Words, 3)
	assert.Equal(t, reserve[0].ID, deck.Words[2].ID, "most recently studied comes last")
	assert.Equal(t, reserve[2].ID, deck.Words[0].ID)
}

func TestSubmitAnswer_DispatchesByOwnership(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	owned := wordsOwnedBy(t, f.ownerID, 1)[0]
	foreign := wordsOwnedBy(t, uuid.New(), 1)[0]
	foreign.ApprovalStatus = domain.ApprovalStatusApproved
	f.words.Add(owned, foreign)

	result, err := f.svc.SubmitAnswer(ctx, f.ownerID, owned.ID, review.Answer{IsCorrect: true}, Counters{})
	require.NoError(t, err)
	assert.True(t, result.Scheduled)
	assert.Equal(t, []uuid.UUID{owned.ID}, f.review.submittedReviews)

	result, err = f.svc.SubmitAnswer(ctx, f.ownerID, foreign.ID, review.Answer{IsCorrect: false}, Counters{})
	require.NoError(t, err)
	assert.False(t, result.Scheduled)
	assert.Equal(t, []uuid.UUID{foreign.ID}, f.review.recordedAttempts)
	assert.Equal(t, "translation", result.CorrectAnswer)
}

func TestSubmitAnswer_AdvancesSessionCounters(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	word := wordsOwnedBy(t, f.ownerID, 1)[0]
	f.words.Add(word)

	// Three correct answers in, streak broken once along the way.
	prior := Counters{Attempted: 4, Correct: 3, AnswerStreak: 2, BestStreak: 2}

	result, err := f.svc.SubmitAnswer(ctx, f.ownerID, word.ID, review.Answer{IsCorrect: true}, prior)
	require.NoError(t, err)
	assert.Equal(t, Counters{Attempted: 5, Correct: 4, AnswerStreak: 3, BestStreak: 3}, result.Counters)

	result, err = f.svc.SubmitAnswer(ctx, f.ownerID, word.ID, review.Answer{IsCorrect: false}, result.Counters)
	require.NoError(t, err)
	assert.Equal(t, Counters{Attempted: 6, Correct: 4, AnswerStreak: 0, BestStreak: 3}, result.Counters)
}

func TestSubmitAnswer_UnknownWord(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	_, err := f.svc.SubmitAnswer(context.Background(), f.ownerID, uuid.New(), review.Answer{}, Counters{})
	assert.ErrorIs(t, err, review.ErrWordNotFound)
}
