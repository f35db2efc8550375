package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC)

func seedEntries(t *testing.T, progress *mocks.MockProgressStore, ownerID uuid.UUID, times ...time.Time) {
	t.Helper()
	for _, at := range times {
		entry, err := domain.NewProgressEntry(ownerID, uuid.New(), true, "", 0, at)
		require.NoError(t, err)
		progress.Entries = append(progress.Entries, entry)
	}
}

func newStatsFixture(t *testing.T, dailyGoal int) (*serviceImpl, *mocks.MockProgressStore, *mocks.MockProfileStore, uuid.UUID) {
	t.Helper()

	ownerID := uuid.New()
	progress := mocks.NewMockProgressStore()
	profiles := mocks.NewMockProfileStore()

	profile, err := domain.NewLearnerProfile(ownerID, 3)
	require.NoError(t, err)
	profile.DailyGoal = dailyGoal
	if dailyGoal <= 0 {
		// Bypass validation to model legacy rows with no goal set.
		profiles.Profiles[ownerID] = &domain.LearnerProfile{
			UserID: ownerID, ProficiencyTier: 3,
		}
	} else {
		require.NoError(t, profiles.Create(context.Background(), profile))
	}

	svc := NewService(progress, profiles, nil).(*serviceImpl)
	return svc, progress, profiles, ownerID
}

func TestStatus_EmptyLedger(t *testing.T) {
	t.Parallel()

	svc, _, _, ownerID := newStatsFixture(t, 10)

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)

	assert.Zero(t, status.TodayCount)
	assert.Zero(t, status.GoalProgressPct)
	assert.Zero(t, status.CurrentStreak)
}

func TestStatus_GoalProgress(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 10)

	// 7 answers today out of a goal of 10.
	for i := 0; i < 7; i++ {
		seedEntries(t, progress, ownerID, today.Add(time.Duration(i)*time.Minute))
	}

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)

	assert.Equal(t, 7, status.TodayCount)
	assert.Equal(t, 70, status.GoalProgressPct)
}

func TestStatus_GoalProgressCapsAtHundred(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 5)
	for i := 0; i < 12; i++ {
		seedEntries(t, progress, ownerID, today.Add(time.Duration(i)*time.Minute))
	}

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Equal(t, 100, status.GoalProgressPct)
}

func TestStatus_ZeroGoalYieldsZeroPct(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 0)
	seedEntries(t, progress, ownerID, today)

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Zero(t, status.GoalProgressPct)
}

func TestStatus_TodayCountWindowIsHalfOpen(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 10)
	todayStart := today.Truncate(24 * time.Hour)

	// First and last instants of today count; the boundaries outside do not.
	seedEntries(t, progress, ownerID,
		todayStart,
		todayStart.Add(-time.Second),
		todayStart.Add(24*time.Hour),
		todayStart.Add(24*time.Hour-time.Second),
	)

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Equal(t, 2, status.TodayCount)
}

func TestStatus_StreakWalksBackToFirstGap(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 10)

	// Entries on D, D-1, D-2 but not D-3.
	seedEntries(t, progress, ownerID,
		today,
		today.AddDate(0, 0, -1),
		today.AddDate(0, 0, -2),
		today.AddDate(0, 0, -4),
	)

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Equal(t, 3, status.CurrentStreak)
}

func TestStatus_StreakBreaksWithoutToday(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 10)
	seedEntries(t, progress, ownerID,
		today.AddDate(0, 0, -1),
		today.AddDate(0, 0, -2),
	)

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Zero(t, status.CurrentStreak, "the walk starts at today; a gap there ends it")
}

func TestStatus_StreakLongerThanScanLimit(t *testing.T) {
	t.Parallel()

	svc, progress, _, ownerID := newStatsFixture(t, 10)

	// 400 consecutive study days. The capped first query returns one
	// unbroken run, which triggers the unbounded rescan.
	allDays := make([]time.Time, 400)
	for i := range allDays {
		allDays[i] = today.Truncate(24*time.Hour).AddDate(0, 0, -i)
	}
	progress.ListStudyDaysFn = func(ctx context.Context, id uuid.UUID, limit int) ([]time.Time, error) {
		if limit > 0 && len(allDays) > limit {
			return allDays[:limit], nil
		}
		return allDays, nil
	}

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Equal(t, 400, status.CurrentStreak)
}

func TestStatus_MissingProfileStillComputes(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	progress := mocks.NewMockProgressStore()
	profiles := mocks.NewMockProfileStore()
	svc := NewService(progress, profiles, nil)

	seedEntries(t, progress, ownerID, today)

	status, err := svc.Status(context.Background(), ownerID, today)
	require.NoError(t, err)
	assert.Equal(t, 1, status.TodayCount)
	assert.Zero(t, status.GoalProgressPct)
}

func TestRefreshProfileCache(t *testing.T) {
	t.Parallel()

	svc, progress, profiles, ownerID := newStatsFixture(t, 10)
	seedEntries(t, progress, ownerID,
		today,
		today.AddDate(0, 0, -1),
	)

	require.NoError(t, svc.RefreshProfileCache(context.Background(), ownerID, today))

	profile, err := profiles.GetByUserID(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, 2, profile.StreakDays)
	require.NotNil(t, profile.LastPracticeDate)
	assert.True(t, today.Truncate(24*time.Hour).Equal(*profile.LastPracticeDate))
}
