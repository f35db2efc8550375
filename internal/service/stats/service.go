// Package stats derives daily study numbers from the progress ledger. The
// ledger is authoritative: the profile's cached streak fields are refreshed
// from these derivations, never trusted over them.
package stats

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/platform/logger"
	"github.com/rillka/wordbank-api/internal/store"
)

// streakScanLimit bounds the first study-day query. When a year's worth of
// returned days is one unbroken run, the scan falls back to the full ledger
// so the streak is never under-reported.
const streakScanLimit = 366

// DailyStatus is one day's study picture for a learner.
type DailyStatus struct {
	TodayCount      int `json:"today_count"`
	DailyGoal       int `json:"daily_goal"`
	GoalProgressPct int `json:"goal_progress_pct"`
	CurrentStreak   int `json:"current_streak"`
}

// Service derives study statistics from the progress ledger.
type Service interface {
	// Status computes today's answer count, goal progress, and the current
	// consecutive-day streak for the given owner. The caller supplies
	// "today" so the computation stays deterministic.
	Status(ctx context.Context, ownerID uuid.UUID, today time.Time) (*DailyStatus, error)

	// RefreshProfileCache recomputes the streak from the ledger and writes
	// it onto the profile's denormalized fields. The cache exists only to
	// cheapen profile reads; on disagreement the ledger wins.
	RefreshProfileCache(ctx context.Context, ownerID uuid.UUID, today time.Time) error
}

// Verify interface compliance at compile time.
var _ Service = (*serviceImpl)(nil)

type serviceImpl struct {
	progressStore store.ProgressStore
	profileStore  store.ProfileStore
	logger        *slog.Logger
}

// NewService creates a stats service.
func NewService(
	progressStore store.ProgressStore,
	profileStore store.ProfileStore,
	log *slog.Logger,
) Service {
	if progressStore == nil {
		panic("progressStore cannot be nil")
	}
	if profileStore == nil {
		panic("profileStore cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &serviceImpl{
		progressStore: progressStore,
		profileStore:  profileStore,
		logger:        log.With(slog.String("component", "stats_service")),
	}
}

// Status implements Service.Status.
func (s *serviceImpl) Status(
	ctx context.Context,
	ownerID uuid.UUID,
	today time.Time,
) (*DailyStatus, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByUserID(ctx, ownerID)
	if err != nil && !errors.Is(err, store.ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	dailyGoal := 0
	if profile != nil {
		dailyGoal = profile.DailyGoal
	}

	todayStart := today.UTC().Truncate(24 * time.Hour)
	todayCount, err := s.progressStore.CountBetween(
		ctx, ownerID, todayStart, todayStart.Add(24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to count today's entries: %w", err)
	}

	streak, _, err := s.streakFromLedger(ctx, ownerID, todayStart)
	if err != nil {
		return nil, err
	}

	status := &DailyStatus{
		TodayCount:      todayCount,
		DailyGoal:       dailyGoal,
		GoalProgressPct: goalProgressPct(todayCount, dailyGoal),
		CurrentStreak:   streak,
	}

	log.Debug("computed daily status",
		slog.String("owner_id", ownerID.String()),
		slog.Int("today_count", status.TodayCount),
		slog.Int("streak", status.CurrentStreak))

	return status, nil
}

// RefreshProfileCache implements Service.RefreshProfileCache.
func (s *serviceImpl) RefreshProfileCache(
	ctx context.Context,
	ownerID uuid.UUID,
	today time.Time,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := s.profileStore.GetByUserID(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	todayStart := today.UTC().Truncate(24 * time.Hour)
	streak, days, err := s.streakFromLedger(ctx, ownerID, todayStart)
	if err != nil {
		return err
	}

	profile.StreakDays = streak
	if len(days) > 0 {
		last := days[0].UTC().Truncate(24 * time.Hour)
		profile.LastPracticeDate = &last
	}

	if err := s.profileStore.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to update profile cache: %w", err)
	}

	log.Debug("refreshed profile streak cache",
		slog.String("owner_id", ownerID.String()),
		slog.Int("streak", profile.StreakDays))
	return nil
}

// streakFromLedger derives the current streak from the study-day history.
// The first query is capped at streakScanLimit; if every returned day is one
// consecutive run filling the cap, the true streak may be longer, so the
// whole ledger is rescanned unbounded. Returned days are newest first.
func (s *serviceImpl) streakFromLedger(
	ctx context.Context,
	ownerID uuid.UUID,
	todayStart time.Time,
) (int, []time.Time, error) {
	days, err := s.progressStore.ListStudyDays(ctx, ownerID, streakScanLimit)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to list study days: %w", err)
	}

	streak := currentStreak(days, todayStart)
	if len(days) == streakScanLimit && streak == streakScanLimit {
		days, err = s.progressStore.ListStudyDays(ctx, ownerID, 0)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to list study days: %w", err)
		}
		streak = currentStreak(days, todayStart)
	}
	return streak, days, nil
}

// goalProgressPct is min(100, round(count/goal*100)); a zero goal yields 0.
func goalProgressPct(todayCount, dailyGoal int) int {
	if dailyGoal <= 0 {
		return 0
	}
	pct := int(math.Round(float64(todayCount) / float64(dailyGoal) * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// currentStreak walks backward day by day from today and counts consecutive
// days with at least one ledger entry, stopping at the first gap.
func currentStreak(studyDays []time.Time, todayStart time.Time) int {
	studied := make(map[time.Time]bool, len(studyDays))
	for _, d := range studyDays {
		studied[d.UTC().Truncate(24*time.Hour)] = true
	}

	streak := 0
	for day := todayStart; studied[day]; day = day.AddDate(0, 0, -1) {
		streak++
	}
	return streak
}
