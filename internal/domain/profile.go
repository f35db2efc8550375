package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Proficiency tier bounds. Tiers follow the six CEFR-like ordinals.
const (
	MinTier = 1
	MaxTier = 6
)

// DefaultDailyGoal is the number of answers per day a new profile targets.
const DefaultDailyGoal = 10

// LearnerProfile validation errors
var (
	// ErrProfileUserIDEmpty is returned when a profile's user ID is empty or nil.
	ErrProfileUserIDEmpty = errors.New("profile user ID cannot be empty")

	// ErrInvalidDailyGoal is returned when a profile's daily goal is not positive.
	ErrInvalidDailyGoal = errors.New("daily goal must be positive")

	// ErrInvalidStreak is returned when a cached streak is negative.
	ErrInvalidStreak = errors.New("streak days cannot be negative")
)

// ProficiencyTier is the learner's overall level on a six-tier ordinal
// scale. It gates which word levels are eligible practice candidates.
type ProficiencyTier int

// MaxWordLevel returns the highest word level a learner of this tier may be
// shown. The mapping widens monotonically: tier 1 allows only level 1, tier 2
// levels 1-2, and tiers 5 and 6 allow everything.
func (t ProficiencyTier) MaxWordLevel() int {
	if int(t) >= MaxLevel {
		return MaxLevel
	}
	return int(t)
}

// Valid reports whether the tier is within the six-tier scale.
func (t ProficiencyTier) Valid() bool {
	return int(t) >= MinTier && int(t) <= MaxTier
}

// LearnerProfile holds per-learner study settings and cached study-day
// aggregates. StreakDays and LastPracticeDate are caches only: the progress
// ledger is authoritative and the stats service re-derives them on demand.
type LearnerProfile struct {
	UserID           uuid.UUID       `json:"user_id"`
	DailyGoal        int             `json:"daily_goal"`
	ProficiencyTier  ProficiencyTier `json:"proficiency_tier"`
	StreakDays       int             `json:"streak_days"`
	LastPracticeDate *time.Time      `json:"last_practice_date,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewLearnerProfile creates a profile for the given user with the default
// daily goal and the given starting tier.
// Returns an error if validation fails.
func NewLearnerProfile(userID uuid.UUID, tier ProficiencyTier) (*LearnerProfile, error) {
	now := time.Now().UTC()
	profile := &LearnerProfile{
		UserID:          userID,
		DailyGoal:       DefaultDailyGoal,
		ProficiencyTier: tier,
		StreakDays:      0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the LearnerProfile has valid data.
// Returns an error if any field fails validation.
func (p *LearnerProfile) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}

	if p.DailyGoal <= 0 {
		return ErrInvalidDailyGoal
	}

	if !p.ProficiencyTier.Valid() {
		return ErrInvalidTier
	}

	if p.StreakDays < 0 {
		return ErrInvalidStreak
	}

	return nil
}
