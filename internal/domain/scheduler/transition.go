package scheduler

import (
	"time"

	"github.com/rillka/wordbank-api/internal/domain"
)

// ReviewState is the result of applying one answer to a word: the new
// mastery level and when the word is due next. The caller persists it
// together with last_reviewed and the review-count increment in a single
// transaction, alongside the progress ledger append.
type ReviewState struct {
	Level        int
	NextReviewAt time.Time
}

// nextLevel applies the level transition: correct answers climb one level,
// wrong answers fall one level, both clamped to [MinLevel, MaxLevel].
func nextLevel(currentLevel int, isCorrect bool) int {
	if isCorrect {
		if currentLevel >= domain.MaxLevel {
			return domain.MaxLevel
		}
		return currentLevel + 1
	}

	if currentLevel <= domain.MinLevel {
		return domain.MinLevel
	}
	return currentLevel - 1
}

// nextState computes the full transition for one answer. Pure: the same
// (level, isCorrect, now) always yields the same result.
func nextState(currentLevel int, isCorrect bool, now time.Time, table IntervalTable) ReviewState {
	level := nextLevel(currentLevel, isCorrect)
	return ReviewState{
		Level:        level,
		NextReviewAt: table.NextDue(level, now),
	}
}
