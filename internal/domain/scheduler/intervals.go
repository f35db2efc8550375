// Package scheduler implements the review scheduling algorithm: a fixed
// interval table indexed by mastery level and the pure level transition
// applied after each answer.
package scheduler

import "time"

// IntervalTable maps a mastery level to the number of days until the word is
// due again. The index is the level the word holds after the transition.
type IntervalTable map[int]int

// DefaultIntervalTable returns the standard schedule: words at level 1 come
// back the next day, fully mastered words rest a month.
func DefaultIntervalTable() IntervalTable {
	return IntervalTable{
		1: 1,
		2: 3,
		3: 7,
		4: 14,
		5: 30,
	}
}

// IntervalDays returns the due interval for the given level.
// The second return is false when the level is not in the table.
func (t IntervalTable) IntervalDays(level int) (int, bool) {
	days, ok := t[level]
	return days, ok
}

// NextDue returns the due timestamp for a word that just moved to the given
// level at the given time.
func (t IntervalTable) NextDue(level int, now time.Time) time.Time {
	days := t[level]
	return now.AddDate(0, 0, days)
}
