package scheduler

import (
	"errors"
	"time"

	"github.com/rillka/wordbank-api/internal/domain"
)

// Common errors
var (
	ErrLevelOutOfRange = errors.New("current level outside the valid 1..5 range")
	ErrIncompleteTable = errors.New("interval table must cover every level")
)

// Service defines the interface for scheduling operations.
type Service interface {
	// NextState computes the new level and due timestamp for a word that was
	// just answered. A level outside [1,5] is a caller contract violation and
	// returns ErrLevelOutOfRange without computing anything.
	NextState(currentLevel int, isCorrect bool, now time.Time) (ReviewState, error)

	// IntervalDays exposes the configured interval for a level, mainly for
	// presentation ("come back in N days").
	IntervalDays(level int) (int, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	table IntervalTable
}

// NewDefaultService creates a scheduling service with the standard
// 1/3/7/14/30 day interval table.
func NewDefaultService() Service {
	svc, err := NewServiceWithTable(DefaultIntervalTable())
	if err != nil {
		// The default table covers every level; this cannot happen.
		panic(err)
	}
	return svc
}

// NewServiceWithTable creates a scheduling service with a custom interval
// table. The table must define an interval for every level in [1,5].
func NewServiceWithTable(table IntervalTable) (Service, error) {
	for level := domain.MinLevel; level <= domain.MaxLevel; level++ {
		if _, ok := table[level]; !ok {
			return nil, ErrIncompleteTable
		}
	}

	return &defaultService{table: table}, nil
}

// NextState implements the Service interface.
func (s *defaultService) NextState(
	currentLevel int,
	isCorrect bool,
	now time.Time,
) (ReviewState, error) {
	if currentLevel < domain.MinLevel || currentLevel > domain.MaxLevel {
		return ReviewState{}, ErrLevelOutOfRange
	}

	return nextState(currentLevel, isCorrect, now, s.table), nil
}

// IntervalDays implements the Service interface.
func (s *defaultService) IntervalDays(level int) (int, error) {
	days, ok := s.table.IntervalDays(level)
	if !ok {
		return 0, ErrLevelOutOfRange
	}
	return days, nil
}
