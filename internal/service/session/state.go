package session

import (
	"errors"
	"math/rand"

	"github.com/rillka/wordbank-api/internal/domain"
)

// Status is the lifecycle phase of one practice session.
type Status string

// Session statuses. A session with no words never leaves Idle.
const (
	StatusIdle     Status = "idle"
	StatusActive   Status = "active"
	StatusComplete Status = "complete"
)

// ErrSessionComplete is returned when an answer is recorded against a
// session that already ran out of words. Complete is terminal.
var ErrSessionComplete = errors.New("session is complete")

// Counters are the session-local tallies. The answer streak here is per
// session and unrelated to the daily study streak.
type Counters struct {
	Attempted    int `json:"attempted"`
	Correct      int `json:"correct"`
	AnswerStreak int `json:"answer_streak"`
	BestStreak   int `json:"best_streak"`
}

// Record tallies one answer and returns the updated counters. A correct
// answer extends the streak; a wrong one resets it. The best streak only
// ever grows.
func (c Counters) Record(isCorrect bool) Counters {
	c.Attempted++
	if isCorrect {
		c.Correct++
		c.AnswerStreak++
		if c.AnswerStreak > c.BestStreak {
			c.BestStreak = c.AnswerStreak
		}
	} else {
		c.AnswerStreak = 0
	}
	return c
}

// State is the pure, client-driven session state machine: an ordered word
// list, a cursor, and counters. It performs no I/O; the orchestrator
// persists answers separately.
type State struct {
	words    []*domain.Word
	index    int
	status   Status
	counters Counters
}

// NewState starts a session over the given deck. An empty deck yields an
// Idle session that cannot accept answers.
func NewState(words []*domain.Word) *State {
	s := &State{words: words, status: StatusIdle}
	if len(words) > 0 {
		s.status = StatusActive
	}
	return s
}

// Status returns the current lifecycle phase.
func (s *State) Status() Status {
	return s.status
}

// Counters returns a copy of the session tallies.
func (s *State) Counters() Counters {
	return s.counters
}

// Remaining returns how many words are still unanswered.
func (s *State) Remaining() int {
	return len(s.words) - s.index
}

// Current returns the word awaiting an answer, or false when the session is
// not active.
func (s *State) Current() (*domain.Word, bool) {
	if s.status != StatusActive {
		return nil, false
	}
	return s.words[s.index], true
}

// Record tallies one answer for the current word and advances the cursor.
// No word can be skipped: the answer always applies to Current.
// Returns ErrSessionComplete if no word is awaiting an answer.
func (s *State) Record(isCorrect bool) error {
	if s.status != StatusActive {
		return ErrSessionComplete
	}

	s.counters = s.counters.Record(isCorrect)

	s.index++
	if s.index >= len(s.words) {
		s.status = StatusComplete
	}
	return nil
}

// Reshuffle reorders the deck and restarts the cursor at zero. Counters
// survive: a reshuffle is a restart of the walk, not of the session.
func (s *State) Reshuffle(rng *rand.Rand) {
	rng.Shuffle(len(s.words), func(i, j int) {
		s.words[i], s.words[j] = s.words[j], s.words[i]
	})
	s.index = 0
	if len(s.words) > 0 {
		s.status = StatusActive
	}
}
