package draft

import (
	"errors"
	"fmt"
)

// State is the draft engine phase.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

var (
	ErrNotStarted      = errors.New("draft has not started")
	ErrAlreadyStarted  = errors.New("draft already started")
	ErrComplete        = errors.New("draft is complete")
	ErrNotOnClock      = errors.New("team is not on the clock")
	ErrCardUnavailable = errors.New("card is not in the available pool")
	ErrHumanPickNeeded = errors.New("human team is on the clock")
)

// Pick is an immutable draft log record. Append-only.
type Pick struct {
	Season  int
	Round   int
	Overall int
	TeamID  string
	GMName  string
	CardID  string
	OVR     int
	Rookie  bool
}

func (p Pick) Validate() error {
	if p.Season <= 0 {
		return fmt.Errorf("pick season must be positive")
	}
	if p.Round <= 0 || p.Overall <= 0 {
		return fmt.Errorf("pick round and overall must be positive")
	}
	if p.TeamID == "" || p.CardID == "" {
		return fmt.Errorf("pick team id and card id are required")
	}
	return nil
}

// Grade is a team's letter grade for one draft, with component breakdown.
type Grade struct {
	TeamID  string
	Letter  string
	Score   float64
	AvgOVR  float64
	Synergy float64
	Value   float64
}

// Component weights of the blended grade score.
const (
	GradeWeightOVR     = 0.45
	GradeWeightSynergy = 0.35
	GradeWeightValue   = 0.20
)

// LetterFor maps a blended 0-100 score to the letter scale.
func LetterFor(score float64) string {
	switch {
	case score >= 92:
		return "A+"
	case score >= 88:
		return "A"
	case score >= 84:
		return "A-"
	case score >= 80:
		return "B+"
	case score >= 76:
		return "B"
	case score >= 72:
		return "B-"
	case score >= 68:
		return "C+"
	case score >= 64:
		return "C"
	case score >= 60:
		return "C-"
	case score >= 55:
		return "D"
	default:
		return "F"
	}
}

// SnakePosition returns the index into the lottery order for the given
// zero-based round and pick-in-round. Odd (zero-based even) rounds run
// forward, the rest run backward.
func SnakePosition(round, pickInRound, teams int) int {
	if round%2 == 0 {
		return pickInRound
	}
	return teams - 1 - pickInRound
}
