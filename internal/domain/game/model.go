package game

import "fmt"

// Crown score bounds per side. No ties are permitted.
const (
	MinCrowns = 0
	MaxCrowns = 3
)

// Contribution attributes crowns scored in one game to a single card.
type Contribution struct {
	CardID string
	TeamID string
	Crowns int
}

// Result is an immutable game log record. Append-only; feeds leaders/awards.
type Result struct {
	ID            string
	Season        int
	Week          int
	Playoff       bool
	HomeID        string
	AwayID        string
	HomeCrowns    int
	AwayCrowns    int
	WinnerID      string
	Rivalry       bool
	Contributions []Contribution
	Highlights    []string
}

func (r Result) Validate() error {
	if r.ID == "" {
		return fmt.Errorf("game id is required")
	}
	if r.HomeID == "" || r.AwayID == "" {
		return fmt.Errorf("game team ids are required")
	}
	if r.HomeID == r.AwayID {
		return fmt.Errorf("game cannot pair a team with itself: %s", r.HomeID)
	}
	if r.HomeCrowns < MinCrowns || r.HomeCrowns > MaxCrowns ||
		r.AwayCrowns < MinCrowns || r.AwayCrowns > MaxCrowns {
		return fmt.Errorf("game crowns out of range: %d-%d", r.HomeCrowns, r.AwayCrowns)
	}
	if r.HomeCrowns == r.AwayCrowns {
		return fmt.Errorf("game cannot end in a tie: %d-%d", r.HomeCrowns, r.AwayCrowns)
	}
	return nil
}

func (r Result) LoserID() string {
	if r.WinnerID == r.HomeID {
		return r.AwayID
	}
	return r.HomeID
}

// Margin is the absolute crown differential.
func (r Result) Margin() int {
	diff := r.HomeCrowns - r.AwayCrowns
	if diff < 0 {
		return -diff
	}
	return diff
}
