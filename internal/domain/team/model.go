package team

import (
	"errors"
	"fmt"
)

// MaxStarters is the number of cards a team fields in a game.
const MaxStarters = 3

var (
	ErrStarterNotOnRoster = errors.New("starter is not on the roster")
	ErrTooManyStarters    = errors.New("too many starters")
	ErrCardAlreadyOwned   = errors.New("card already on a roster")
)

// Style is a GM's drafting personality.
type Style string

const (
	StyleValueMaximizer   Style = "value"
	StyleSynergyMaximizer Style = "synergy"
	StyleRiskTaker        Style = "risk"
	StyleConservative     Style = "conservative"
)

var AllStyles = []Style{
	StyleValueMaximizer,
	StyleSynergyMaximizer,
	StyleRiskTaker,
	StyleConservative,
}

// GM identifies a franchise's general manager.
type GM struct {
	Name        string
	Style       Style
	Personality string
}

// Bounds for persistent team factors consumed by the power model.
const (
	ChemistryMax = 0.25
	FatigueMax   = 0.30

	// Winning a rivalry game grants a power boost for this many games.
	RivalryBoostGames = 2
	RivalryBoostPct   = 0.10
)

// Team is a franchise entity. It persists across seasons; the roster and
// season counters are rebuilt every year.
type Team struct {
	ID            string
	Name          string
	GM            GM
	Roster        []string
	Starters      []string
	BackupID      string
	Wins          int
	Losses        int
	CrownsFor     int
	CrownsAgainst int
	Chemistry     float64
	Fatigue       float64
	Rivalries     map[string]int
	BoostGames    int
	Rings         int
	SeasonCrowns  map[string]int
	Human         bool
}

func New(id, name string, gm GM, human bool) Team {
	return Team{
		ID:           id,
		Name:         name,
		GM:           gm,
		Rivalries:    make(map[string]int),
		SeasonCrowns: make(map[string]int),
		Human:        human,
	}
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}
	if t.GM.Name == "" {
		return fmt.Errorf("team gm name is required")
	}
	if len(t.Starters) > MaxStarters {
		return fmt.Errorf("%w: %d", ErrTooManyStarters, len(t.Starters))
	}
	for _, id := range t.Starters {
		if !t.Owns(id) {
			return fmt.Errorf("%w: %s", ErrStarterNotOnRoster, id)
		}
	}
	if t.BackupID != "" && !t.Owns(t.BackupID) {
		return fmt.Errorf("%w: backup %s", ErrStarterNotOnRoster, t.BackupID)
	}
	return nil
}

func (t Team) Owns(cardID string) bool {
	for _, id := range t.Roster {
		if id == cardID {
			return true
		}
	}
	return false
}

func (t Team) Record() string {
	return fmt.Sprintf("%d-%d", t.Wins, t.Losses)
}

func (t Team) CrownDiff() int {
	return t.CrownsFor - t.CrownsAgainst
}

// Boosted reports whether a rivalry-win power boost is still active.
func (t Team) Boosted() bool {
	return t.BoostGames > 0
}

// ResetForSeason clears the roster and season counters while keeping the
// franchise identity, rivalry map, chemistry and ring count. Fatigue only
// partially resets: a hard season leaves a trace.
func (t *Team) ResetForSeason() {
	t.Roster = nil
	t.Starters = nil
	t.BackupID = ""
	t.Wins = 0
	t.Losses = 0
	t.CrownsFor = 0
	t.CrownsAgainst = 0
	t.BoostGames = 0
	t.SeasonCrowns = make(map[string]int)
	t.Fatigue = t.Fatigue / 2
}
