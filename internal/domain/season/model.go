package season

import (
	"fmt"

	"github.com/rizkyfalih/crown-league/internal/domain/draft"
)

// Phase is the season lifecycle state.
type Phase string

const (
	PhasePatch     Phase = "patch"
	PhaseDraft     Phase = "draft"
	PhaseRegular   Phase = "regular_season"
	PhasePlayoffs  Phase = "playoffs"
	PhaseAwards    Phase = "awards"
	PhaseOffseason Phase = "offseason"
)

// CardChange records one patch-time stat delta with its flavor reaction.
type CardChange struct {
	CardID   string
	CardName string
	Stat     string
	Before   int
	After    int
	Reaction string
}

// SynergyChange records one patch-time rule multiplier shift.
type SynergyChange struct {
	Code     string
	Name     string
	Before   float64
	After    float64
	Reaction string
}

// PatchNotes collects every balance change applied at a season's patch phase.
type PatchNotes struct {
	Season         int
	CardChanges    []CardChange
	SynergyChanges []SynergyChange
}

// Awards holds one season's award winners.
type Awards struct {
	MVPCardID          string
	MostImprovedCardID string
	AllLeague          [][]string
	AllStars           []string
	GameOfTheYearID    string
}

// LeaderEntry is one row of a season leader list.
type LeaderEntry struct {
	CardID string
	Name   string
	TeamID string
	Value  float64
}

// SeriesResult records one playoff series outcome.
type SeriesResult struct {
	Round    int
	HighSeed string
	LowSeed  string
	WinnerID string
	Wins     int
	LossesBy int
}

// History is the permanent record of one completed season.
type History struct {
	Season      int
	ChampionID  string
	RunnerUpID  string
	Grades      []draft.Grade
	Awards      Awards
	CrownLeader []LeaderEntry
	Bracket     [][]SeriesResult
	PatchNotes  PatchNotes
}

func (h History) Validate() error {
	if h.Season <= 0 {
		return fmt.Errorf("history season must be positive")
	}
	if h.ChampionID == "" {
		return fmt.Errorf("history champion is required")
	}
	return nil
}
