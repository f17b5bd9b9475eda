package team

import (
	"errors"
	"testing"
)

func fielded() Team {
	t := New("team-001", "Ridgewood Ravens", GM{Name: "Mara Voss", Style: StyleValueMaximizer}, false)
	t.Roster = []string{"card-0001", "card-0002", "card-0003", "card-0004"}
	t.Starters = []string{"card-0001", "card-0002", "card-0003"}
	t.BackupID = "card-0004"
	return t
}

func TestTeamValidate(t *testing.T) {
	t.Parallel()

	tm := fielded()
	if err := tm.Validate(); err != nil {
		t.Fatalf("valid team rejected: %v", err)
	}

	tm = fielded()
	tm.Starters = append(tm.Starters, "card-0004")
	if err := tm.Validate(); !errors.Is(err, ErrTooManyStarters) {
		t.Fatalf("expected ErrTooManyStarters, got %v", err)
	}

	tm = fielded()
	tm.Starters[0] = "card-9999"
	if err := tm.Validate(); !errors.Is(err, ErrStarterNotOnRoster) {
		t.Fatalf("expected ErrStarterNotOnRoster, got %v", err)
	}

	tm = fielded()
	tm.BackupID = "card-9999"
	if err := tm.Validate(); !errors.Is(err, ErrStarterNotOnRoster) {
		t.Fatalf("expected ErrStarterNotOnRoster for backup, got %v", err)
	}

	tm = fielded()
	tm.GM.Name = ""
	if err := tm.Validate(); err == nil {
		t.Fatal("expected error for missing gm name")
	}
}

func TestRecordAndCrownDiff(t *testing.T) {
	t.Parallel()

	tm := fielded()
	tm.Wins = 18
	tm.Losses = 11
	tm.CrownsFor = 55
	tm.CrownsAgainst = 40

	if got := tm.Record(); got != "18-11" {
		t.Fatalf("record = %q, want 18-11", got)
	}
	if got := tm.CrownDiff(); got != 15 {
		t.Fatalf("crown diff = %d, want 15", got)
	}
}

func TestBoosted(t *testing.T) {
	t.Parallel()

	tm := fielded()
	if tm.Boosted() {
		t.Fatal("fresh team should not be boosted")
	}
	tm.BoostGames = RivalryBoostGames
	if !tm.Boosted() {
		t.Fatal("team with boost games remaining should be boosted")
	}
}

func TestResetForSeason(t *testing.T) {
	t.Parallel()

	tm := fielded()
	tm.Wins = 20
	tm.Losses = 9
	tm.CrownsFor = 60
	tm.CrownsAgainst = 35
	tm.Chemistry = 0.12
	tm.Fatigue = 0.24
	tm.BoostGames = 1
	tm.Rings = 2
	tm.Rivalries["team-002"] = 6
	tm.SeasonCrowns["card-0001"] = 14

	tm.ResetForSeason()

	if tm.Roster != nil || tm.Starters != nil || tm.BackupID != "" {
		t.Fatal("roster should be cleared for the new season")
	}
	if tm.Wins != 0 || tm.Losses != 0 || tm.CrownsFor != 0 || tm.CrownsAgainst != 0 {
		t.Fatal("season counters should be cleared")
	}
	if tm.BoostGames != 0 {
		t.Fatal("rivalry boost should not carry into the new season")
	}
	if len(tm.SeasonCrowns) != 0 {
		t.Fatal("season crowns should be cleared")
	}

	// Franchise state survives the reset.
	if tm.Rings != 2 {
		t.Fatalf("rings = %d, want 2", tm.Rings)
	}
	if tm.Rivalries["team-002"] != 6 {
		t.Fatalf("rivalry intensity = %d, want 6", tm.Rivalries["team-002"])
	}
	if tm.Chemistry != 0.12 {
		t.Fatalf("chemistry = %f, want 0.12", tm.Chemistry)
	}
	if tm.Fatigue != 0.12 {
		t.Fatalf("fatigue = %f, want halved to 0.12", tm.Fatigue)
	}
}
