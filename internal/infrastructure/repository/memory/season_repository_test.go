package memory

import (
	"context"
	"testing"

	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/domain/season"
)

func TestSeasonRepositoryHistory(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSeasonRepository()

	for s := 1; s <= 3; s++ {
		h := season.History{Season: s, ChampionID: "team-001", RunnerUpID: "team-002"}
		if err := repo.Append(ctx, h); err != nil {
			t.Fatalf("Append season %d: %v", s, err)
		}
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("history length = %d, want 3", len(all))
	}
	for i, h := range all {
		if h.Season != i+1 {
			t.Fatalf("history out of order: season %d at index %d", h.Season, i)
		}
	}

	got, ok, err := repo.GetBySeason(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("GetBySeason: ok=%v err=%v", ok, err)
	}
	if got.Season != 2 {
		t.Fatalf("season = %d, want 2", got.Season)
	}

	_, ok, err = repo.GetBySeason(ctx, 9)
	if err != nil {
		t.Fatalf("GetBySeason miss: %v", err)
	}
	if ok {
		t.Fatal("unknown season should not be found")
	}
}

func TestSeasonRepositoryRejectsInvalidHistory(t *testing.T) {
	t.Parallel()

	repo := NewSeasonRepository()
	if err := repo.Append(context.Background(), season.History{Season: 1}); err == nil {
		t.Fatal("expected append to reject history without a champion")
	}
}

func TestSeasonRepositoryPatchNotes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewSeasonRepository()

	notes := season.PatchNotes{
		Season: 2,
		CardChanges: []season.CardChange{
			{CardID: "card-0001", CardName: "Ember Warden", Stat: "attack", Before: 60, After: 64},
		},
		SynergyChanges: []season.SynergyChange{
			{Code: "SYN-TAN-MEL", Name: "Tank + Melee Pact", Before: 1.02, After: 1.05},
		},
	}
	if err := repo.SavePatchNotes(ctx, notes); err != nil {
		t.Fatalf("SavePatchNotes: %v", err)
	}

	got, ok, err := repo.PatchNotesBySeason(ctx, 2)
	if err != nil || !ok {
		t.Fatalf("PatchNotesBySeason: ok=%v err=%v", ok, err)
	}
	if len(got.CardChanges) != 1 || len(got.SynergyChanges) != 1 {
		t.Fatalf("patch notes differ: %+v", got)
	}

	_, ok, err = repo.PatchNotesBySeason(ctx, 1)
	if err != nil {
		t.Fatalf("PatchNotesBySeason miss: %v", err)
	}
	if ok {
		t.Fatal("season without a patch should have no notes")
	}
}

func TestDraftRepositoryPicksAndGrades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewDraftRepository()

	for i := 1; i <= 4; i++ {
		p := draft.Pick{Season: 1, Round: 1, Overall: i, TeamID: "team-001", CardID: "card-0001"}
		if err := repo.AppendPick(ctx, p); err != nil {
			t.Fatalf("AppendPick %d: %v", i, err)
		}
	}
	if err := repo.AppendPick(ctx, draft.Pick{Season: 2, Round: 1, Overall: 1, TeamID: "team-001", CardID: "card-0002"}); err != nil {
		t.Fatalf("AppendPick season 2: %v", err)
	}

	picks, err := repo.ListPicks(ctx, 1)
	if err != nil {
		t.Fatalf("ListPicks: %v", err)
	}
	if len(picks) != 4 {
		t.Fatalf("season 1 picks = %d, want 4", len(picks))
	}

	if err := repo.AppendPick(ctx, draft.Pick{Season: 1, Round: 0, Overall: 5, TeamID: "team-001", CardID: "card-0001"}); err == nil {
		t.Fatal("expected append to reject an invalid pick")
	}

	grades := []draft.Grade{{TeamID: "team-001", Letter: "A", Score: 88.5}}
	if err := repo.SaveGrades(ctx, 1, grades); err != nil {
		t.Fatalf("SaveGrades: %v", err)
	}

	got, ok, err := repo.GradesBySeason(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("GradesBySeason: ok=%v err=%v", ok, err)
	}
	if len(got) != 1 || got[0].Letter != "A" {
		t.Fatalf("grades differ: %+v", got)
	}

	_, ok, err = repo.GradesBySeason(ctx, 2)
	if err != nil {
		t.Fatalf("GradesBySeason miss: %v", err)
	}
	if ok {
		t.Fatal("ungraded season should have no grades")
	}
}

func TestDraftRepositoryPurgeSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewDraftRepository()

	for i := 1; i <= 3; i++ {
		p := draft.Pick{Season: 1, Round: 1, Overall: i, TeamID: "team-001", CardID: "card-0001"}
		if err := repo.AppendPick(ctx, p); err != nil {
			t.Fatalf("AppendPick season 1 %d: %v", i, err)
		}
	}
	if err := repo.AppendPick(ctx, draft.Pick{Season: 2, Round: 1, Overall: 1, TeamID: "team-002", CardID: "card-0002"}); err != nil {
		t.Fatalf("AppendPick season 2: %v", err)
	}
	if err := repo.SaveGrades(ctx, 1, []draft.Grade{{TeamID: "team-001", Letter: "B", Score: 80}}); err != nil {
		t.Fatalf("SaveGrades: %v", err)
	}

	if err := repo.PurgeSeason(ctx, 1); err != nil {
		t.Fatalf("PurgeSeason: %v", err)
	}

	picks, err := repo.ListPicks(ctx, 1)
	if err != nil {
		t.Fatalf("ListPicks season 1: %v", err)
	}
	if len(picks) != 0 {
		t.Fatalf("season 1 picks after purge = %d, want 0", len(picks))
	}

	_, ok, err := repo.GradesBySeason(ctx, 1)
	if err != nil {
		t.Fatalf("GradesBySeason: %v", err)
	}
	if ok {
		t.Fatal("purged season should have no grades")
	}

	kept, err := repo.ListPicks(ctx, 2)
	if err != nil {
		t.Fatalf("ListPicks season 2: %v", err)
	}
	if len(kept) != 1 || kept[0].CardID != "card-0002" {
		t.Fatalf("season 2 picks after purge = %+v, want the one untouched pick", kept)
	}
}

func TestNewsRepositoryNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewNewsRepository()

	lines := []string{"first headline", "second headline", "third headline"}
	for _, line := range lines {
		if err := repo.Publish(ctx, line); err != nil {
			t.Fatalf("Publish: %v", err)
		}
	}
	if err := repo.Publish(ctx, ""); err != nil {
		t.Fatalf("Publish empty: %v", err)
	}

	got, err := repo.Latest(ctx, 2)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("latest length = %d, want 2", len(got))
	}
	if got[0] != "third headline" || got[1] != "second headline" {
		t.Fatalf("latest order = %v, want newest first", got)
	}

	all, err := repo.Latest(ctx, 0)
	if err != nil {
		t.Fatalf("Latest all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("full feed length = %d, want 3 (empty lines dropped)", len(all))
	}
}
