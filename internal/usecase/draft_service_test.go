package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/domain/synergy"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
	"github.com/rizkyfalih/crown-league/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/crown-league/internal/platform/id"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

// engineFixture wires the full engine stack against in-memory repositories.
type engineFixture struct {
	cfg      config.Config
	rng      *RNG
	registry *synergy.Registry
	cards    *memory.CardRepository
	teams    *memory.TeamRepository
	drafts   *memory.DraftRepository
	games    *memory.GameRepository
	news     *memory.NewsRepository
	power    *PowerService
	draftSvc *DraftService
	gameSvc  *GameService
}

func newEngineFixture(t *testing.T, seed int64) *engineFixture {
	t.Helper()

	ctx := context.Background()
	cfg := engineTestConfig(seed)
	rng := NewRNG(seed)
	ids := id.NewSequenceGenerator()
	logger := logging.NewNop()

	f := &engineFixture{
		cfg:      cfg,
		rng:      rng,
		registry: synergy.BuildRegistry(),
		cards:    memory.NewCardRepository(),
		teams:    memory.NewTeamRepository(),
		drafts:   memory.NewDraftRepository(),
		games:    memory.NewGameRepository(),
		news:     memory.NewNewsRepository(),
	}

	gen, err := NewGeneratorService(cfg, rng, ids, f.cards, f.teams, logger)
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}
	if err := gen.GenerateWorld(ctx); err != nil {
		t.Fatalf("GenerateWorld: %v", err)
	}

	f.power = NewPowerService(f.registry, f.cards)
	scorer := NewHeuristicScorer(f.power, rng)
	f.draftSvc = NewDraftService(cfg, rng, f.registry, f.power, scorer, f.cards, f.teams, f.drafts, f.news, logger)
	f.gameSvc = NewGameService(rng, f.power, ids, f.cards, f.teams, f.games, f.news, logger)

	return f
}

func (f *engineFixture) humanTeam(t *testing.T) team.Team {
	t.Helper()

	teams, err := f.teams.List(context.Background())
	if err != nil {
		t.Fatalf("List teams: %v", err)
	}
	for _, tm := range teams {
		if tm.Human {
			return tm
		}
	}
	t.Fatal("no human team generated")
	return team.Team{}
}

func TestDraftFullAutoRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newEngineFixture(t, 1337)

	if err := f.draftSvc.Start(ctx, 1, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if f.draftSvc.State() != draft.StateInProgress {
		t.Fatalf("state = %s, want in progress", f.draftSvc.State())
	}
	if err := f.draftSvc.SimToEnd(ctx, true); err != nil {
		t.Fatalf("SimToEnd: %v", err)
	}
	if f.draftSvc.State() != draft.StateComplete {
		t.Fatalf("state = %s, want complete", f.draftSvc.State())
	}

	picks, err := f.drafts.ListPicks(ctx, 1)
	if err != nil {
		t.Fatalf("ListPicks: %v", err)
	}
	wantPicks := 30 * f.cfg.DraftRounds
	if len(picks) != wantPicks {
		t.Fatalf("picks logged = %d, want %d", len(picks), wantPicks)
	}
	for i, p := range picks {
		if p.Overall != i+1 {
			t.Fatalf("pick %d has overall %d", i, p.Overall)
		}
	}

	teams, err := f.teams.List(ctx)
	if err != nil {
		t.Fatalf("List teams: %v", err)
	}
	owned := make(map[string]string)
	for _, tm := range teams {
		if len(tm.Roster) != f.cfg.DraftRounds {
			t.Fatalf("team %s roster size = %d, want %d", tm.ID, len(tm.Roster), f.cfg.DraftRounds)
		}
		if len(tm.Starters) != team.MaxStarters {
			t.Fatalf("team %s starters = %d, want %d", tm.ID, len(tm.Starters), team.MaxStarters)
		}
		if tm.BackupID == "" {
			t.Fatalf("team %s has no backup", tm.ID)
		}
		if err := tm.Validate(); err != nil {
			t.Fatalf("team %s invalid after draft: %v", tm.ID, err)
		}
		for _, cid := range tm.Roster {
			if other, dup := owned[cid]; dup {
				t.Fatalf("card %s drafted by both %s and %s", cid, other, tm.ID)
			}
			owned[cid] = tm.ID
		}
	}
}

func TestDraftGrades(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newEngineFixture(t, 1337)

	if err := f.draftSvc.Start(ctx, 1, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.draftSvc.SimToEnd(ctx, true); err != nil {
		t.Fatalf("SimToEnd: %v", err)
	}

	grades, ok, err := f.draftSvc.Grades(ctx)
	if err != nil || !ok {
		t.Fatalf("Grades: ok=%v err=%v", ok, err)
	}
	if len(grades) != 30 {
		t.Fatalf("grades = %d, want one per team", len(grades))
	}

	letters := map[string]bool{
		"A+": true, "A": true, "A-": true,
		"B+": true, "B": true, "B-": true,
		"C+": true, "C": true, "C-": true,
		"D": true, "F": true,
	}
	for _, g := range grades {
		if !letters[g.Letter] {
			t.Fatalf("team %s got unknown letter %q", g.TeamID, g.Letter)
		}
		if g.Letter != draft.LetterFor(g.Score) {
			t.Fatalf("team %s letter %s does not match score %.2f", g.TeamID, g.Letter, g.Score)
		}
	}
}

func TestDraftSuspendsForHuman(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newEngineFixture(t, 1337)
	human := f.humanTeam(t)

	if err := f.draftSvc.Start(ctx, 1, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err := f.draftSvc.SimToEnd(ctx, false)
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("SimToEnd without auto-human: err = %v, want ErrInvalidState", err)
	}

	onClock, _, _, ok := f.draftSvc.OnClock()
	if !ok || onClock != human.ID {
		t.Fatalf("on clock = %s (ok=%v), want human team %s", onClock, ok, human.ID)
	}

	if err := f.draftSvc.SimNextPick(ctx); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("SimNextPick on human clock: err = %v, want ErrInvalidState", err)
	}

	// A manual human pick unblocks the run.
	available := f.draftSvc.AvailableCards()
	if len(available) == 0 {
		t.Fatal("no cards available for the human pick")
	}
	if err := f.draftSvc.HumanPick(ctx, available[0].ID); err != nil {
		t.Fatalf("HumanPick: %v", err)
	}
	if err := f.draftSvc.SimToEnd(ctx, false); err != nil {
		// Later human picks suspend again; keep resolving.
		for errors.Is(err, ErrInvalidState) && f.draftSvc.State() == draft.StateInProgress {
			pool := f.draftSvc.AvailableCards()
			if pickErr := f.draftSvc.HumanPick(ctx, pool[0].ID); pickErr != nil {
				t.Fatalf("HumanPick: %v", pickErr)
			}
			err = f.draftSvc.SimToEnd(ctx, false)
			if err == nil {
				break
			}
		}
		if err != nil && f.draftSvc.State() != draft.StateComplete {
			t.Fatalf("SimToEnd after human picks: %v", err)
		}
	}
	if f.draftSvc.State() != draft.StateComplete {
		t.Fatalf("state = %s, want complete", f.draftSvc.State())
	}
}

func TestDraftRejectsBadPicks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newEngineFixture(t, 1337)
	human := f.humanTeam(t)

	if err := f.draftSvc.HumanPick(ctx, "card-0001"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("pick before start: err = %v, want ErrInvalidState", err)
	}

	if err := f.draftSvc.Start(ctx, 1, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := f.draftSvc.Start(ctx, 1, nil); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("double start: err = %v, want ErrInvalidState", err)
	}

	onClock, _, _, _ := f.draftSvc.OnClock()
	if onClock != human.ID {
		if err := f.draftSvc.HumanPick(ctx, "card-0001"); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("human pick off the clock: err = %v, want ErrInvalidState", err)
		}
		if err := f.draftSvc.AIAutoPick(ctx, human.ID); !errors.Is(err, ErrInvalidState) {
			t.Fatalf("auto pick for team off the clock: err = %v, want ErrInvalidState", err)
		}
	}

	// Walk the draft to the human pick, then try a bogus card.
	for {
		teamID, _, _, ok := f.draftSvc.OnClock()
		if !ok {
			t.Fatal("draft completed before human came on the clock")
		}
		if teamID == human.ID {
			break
		}
		if err := f.draftSvc.SimNextPick(ctx); err != nil {
			t.Fatalf("SimNextPick: %v", err)
		}
	}
	if err := f.draftSvc.HumanPick(ctx, "card-does-not-exist"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("pick of unknown card: err = %v, want ErrInvalidInput", err)
	}
}

func TestDraftRestartPurgesAbandonedPicks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newEngineFixture(t, 1337)

	if err := f.draftSvc.Start(ctx, 1, nil); err != nil {
		t.Fatalf("Start: %v", err)
	}
	for i := 0; i < 5; i++ {
		teamID, _, _, ok := f.draftSvc.OnClock()
		if !ok {
			t.Fatalf("draft not in progress before pick %d", i+1)
		}
		if err := f.draftSvc.AIAutoPick(ctx, teamID); err != nil {
			t.Fatalf("AIAutoPick %d: %v", i+1, err)
		}
	}

	f.draftSvc.Reset()
	if err := f.draftSvc.Start(ctx, 1, nil); err != nil {
		t.Fatalf("restart: %v", err)
	}
	if err := f.draftSvc.SimToEnd(ctx, true); err != nil {
		t.Fatalf("SimToEnd: %v", err)
	}

	picks, err := f.drafts.ListPicks(ctx, 1)
	if err != nil {
		t.Fatalf("ListPicks: %v", err)
	}
	wantPicks := 30 * f.cfg.DraftRounds
	if len(picks) != wantPicks {
		t.Fatalf("picks after restart = %d, want %d", len(picks), wantPicks)
	}

	seen := make(map[string]bool, len(picks))
	perTeam := make(map[string]int, 30)
	for i, p := range picks {
		if p.Overall != i+1 {
			t.Fatalf("pick %d has overall %d, abandoned attempt leaked", i, p.Overall)
		}
		if seen[p.CardID] {
			t.Fatalf("card %s appears twice in the restarted pick log", p.CardID)
		}
		seen[p.CardID] = true
		perTeam[p.TeamID]++
	}
	for teamID, n := range perTeam {
		if n != f.cfg.DraftRounds {
			t.Fatalf("team %s logged %d picks, want %d", teamID, n, f.cfg.DraftRounds)
		}
	}

	grades, ok, err := f.draftSvc.Grades(ctx)
	if err != nil || !ok {
		t.Fatalf("Grades: ok=%v err=%v", ok, err)
	}
	if len(grades) != 30 {
		t.Fatalf("grades = %d, want 30", len(grades))
	}
}

func TestDraftLotteryFavorsWeakTeams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newEngineFixture(t, 1337)

	teams, err := f.teams.List(ctx)
	if err != nil {
		t.Fatalf("List teams: %v", err)
	}

	// Give one team a dominant record; a weighted lottery should rarely hand
	// it the first pick.
	priorWins := make(map[string]int, len(teams))
	for _, tm := range teams {
		priorWins[tm.ID] = 0
	}
	strong := teams[0].ID
	priorWins[strong] = 29

	firsts := 0
	const trials = 50
	for i := 0; i < trials; i++ {
		if err := f.draftSvc.Start(ctx, i+1, priorWins); err != nil {
			t.Fatalf("Start trial %d: %v", i, err)
		}
		onClock, round, _, ok := f.draftSvc.OnClock()
		if !ok || round != 1 {
			t.Fatalf("trial %d: no team on the clock", i)
		}
		if onClock == strong {
			firsts++
		}
		f.draftSvc.Reset()
	}

	if firsts > trials/4 {
		t.Fatalf("dominant team won first pick %d/%d lotteries, want a rare event", firsts, trials)
	}
}
