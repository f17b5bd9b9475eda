package usecase

import (
	"context"
	"testing"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/crown-league/internal/platform/id"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

func engineTestConfig(seed int64) config.Config {
	return config.Config{
		AppEnv:          config.EnvDev,
		ServiceName:     "crown-league",
		HumanTeamName:   "Your Team",
		Seed:            seed,
		CardPoolSize:    165,
		DraftRounds:     4,
		RookiesPerYear:  6,
		PlayoffTeams:    16,
		CardLifespanMin: 4,
		CardLifespanMax: 10,
	}
}

func newGenerator(t *testing.T, seed int64) (*GeneratorService, *memory.CardRepository, *memory.TeamRepository) {
	t.Helper()

	cardRepo := memory.NewCardRepository()
	teamRepo := memory.NewTeamRepository()
	svc, err := NewGeneratorService(engineTestConfig(seed), NewRNG(seed), id.NewSequenceGenerator(), cardRepo, teamRepo, logging.NewNop())
	if err != nil {
		t.Fatalf("NewGeneratorService: %v", err)
	}
	return svc, cardRepo, teamRepo
}

func TestGenerateWorldPool(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cardRepo, _ := newGenerator(t, 1337)
	if err := svc.GenerateWorld(ctx); err != nil {
		t.Fatalf("GenerateWorld: %v", err)
	}

	cards, err := cardRepo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(cards) != 165 {
		t.Fatalf("pool size = %d, want 165", len(cards))
	}

	specials := 0
	names := make(map[string]struct{}, len(cards))
	for _, c := range cards {
		if c.SeasonalSpecial {
			specials++
		}
		if c.Rookie {
			t.Fatalf("card %s generated as rookie in the initial pool", c.ID)
		}
		if c.SeasonsLeft < 4 || c.SeasonsLeft > 10 {
			t.Fatalf("card %s lifespan %d outside [4, 10]", c.ID, c.SeasonsLeft)
		}
		for _, v := range []int{c.Stats.Attack, c.Stats.Defense, c.Stats.Speed, c.Stats.HitSpeed, c.Stats.Stamina} {
			if v < statRollMin || v > statRollMax {
				t.Fatalf("card %s stat %d outside roll range [%d, %d]", c.ID, v, statRollMin, statRollMax)
			}
		}
		if _, dup := names[c.Name]; dup {
			t.Fatalf("duplicate card name %q", c.Name)
		}
		names[c.Name] = struct{}{}
	}
	if specials != 1 {
		t.Fatalf("seasonal specials = %d, want exactly 1", specials)
	}
}

func TestGenerateWorldTeams(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _, teamRepo := newGenerator(t, 1337)
	if err := svc.GenerateWorld(ctx); err != nil {
		t.Fatalf("GenerateWorld: %v", err)
	}

	teams, err := teamRepo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(teams) != config.TeamCount {
		t.Fatalf("team count = %d, want %d", len(teams), config.TeamCount)
	}

	humans := 0
	for _, tm := range teams {
		if tm.Human {
			humans++
			if tm.Name != "Your Team" {
				t.Fatalf("human team name = %q, want configured name", tm.Name)
			}
			if tm.GM.Name != "You" {
				t.Fatalf("human gm name = %q, want You", tm.GM.Name)
			}
		} else if tm.GM.Name == "" || tm.GM.Personality == "" {
			t.Fatalf("team %s generated without a full GM: %+v", tm.ID, tm.GM)
		}
	}
	if humans != 1 {
		t.Fatalf("human teams = %d, want exactly 1", humans)
	}
}

func TestGenerateWorldDeterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	svcA, cardsA, _ := newGenerator(t, 99)
	svcB, cardsB, _ := newGenerator(t, 99)
	if err := svcA.GenerateWorld(ctx); err != nil {
		t.Fatalf("GenerateWorld A: %v", err)
	}
	if err := svcB.GenerateWorld(ctx); err != nil {
		t.Fatalf("GenerateWorld B: %v", err)
	}

	a, _ := cardsA.List(ctx)
	b, _ := cardsB.List(ctx)
	if len(a) != len(b) {
		t.Fatalf("pool sizes differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].ID != b[i].ID || a[i].Name != b[i].Name || a[i].Stats != b[i].Stats || a[i].OVR != b[i].OVR {
			t.Fatalf("card %d differs across same-seed worlds:\n%+v\n%+v", i, a[i], b[i])
		}
	}
}

func TestGenerateRookies(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, cardRepo, _ := newGenerator(t, 1337)
	if err := svc.GenerateWorld(ctx); err != nil {
		t.Fatalf("GenerateWorld: %v", err)
	}

	rookies, err := svc.GenerateRookies(ctx, 6)
	if err != nil {
		t.Fatalf("GenerateRookies: %v", err)
	}
	if len(rookies) != 6 {
		t.Fatalf("rookie class size = %d, want 6", len(rookies))
	}

	specials := 0
	for _, c := range rookies {
		if !c.Rookie {
			t.Fatalf("rookie %s missing rookie flag", c.ID)
		}
		if c.SeasonalSpecial {
			specials++
		}
	}
	if specials != 1 {
		t.Fatalf("rookie seasonal specials = %d, want exactly 1", specials)
	}

	all, err := cardRepo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 165+6 {
		t.Fatalf("pool size after rookies = %d, want 171", len(all))
	}

	if _, err := svc.GenerateRookies(ctx, -1); err == nil {
		t.Fatal("expected error for negative rookie count")
	}
	var empty []card.Card
	empty, err = svc.GenerateRookies(ctx, 0)
	if err != nil {
		t.Fatalf("GenerateRookies(0): %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("empty rookie class size = %d, want 0", len(empty))
	}
}
