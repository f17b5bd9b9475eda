package config

import (
	"testing"

	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AppEnv != EnvDev {
		t.Fatalf("app env = %s, want %s", cfg.AppEnv, EnvDev)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("http addr = %s, want :8080", cfg.HTTPAddr)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("log level = %v, want info", cfg.LogLevel)
	}
	if cfg.Seed != 1337 {
		t.Fatalf("seed = %d, want 1337", cfg.Seed)
	}
	if cfg.CardPoolSize != 165 {
		t.Fatalf("card pool size = %d, want 165", cfg.CardPoolSize)
	}
	if cfg.DraftRounds != 4 {
		t.Fatalf("draft rounds = %d, want 4", cfg.DraftRounds)
	}
	if cfg.RookiesPerYear != 6 {
		t.Fatalf("rookies per year = %d, want 6", cfg.RookiesPerYear)
	}
	if cfg.PlayoffTeams != 16 {
		t.Fatalf("playoff teams = %d, want 16", cfg.PlayoffTeams)
	}
	if cfg.CardLifespanMin != 4 || cfg.CardLifespanMax != 10 {
		t.Fatalf("card lifespan = [%d, %d], want [4, 10]", cfg.CardLifespanMin, cfg.CardLifespanMax)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LEAGUE_SEED", "42")
	t.Setenv("LEAGUE_CARD_POOL_SIZE", "160")
	t.Setenv("LEAGUE_PLAYOFF_TEAMS", "8")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Seed != 42 {
		t.Fatalf("seed = %d, want 42", cfg.Seed)
	}
	if cfg.CardPoolSize != 160 {
		t.Fatalf("card pool size = %d, want 160", cfg.CardPoolSize)
	}
	if cfg.PlayoffTeams != 8 {
		t.Fatalf("playoff teams = %d, want 8", cfg.PlayoffTeams)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("log level = %v, want debug", cfg.LogLevel)
	}
}

func TestLoadRejectsPoolOutOfBounds(t *testing.T) {
	t.Setenv("LEAGUE_CARD_POOL_SIZE", "159")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for pool below minimum")
	}

	t.Setenv("LEAGUE_CARD_POOL_SIZE", "171")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for pool above maximum")
	}
}

func TestLoadRejectsNonPowerOfTwoPlayoffs(t *testing.T) {
	t.Setenv("LEAGUE_PLAYOFF_TEAMS", "12")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non power-of-two playoff field")
	}

	t.Setenv("LEAGUE_PLAYOFF_TEAMS", "1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for single-team playoff field")
	}
}

func TestLoadRejectsBadAppEnv(t *testing.T) {
	t.Setenv("APP_ENV", "sandbox")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown app env")
	}
}
