package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

// Bounds for generation parameters. Values outside these ranges are
// configuration errors and fail at load time, never silently clamped.
const (
	CardPoolMin = 160
	CardPoolMax = 170
	TeamCount   = 30
)

// Config stores runtime configuration for the engine and its HTTP shell.
type Config struct {
	AppEnv             string
	ServiceName        string
	HTTPAddr           string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	CORSAllowedOrigins []string
	PprofEnabled       bool
	PprofAddr          string
	LogLevel           logging.Level

	Seed            int64
	HumanTeamName   string
	CardPoolSize    int
	DraftRounds     int
	RookiesPerYear  int
	PlayoffTeams    int
	CardLifespanMin int
	CardLifespanMax int
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	readTimeout, err := time.ParseDuration(getEnv("HTTP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_READ_TIMEOUT: %w", err)
	}
	writeTimeout, err := time.ParseDuration(getEnv("HTTP_WRITE_TIMEOUT", "30s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse HTTP_WRITE_TIMEOUT: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	seed, err := getEnvAsInt64("LEAGUE_SEED", 1337)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_SEED: %w", err)
	}

	cardPoolSize, err := getEnvAsInt("LEAGUE_CARD_POOL_SIZE", 165)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_CARD_POOL_SIZE: %w", err)
	}
	draftRounds, err := getEnvAsInt("LEAGUE_DRAFT_ROUNDS", 4)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_DRAFT_ROUNDS: %w", err)
	}
	rookiesPerYear, err := getEnvAsInt("LEAGUE_ROOKIES_PER_YEAR", 6)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_ROOKIES_PER_YEAR: %w", err)
	}
	playoffTeams, err := getEnvAsInt("LEAGUE_PLAYOFF_TEAMS", 16)
	if err != nil {
		return Config{}, fmt.Errorf("parse LEAGUE_PLAYOFF_TEAMS: %w", err)
	}

	cfg := Config{
		AppEnv:             appEnv,
		ServiceName:        getEnv("SERVICE_NAME", "crown-league"),
		HTTPAddr:           getEnv("HTTP_ADDR", ":8080"),
		ReadTimeout:        readTimeout,
		WriteTimeout:       writeTimeout,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:       pprofEnabled,
		PprofAddr:          pprofAddr,
		LogLevel:           parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Seed:               seed,
		HumanTeamName:      getEnv("LEAGUE_HUMAN_TEAM_NAME", "Your Team"),
		CardPoolSize:       cardPoolSize,
		DraftRounds:        draftRounds,
		RookiesPerYear:     rookiesPerYear,
		PlayoffTeams:       playoffTeams,
		CardLifespanMin:    4,
		CardLifespanMax:    10,
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate enforces generation bounds. Violations are fatal at construction.
func (c Config) Validate() error {
	if c.CardPoolSize < CardPoolMin || c.CardPoolSize > CardPoolMax {
		return fmt.Errorf("LEAGUE_CARD_POOL_SIZE must be within [%d, %d], got %d", CardPoolMin, CardPoolMax, c.CardPoolSize)
	}
	if c.DraftRounds <= 0 {
		return fmt.Errorf("LEAGUE_DRAFT_ROUNDS must be > 0, got %d", c.DraftRounds)
	}
	if c.RookiesPerYear < 0 {
		return fmt.Errorf("LEAGUE_ROOKIES_PER_YEAR cannot be negative, got %d", c.RookiesPerYear)
	}
	if c.PlayoffTeams <= 1 || c.PlayoffTeams > TeamCount {
		return fmt.Errorf("LEAGUE_PLAYOFF_TEAMS must be within (1, %d], got %d", TeamCount, c.PlayoffTeams)
	}
	if c.PlayoffTeams&(c.PlayoffTeams-1) != 0 {
		return fmt.Errorf("LEAGUE_PLAYOFF_TEAMS must be a power of two, got %d", c.PlayoffTeams)
	}
	if c.CardLifespanMin <= 0 || c.CardLifespanMax < c.CardLifespanMin {
		return fmt.Errorf("invalid card lifespan range [%d, %d]", c.CardLifespanMin, c.CardLifespanMax)
	}
	return nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func getEnvAsInt64(key string, fallback int64) (int64, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s, %s", v, EnvDev, EnvStage, EnvProd)
	}
}
