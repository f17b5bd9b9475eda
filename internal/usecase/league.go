package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/domain/season"
	"github.com/rizkyfalih/crown-league/internal/domain/synergy"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
	"github.com/rizkyfalih/crown-league/internal/infrastructure/repository/memory"
	"github.com/rizkyfalih/crown-league/internal/platform/id"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

// Leader list categories.
const (
	LeaderCategoryCrowns       = "crowns"
	LeaderCategoryUsage        = "usage"
	LeaderCategoryContribution = "contribution"
)

// StandingRow is one line of the league table.
type StandingRow struct {
	Rank          int
	TeamID        string
	Name          string
	GMName        string
	Wins          int
	Losses        int
	CrownsFor     int
	CrownsAgainst int
	Rings         int
	Human         bool
}

// CardProfile pairs a card with its current owner, if any.
type CardProfile struct {
	Card     card.Card
	TeamID   string
	TeamName string
	Starter  bool
}

// RivalryRow describes one rivalry from a team's point of view.
type RivalryRow struct {
	OpponentID   string
	OpponentName string
	Intensity    int
	Active       bool
}

// SeasonInfo is the engine's current position in the season cycle.
type SeasonInfo struct {
	Season      int
	Week        int
	Phase       season.Phase
	HumanTeamID string
}

// TeamCondition reports a team's soft modifiers.
type TeamCondition struct {
	TeamID       string
	Chemistry    float64
	Fatigue      float64
	BoostedGames int
	Power        float64
}

// League is the single entry point to the simulation engine: it owns the
// seeded RNG and every repository, and serializes all commands and queries.
type League struct {
	mu sync.Mutex

	cfg      config.Config
	rng      *RNG
	logger   *logging.Logger
	registry *synergy.Registry

	cardRepo   *memory.CardRepository
	teamRepo   *memory.TeamRepository
	gameRepo   *memory.GameRepository
	draftRepo  *memory.DraftRepository
	seasonRepo *memory.SeasonRepository
	newsRepo   *memory.NewsRepository

	power     *PowerService
	draftSvc  *DraftService
	gameSvc   *GameService
	seasonSvc *SeasonService

	humanTeamID string
}

// NewLeague wires the full engine and generates the initial world: card
// pool, thirty teams, one human-controlled. The same cfg.Seed always yields
// the same world.
func NewLeague(ctx context.Context, cfg config.Config, logger *logging.Logger) (*League, error) {
	if logger == nil {
		logger = logging.Default()
	}

	rng := NewRNG(cfg.Seed)
	ids := id.NewSequenceGenerator()
	registry := synergy.BuildRegistry()

	cardRepo := memory.NewCardRepository()
	teamRepo := memory.NewTeamRepository()
	gameRepo := memory.NewGameRepository()
	draftRepo := memory.NewDraftRepository()
	seasonRepo := memory.NewSeasonRepository()
	newsRepo := memory.NewNewsRepository()

	generator, err := NewGeneratorService(cfg, rng, ids, cardRepo, teamRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("build generator: %w", err)
	}

	power := NewPowerService(registry, cardRepo)
	scorer := NewHeuristicScorer(power, rng)
	draftSvc := NewDraftService(cfg, rng, registry, power, scorer, cardRepo, teamRepo, draftRepo, newsRepo, logger)
	gameSvc := NewGameService(rng, power, ids, cardRepo, teamRepo, gameRepo, newsRepo, logger)
	seasonSvc := NewSeasonService(cfg, rng, registry, generator, draftSvc, gameSvc,
		cardRepo, teamRepo, gameRepo, seasonRepo, newsRepo, logger)

	if err := generator.GenerateWorld(ctx); err != nil {
		return nil, fmt.Errorf("generate world: %w", err)
	}

	l := &League{
		cfg:        cfg,
		rng:        rng,
		logger:     logger,
		registry:   registry,
		cardRepo:   cardRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		draftRepo:  draftRepo,
		seasonRepo: seasonRepo,
		newsRepo:   newsRepo,
		power:      power,
		draftSvc:   draftSvc,
		gameSvc:    gameSvc,
		seasonSvc:  seasonSvc,
	}

	teams, err := teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		if t.Human {
			l.humanTeamID = t.ID
			break
		}
	}

	return l, nil
}

// ResetRNG reseeds the engine's random source. Replaying the same commands
// after reseeding with the same value reproduces the same outcomes.
func (l *League) ResetRNG(seed int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rng.Reseed(seed)
}

func (l *League) HumanTeamID() string { return l.humanTeamID }

// --- Commands ---

// StartDraft opens this season's draft, weighting the lottery by last
// season's finish.
func (l *League) StartDraft(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	seasonNum := l.seasonSvc.CurrentSeason()
	var priorWins map[string]int
	if seasonNum > 1 {
		teams, err := l.teamRepo.List(ctx)
		if err != nil {
			return fmt.Errorf("list teams: %w", err)
		}
		priorWins = make(map[string]int, len(teams))
		for _, t := range teams {
			priorWins[t.ID] = t.Wins
		}
	}

	return l.draftSvc.Start(ctx, seasonNum, priorWins)
}

// HumanPick drafts the given card for the user's team, which must be on the
// clock.
func (l *League) HumanPick(ctx context.Context, cardID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draftSvc.HumanPick(ctx, cardID)
}

// AIAutoPick resolves the pick of the AI team currently on the clock.
func (l *League) AIAutoPick(ctx context.Context, teamID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draftSvc.AIAutoPick(ctx, teamID)
}

// SimNextPick advances the draft one pick; it pauses on the human team.
func (l *League) SimNextPick(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draftSvc.SimNextPick(ctx)
}

// SimToEndOfDraft auto-resolves every remaining pick, human included.
func (l *League) SimToEndOfDraft(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.draftSvc.SimToEnd(ctx, true)
}

// RunFullSeason executes one complete season cycle and returns its record.
func (l *League) RunFullSeason(ctx context.Context) (season.History, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seasonSvc.RunFullSeason(ctx)
}

// --- Queries ---

// GetSeasonInfo reports where the engine sits in the season cycle.
func (l *League) GetSeasonInfo(_ context.Context) SeasonInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	return SeasonInfo{
		Season:      l.seasonSvc.CurrentSeason(),
		Week:        l.seasonSvc.Week(),
		Phase:       l.seasonSvc.Phase(),
		HumanTeamID: l.humanTeamID,
	}
}

// GetStandings returns the league table sorted by wins, crown differential
// breaking ties.
func (l *League) GetStandings(ctx context.Context) ([]StandingRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	teams, err := l.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	sort.Slice(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		if teams[i].CrownDiff() != teams[j].CrownDiff() {
			return teams[i].CrownDiff() > teams[j].CrownDiff()
		}
		return teams[i].ID < teams[j].ID
	})

	rows := make([]StandingRow, len(teams))
	for i, t := range teams {
		rows[i] = StandingRow{
			Rank:          i + 1,
			TeamID:        t.ID,
			Name:          t.Name,
			GMName:        t.GM.Name,
			Wins:          t.Wins,
			Losses:        t.Losses,
			CrownsFor:     t.CrownsFor,
			CrownsAgainst: t.CrownsAgainst,
			Rings:         t.Rings,
			Human:         t.Human,
		}
	}
	return rows, nil
}

// GetLeagueLeaders ranks cards by the given category: crowns, usage or
// contribution.
func (l *League) GetLeagueLeaders(ctx context.Context, category string, n int) ([]season.LeaderEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var metric func(c card.Card) float64
	switch category {
	case LeaderCategoryCrowns:
		metric = func(c card.Card) float64 { return float64(c.Career.Crowns) }
	case LeaderCategoryUsage:
		teams, err := l.teamRepo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list teams: %w", err)
		}
		maxGames := 0
		for _, t := range teams {
			if played := t.Wins + t.Losses; played > maxGames {
				maxGames = played
			}
		}
		metric = func(c card.Card) float64 { return c.Career.UsageRate(maxGames) }
	case LeaderCategoryContribution:
		metric = func(c card.Card) float64 { return c.Career.Contribution }
	default:
		return nil, fmt.Errorf("%w: unknown leader category %q", ErrInvalidInput, category)
	}

	cards, err := l.cardRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	sort.Slice(cards, func(i, j int) bool {
		mi, mj := metric(cards[i]), metric(cards[j])
		if mi != mj {
			return mi > mj
		}
		return cards[i].ID < cards[j].ID
	})

	if n <= 0 || n > len(cards) {
		n = len(cards)
	}

	owners, err := l.ownerIndex(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]season.LeaderEntry, 0, n)
	for _, c := range cards[:n] {
		entries = append(entries, season.LeaderEntry{
			CardID: c.ID,
			Name:   c.Name,
			TeamID: owners[c.ID],
			Value:  metric(c),
		})
	}
	return entries, nil
}

// GetCardProfile returns the full card record with its career log and owner.
func (l *League) GetCardProfile(ctx context.Context, cardID string) (CardProfile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok, err := l.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return CardProfile{}, fmt.Errorf("get card: %w", err)
	}
	if !ok {
		return CardProfile{}, fmt.Errorf("%w: card %s", ErrNotFound, cardID)
	}

	profile := CardProfile{Card: c}

	teams, err := l.teamRepo.List(ctx)
	if err != nil {
		return CardProfile{}, fmt.Errorf("list teams: %w", err)
	}
	for _, t := range teams {
		if !t.Owns(cardID) {
			continue
		}
		profile.TeamID = t.ID
		profile.TeamName = t.Name
		for _, sid := range t.Starters {
			if sid == cardID {
				profile.Starter = true
			}
		}
		break
	}

	return profile, nil
}

// GetSynergiesTable lists every registered rule with its current multiplier
// and shift history.
func (l *League) GetSynergiesTable(_ context.Context) []synergy.Rule {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.registry.Rules()
}

// GetRivalries lists a team's rivalries, hottest first.
func (l *League) GetRivalries(ctx context.Context, teamID string) ([]RivalryRow, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok, err := l.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	rows := make([]RivalryRow, 0, len(t.Rivalries))
	for rivalID, intensity := range t.Rivalries {
		rival, found, err := l.teamRepo.GetByID(ctx, rivalID)
		if err != nil || !found {
			continue
		}
		rows = append(rows, RivalryRow{
			OpponentID:   rivalID,
			OpponentName: rival.Name,
			Intensity:    intensity,
			Active:       intensity >= rivalryActiveThreshold,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Intensity != rows[j].Intensity {
			return rows[i].Intensity > rows[j].Intensity
		}
		return rows[i].OpponentID < rows[j].OpponentID
	})

	return rows, nil
}

// GetPlayoffBracket returns the current (or most recent) bracket by round.
func (l *League) GetPlayoffBracket(_ context.Context) [][]season.SeriesResult {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seasonSvc.Bracket()
}

// GetPatchNotes returns a season's patch notes; seasonNum <= 0 means the
// current season.
func (l *League) GetPatchNotes(ctx context.Context, seasonNum int) (season.PatchNotes, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if seasonNum <= 0 {
		seasonNum = l.seasonSvc.CurrentSeason()
	}
	notes, ok, err := l.seasonRepo.PatchNotesBySeason(ctx, seasonNum)
	if err != nil {
		return season.PatchNotes{}, fmt.Errorf("get patch notes: %w", err)
	}
	if !ok {
		return season.PatchNotes{}, fmt.Errorf("%w: patch notes for season %d", ErrNotFound, seasonNum)
	}
	return notes, nil
}

// GetLastDraftGrades returns the grade board of the most recent draft.
func (l *League) GetLastDraftGrades(ctx context.Context) ([]draft.Grade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	grades, ok, err := l.draftSvc.Grades(ctx)
	if err != nil {
		return nil, fmt.Errorf("get grades: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no completed draft", ErrNotFound)
	}
	return grades, nil
}

// GetSeasonHistory returns the full record of a completed season.
func (l *League) GetSeasonHistory(ctx context.Context, seasonNum int) (season.History, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	h, ok, err := l.seasonRepo.GetBySeason(ctx, seasonNum)
	if err != nil {
		return season.History{}, fmt.Errorf("get history: %w", err)
	}
	if !ok {
		return season.History{}, fmt.Errorf("%w: season %d", ErrNotFound, seasonNum)
	}
	return h, nil
}

// GetQuickNews returns the n most recent news lines, newest first.
func (l *League) GetQuickNews(ctx context.Context, n int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.newsRepo.Latest(ctx, n)
}

// GetUpcomingGames lists the next n scheduled games; teamID filters to one
// team, empty means league-wide.
func (l *League) GetUpcomingGames(_ context.Context, teamID string, n int) []ScheduledGame {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.seasonSvc.UpcomingGames(teamID, n)
}

// GetUserTeamCondition reports the human team's chemistry, fatigue, boost
// window and current power.
func (l *League) GetUserTeamCondition(ctx context.Context) (TeamCondition, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok, err := l.teamRepo.GetByID(ctx, l.humanTeamID)
	if err != nil {
		return TeamCondition{}, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return TeamCondition{}, fmt.Errorf("%w: human team", ErrNotFound)
	}

	power := 0.0
	if len(t.Starters) > 0 {
		power, err = l.power.TeamPower(ctx, t)
		if err != nil {
			return TeamCondition{}, fmt.Errorf("compute power: %w", err)
		}
	}

	return TeamCondition{
		TeamID:       t.ID,
		Chemistry:    t.Chemistry,
		Fatigue:      t.Fatigue,
		BoostedGames: t.BoostGames,
		Power:        power,
	}, nil
}

// GetUserCards returns the human team's roster, starters first.
func (l *League) GetUserCards(ctx context.Context) ([]CardProfile, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	t, ok, err := l.teamRepo.GetByID(ctx, l.humanTeamID)
	if err != nil {
		return nil, fmt.Errorf("get team: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: human team", ErrNotFound)
	}

	starters := make(map[string]bool, len(t.Starters))
	for _, sid := range t.Starters {
		starters[sid] = true
	}

	profiles := make([]CardProfile, 0, len(t.Roster))
	for _, cid := range t.Roster {
		c, found, err := l.cardRepo.GetByID(ctx, cid)
		if err != nil || !found {
			continue
		}
		profiles = append(profiles, CardProfile{
			Card:     c,
			TeamID:   t.ID,
			TeamName: t.Name,
			Starter:  starters[cid],
		})
	}
	sort.Slice(profiles, func(i, j int) bool {
		if profiles[i].Starter != profiles[j].Starter {
			return profiles[i].Starter
		}
		if profiles[i].Card.OVR != profiles[j].Card.OVR {
			return profiles[i].Card.OVR > profiles[j].Card.OVR
		}
		return profiles[i].Card.ID < profiles[j].Card.ID
	})

	return profiles, nil
}

// GetDraftBoard exposes the live draft state for the draft room UI.
func (l *League) GetDraftBoard(ctx context.Context) (DraftBoard, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	board := DraftBoard{
		State:    l.draftSvc.State(),
		Season:   l.draftSvc.Season(),
		PoolSize: l.draftSvc.PoolSize(),
	}
	if teamID, round, pick, ok := l.draftSvc.OnClock(); ok {
		board.OnClockTeamID = teamID
		board.Round = round
		board.PickInRound = pick
		board.HumanOnClock = teamID == l.humanTeamID
	}
	board.Available = l.draftSvc.AvailableCards()

	picks, err := l.draftRepo.ListPicks(ctx, l.draftSvc.Season())
	if err != nil {
		return DraftBoard{}, fmt.Errorf("list picks: %w", err)
	}
	board.Picks = picks

	return board, nil
}

// DraftBoard is a live snapshot of the draft room.
type DraftBoard struct {
	State         draft.State
	Season        int
	Round         int
	PickInRound   int
	OnClockTeamID string
	HumanOnClock  bool
	PoolSize      int
	Available     []card.Card
	Picks         []draft.Pick
}

// ownerIndex maps card IDs to their owning team.
func (l *League) ownerIndex(ctx context.Context) (map[string]string, error) {
	teams, err := l.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	owners := make(map[string]string)
	for _, t := range teams {
		for _, cid := range t.Roster {
			owners[cid] = t.ID
		}
	}
	return owners, nil
}

// Teams returns every team, ID-ordered.
func (l *League) Teams(ctx context.Context) ([]team.Team, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.teamRepo.List(ctx)
}
