package usecase

import (
	"context"
	"fmt"
	"math"

	"github.com/valyala/bytebufferpool"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/game"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
	"github.com/rizkyfalih/crown-league/internal/platform/id"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

const (
	// A pair counts as a registered rivalry above this intensity.
	rivalryActiveThreshold = 5

	rivalryPowerBonus = 1.05
	playoffPowerBonus = 1.08

	jitterMin = 0.85
	jitterMax = 1.15

	fatiguePerGame   = 0.015
	chemistryPerGame = 0.005

	backupRotationBase = 0.10
	highlightChance    = 0.20
)

// SimulateInput identifies one matchup to resolve.
type SimulateInput struct {
	Season  int
	Week    int
	Playoff bool
	HomeID  string
	AwayID  string
}

// GameService resolves single matchups into crown scores and applies the
// fatigue, chemistry, rivalry and career side effects.
type GameService struct {
	rng      *RNG
	power    *PowerService
	ids      id.Generator
	cardRepo card.Repository
	teamRepo team.Repository
	gameRepo game.Repository
	newsRepo NewsPublisher
	logger   *logging.Logger
}

func NewGameService(
	rng *RNG,
	power *PowerService,
	ids id.Generator,
	cardRepo card.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	newsRepo NewsPublisher,
	logger *logging.Logger,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GameService{
		rng:      rng,
		power:    power,
		ids:      ids,
		cardRepo: cardRepo,
		teamRepo: teamRepo,
		gameRepo: gameRepo,
		newsRepo: newsRepo,
		logger:   logger,
	}
}

// Simulate resolves one game and persists every side effect. The result is
// appended to the immutable game log.
func (s *GameService) Simulate(ctx context.Context, in SimulateInput) (game.Result, error) {
	ctx, span := startEngineSpan(ctx, "usecase.GameService.Simulate")
	defer span.End()

	if in.HomeID == in.AwayID {
		return game.Result{}, fmt.Errorf("%w: a team cannot play itself", ErrInvalidInput)
	}

	home, ok, err := s.teamRepo.GetByID(ctx, in.HomeID)
	if err != nil {
		return game.Result{}, fmt.Errorf("get home team: %w", err)
	}
	if !ok {
		return game.Result{}, fmt.Errorf("%w: team %s", ErrNotFound, in.HomeID)
	}
	away, ok, err := s.teamRepo.GetByID(ctx, in.AwayID)
	if err != nil {
		return game.Result{}, fmt.Errorf("get away team: %w", err)
	}
	if !ok {
		return game.Result{}, fmt.Errorf("%w: team %s", ErrNotFound, in.AwayID)
	}
	if len(home.Starters) == 0 || len(away.Starters) == 0 {
		return game.Result{}, fmt.Errorf("%w: both teams need starters before simulating", ErrInvalidState)
	}

	homePower, err := s.power.TeamPower(ctx, home)
	if err != nil {
		return game.Result{}, err
	}
	awayPower, err := s.power.TeamPower(ctx, away)
	if err != nil {
		return game.Result{}, err
	}

	rivalry := home.Rivalries[away.ID] >= rivalryActiveThreshold
	if rivalry {
		homePower *= rivalryPowerBonus
		awayPower *= rivalryPowerBonus
	}
	if in.Playoff {
		homePower *= playoffPowerBonus
		awayPower *= playoffPowerBonus
	}

	homeScore := homePower * s.rng.FloatBetween(jitterMin, jitterMax)
	awayScore := awayPower * s.rng.FloatBetween(jitterMin, jitterMax)

	homeCrowns, awayCrowns := s.squashCrowns(homeScore, awayScore, homePower, awayPower)

	winner := &home
	loser := &away
	if awayCrowns > homeCrowns {
		winner = &away
		loser = &home
	}

	res := game.Result{
		ID:         s.ids.NewID("game"),
		Season:     in.Season,
		Week:       in.Week,
		Playoff:    in.Playoff,
		HomeID:     home.ID,
		AwayID:     away.ID,
		HomeCrowns: homeCrowns,
		AwayCrowns: awayCrowns,
		WinnerID:   winner.ID,
		Rivalry:    rivalry,
	}

	homeContribs, homeHighlights, err := s.attributeCrowns(ctx, &home, homeCrowns, in)
	if err != nil {
		return game.Result{}, err
	}
	awayContribs, awayHighlights, err := s.attributeCrowns(ctx, &away, awayCrowns, in)
	if err != nil {
		return game.Result{}, err
	}
	res.Contributions = append(homeContribs, awayContribs...)
	res.Highlights = append(homeHighlights, awayHighlights...)

	s.applyTeamEffects(&home, &away, res, rivalry, winner, loser)

	if err := s.teamRepo.Save(ctx, home); err != nil {
		return game.Result{}, fmt.Errorf("save home team: %w", err)
	}
	if err := s.teamRepo.Save(ctx, away); err != nil {
		return game.Result{}, fmt.Errorf("save away team: %w", err)
	}
	if err := s.gameRepo.Append(ctx, res); err != nil {
		return game.Result{}, fmt.Errorf("append game result: %w", err)
	}

	for _, h := range res.Highlights {
		_ = s.newsRepo.Publish(ctx, h)
	}

	return res, nil
}

// squashCrowns converts the jittered scalars into bounded crown counts via
// proportional share. Ties are broken by a weighted coin flip favoring the
// side with higher pre-jitter power.
func (s *GameService) squashCrowns(homeScore, awayScore, homePower, awayPower float64) (int, int) {
	share := homeScore / (homeScore + awayScore)
	homeCrowns := int(math.Round(float64(game.MaxCrowns) * share))
	awayCrowns := int(math.Round(float64(game.MaxCrowns) * (1 - share)))
	homeCrowns = clampCrowns(homeCrowns)
	awayCrowns = clampCrowns(awayCrowns)

	if homeCrowns == awayCrowns {
		favorHome := s.rng.Chance(homePower / (homePower + awayPower))
		if favorHome {
			homeCrowns, awayCrowns = breakTie(homeCrowns, awayCrowns)
		} else {
			awayCrowns, homeCrowns = breakTie(awayCrowns, homeCrowns)
		}
	}

	return homeCrowns, awayCrowns
}

// breakTie awards the tie-break crown to the favored side, stealing one from
// the opponent if the favored side is already at the cap.
func breakTie(favored, other int) (int, int) {
	if favored < game.MaxCrowns {
		return favored + 1, other
	}
	return favored, other - 1
}

func clampCrowns(v int) int {
	if v < game.MinCrowns {
		return game.MinCrowns
	}
	if v > game.MaxCrowns {
		return game.MaxCrowns
	}
	return v
}

// attributeCrowns distributes a side's crowns over its participants,
// weighted by offensive composite. The backup may rotate in for a starter
// with a fatigue-scaled probability.
func (s *GameService) attributeCrowns(ctx context.Context, t *team.Team, crowns int, in SimulateInput) ([]game.Contribution, []string, error) {
	participants := make([]card.Card, 0, team.MaxStarters)
	for _, cid := range t.Starters {
		c, ok, err := s.cardRepo.GetByID(ctx, cid)
		if err != nil {
			return nil, nil, fmt.Errorf("get starter %s: %w", cid, err)
		}
		if !ok {
			return nil, nil, fmt.Errorf("%w: starter card %s", ErrNotFound, cid)
		}
		participants = append(participants, c)
	}

	if t.BackupID != "" && s.rng.Chance(backupRotationBase+t.Fatigue/2) {
		backup, ok, err := s.cardRepo.GetByID(ctx, t.BackupID)
		if err != nil {
			return nil, nil, fmt.Errorf("get backup %s: %w", t.BackupID, err)
		}
		if ok {
			participants[s.rng.Intn(len(participants))] = backup
		}
	}

	weights := make([]float64, len(participants))
	for i, c := range participants {
		weights[i] = c.OffensiveComposite()
	}

	gameCrowns := make([]int, len(participants))
	for i := 0; i < crowns; i++ {
		gameCrowns[s.rng.WeightedIndex(weights)]++
	}

	contribs := make([]game.Contribution, 0, len(participants))
	var highlights []string
	for i := range participants {
		c := &participants[i]
		c.Career.GamesPlayed++
		c.Career.Crowns += gameCrowns[i]
		if gameCrowns[i] > c.Career.PeakCrowns {
			c.Career.PeakCrowns = gameCrowns[i]
		}
		if crowns > 0 {
			c.Career.Contribution += float64(gameCrowns[i]) / float64(crowns)
		}
		if err := s.cardRepo.Save(ctx, *c); err != nil {
			return nil, nil, fmt.Errorf("save card %s: %w", c.ID, err)
		}

		t.SeasonCrowns[c.ID] += gameCrowns[i]
		contribs = append(contribs, game.Contribution{CardID: c.ID, TeamID: t.ID, Crowns: gameCrowns[i]})

		for crown := 0; crown < gameCrowns[i]; crown++ {
			if s.rng.Chance(highlightChance) {
				highlights = append(highlights, s.renderHighlight(in, c.Name))
			}
		}
	}

	return contribs, highlights, nil
}

func (s *GameService) renderHighlight(in SimulateInput, cardName string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	fmt.Fprintf(buf, "S%d W%d: ", in.Season, in.Week)
	fmt.Fprintf(buf, highlightTemplates[s.rng.Intn(len(highlightTemplates))], cardName)

	return buf.String()
}

// applyTeamEffects mutates both teams' season counters, fatigue, chemistry,
// rivalry intensity and the rivalry-win boost window.
func (s *GameService) applyTeamEffects(home, away *team.Team, res game.Result, rivalry bool, winner, loser *team.Team) {
	home.CrownsFor += res.HomeCrowns
	home.CrownsAgainst += res.AwayCrowns
	away.CrownsFor += res.AwayCrowns
	away.CrownsAgainst += res.HomeCrowns
	winner.Wins++
	loser.Losses++

	for _, t := range []*team.Team{home, away} {
		t.Fatigue = clamp(t.Fatigue+fatiguePerGame, 0, team.FatigueMax)
		t.Chemistry = clamp(t.Chemistry+chemistryPerGame, 0, team.ChemistryMax)
		// An active boost is consumed by the game just played.
		if t.BoostGames > 0 {
			t.BoostGames--
		}
	}

	intensity := 1
	if res.Margin() == 1 {
		intensity++
	}
	if res.Playoff {
		intensity += 2
	}
	home.Rivalries[away.ID] += intensity
	away.Rivalries[home.ID] += intensity

	if rivalry {
		winner.BoostGames = team.RivalryBoostGames
	}
}
