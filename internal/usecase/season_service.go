package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/domain/game"
	"github.com/rizkyfalih/crown-league/internal/domain/season"
	"github.com/rizkyfalih/crown-league/internal/domain/synergy"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

const (
	patchTargetsPerSide = 3
	patchDeltaMin       = 2
	patchDeltaMax       = 5
	synergyShiftMin     = 2
	synergyShiftMax     = 5
	allLeagueTierSize   = 5
	allLeagueTiers      = 3
	allStarCount        = 10

	awardPointsMVP          = 10
	awardPointsMostImproved = 5
	awardPointsAllStar      = 2
	awardPointsRunnerUp     = 2
)

// ScheduledGame is one not-yet-simulated matchup.
type ScheduledGame struct {
	Week   int
	HomeID string
	AwayID string
}

// SeasonService sequences the season lifecycle: patch, draft, regular
// season, playoffs, awards and offseason rollover.
type SeasonService struct {
	cfg        config.Config
	rng        *RNG
	registry   *synergy.Registry
	generator  *GeneratorService
	draftSvc   *DraftService
	gameSvc    *GameService
	cardRepo   card.Repository
	teamRepo   team.Repository
	gameRepo   game.Repository
	seasonRepo season.Repository
	newsRepo   season.NewsRepository
	logger     *logging.Logger

	current  int
	phase    season.Phase
	week     int
	schedule []ScheduledGame
	bracket  [][]season.SeriesResult
}

func NewSeasonService(
	cfg config.Config,
	rng *RNG,
	registry *synergy.Registry,
	generator *GeneratorService,
	draftSvc *DraftService,
	gameSvc *GameService,
	cardRepo card.Repository,
	teamRepo team.Repository,
	gameRepo game.Repository,
	seasonRepo season.Repository,
	newsRepo season.NewsRepository,
	logger *logging.Logger,
) *SeasonService {
	if logger == nil {
		logger = logging.Default()
	}

	return &SeasonService{
		cfg:        cfg,
		rng:        rng,
		registry:   registry,
		generator:  generator,
		draftSvc:   draftSvc,
		gameSvc:    gameSvc,
		cardRepo:   cardRepo,
		teamRepo:   teamRepo,
		gameRepo:   gameRepo,
		seasonRepo: seasonRepo,
		newsRepo:   newsRepo,
		logger:     logger,
		current:    1,
		phase:      season.PhasePatch,
	}
}

// CurrentSeason returns the season number the engine will run (or is running).
func (s *SeasonService) CurrentSeason() int { return s.current }

func (s *SeasonService) Phase() season.Phase { return s.phase }

func (s *SeasonService) Week() int { return s.week }

// Bracket returns the playoff series resolved so far, by round.
func (s *SeasonService) Bracket() [][]season.SeriesResult {
	out := make([][]season.SeriesResult, len(s.bracket))
	for i, round := range s.bracket {
		out[i] = append([]season.SeriesResult(nil), round...)
	}
	return out
}

// UpcomingGames returns the next n scheduled regular-season games for the
// given team, if a schedule is pending.
func (s *SeasonService) UpcomingGames(teamID string, n int) []ScheduledGame {
	var out []ScheduledGame
	for _, g := range s.schedule {
		if g.Week < s.week {
			continue
		}
		if teamID != "" && g.HomeID != teamID && g.AwayID != teamID {
			continue
		}
		out = append(out, g)
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// RunFullSeason executes one complete season cycle: patch, auto-resolved
// draft, round-robin regular season, playoffs, awards and offseason.
func (s *SeasonService) RunFullSeason(ctx context.Context) (season.History, error) {
	ctx, span := startEngineSpan(ctx, "usecase.SeasonService.RunFullSeason")
	defer span.End()

	seasonNum := s.current

	s.phase = season.PhasePatch
	notes, err := s.runPatchPhase(ctx, seasonNum)
	if err != nil {
		return season.History{}, fmt.Errorf("patch phase: %w", err)
	}

	s.phase = season.PhaseDraft
	// A draft the user already ran for this season stands; anything else is
	// auto-resolved here.
	if s.draftSvc.State() != draft.StateComplete || s.draftSvc.Season() != seasonNum {
		priorWins, err := s.priorWins(ctx)
		if err != nil {
			return season.History{}, err
		}
		if s.draftSvc.State() == draft.StateInProgress {
			s.draftSvc.Reset()
		}
		if err := s.draftSvc.Start(ctx, seasonNum, priorWins); err != nil {
			return season.History{}, fmt.Errorf("draft phase: %w", err)
		}
		if err := s.draftSvc.SimToEnd(ctx, true); err != nil {
			return season.History{}, fmt.Errorf("draft phase: %w", err)
		}
	}

	s.phase = season.PhaseRegular
	if err := s.runRegularSeason(ctx, seasonNum); err != nil {
		return season.History{}, fmt.Errorf("regular season: %w", err)
	}

	s.phase = season.PhasePlayoffs
	championID, runnerUpID, err := s.runPlayoffs(ctx, seasonNum)
	if err != nil {
		return season.History{}, fmt.Errorf("playoffs: %w", err)
	}

	s.phase = season.PhaseAwards
	awards, leaders, err := s.runAwardsPhase(ctx, seasonNum, championID)
	if err != nil {
		return season.History{}, fmt.Errorf("awards phase: %w", err)
	}

	s.phase = season.PhaseOffseason
	if err := s.runOffseason(ctx, seasonNum); err != nil {
		return season.History{}, fmt.Errorf("offseason: %w", err)
	}

	grades, _, err := s.draftSvc.Grades(ctx)
	if err != nil {
		return season.History{}, fmt.Errorf("load grades: %w", err)
	}

	history := season.History{
		Season:      seasonNum,
		ChampionID:  championID,
		RunnerUpID:  runnerUpID,
		Grades:      grades,
		Awards:      awards,
		CrownLeader: leaders,
		Bracket:     s.Bracket(),
		PatchNotes:  notes,
	}
	if err := s.seasonRepo.Append(ctx, history); err != nil {
		return season.History{}, fmt.Errorf("append history: %w", err)
	}

	s.current = seasonNum + 1
	s.phase = season.PhasePatch
	s.logger.Info("season complete", "season", seasonNum, "champion", championID)

	return history, nil
}

// runPatchPhase buffs the least-used cards, nerfs the most-used, and shifts
// a handful of synergy multipliers. Season 1 has no usage data, so only the
// patch-notes scaffold is produced.
func (s *SeasonService) runPatchPhase(ctx context.Context, seasonNum int) (season.PatchNotes, error) {
	notes := season.PatchNotes{Season: seasonNum}

	if seasonNum > 1 {
		cards, err := s.cardRepo.ListDraftable(ctx)
		if err != nil {
			return notes, fmt.Errorf("list cards: %w", err)
		}
		sort.Slice(cards, func(i, j int) bool {
			pi, pj := cards[i].Career.PickRate(), cards[j].Career.PickRate()
			if pi != pj {
				return pi < pj
			}
			return cards[i].ID < cards[j].ID
		})

		for i := 0; i < patchTargetsPerSide && i < len(cards); i++ {
			change, err := s.patchCard(ctx, cards[i], seasonNum, true)
			if err != nil {
				return notes, err
			}
			notes.CardChanges = append(notes.CardChanges, change)
		}
		for i := 0; i < patchTargetsPerSide && len(cards)-1-i >= patchTargetsPerSide; i++ {
			change, err := s.patchCard(ctx, cards[len(cards)-1-i], seasonNum, false)
			if err != nil {
				return notes, err
			}
			notes.CardChanges = append(notes.CardChanges, change)
		}

		shifts := s.rng.IntBetween(synergyShiftMin, synergyShiftMax)
		for i := 0; i < shifts; i++ {
			idx := s.rng.Intn(s.registry.Len())
			delta := s.rng.FloatBetween(0.02, 0.05)
			if s.rng.Chance(0.5) {
				delta = -delta
			}
			rule, shift, err := s.registry.ShiftRule(idx, seasonNum, delta)
			if err != nil {
				return notes, err
			}
			notes.SynergyChanges = append(notes.SynergyChanges, season.SynergyChange{
				Code:     rule.Code,
				Name:     rule.Name,
				Before:   shift.Before,
				After:    shift.After,
				Reaction: fmt.Sprintf("Meta watch: %s moves %.2f -> %.2f.", rule.Name, shift.Before, shift.After),
			})
		}
	}

	if err := s.seasonRepo.SavePatchNotes(ctx, notes); err != nil {
		return notes, fmt.Errorf("save patch notes: %w", err)
	}
	if len(notes.CardChanges) > 0 {
		_ = s.newsRepo.Publish(ctx, fmt.Sprintf("Patch %d.0 is live: %d card changes, %d synergy shifts.", seasonNum, len(notes.CardChanges), len(notes.SynergyChanges)))
	}

	return notes, nil
}

// patchCard applies one bounded stat delta. Buffs raise the card's weakest
// stat; nerfs lower its strongest.
func (s *SeasonService) patchCard(ctx context.Context, c card.Card, seasonNum int, buff bool) (season.CardChange, error) {
	stats := map[string]*int{
		"attack":    &c.Stats.Attack,
		"defense":   &c.Stats.Defense,
		"speed":     &c.Stats.Speed,
		"hit_speed": &c.Stats.HitSpeed,
		"stamina":   &c.Stats.Stamina,
	}

	targetName := ""
	for name, v := range stats {
		if targetName == "" {
			targetName = name
			continue
		}
		better := *v < *stats[targetName]
		if !buff {
			better = *v > *stats[targetName]
		}
		if better || (*v == *stats[targetName] && name < targetName) {
			targetName = name
		}
	}

	target := stats[targetName]
	before := *target
	delta := s.rng.IntBetween(patchDeltaMin, patchDeltaMax)
	if !buff {
		delta = -delta
	}
	after := before + delta
	if after > card.StatMax {
		after = card.StatMax
	}
	if after < card.StatMin {
		after = card.StatMin
	}
	*target = after
	c.RecomputeOVR()

	reactionPool := patchBuffReactions
	if !buff {
		reactionPool = patchNerfReactions
	}
	reaction := fmt.Sprintf(reactionPool[s.rng.Intn(len(reactionPool))], c.Name)

	c.Career.PatchLog = append(c.Career.PatchLog, card.PatchChange{
		Season:   seasonNum,
		Stat:     targetName,
		Before:   before,
		After:    after,
		Reaction: reaction,
	})
	if err := s.cardRepo.Save(ctx, c); err != nil {
		return season.CardChange{}, fmt.Errorf("save patched card %s: %w", c.ID, err)
	}

	return season.CardChange{
		CardID:   c.ID,
		CardName: c.Name,
		Stat:     targetName,
		Before:   before,
		After:    after,
		Reaction: reaction,
	}, nil
}

func (s *SeasonService) priorWins(ctx context.Context) (map[string]int, error) {
	if s.current == 1 {
		return nil, nil
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	wins := make(map[string]int, len(teams))
	for _, t := range teams {
		wins[t.ID] = t.Wins
	}
	return wins, nil
}

// runRegularSeason builds a full round-robin via the circle method, with the
// pairing order randomized once, then simulates every game in schedule order.
func (s *SeasonService) runRegularSeason(ctx context.Context, seasonNum int) error {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	s.schedule = buildRoundRobin(ids)
	s.week = 1

	for _, g := range s.schedule {
		s.week = g.Week
		if _, err := s.gameSvc.Simulate(ctx, SimulateInput{
			Season: seasonNum,
			Week:   g.Week,
			HomeID: g.HomeID,
			AwayID: g.AwayID,
		}); err != nil {
			return err
		}
	}

	s.week++
	return nil
}

// buildRoundRobin pairs teams with the circle method: fix the first team,
// rotate the rest, one full meeting per pair.
func buildRoundRobin(ids []string) []ScheduledGame {
	n := len(ids)
	if n < 2 {
		return nil
	}

	rotation := append([]string(nil), ids...)
	weeks := n - 1
	half := n / 2

	var out []ScheduledGame
	for week := 1; week <= weeks; week++ {
		for i := 0; i < half; i++ {
			home, away := rotation[i], rotation[n-1-i]
			if week%2 == 0 {
				home, away = away, home
			}
			out = append(out, ScheduledGame{Week: week, HomeID: home, AwayID: away})
		}
		// Rotate all but the first element.
		last := rotation[n-1]
		copy(rotation[2:], rotation[1:n-1])
		rotation[1] = last
	}

	return out
}

// runPlayoffs seeds the bracket by wins (crown differential tie-break) and
// resolves escalating best-of series: Bo3 until the semifinals (Bo5) and the
// final (Bo7).
func (s *SeasonService) runPlayoffs(ctx context.Context, seasonNum int) (string, string, error) {
	standings, err := s.standingsOrder(ctx)
	if err != nil {
		return "", "", err
	}
	if len(standings) < s.cfg.PlayoffTeams {
		return "", "", fmt.Errorf("%w: %d teams cannot fill a %d-team bracket", ErrInvalidState, len(standings), s.cfg.PlayoffTeams)
	}

	seeds := standings[:s.cfg.PlayoffTeams]
	totalRounds := 0
	for n := s.cfg.PlayoffTeams; n > 1; n /= 2 {
		totalRounds++
	}

	s.bracket = nil
	week := s.week

	alive := seeds
	for round := 1; round <= totalRounds; round++ {
		bestOf := seriesLength(round, totalRounds)
		var roundResults []season.SeriesResult
		var next []string

		for i := 0; i < len(alive)/2; i++ {
			high := alive[i]
			low := alive[len(alive)-1-i]
			result, err := s.runSeries(ctx, seasonNum, week, round, bestOf, high, low)
			if err != nil {
				return "", "", err
			}
			roundResults = append(roundResults, result)
			next = append(next, result.WinnerID)
		}

		s.bracket = append(s.bracket, roundResults)
		alive = next
		week++
	}

	champion := alive[0]
	final := s.bracket[len(s.bracket)-1][0]
	runnerUp := final.HighSeed
	if runnerUp == champion {
		runnerUp = final.LowSeed
	}

	if err := s.crownChampion(ctx, champion, runnerUp); err != nil {
		return "", "", err
	}

	return champion, runnerUp, nil
}

// seriesLength scales by round: the final is Bo7, semifinals Bo5, earlier
// rounds Bo3.
func seriesLength(round, totalRounds int) int {
	switch totalRounds - round {
	case 0:
		return 7
	case 1:
		return 5
	default:
		return 3
	}
}

func (s *SeasonService) runSeries(ctx context.Context, seasonNum, week, round, bestOf int, highSeed, lowSeed string) (season.SeriesResult, error) {
	needed := bestOf/2 + 1
	highWins, lowWins := 0, 0

	for highWins < needed && lowWins < needed {
		// Higher seed hosts odd games of the series.
		home, away := highSeed, lowSeed
		if (highWins+lowWins)%2 == 1 {
			home, away = lowSeed, highSeed
		}

		res, err := s.gameSvc.Simulate(ctx, SimulateInput{
			Season:  seasonNum,
			Week:    week,
			Playoff: true,
			HomeID:  home,
			AwayID:  away,
		})
		if err != nil {
			return season.SeriesResult{}, err
		}

		if res.WinnerID == highSeed {
			highWins++
		} else {
			lowWins++
		}
	}

	winner := highSeed
	losses := lowWins
	if lowWins == needed {
		winner = lowSeed
		losses = highWins
	}

	return season.SeriesResult{
		Round:    round,
		HighSeed: highSeed,
		LowSeed:  lowSeed,
		WinnerID: winner,
		Wins:     needed,
		LossesBy: losses,
	}, nil
}

func (s *SeasonService) crownChampion(ctx context.Context, championID, runnerUpID string) error {
	champ, ok, err := s.teamRepo.GetByID(ctx, championID)
	if err != nil || !ok {
		return fmt.Errorf("get champion %s: %w", championID, err)
	}
	champ.Rings++
	if err := s.teamRepo.Save(ctx, champ); err != nil {
		return fmt.Errorf("save champion: %w", err)
	}

	for _, cid := range champ.Starters {
		c, ok, err := s.cardRepo.GetByID(ctx, cid)
		if err != nil || !ok {
			continue
		}
		c.Career.Rings++
		if err := s.cardRepo.Save(ctx, c); err != nil {
			return fmt.Errorf("save champion card %s: %w", cid, err)
		}
	}

	runnerUp, ok, err := s.teamRepo.GetByID(ctx, runnerUpID)
	if err == nil && ok {
		for _, cid := range runnerUp.Starters {
			c, found, err := s.cardRepo.GetByID(ctx, cid)
			if err != nil || !found {
				continue
			}
			c.Career.AwardPoints += awardPointsRunnerUp
			_ = s.cardRepo.Save(ctx, c)
		}
	}

	_ = s.newsRepo.Publish(ctx, fmt.Sprintf("%s win the Season %d championship!", champ.Name, s.current))

	return nil
}

func (s *SeasonService) standingsOrder(ctx context.Context) ([]string, error) {
	teams, err := s.teamRepo.List(ctx)
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

	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	return ids, nil
}
