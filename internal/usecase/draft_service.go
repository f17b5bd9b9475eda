package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rizkyfalih/crown-league/internal/config"
	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/domain/synergy"
	"github.com/rizkyfalih/crown-league/internal/domain/team"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

// DraftService runs the snake draft state machine. It holds state between
// calls: when the human team is on the clock the draft suspends until the
// caller supplies a pick or requests an AI auto-pick.
type DraftService struct {
	cfg       config.Config
	rng       *RNG
	registry  *synergy.Registry
	power     *PowerService
	scorer    PickScorer
	cardRepo  card.Repository
	teamRepo  team.Repository
	draftRepo draft.Repository
	newsRepo  NewsPublisher
	logger    *logging.Logger

	state       draft.State
	season      int
	order       []string
	round       int
	pickInRound int
	overall     int
	pool        map[string]card.Card
	humanTeamID string
	autoHuman   bool
}

// NewsPublisher is the slice of the news repository the engine writes to.
type NewsPublisher interface {
	Publish(ctx context.Context, line string) error
}

func NewDraftService(
	cfg config.Config,
	rng *RNG,
	registry *synergy.Registry,
	power *PowerService,
	scorer PickScorer,
	cardRepo card.Repository,
	teamRepo team.Repository,
	draftRepo draft.Repository,
	newsRepo NewsPublisher,
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}

	return &DraftService{
		cfg:       cfg,
		rng:       rng,
		registry:  registry,
		power:     power,
		scorer:    scorer,
		cardRepo:  cardRepo,
		teamRepo:  teamRepo,
		draftRepo: draftRepo,
		newsRepo:  newsRepo,
		logger:    logger,
		state:     draft.StateNotStarted,
	}
}

func (s *DraftService) State() draft.State { return s.state }

func (s *DraftService) Season() int { return s.season }

// OnClock returns the team currently picking. ok is false outside InProgress.
func (s *DraftService) OnClock() (teamID string, round, pickInRound int, ok bool) {
	if s.state != draft.StateInProgress {
		return "", 0, 0, false
	}
	pos := draft.SnakePosition(s.round-1, s.pickInRound, len(s.order))
	return s.order[pos], s.round, s.pickInRound, true
}

// PoolSize returns how many cards remain available.
func (s *DraftService) PoolSize() int { return len(s.pool) }

// AvailableCards lists the current pool sorted by overall rating descending.
func (s *DraftService) AvailableCards() []card.Card {
	out := make([]card.Card, 0, len(s.pool))
	for _, c := range s.pool {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OVR != out[j].OVR {
			return out[i].OVR > out[j].OVR
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Start opens the draft for the given season. priorWins weights the lottery
// toward lower-performing teams; nil yields a fully random order (season 1).
// Team rosters are cleared and every draftable, unowned card enters the pool.
func (s *DraftService) Start(ctx context.Context, seasonNum int, priorWins map[string]int) error {
	ctx, span := startEngineSpan(ctx, "usecase.DraftService.Start")
	defer span.End()

	if s.state == draft.StateInProgress {
		return fmt.Errorf("%w: %v", ErrInvalidState, draft.ErrAlreadyStarted)
	}
	if seasonNum <= 0 {
		return fmt.Errorf("%w: season must be positive", ErrInvalidInput)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	if len(teams) == 0 {
		return fmt.Errorf("%w: no teams generated", ErrInvalidState)
	}

	for i := range teams {
		if teams[i].Human {
			s.humanTeamID = teams[i].ID
		}
		teams[i].ResetForSeason()
		if err := s.teamRepo.Save(ctx, teams[i]); err != nil {
			return fmt.Errorf("reset team %s: %w", teams[i].ID, err)
		}
	}

	// A restart replaces any earlier attempt for this season wholesale; stale
	// picks would otherwise double-count in the log and the grades.
	if err := s.draftRepo.PurgeSeason(ctx, seasonNum); err != nil {
		return fmt.Errorf("purge season %d picks: %w", seasonNum, err)
	}

	available, err := s.cardRepo.ListDraftable(ctx)
	if err != nil {
		return fmt.Errorf("list draftable cards: %w", err)
	}

	s.pool = make(map[string]card.Card, len(available))
	for _, c := range available {
		c.Career.Drafts++
		if err := s.cardRepo.Save(ctx, c); err != nil {
			return fmt.Errorf("mark card eligible %s: %w", c.ID, err)
		}
		s.pool[c.ID] = c
	}

	s.order = s.lotteryOrder(teams, priorWins)
	s.season = seasonNum
	s.round = 1
	s.pickInRound = 0
	s.overall = 1
	s.state = draft.StateInProgress

	s.logger.Info("draft started",
		"season", seasonNum,
		"pool", len(s.pool),
		"rounds", s.cfg.DraftRounds,
	)

	return nil
}

// Reset abandons any draft in progress and returns to NotStarted. Picks
// already logged for the abandoned attempt are purged when the season's
// draft starts again.
func (s *DraftService) Reset() {
	s.state = draft.StateNotStarted
	s.order = nil
	s.pool = nil
	s.round = 0
	s.pickInRound = 0
	s.overall = 0
}

// HumanPick applies an explicit card selection for the human-controlled team.
func (s *DraftService) HumanPick(ctx context.Context, cardID string) error {
	ctx, span := startEngineSpan(ctx, "usecase.DraftService.HumanPick")
	defer span.End()

	teamID, _, _, ok := s.OnClock()
	if !ok {
		return s.notInProgressErr()
	}
	if teamID != s.humanTeamID {
		return fmt.Errorf("%w: %v: on the clock is %s", ErrInvalidState, draft.ErrNotOnClock, teamID)
	}

	return s.applyPick(ctx, teamID, cardID)
}

// AIAutoPick resolves the current pick for the given team via the heuristic
// scorer. The team must be on the clock; the human team may be auto-picked
// only through this explicit request or a full-season run.
func (s *DraftService) AIAutoPick(ctx context.Context, teamID string) error {
	ctx, span := startEngineSpan(ctx, "usecase.DraftService.AIAutoPick")
	defer span.End()

	onClock, _, _, ok := s.OnClock()
	if !ok {
		return s.notInProgressErr()
	}
	if teamID != onClock {
		return fmt.Errorf("%w: %v: on the clock is %s", ErrInvalidState, draft.ErrNotOnClock, onClock)
	}

	return s.resolveAIPick(ctx, teamID)
}

// SimNextPick resolves the next pick via AI. If the human team is on the
// clock it returns draft.ErrHumanPickNeeded and makes no progress.
func (s *DraftService) SimNextPick(ctx context.Context) error {
	ctx, span := startEngineSpan(ctx, "usecase.DraftService.SimNextPick")
	defer span.End()

	teamID, _, _, ok := s.OnClock()
	if !ok {
		return s.notInProgressErr()
	}
	if teamID == s.humanTeamID && !s.autoHuman {
		return fmt.Errorf("%w: %v", ErrInvalidState, draft.ErrHumanPickNeeded)
	}

	return s.resolveAIPick(ctx, teamID)
}

// SimToEnd resolves picks until the draft completes. With autoHuman false it
// suspends when the human team comes on the clock.
func (s *DraftService) SimToEnd(ctx context.Context, autoHuman bool) error {
	ctx, span := startEngineSpan(ctx, "usecase.DraftService.SimToEnd")
	defer span.End()

	prev := s.autoHuman
	s.autoHuman = autoHuman
	defer func() { s.autoHuman = prev }()

	for s.state == draft.StateInProgress {
		teamID, _, _, _ := s.OnClock()
		if teamID == s.humanTeamID && !autoHuman {
			return fmt.Errorf("%w: %v", ErrInvalidState, draft.ErrHumanPickNeeded)
		}
		if err := s.resolveAIPick(ctx, teamID); err != nil {
			return err
		}
	}

	return nil
}

// Grades returns the letter grades for the most recently completed draft.
func (s *DraftService) Grades(ctx context.Context) ([]draft.Grade, bool, error) {
	ctx, span := startEngineSpan(ctx, "usecase.DraftService.Grades")
	defer span.End()

	if s.season == 0 {
		return nil, false, nil
	}
	return s.draftRepo.GradesBySeason(ctx, s.season)
}

func (s *DraftService) notInProgressErr() error {
	if s.state == draft.StateComplete {
		return fmt.Errorf("%w: %v", ErrInvalidState, draft.ErrComplete)
	}
	return fmt.Errorf("%w: %v", ErrInvalidState, draft.ErrNotStarted)
}

func (s *DraftService) lotteryOrder(teams []team.Team, priorWins map[string]int) []string {
	ids := make([]string, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	sort.Strings(ids)

	if len(priorWins) == 0 {
		s.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
		return ids
	}

	maxWins := 0
	for _, w := range priorWins {
		if w > maxWins {
			maxWins = w
		}
	}

	// Weighted sample without replacement, worse records drawn earlier.
	order := make([]string, 0, len(ids))
	remaining := append([]string(nil), ids...)
	for len(remaining) > 0 {
		weights := make([]float64, len(remaining))
		for i, id := range remaining {
			weights[i] = float64(maxWins - priorWins[id] + 1)
		}
		picked := s.rng.WeightedIndex(weights)
		order = append(order, remaining[picked])
		remaining = append(remaining[:picked], remaining[picked+1:]...)
	}

	return order
}

func (s *DraftService) resolveAIPick(ctx context.Context, teamID string) error {
	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team %s: %w", teamID, err)
	}
	if !ok {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	bestID := ""
	bestScore := 0.0
	for _, c := range s.AvailableCards() {
		score, err := s.scorer.Score(ctx, t, c, s.round)
		if err != nil {
			return fmt.Errorf("score candidate %s: %w", c.ID, err)
		}
		if bestID == "" || score > bestScore {
			bestID = c.ID
			bestScore = score
		}
	}
	if bestID == "" {
		// Pool exhausted mid-round; close the draft early.
		return s.complete(ctx)
	}

	return s.applyPick(ctx, teamID, bestID)
}

// applyPick moves the card from the pool to the team roster, appends the
// immutable pick record and advances the snake pointer. Rejections leave all
// state untouched.
func (s *DraftService) applyPick(ctx context.Context, teamID, cardID string) error {
	c, inPool := s.pool[cardID]
	if !inPool {
		return fmt.Errorf("%w: %v: %s", ErrInvalidInput, draft.ErrCardUnavailable, cardID)
	}

	t, ok, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team %s: %w", teamID, err)
	}
	if !ok {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}

	t.Roster = append(t.Roster, cardID)
	if err := s.teamRepo.Save(ctx, t); err != nil {
		return fmt.Errorf("save team %s: %w", teamID, err)
	}

	c.Career.TimesDrafted++
	if err := s.cardRepo.Save(ctx, c); err != nil {
		return fmt.Errorf("save card %s: %w", cardID, err)
	}

	pick := draft.Pick{
		Season:  s.season,
		Round:   s.round,
		Overall: s.overall,
		TeamID:  teamID,
		GMName:  t.GM.Name,
		CardID:  cardID,
		OVR:     c.OVR,
		Rookie:  c.Rookie,
	}
	if err := s.draftRepo.AppendPick(ctx, pick); err != nil {
		return fmt.Errorf("append pick: %w", err)
	}

	delete(s.pool, cardID)

	if s.round == 1 && s.pickInRound < 3 {
		_ = s.newsRepo.Publish(ctx, fmt.Sprintf("Draft: %s takes %s (%d OVR) at #%d overall.", t.Name, c.Name, c.OVR, s.overall))
	}

	s.overall++
	s.pickInRound++
	if s.pickInRound >= len(s.order) {
		s.pickInRound = 0
		s.round++
	}
	if s.round > s.cfg.DraftRounds || len(s.pool) == 0 {
		return s.complete(ctx)
	}

	return nil
}

// complete finalizes starters and backups, grades every team and closes the
// draft.
func (s *DraftService) complete(ctx context.Context) error {
	s.state = draft.StateComplete

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}

	grades := make([]draft.Grade, 0, len(teams))
	for i := range teams {
		if err := s.assignLineup(ctx, &teams[i]); err != nil {
			return err
		}
		grade, err := s.gradeTeam(ctx, teams[i])
		if err != nil {
			return err
		}
		grades = append(grades, grade)
	}

	sort.Slice(grades, func(i, j int) bool { return grades[i].Score > grades[j].Score })
	if err := s.draftRepo.SaveGrades(ctx, s.season, grades); err != nil {
		return fmt.Errorf("save grades: %w", err)
	}

	if len(grades) > 0 {
		top, _, _ := s.teamRepo.GetByID(ctx, grades[0].TeamID)
		_ = s.newsRepo.Publish(ctx, fmt.Sprintf("Draft complete: pundits hand %s the best class (%s).", top.Name, grades[0].Letter))
	}

	s.logger.Info("draft complete", "season", s.season, "picks", s.overall-1)

	return nil
}

// assignLineup sets the top three roster cards by rating as starters and the
// fourth, if present, as backup.
func (s *DraftService) assignLineup(ctx context.Context, t *team.Team) error {
	roster := make([]card.Card, 0, len(t.Roster))
	for _, id := range t.Roster {
		c, ok, err := s.cardRepo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("get card %s: %w", id, err)
		}
		if !ok {
			return fmt.Errorf("%w: roster card %s", ErrNotFound, id)
		}
		roster = append(roster, c)
	}
	sort.Slice(roster, func(i, j int) bool {
		if roster[i].OVR != roster[j].OVR {
			return roster[i].OVR > roster[j].OVR
		}
		return roster[i].ID < roster[j].ID
	})

	t.Starters = nil
	t.BackupID = ""
	for i, c := range roster {
		if i < team.MaxStarters {
			t.Starters = append(t.Starters, c.ID)
		} else if i == team.MaxStarters {
			t.BackupID = c.ID
		}
	}

	return s.teamRepo.Save(ctx, *t)
}

func (s *DraftService) gradeTeam(ctx context.Context, t team.Team) (draft.Grade, error) {
	picks, err := s.draftRepo.ListPicks(ctx, s.season)
	if err != nil {
		return draft.Grade{}, fmt.Errorf("list picks: %w", err)
	}

	ovrSum, valueSum, count := 0.0, 0.0, 0
	for _, p := range picks {
		if p.TeamID != t.ID {
			continue
		}
		ovrSum += float64(p.OVR)
		valueSum += float64(p.OVR) - roundBaseline(p.Round)
		count++
	}
	if count == 0 {
		return draft.Grade{TeamID: t.ID, Letter: "F"}, nil
	}

	starters := make([]card.Card, 0, len(t.Starters))
	for _, id := range t.Starters {
		c, ok, err := s.cardRepo.GetByID(ctx, id)
		if err != nil || !ok {
			continue
		}
		starters = append(starters, c)
	}

	avgOVR := ovrSum / float64(count)
	mult := s.registry.ActiveMultiplier(starters)
	synergyScore := clamp((mult-synergy.LineupMin)/(synergy.LineupMax-synergy.LineupMin), 0, 1) * 100
	valueScore := clamp(50+valueSum/float64(count)*5, 0, 100)

	score := draft.GradeWeightOVR*avgOVR + draft.GradeWeightSynergy*synergyScore + draft.GradeWeightValue*valueScore

	return draft.Grade{
		TeamID:  t.ID,
		Letter:  draft.LetterFor(score),
		Score:   score,
		AvgOVR:  avgOVR,
		Synergy: synergyScore,
		Value:   valueScore,
	}, nil
}
