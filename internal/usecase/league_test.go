package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/platform/logging"
)

func newTestLeague(t *testing.T, seed int64) *League {
	t.Helper()

	l, err := NewLeague(context.Background(), engineTestConfig(seed), logging.NewNop())
	require.NoError(t, err)
	return l
}

func TestLeagueFirstSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLeague(t, 1337)

	info := l.GetSeasonInfo(ctx)
	require.Equal(t, 1, info.Season)
	require.NotEmpty(t, info.HumanTeamID)
	require.Equal(t, l.HumanTeamID(), info.HumanTeamID)

	history, err := l.RunFullSeason(ctx)
	require.NoError(t, err)

	require.Equal(t, 1, history.Season)
	require.NotEmpty(t, history.ChampionID)
	require.NotEmpty(t, history.RunnerUpID)
	require.NotEqual(t, history.ChampionID, history.RunnerUpID)
	require.Len(t, history.Grades, 30)
	require.NotEmpty(t, history.Bracket, "playoff bracket should be recorded")
	require.NotEmpty(t, history.CrownLeader, "crown leaders should be recorded")
	require.NotEmpty(t, history.Awards.MVPCardID)
	require.Len(t, history.Awards.AllStars, 10)
	require.Len(t, history.Awards.AllLeague, 3)
	require.Empty(t, history.Awards.MostImprovedCardID, "no improvement baseline exists in season 1")
	require.Empty(t, history.PatchNotes.CardChanges, "season 1 has no usage data to patch")

	info = l.GetSeasonInfo(ctx)
	require.Equal(t, 2, info.Season)

	standings, err := l.GetStandings(ctx)
	require.NoError(t, err)
	require.Len(t, standings, 30)
	totalGames := 0
	for i, row := range standings {
		require.Equal(t, i+1, row.Rank)
		require.GreaterOrEqual(t, row.Wins+row.Losses, 29, "every team plays a full round robin")
		totalGames += row.Wins + row.Losses
		if i > 0 {
			require.LessOrEqual(t, row.Wins, standings[i-1].Wins, "standings sorted by wins")
		}
	}
	require.Zero(t, totalGames%2, "every game involves two teams")

	champ, ok, err := l.teamRepo.GetByID(ctx, history.ChampionID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 1, champ.Rings)
}

func TestLeagueDeterminism(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	a := newTestLeague(t, 2024)
	b := newTestLeague(t, 2024)

	historyA, err := a.RunFullSeason(ctx)
	require.NoError(t, err)
	historyB, err := b.RunFullSeason(ctx)
	require.NoError(t, err)

	require.Equal(t, historyA.ChampionID, historyB.ChampionID)
	require.Equal(t, historyA.Awards, historyB.Awards)
	require.Equal(t, historyA.CrownLeader, historyB.CrownLeader)

	standingsA, err := a.GetStandings(ctx)
	require.NoError(t, err)
	standingsB, err := b.GetStandings(ctx)
	require.NoError(t, err)
	require.Equal(t, standingsA, standingsB)

	// A different seed should not replay the same season.
	c := newTestLeague(t, 2025)
	historyC, err := c.RunFullSeason(ctx)
	require.NoError(t, err)
	require.NotEqual(t, historyA.CrownLeader, historyC.CrownLeader)
}

func TestLeagueSecondSeasonLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLeague(t, 1337)

	_, err := l.RunFullSeason(ctx)
	require.NoError(t, err)

	poolAfterOne, err := l.cardRepo.List(ctx)
	require.NoError(t, err)

	second, err := l.RunFullSeason(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, second.Season)

	// Season 2 opens with a balance patch driven by season 1 usage.
	require.Equal(t, 2, second.PatchNotes.Season)
	require.NotEmpty(t, second.PatchNotes.CardChanges)
	require.NotEmpty(t, second.PatchNotes.SynergyChanges)
	notes, err := l.GetPatchNotes(ctx, 2)
	require.NoError(t, err)
	require.Equal(t, second.PatchNotes.Season, notes.Season)

	poolAfterTwo, err := l.cardRepo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, len(poolAfterOne)+l.cfg.RookiesPerYear, len(poolAfterTwo),
		"each offseason adds a rookie class")

	// Lifecycle bookkeeping: active cards age, retired cards stay off rosters.
	retired := 0
	for _, c := range poolAfterTwo {
		if c.Retired {
			retired++
			require.Zero(t, c.SeasonsLeft)
		}
	}
	teams, err := l.Teams(ctx)
	require.NoError(t, err)
	for _, tm := range teams {
		for _, cid := range tm.Roster {
			c, ok, err := l.cardRepo.GetByID(ctx, cid)
			require.NoError(t, err)
			require.True(t, ok)
			require.False(t, c.Retired, "retired card %s on roster of %s", cid, tm.ID)
		}
	}

	// Two seasons of history accumulate.
	first, err := l.GetSeasonHistory(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, 1, first.Season)
	_, err = l.GetSeasonHistory(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLeagueMultiSeasonAging(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLeague(t, 7)

	const seasons = 5
	for i := 0; i < seasons; i++ {
		history, err := l.RunFullSeason(ctx)
		require.NoError(t, err)
		require.Equal(t, i+1, history.Season)
	}

	cards, err := l.cardRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 165+seasons*l.cfg.RookiesPerYear)

	retired := 0
	for _, c := range cards {
		if c.Retired {
			retired++
			require.Zero(t, c.SeasonsLeft, "retired card %s still has seasons left", c.ID)
		}
		if c.HallOfFame {
			require.True(t, c.Retired, "hall of famer %s must be retired", c.ID)
		}
	}
	// The shortest lifespans run out well inside five seasons.
	require.Positive(t, retired)

	histories, err := l.seasonRepo.List(ctx)
	require.NoError(t, err)
	require.Len(t, histories, seasons)
}

func TestLeagueInteractiveDraftThenSeason(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLeague(t, 1337)

	require.NoError(t, l.StartDraft(ctx))

	board, err := l.GetDraftBoard(ctx)
	require.NoError(t, err)
	require.Equal(t, draft.StateInProgress, board.State)
	require.NotZero(t, board.PoolSize)

	// Resolve the whole draft, manually picking for the human team.
	for board.State == draft.StateInProgress {
		if board.OnClockTeamID == l.HumanTeamID() {
			require.NotEmpty(t, board.Available)
			require.NoError(t, l.HumanPick(ctx, board.Available[0].ID))
		} else {
			require.NoError(t, l.SimNextPick(ctx))
		}
		board, err = l.GetDraftBoard(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, draft.StateComplete, board.State)

	grades, err := l.GetLastDraftGrades(ctx)
	require.NoError(t, err)
	require.Len(t, grades, 30)

	// The season run must honor the interactively completed draft instead of
	// redrafting.
	history, err := l.RunFullSeason(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, history.Season)

	picks, err := l.draftRepo.ListPicks(ctx, 1)
	require.NoError(t, err)
	require.Len(t, picks, 30*l.cfg.DraftRounds, "season run must not redraft")
}

func TestLeagueLeaders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLeague(t, 1337)
	_, err := l.RunFullSeason(ctx)
	require.NoError(t, err)

	for _, category := range []string{LeaderCategoryCrowns, LeaderCategoryUsage, LeaderCategoryContribution} {
		leaders, err := l.GetLeagueLeaders(ctx, category, 10)
		require.NoError(t, err, category)
		require.Len(t, leaders, 10, category)
		for i := 1; i < len(leaders); i++ {
			require.LessOrEqual(t, leaders[i].Value, leaders[i-1].Value, "%s leaders must be sorted", category)
		}
		require.Positive(t, leaders[0].Value, category)
	}

	_, err = l.GetLeagueLeaders(ctx, "assists", 10)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeagueQuerySurface(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newTestLeague(t, 1337)
	history, err := l.RunFullSeason(ctx)
	require.NoError(t, err)

	profile, err := l.GetCardProfile(ctx, history.Awards.MVPCardID)
	require.NoError(t, err)
	require.Equal(t, history.Awards.MVPCardID, profile.Card.ID)
	require.Positive(t, profile.Card.Career.Crowns)

	_, err = l.GetCardProfile(ctx, "card-9999")
	require.ErrorIs(t, err, ErrNotFound)

	rules := l.GetSynergiesTable(ctx)
	require.Len(t, rules, 98)

	rivalries, err := l.GetRivalries(ctx, l.HumanTeamID())
	require.NoError(t, err)
	require.NotEmpty(t, rivalries, "a full season seeds rivalry intensity")

	bracket := l.GetPlayoffBracket(ctx)
	require.NotEmpty(t, bracket)
	final := bracket[len(bracket)-1]
	require.Len(t, final, 1, "last round is the final")
	require.Equal(t, history.ChampionID, final[0].WinnerID)

	news, err := l.GetQuickNews(ctx, 5)
	require.NoError(t, err)
	require.NotEmpty(t, news)

	condition, err := l.GetUserTeamCondition(ctx)
	require.NoError(t, err)
	require.Equal(t, l.HumanTeamID(), condition.TeamID)
	require.Positive(t, condition.Power)

	cards, err := l.GetUserCards(ctx)
	require.NoError(t, err)
	require.Len(t, cards, l.cfg.DraftRounds)
	starters := 0
	for _, cp := range cards {
		require.Equal(t, l.HumanTeamID(), cp.TeamID)
		if cp.Starter {
			starters++
		}
	}
	require.Equal(t, 3, starters)
}
