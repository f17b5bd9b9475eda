package httpapi

import (
	"context"

	"github.com/rizkyfalih/crown-league/internal/domain/card"
	"github.com/rizkyfalih/crown-league/internal/domain/draft"
	"github.com/rizkyfalih/crown-league/internal/domain/season"
	"github.com/rizkyfalih/crown-league/internal/domain/synergy"
	"github.com/rizkyfalih/crown-league/internal/usecase"
)

type seasonInfoDTO struct {
	Season      int    `json:"season"`
	Week        int    `json:"week"`
	Phase       string `json:"phase"`
	HumanTeamID string `json:"humanTeamId"`
}

type standingRowDTO struct {
	Rank          int    `json:"rank"`
	TeamID        string `json:"teamId"`
	Name          string `json:"name"`
	GMName        string `json:"gmName"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	CrownsFor     int    `json:"crownsFor"`
	CrownsAgainst int    `json:"crownsAgainst"`
	Rings         int    `json:"rings"`
	Human         bool   `json:"human"`
}

type leaderEntryDTO struct {
	CardID string  `json:"cardId"`
	Name   string  `json:"name"`
	TeamID string  `json:"teamId,omitempty"`
	Value  float64 `json:"value"`
}

type cardStatsDTO struct {
	Attack   int `json:"attack"`
	Defense  int `json:"defense"`
	Speed    int `json:"speed"`
	HitSpeed int `json:"hitSpeed"`
	Stamina  int `json:"stamina"`
}

type patchChangeDTO struct {
	Season   int    `json:"season"`
	Stat     string `json:"stat"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Reaction string `json:"reaction"`
}

type cardCareerDTO struct {
	GamesPlayed  int              `json:"gamesPlayed"`
	Crowns       int              `json:"crowns"`
	PeakCrowns   int              `json:"peakCrowns"`
	Contribution float64          `json:"contribution"`
	TimesDrafted int              `json:"timesDrafted"`
	AwardPoints  int              `json:"awardPoints"`
	Rings        int              `json:"rings"`
	OVRBySeason  map[int]int      `json:"ovrBySeason,omitempty"`
	PatchLog     []patchChangeDTO `json:"patchLog,omitempty"`
}

type cardProfileDTO struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Archetype       string        `json:"archetype"`
	AttackType      string        `json:"attackType"`
	Stats           cardStatsDTO  `json:"stats"`
	OVR             int           `json:"ovr"`
	SeasonsLeft     int           `json:"seasonsLeft"`
	Rookie          bool          `json:"rookie"`
	Legend          bool          `json:"legend"`
	SeasonalSpecial bool          `json:"seasonalSpecial"`
	Retired         bool          `json:"retired"`
	HallOfFame      bool          `json:"hallOfFame"`
	Career          cardCareerDTO `json:"career"`
	TeamID          string        `json:"teamId,omitempty"`
	TeamName        string        `json:"teamName,omitempty"`
	Starter         bool          `json:"starter"`
}

type synergyShiftDTO struct {
	Season int     `json:"season"`
	Before float64 `json:"before"`
	After  float64 `json:"after"`
}

type synergyRuleDTO struct {
	Code        string            `json:"code"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Archetypes  []string          `json:"archetypes"`
	AttackTypes []string          `json:"attackTypes,omitempty"`
	Multiplier  float64           `json:"multiplier"`
	History     []synergyShiftDTO `json:"history,omitempty"`
}

type rivalryDTO struct {
	OpponentID   string `json:"opponentId"`
	OpponentName string `json:"opponentName"`
	Intensity    int    `json:"intensity"`
	Active       bool   `json:"active"`
}

type seriesResultDTO struct {
	Round    int    `json:"round"`
	HighSeed string `json:"highSeed"`
	LowSeed  string `json:"lowSeed"`
	WinnerID string `json:"winnerId"`
	Wins     int    `json:"wins"`
	LossesBy int    `json:"lossesBy"`
}

type cardChangeDTO struct {
	CardID   string `json:"cardId"`
	CardName string `json:"cardName"`
	Stat     string `json:"stat"`
	Before   int    `json:"before"`
	After    int    `json:"after"`
	Reaction string `json:"reaction"`
}

type synergyChangeDTO struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Before   float64 `json:"before"`
	After    float64 `json:"after"`
	Reaction string  `json:"reaction"`
}

type patchNotesDTO struct {
	Season         int                `json:"season"`
	CardChanges    []cardChangeDTO    `json:"cardChanges"`
	SynergyChanges []synergyChangeDTO `json:"synergyChanges"`
}

type draftPickDTO struct {
	Season  int    `json:"season"`
	Round   int    `json:"round"`
	Overall int    `json:"overall"`
	TeamID  string `json:"teamId"`
	GMName  string `json:"gmName"`
	CardID  string `json:"cardId"`
	OVR     int    `json:"ovr"`
	Rookie  bool   `json:"rookie"`
}

type draftCardDTO struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Archetype  string `json:"archetype"`
	AttackType string `json:"attackType"`
	OVR        int    `json:"ovr"`
	Rookie     bool   `json:"rookie"`
}

type draftBoardDTO struct {
	State         string         `json:"state"`
	Season        int            `json:"season"`
	Round         int            `json:"round"`
	PickInRound   int            `json:"pickInRound"`
	OnClockTeamID string         `json:"onClockTeamId,omitempty"`
	HumanOnClock  bool           `json:"humanOnClock"`
	PoolSize      int            `json:"poolSize"`
	Available     []draftCardDTO `json:"available"`
	Picks         []draftPickDTO `json:"picks"`
}

type draftGradeDTO struct {
	TeamID  string  `json:"teamId"`
	Letter  string  `json:"letter"`
	Score   float64 `json:"score"`
	AvgOVR  float64 `json:"avgOvr"`
	Synergy float64 `json:"synergy"`
	Value   float64 `json:"value"`
}

type awardsDTO struct {
	MVPCardID          string     `json:"mvpCardId"`
	MostImprovedCardID string     `json:"mostImprovedCardId,omitempty"`
	AllLeague          [][]string `json:"allLeague"`
	AllStars           []string   `json:"allStars"`
	GameOfTheYearID    string     `json:"gameOfTheYearId,omitempty"`
}

type seasonHistoryDTO struct {
	Season      int                 `json:"season"`
	ChampionID  string              `json:"championId"`
	RunnerUpID  string              `json:"runnerUpId"`
	Grades      []draftGradeDTO     `json:"grades"`
	Awards      awardsDTO           `json:"awards"`
	CrownLeader []leaderEntryDTO    `json:"crownLeaders"`
	Bracket     [][]seriesResultDTO `json:"bracket"`
	PatchNotes  patchNotesDTO       `json:"patchNotes"`
}

type scheduledGameDTO struct {
	Week   int    `json:"week"`
	HomeID string `json:"homeId"`
	AwayID string `json:"awayId"`
}

type myTeamDTO struct {
	TeamID       string           `json:"teamId"`
	Chemistry    float64          `json:"chemistry"`
	Fatigue      float64          `json:"fatigue"`
	BoostedGames int              `json:"boostedGames"`
	Power        float64          `json:"power"`
	Cards        []cardProfileDTO `json:"cards"`
}

func standingToDTO(ctx context.Context, row usecase.StandingRow) standingRowDTO {
	ctx, span := startSpan(ctx, "httpapi.standingToDTO")
	defer span.End()

	return standingRowDTO{
		Rank:          row.Rank,
		TeamID:        row.TeamID,
		Name:          row.Name,
		GMName:        row.GMName,
		Wins:          row.Wins,
		Losses:        row.Losses,
		CrownsFor:     row.CrownsFor,
		CrownsAgainst: row.CrownsAgainst,
		Rings:         row.Rings,
		Human:         row.Human,
	}
}

func cardProfileToDTO(ctx context.Context, profile usecase.CardProfile) cardProfileDTO {
	ctx, span := startSpan(ctx, "httpapi.cardProfileToDTO")
	defer span.End()

	c := profile.Card

	patchLog := make([]patchChangeDTO, 0, len(c.Career.PatchLog))
	for _, change := range c.Career.PatchLog {
		patchLog = append(patchLog, patchChangeDTO{
			Season:   change.Season,
			Stat:     change.Stat,
			Before:   change.Before,
			After:    change.After,
			Reaction: change.Reaction,
		})
	}

	return cardProfileDTO{
		ID:              c.ID,
		Name:            c.Name,
		Archetype:       string(c.Archetype),
		AttackType:      string(c.AttackType),
		Stats: cardStatsDTO{
			Attack:   c.Stats.Attack,
			Defense:  c.Stats.Defense,
			Speed:    c.Stats.Speed,
			HitSpeed: c.Stats.HitSpeed,
			Stamina:  c.Stats.Stamina,
		},
		OVR:             c.OVR,
		SeasonsLeft:     c.SeasonsLeft,
		Rookie:          c.Rookie,
		Legend:          c.Legend,
		SeasonalSpecial: c.SeasonalSpecial,
		Retired:         c.Retired,
		HallOfFame:      c.HallOfFame,
		Career: cardCareerDTO{
			GamesPlayed:  c.Career.GamesPlayed,
			Crowns:       c.Career.Crowns,
			PeakCrowns:   c.Career.PeakCrowns,
			Contribution: c.Career.Contribution,
			TimesDrafted: c.Career.TimesDrafted,
			AwardPoints:  c.Career.AwardPoints,
			Rings:        c.Career.Rings,
			OVRBySeason:  c.Career.OVRBySeason,
			PatchLog:     patchLog,
		},
		TeamID:   profile.TeamID,
		TeamName: profile.TeamName,
		Starter:  profile.Starter,
	}
}

func synergyRuleToDTO(ctx context.Context, rule synergy.Rule) synergyRuleDTO {
	ctx, span := startSpan(ctx, "httpapi.synergyRuleToDTO")
	defer span.End()

	archetypes := make([]string, 0, len(rule.Archetypes))
	for _, a := range rule.Archetypes {
		archetypes = append(archetypes, string(a))
	}
	attackTypes := make([]string, 0, len(rule.AttackTypes))
	for _, a := range rule.AttackTypes {
		attackTypes = append(attackTypes, string(a))
	}
	history := make([]synergyShiftDTO, 0, len(rule.History))
	for _, shift := range rule.History {
		history = append(history, synergyShiftDTO{
			Season: shift.Season,
			Before: shift.Before,
			After:  shift.After,
		})
	}

	return synergyRuleDTO{
		Code:        rule.Code,
		Name:        rule.Name,
		Description: rule.Description,
		Archetypes:  archetypes,
		AttackTypes: attackTypes,
		Multiplier:  rule.Multiplier,
		History:     history,
	}
}

func bracketToDTO(ctx context.Context, bracket [][]season.SeriesResult) [][]seriesResultDTO {
	ctx, span := startSpan(ctx, "httpapi.bracketToDTO")
	defer span.End()

	out := make([][]seriesResultDTO, 0, len(bracket))
	for _, round := range bracket {
		items := make([]seriesResultDTO, 0, len(round))
		for _, series := range round {
			items = append(items, seriesResultDTO{
				Round:    series.Round,
				HighSeed: series.HighSeed,
				LowSeed:  series.LowSeed,
				WinnerID: series.WinnerID,
				Wins:     series.Wins,
				LossesBy: series.LossesBy,
			})
		}
		out = append(out, items)
	}
	return out
}

func patchNotesToDTO(ctx context.Context, notes season.PatchNotes) patchNotesDTO {
	ctx, span := startSpan(ctx, "httpapi.patchNotesToDTO")
	defer span.End()

	cardChanges := make([]cardChangeDTO, 0, len(notes.CardChanges))
	for _, change := range notes.CardChanges {
		cardChanges = append(cardChanges, cardChangeDTO{
			CardID:   change.CardID,
			CardName: change.CardName,
			Stat:     change.Stat,
			Before:   change.Before,
			After:    change.After,
			Reaction: change.Reaction,
		})
	}
	synergyChanges := make([]synergyChangeDTO, 0, len(notes.SynergyChanges))
	for _, change := range notes.SynergyChanges {
		synergyChanges = append(synergyChanges, synergyChangeDTO{
			Code:     change.Code,
			Name:     change.Name,
			Before:   change.Before,
			After:    change.After,
			Reaction: change.Reaction,
		})
	}

	return patchNotesDTO{
		Season:         notes.Season,
		CardChanges:    cardChanges,
		SynergyChanges: synergyChanges,
	}
}

func draftBoardToDTO(ctx context.Context, board usecase.DraftBoard) draftBoardDTO {
	ctx, span := startSpan(ctx, "httpapi.draftBoardToDTO")
	defer span.End()

	available := make([]draftCardDTO, 0, len(board.Available))
	for _, c := range board.Available {
		available = append(available, draftCardToDTO(ctx, c))
	}
	picks := make([]draftPickDTO, 0, len(board.Picks))
	for _, p := range board.Picks {
		picks = append(picks, draftPickDTO{
			Season:  p.Season,
			Round:   p.Round,
			Overall: p.Overall,
			TeamID:  p.TeamID,
			GMName:  p.GMName,
			CardID:  p.CardID,
			OVR:     p.OVR,
			Rookie:  p.Rookie,
		})
	}

	return draftBoardDTO{
		State:         string(board.State),
		Season:        board.Season,
		Round:         board.Round,
		PickInRound:   board.PickInRound,
		OnClockTeamID: board.OnClockTeamID,
		HumanOnClock:  board.HumanOnClock,
		PoolSize:      board.PoolSize,
		Available:     available,
		Picks:         picks,
	}
}

func draftCardToDTO(ctx context.Context, c card.Card) draftCardDTO {
	ctx, span := startSpan(ctx, "httpapi.draftCardToDTO")
	defer span.End()

	return draftCardDTO{
		ID:         c.ID,
		Name:       c.Name,
		Archetype:  string(c.Archetype),
		AttackType: string(c.AttackType),
		OVR:        c.OVR,
		Rookie:     c.Rookie,
	}
}

func gradesToDTO(ctx context.Context, grades []draft.Grade) []draftGradeDTO {
	ctx, span := startSpan(ctx, "httpapi.gradesToDTO")
	defer span.End()

	items := make([]draftGradeDTO, 0, len(grades))
	for _, g := range grades {
		items = append(items, draftGradeDTO{
			TeamID:  g.TeamID,
			Letter:  g.Letter,
			Score:   g.Score,
			AvgOVR:  g.AvgOVR,
			Synergy: g.Synergy,
			Value:   g.Value,
		})
	}
	return items
}

func historyToDTO(ctx context.Context, h season.History) seasonHistoryDTO {
	ctx, span := startSpan(ctx, "httpapi.historyToDTO")
	defer span.End()

	leaders := make([]leaderEntryDTO, 0, len(h.CrownLeader))
	for _, e := range h.CrownLeader {
		leaders = append(leaders, leaderEntryDTO{
			CardID: e.CardID,
			Name:   e.Name,
			TeamID: e.TeamID,
			Value:  e.Value,
		})
	}

	return seasonHistoryDTO{
		Season:     h.Season,
		ChampionID: h.ChampionID,
		RunnerUpID: h.RunnerUpID,
		Grades:     gradesToDTO(ctx, h.Grades),
		Awards: awardsDTO{
			MVPCardID:          h.Awards.MVPCardID,
			MostImprovedCardID: h.Awards.MostImprovedCardID,
			AllLeague:          h.Awards.AllLeague,
			AllStars:           h.Awards.AllStars,
			GameOfTheYearID:    h.Awards.GameOfTheYearID,
		},
		CrownLeader: leaders,
		Bracket:     bracketToDTO(ctx, h.Bracket),
		PatchNotes:  patchNotesToDTO(ctx, h.PatchNotes),
	}
}
