package httpapi

import (
	"net/http"
	"strconv"
	"strings"
)

const defaultListLimit = 10

func (h *Handler) GetSeasonInfo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonInfo")
	defer span.End()

	info := h.league.GetSeasonInfo(ctx)
	writeSuccess(ctx, w, http.StatusOK, seasonInfoDTO{
		Season:      info.Season,
		Week:        info.Week,
		Phase:       string(info.Phase),
		HumanTeamID: info.HumanTeamID,
	})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.league.GetStandings(ctx)
	if err != nil {
		h.logger.Warn("get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]standingRowDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, standingToDTO(ctx, row))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLeaders(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaders")
	defer span.End()

	category := strings.TrimSpace(r.PathValue("category"))
	limit := queryInt(r, "limit", defaultListLimit)

	entries, err := h.league.GetLeagueLeaders(ctx, category, limit)
	if err != nil {
		h.logger.Warn("get leaders failed", "category", category, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leaderEntryDTO, 0, len(entries))
	for _, e := range entries {
		items = append(items, leaderEntryDTO{
			CardID: e.CardID,
			Name:   e.Name,
			TeamID: e.TeamID,
			Value:  e.Value,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetCardProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCardProfile")
	defer span.End()

	cardID := r.PathValue("cardID")
	profile, err := h.league.GetCardProfile(ctx, cardID)
	if err != nil {
		h.logger.Warn("get card profile failed", "card_id", cardID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, cardProfileToDTO(ctx, profile))
}

func (h *Handler) GetSynergies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSynergies")
	defer span.End()

	rules := h.league.GetSynergiesTable(ctx)
	items := make([]synergyRuleDTO, 0, len(rules))
	for _, rule := range rules {
		items = append(items, synergyRuleToDTO(ctx, rule))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetRivalries(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRivalries")
	defer span.End()

	teamID := r.PathValue("teamID")
	rows, err := h.league.GetRivalries(ctx, teamID)
	if err != nil {
		h.logger.Warn("get rivalries failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]rivalryDTO, 0, len(rows))
	for _, row := range rows {
		items = append(items, rivalryDTO{
			OpponentID:   row.OpponentID,
			OpponentName: row.OpponentName,
			Intensity:    row.Intensity,
			Active:       row.Active,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayoffBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayoffBracket")
	defer span.End()

	bracket := h.league.GetPlayoffBracket(ctx)
	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(ctx, bracket))
}

func (h *Handler) GetPatchNotes(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPatchNotes")
	defer span.End()

	seasonNum := queryInt(r, "season", 0)
	notes, err := h.league.GetPatchNotes(ctx, seasonNum)
	if err != nil {
		h.logger.Warn("get patch notes failed", "season", seasonNum, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, patchNotesToDTO(ctx, notes))
}

func (h *Handler) GetDraftState(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftState")
	defer span.End()

	board, err := h.league.GetDraftBoard(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, draftBoardToDTO(ctx, board))
}

func (h *Handler) GetDraftGrades(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraftGrades")
	defer span.End()

	grades, err := h.league.GetLastDraftGrades(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, gradesToDTO(ctx, grades))
}

func (h *Handler) GetSeasonHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSeasonHistory")
	defer span.End()

	seasonNum := pathInt(r, "season")
	history, err := h.league.GetSeasonHistory(ctx, seasonNum)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, historyToDTO(ctx, history))
}

func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetNews")
	defer span.End()

	limit := queryInt(r, "limit", defaultListLimit)
	lines, err := h.league.GetQuickNews(ctx, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lines)
}

func (h *Handler) GetUpcomingGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetUpcomingGames")
	defer span.End()

	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	limit := queryInt(r, "limit", defaultListLimit)

	games := h.league.GetUpcomingGames(ctx, teamID, limit)
	items := make([]scheduledGameDTO, 0, len(games))
	for _, g := range games {
		items = append(items, scheduledGameDTO{
			Week:   g.Week,
			HomeID: g.HomeID,
			AwayID: g.AwayID,
		})
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	condition, err := h.league.GetUserTeamCondition(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	cards, err := h.league.GetUserCards(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items := make([]cardProfileDTO, 0, len(cards))
	for _, profile := range cards {
		items = append(items, cardProfileToDTO(ctx, profile))
	}

	writeSuccess(ctx, w, http.StatusOK, myTeamDTO{
		TeamID:       condition.TeamID,
		Chemistry:    condition.Chemistry,
		Fatigue:      condition.Fatigue,
		BoostedGames: condition.BoostedGames,
		Power:        condition.Power,
		Cards:        items,
	})
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func pathInt(r *http.Request, key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(r.PathValue(key)))
	if err != nil {
		return 0
	}
	return v
}
