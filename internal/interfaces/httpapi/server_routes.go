package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerQueryRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/league", handler.GetSeasonInfo)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/leaders/{category}", handler.GetLeaders)
	mux.HandleFunc("GET /v1/cards/{cardID}", handler.GetCardProfile)
	mux.HandleFunc("GET /v1/synergies", handler.GetSynergies)
	mux.HandleFunc("GET /v1/teams/{teamID}/rivalries", handler.GetRivalries)
	mux.HandleFunc("GET /v1/playoffs/bracket", handler.GetPlayoffBracket)
	mux.HandleFunc("GET /v1/patch-notes", handler.GetPatchNotes)
	mux.HandleFunc("GET /v1/draft/state", handler.GetDraftState)
	mux.HandleFunc("GET /v1/draft/grades", handler.GetDraftGrades)
	mux.HandleFunc("GET /v1/seasons/{season}", handler.GetSeasonHistory)
	mux.HandleFunc("GET /v1/news", handler.GetNews)
	mux.HandleFunc("GET /v1/games/upcoming", handler.GetUpcomingGames)
	mux.HandleFunc("GET /v1/my-team", handler.GetMyTeam)
}

func registerCommandRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/draft/start", handler.StartDraft)
	mux.HandleFunc("POST /v1/draft/picks/human", handler.HumanPick)
	mux.HandleFunc("POST /v1/draft/picks/ai", handler.AIAutoPick)
	mux.HandleFunc("POST /v1/draft/picks/next", handler.SimNextPick)
	mux.HandleFunc("POST /v1/draft/run", handler.SimToEndOfDraft)
	mux.HandleFunc("POST /v1/seasons/run", handler.RunFullSeason)
	mux.HandleFunc("POST /v1/rng/reset", handler.ResetRNG)
}
