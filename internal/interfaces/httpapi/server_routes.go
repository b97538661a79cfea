package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicDomainRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /v1/players", handler.SearchPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/matchweeks", handler.ListMatchweeks)
	mux.HandleFunc("GET /v1/matchweeks/active", handler.GetActiveMatchweek)
	mux.HandleFunc("GET /v1/matchweeks/{matchweekID}", handler.GetMatchweek)
	mux.HandleFunc("GET /v1/matchweeks/{matchweekID}/matches", handler.ListMatchesByMatchweek)
	mux.HandleFunc("GET /v1/matchweeks/{matchweekID}/scores", handler.ListMatchweekScores)
	mux.HandleFunc("GET /v1/matchweeks/{matchweekID}/scores/export", handler.ExportMatchweekScoresCSV)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/statistics", handler.ListMatchStatistics)
	mux.HandleFunc("GET /v1/scoring/rules", handler.ListScoringRules)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("GET /v1/fantasy/squads/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMySquad)))
	mux.Handle("PUT /v1/fantasy/squads/me", RequireAuth(verifier, http.HandlerFunc(handler.UpsertMySquad)))
	mux.Handle("PUT /v1/fantasy/squads/me/slots/{slot}", RequireAuth(verifier, http.HandlerFunc(handler.AssignSquadPlayer)))
	mux.Handle("DELETE /v1/fantasy/squads/me/slots/{slot}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveSquadPlayer)))
	mux.Handle("GET /v1/matchweeks/{matchweekID}/squads/{squadID}/breakdown", RequireAuth(verifier, http.HandlerFunc(handler.GetSquadBreakdown)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(next http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(next))
	}

	mux.Handle("POST /v1/admin/matchweeks", admin(handler.CreateMatchweek))
	mux.Handle("POST /v1/admin/matchweeks/{matchweekID}/activate", admin(handler.ActivateMatchweek))
	mux.Handle("DELETE /v1/admin/matchweeks/{matchweekID}", admin(handler.DeleteMatchweek))
	mux.Handle("POST /v1/admin/matchweeks/{matchweekID}/scores/compute", admin(handler.ComputeMatchweekScores))

	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /v1/admin/teams/{teamID}", admin(handler.RenameTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", admin(handler.DeleteTeam))

	mux.Handle("PUT /v1/admin/players", admin(handler.UpsertPlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeletePlayer))

	mux.Handle("POST /v1/admin/matches", admin(handler.CreateMatch))
	mux.Handle("PUT /v1/admin/matches/{matchID}/score", admin(handler.UpdateMatchScore))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", admin(handler.DeleteMatch))
	mux.Handle("PUT /v1/admin/matches/{matchID}/statistics", admin(handler.UpsertMatchStatistics))
	mux.Handle("DELETE /v1/admin/statistics/{statLineID}", admin(handler.DeleteStatLine))

	mux.Handle("PUT /v1/admin/scoring/rules/{stat}", admin(handler.UpdateScoringRule))
	mux.Handle("PUT /v1/admin/scoring/team-player-limit", admin(handler.UpdateTeamPlayerLimit))
	mux.Handle("POST /v1/admin/scoring/rules/reset", admin(handler.ResetScoringRules))
}
