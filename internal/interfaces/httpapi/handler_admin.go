package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	"github.com/matchweek/fantasy-api/internal/usecase"
)

func (h *Handler) CreateMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatchweek")
	defer span.End()

	var req createMatchweekRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: startDate must be RFC 3339: %v", usecase.ErrInvalidInput, err))
		return
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: endDate must be RFC 3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	mw, err := h.matchweekService.Create(ctx, usecase.CreateMatchweekInput{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create matchweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchweekToDTO(mw))
}

func (h *Handler) ActivateMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ActivateMatchweek")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")
	if err := h.matchweekService.Activate(ctx, matchweekID); err != nil {
		h.logger.WarnContext(ctx, "activate matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	mw, err := h.matchweekService.Get(ctx, matchweekID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(mw))
}

func (h *Handler) DeleteMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatchweek")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")
	if err := h.matchweekService.Delete(ctx, matchweekID); err != nil {
		h.logger.WarnContext(ctx, "delete matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	var req teamNameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.teamService.Create(ctx, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(t))
}

func (h *Handler) RenameTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	var req teamNameRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	t, err := h.teamService.Rename(ctx, teamID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "rename team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(t))
}

func (h *Handler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	if err := h.teamService.Delete(ctx, teamID); err != nil {
		h.logger.WarnContext(ctx, "delete team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) UpsertPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertPlayer")
	defer span.End()

	var req upsertPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	p, err := h.playerService.Upsert(ctx, usecase.UpsertPlayerInput{
		ID:        req.ID,
		TeamID:    req.TeamID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Position:  player.Position(req.Position),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert player failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) DeletePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	if err := h.playerService.Delete(ctx, playerID); err != nil {
		h.logger.WarnContext(ctx, "delete player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	kickoffAt, err := time.Parse(time.RFC3339, req.KickoffAt)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: kickoffAt must be RFC 3339: %v", usecase.ErrInvalidInput, err))
		return
	}

	m, err := h.matchService.Create(ctx, usecase.CreateMatchInput{
		MatchweekID: req.MatchweekID,
		HomeTeamID:  req.HomeTeamID,
		AwayTeamID:  req.AwayTeamID,
		KickoffAt:   kickoffAt,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(m))
}

func (h *Handler) UpdateMatchScore(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatchScore")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req updateMatchScoreRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.matchService.UpdateScore(ctx, matchID, match.Status(req.Status), req.HomeScore, req.AwayScore)
	if err != nil {
		h.logger.WarnContext(ctx, "update match score failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	if err := h.matchService.Delete(ctx, matchID); err != nil {
		h.logger.WarnContext(ctx, "delete match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) UpsertMatchStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertMatchStatistics")
	defer span.End()

	matchID := r.PathValue("matchID")
	var req upsertStatisticsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	line, err := h.statsService.UpsertStatistics(ctx, stats.StatLine{
		PlayerID:               req.PlayerID,
		MatchID:                matchID,
		MinutesPlayed:          req.MinutesPlayed,
		Goals:                  req.Goals,
		Assists:                req.Assists,
		YellowCards:            req.YellowCards,
		RedCards:               req.RedCards,
		OwnGoals:               req.OwnGoals,
		PenaltiesWon:           req.PenaltiesWon,
		PenaltiesMissed:        req.PenaltiesMissed,
		PenaltiesConceded:      req.PenaltiesConceded,
		Saves:                  req.Saves,
		PenaltiesSaved:         req.PenaltiesSaved,
		PenaltiesSavedOutfield: req.PenaltiesSavedOutfield,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert match statistics failed", "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, statLineToDTO(line))
}

func (h *Handler) DeleteStatLine(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteStatLine")
	defer span.End()

	statLineID := r.PathValue("statLineID")
	if err := h.statsService.Delete(ctx, statLineID); err != nil {
		h.logger.WarnContext(ctx, "delete stat line failed", "stat_line_id", statLineID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) UpdateScoringRule(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateScoringRule")
	defer span.End()

	stat := stats.StatName(r.PathValue("stat"))
	var req updateRulePointsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rulesService.UpdateRulePoints(ctx, stat, scoring.PointsFromFloat(req.PointsPerUnit)); err != nil {
		h.logger.WarnContext(ctx, "update scoring rule failed", "stat", string(stat), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) UpdateTeamPlayerLimit(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeamPlayerLimit")
	defer span.End()

	var req updateTeamPlayerLimitRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rulesService.UpdateTeamPlayerLimit(ctx, req.Limit); err != nil {
		h.logger.WarnContext(ctx, "update team player limit failed", "limit", req.Limit, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) ResetScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetScoringRules")
	defer span.End()

	if err := h.rulesService.ResetDefaults(ctx); err != nil {
		h.logger.WarnContext(ctx, "reset scoring rules failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "reset"})
}

type createMatchweekRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

type teamNameRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type upsertPlayerRequest struct {
	ID        string `json:"id"`
	TeamID    string `json:"teamId" validate:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Position  string `json:"position" validate:"required,oneof=GK DEF MID FWD"`
}

type createMatchRequest struct {
	MatchweekID string `json:"matchweekId" validate:"required"`
	HomeTeamID  string `json:"homeTeamId" validate:"required"`
	AwayTeamID  string `json:"awayTeamId" validate:"required"`
	KickoffAt   string `json:"kickoffAt" validate:"required"`
}

type updateMatchScoreRequest struct {
	Status    string `json:"status" validate:"required,oneof=scheduled live finished"`
	HomeScore int    `json:"homeScore" validate:"min=0"`
	AwayScore int    `json:"awayScore" validate:"min=0"`
}

type upsertStatisticsRequest struct {
	PlayerID               string `json:"playerId" validate:"required"`
	MinutesPlayed          int    `json:"minutesPlayed" validate:"min=0,max=120"`
	Goals                  int    `json:"goals" validate:"min=0"`
	Assists                int    `json:"assists" validate:"min=0"`
	YellowCards            int    `json:"yellowCards" validate:"min=0"`
	RedCards               int    `json:"redCards" validate:"min=0"`
	OwnGoals               int    `json:"ownGoals" validate:"min=0"`
	PenaltiesWon           int    `json:"penaltiesWon" validate:"min=0"`
	PenaltiesMissed        int    `json:"penaltiesMissed" validate:"min=0"`
	PenaltiesConceded      int    `json:"penaltiesConceded" validate:"min=0"`
	Saves                  int    `json:"saves" validate:"min=0"`
	PenaltiesSaved         int    `json:"penaltiesSaved" validate:"min=0"`
	PenaltiesSavedOutfield int    `json:"penaltiesSavedOutfield" validate:"min=0"`
}

type updateRulePointsRequest struct {
	PointsPerUnit float64 `json:"pointsPerUnit"`
}

type updateTeamPlayerLimitRequest struct {
	Limit int `json:"limit" validate:"required,min=1,max=11"`
}
