package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/squad"
	"github.com/matchweek/fantasy-api/internal/usecase"
)

func (h *Handler) GetMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMySquad")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchweekID := strings.TrimSpace(r.URL.Query().Get("matchweek_id"))
	if matchweekID == "" {
		active, err := h.matchweekService.GetActive(ctx)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		matchweekID = active.ID
	}

	sq, err := h.squadService.GetUserSquad(ctx, principal.UserID, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "user_id", principal.UserID, "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(sq))
}

func (h *Handler) UpsertMySquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpsertMySquad")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req upsertSquadRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sq, err := h.squadService.UpsertSquad(ctx, usecase.UpsertSquadInput{
		UserID:      principal.UserID,
		MatchweekID: req.MatchweekID,
		TeamName:    req.TeamName,
		Formation:   squad.Formation(req.Formation),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "upsert squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(sq))
}

func (h *Handler) AssignSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignSquadPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	slot := r.PathValue("slot")
	var req assignPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	sq, err := h.squadService.AssignPlayer(ctx, principal.UserID, req.MatchweekID, slot, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "assign player failed", "user_id", principal.UserID, "slot", slot, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(sq))
}

func (h *Handler) RemoveSquadPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveSquadPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	slot := r.PathValue("slot")
	matchweekID := strings.TrimSpace(r.URL.Query().Get("matchweek_id"))
	if err := h.validateRequest(ctx, removePlayerRequest{MatchweekID: matchweekID}); err != nil {
		writeError(ctx, w, err)
		return
	}

	sq, err := h.squadService.RemovePlayer(ctx, principal.UserID, matchweekID, slot)
	if err != nil {
		h.logger.WarnContext(ctx, "remove player failed", "user_id", principal.UserID, "slot", slot, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(sq))
}

func (h *Handler) GetSquadBreakdown(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadBreakdown")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	matchweekID := r.PathValue("matchweekID")
	squadID := r.PathValue("squadID")
	breakdown, err := h.scoringService.GetSquadBreakdown(ctx, principal.UserID, squadID, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad breakdown failed", "user_id", principal.UserID, "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, breakdownToDTO(breakdown))
}

type upsertSquadRequest struct {
	MatchweekID string `json:"matchweekId" validate:"required"`
	TeamName    string `json:"teamName" validate:"required,max=100"`
	Formation   string `json:"formation" validate:"required"`
}

type assignPlayerRequest struct {
	MatchweekID string `json:"matchweekId" validate:"required"`
	PlayerID    string `json:"playerId" validate:"required"`
}

type removePlayerRequest struct {
	MatchweekID string `validate:"required"`
}

type squadDTO struct {
	ID           string              `json:"id"`
	UserID       string              `json:"userId"`
	MatchweekID  string              `json:"matchweekId"`
	TeamName     string              `json:"teamName"`
	Formation    string              `json:"formation"`
	Assignments  []slotAssignmentDTO `json:"assignments"`
	CreatedAtUTC string              `json:"createdAtUtc"`
	UpdatedAtUTC string              `json:"updatedAtUtc"`
}

type slotAssignmentDTO struct {
	Slot     string `json:"slot"`
	PlayerID string `json:"playerId"`
}

type breakdownDTO struct {
	Squad   squadDTO         `json:"squad"`
	Score   weeklyScoreDTO   `json:"score"`
	Players []playerScoreDTO `json:"players"`
}

type playerScoreDTO struct {
	PlayerID    string  `json:"playerId"`
	TotalPoints float64 `json:"totalPoints"`
}

func squadToDTO(v squad.Squad) squadDTO {
	assignments := make([]slotAssignmentDTO, 0, len(v.Assignments))
	for _, a := range v.Assignments {
		assignments = append(assignments, slotAssignmentDTO{Slot: a.Slot, PlayerID: a.PlayerID})
	}

	return squadDTO{
		ID:           v.ID,
		UserID:       v.UserID,
		MatchweekID:  v.MatchweekID,
		TeamName:     v.TeamName,
		Formation:    string(v.Formation),
		Assignments:  assignments,
		CreatedAtUTC: v.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func breakdownToDTO(v usecase.SquadBreakdown) breakdownDTO {
	players := make([]playerScoreDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, playerScoreDTO{
			PlayerID:    p.PlayerID,
			TotalPoints: p.TotalPoints.Float64(),
		})
	}

	return breakdownDTO{
		Squad:   squadToDTO(v.Squad),
		Score:   weeklyScoreToDTO(v.Score, 0),
		Players: players,
	}
}
