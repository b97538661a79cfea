package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/valyala/bytebufferpool"

	"github.com/matchweek/fantasy-api/internal/usecase"
)

func (h *Handler) ComputeMatchweekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComputeMatchweekScores")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")
	result, err := h.scoringService.ComputeMatchweekScores(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "compute matchweek scores failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "matchweek scored",
		"matchweek_id", result.MatchweekID,
		"squads", len(result.Squads),
	)

	writeSuccess(ctx, w, http.StatusOK, scoringResultToDTO(result))
}

func (h *Handler) ExportMatchweekScoresCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportMatchweekScoresCSV")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")

	// Render into a buffer first so a failed export can still answer
	// with the JSON error envelope instead of committed CSV headers.
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := h.scoringService.ExportMatchweekScoresCSV(ctx, matchweekID, buf); err != nil {
		h.logger.WarnContext(ctx, "export matchweek scores failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "matchweek-"+matchweekID+"-scores.csv"))
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.WarnContext(ctx, "write csv export response", "matchweek_id", matchweekID, "error", err)
	}
}

type scoringResultDTO struct {
	MatchweekID  string          `json:"matchweekId"`
	CalculatedAt string          `json:"calculatedAtUtc"`
	Squads       []squadScoreDTO `json:"squads"`
}

type squadScoreDTO struct {
	SquadID     string                `json:"squadId"`
	UserID      string                `json:"userId"`
	TeamName    string                `json:"teamName"`
	TotalPoints float64               `json:"totalPoints"`
	Players     []playerScoreEntryDTO `json:"players"`
}

type playerScoreEntryDTO struct {
	PlayerID    string  `json:"playerId"`
	PlayerName  string  `json:"playerName"`
	Position    string  `json:"position"`
	TotalPoints float64 `json:"totalPoints"`
}

func scoringResultToDTO(v usecase.MatchweekScoringResult) scoringResultDTO {
	squads := make([]squadScoreDTO, 0, len(v.Squads))
	for _, sq := range v.Squads {
		players := make([]playerScoreEntryDTO, 0, len(sq.Players))
		for _, p := range sq.Players {
			players = append(players, playerScoreEntryDTO{
				PlayerID:    p.PlayerID,
				PlayerName:  p.PlayerName,
				Position:    string(p.Position),
				TotalPoints: p.TotalPoints.Float64(),
			})
		}
		squads = append(squads, squadScoreDTO{
			SquadID:     sq.SquadID,
			UserID:      sq.UserID,
			TeamName:    sq.TeamName,
			TotalPoints: sq.TotalPoints.Float64(),
			Players:     players,
		})
	}

	return scoringResultDTO{
		MatchweekID:  v.MatchweekID,
		CalculatedAt: v.CalculatedAt.UTC().Format(time.RFC3339),
		Squads:       squads,
	}
}
