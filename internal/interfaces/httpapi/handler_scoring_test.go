package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/infrastructure/repository/memory"
	"github.com/matchweek/fantasy-api/internal/platform/logging"
	"github.com/matchweek/fantasy-api/internal/usecase"
)

func newExportHandler(t *testing.T, scores []scoring.WeeklyScore) *Handler {
	t.Helper()

	scoreRepo := memory.NewScoreRepository()
	for _, sc := range scores {
		if err := scoreRepo.UpsertWeeklyScore(context.Background(), sc); err != nil {
			t.Fatalf("seed weekly score: %v", err)
		}
	}

	service := usecase.NewScoringService(
		memory.NewMatchweekRepository(nil),
		memory.NewMatchRepository(nil),
		memory.NewSquadRepository(nil),
		memory.NewPlayerRepository(nil),
		memory.NewStatsRepository(nil),
		memory.NewRuleRepository(),
		scoreRepo,
	)

	return NewHandler(nil, nil, nil, nil, nil, nil, nil, service, logging.NewNop())
}

func TestExportMatchweekScoresCSV_WritesAttachment(t *testing.T) {
	handler := newExportHandler(t, []scoring.WeeklyScore{{
		SquadID:      "squad-1",
		MatchweekID:  "mw1",
		TotalPoints:  scoring.PointsFromFloat(4.5),
		CalculatedAt: time.Date(2025, 8, 11, 22, 0, 0, 0, time.UTC),
	}})

	req := httptest.NewRequest(http.MethodGet, "/v1/matchweeks/mw1/scores/export", nil)
	req.SetPathValue("matchweekID", "mw1")
	rec := httptest.NewRecorder()

	handler.ExportMatchweekScoresCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Fatalf("expected text/csv content type, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "matchweek-mw1-scores.csv") {
		t.Fatalf("unexpected content disposition %q", got)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, "rank,squad_id,matchweek_id,total_points,calculated_at") {
		t.Fatalf("missing csv header, body: %q", body)
	}
	if !strings.Contains(body, "squad-1") {
		t.Fatalf("missing score row, body: %q", body)
	}
}

func TestExportMatchweekScoresCSV_InvalidIDReturnsErrorEnvelope(t *testing.T) {
	handler := newExportHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/matchweeks//scores/export", nil)
	rec := httptest.NewRecorder()

	handler.ExportMatchweekScoresCSV(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("expected json error envelope, got content type %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != "" {
		t.Fatalf("error response must not carry an attachment header, got %q", got)
	}

	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Error      *struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	if err := sonic.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error == nil || envelope.Error.Code != http.StatusBadRequest {
		t.Fatalf("unexpected error envelope: %+v", envelope)
	}
}
