package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	"github.com/matchweek/fantasy-api/internal/domain/team"
	"github.com/matchweek/fantasy-api/internal/platform/logging"
	"github.com/matchweek/fantasy-api/internal/usecase"
)

type Handler struct {
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	matchweekService *usecase.MatchweekService
	matchService     *usecase.MatchService
	statsService     *usecase.StatsService
	squadService     *usecase.SquadService
	rulesService     *usecase.RulesService
	scoringService   *usecase.ScoringService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	matchweekService *usecase.MatchweekService,
	matchService *usecase.MatchService,
	statsService *usecase.StatsService,
	squadService *usecase.SquadService,
	rulesService *usecase.RulesService,
	scoringService *usecase.ScoringService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		teamService:      teamService,
		playerService:    playerService,
		matchweekService: matchweekService,
		matchService:     matchService,
		statsService:     statsService,
		squadService:     squadService,
		rulesService:     rulesService,
		scoringService:   scoringService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		items = append(items, teamToDTO(t))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	t, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(t))
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	players, err := h.playerService.ListByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) SearchPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SearchPlayers")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("query"))
	teamID := strings.TrimSpace(r.URL.Query().Get("team_id"))
	players, err := h.playerService.Search(ctx, query, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "search players failed", "query", query, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := r.PathValue("playerID")
	p, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(p))
}

func (h *Handler) ListMatchweeks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchweeks")
	defer span.End()

	matchweeks, err := h.matchweekService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchweeks failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchweekDTO, 0, len(matchweeks))
	for _, mw := range matchweeks {
		items = append(items, matchweekToDTO(mw))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetActiveMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetActiveMatchweek")
	defer span.End()

	mw, err := h.matchweekService.GetActive(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get active matchweek failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(mw))
}

func (h *Handler) GetMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatchweek")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")
	mw, err := h.matchweekService.Get(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "get matchweek failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchweekToDTO(mw))
}

func (h *Handler) ListMatchesByMatchweek(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchesByMatchweek")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")
	matches, err := h.matchService.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matches failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		items = append(items, matchToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	m, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(m))
}

func (h *Handler) ListMatchStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchStatistics")
	defer span.End()

	matchID := r.PathValue("matchID")
	lines, err := h.statsService.ListByMatch(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "list match statistics failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]statLineDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, statLineToDTO(line))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListScoringRules(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListScoringRules")
	defer span.End()

	rules, err := h.rulesService.ListRules(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list scoring rules failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	limit, err := h.rulesService.GetTeamPlayerLimit(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "get team player limit failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]scoringRuleDTO, 0, len(rules))
	for _, rule := range rules {
		items = append(items, scoringRuleToDTO(rule))
	}

	writeSuccess(ctx, w, http.StatusOK, ruleSetDTO{
		Rules:           items,
		TeamPlayerLimit: limit,
	})
}

func (h *Handler) ListMatchweekScores(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatchweekScores")
	defer span.End()

	matchweekID := r.PathValue("matchweekID")
	scores, err := h.scoringService.ListMatchweekScores(ctx, matchweekID)
	if err != nil {
		h.logger.WarnContext(ctx, "list matchweek scores failed", "matchweek_id", matchweekID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]weeklyScoreDTO, 0, len(scores))
	for rank, score := range scores {
		items = append(items, weeklyScoreToDTO(score, rank+1))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return h.validateRequest(ctx, dst)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type teamDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type playerDTO struct {
	ID       string `json:"id"`
	TeamID   string `json:"teamId"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

type matchweekDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	IsActive  bool   `json:"isActive"`
}

type matchDTO struct {
	ID          string `json:"id"`
	MatchweekID string `json:"matchweekId"`
	HomeTeamID  string `json:"homeTeamId"`
	AwayTeamID  string `json:"awayTeamId"`
	KickoffAt   string `json:"kickoffAt"`
	Status      string `json:"status"`
	HomeScore   int    `json:"homeScore"`
	AwayScore   int    `json:"awayScore"`
}

type statLineDTO struct {
	PlayerID               string `json:"playerId"`
	MatchID                string `json:"matchId"`
	MatchweekID            string `json:"matchweekId"`
	MinutesPlayed          int    `json:"minutesPlayed"`
	Goals                  int    `json:"goals"`
	Assists                int    `json:"assists"`
	YellowCards            int    `json:"yellowCards"`
	RedCards               int    `json:"redCards"`
	OwnGoals               int    `json:"ownGoals"`
	PenaltiesWon           int    `json:"penaltiesWon"`
	PenaltiesMissed        int    `json:"penaltiesMissed"`
	PenaltiesConceded      int    `json:"penaltiesConceded"`
	Saves                  int    `json:"saves"`
	PenaltiesSaved         int    `json:"penaltiesSaved"`
	PenaltiesSavedOutfield int    `json:"penaltiesSavedOutfield"`
}

type scoringRuleDTO struct {
	Stat          string  `json:"stat"`
	PointsPerUnit float64 `json:"pointsPerUnit"`
	Eligibility   string  `json:"eligibility"`
}

type ruleSetDTO struct {
	Rules           []scoringRuleDTO `json:"rules"`
	TeamPlayerLimit int              `json:"teamPlayerLimit"`
}

type weeklyScoreDTO struct {
	Rank         int     `json:"rank,omitempty"`
	SquadID      string  `json:"squadId"`
	MatchweekID  string  `json:"matchweekId"`
	TotalPoints  float64 `json:"totalPoints"`
	CalculatedAt string  `json:"calculatedAtUtc"`
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, Name: v.Name}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		TeamID:   v.TeamID,
		Name:     v.FullName(),
		Position: string(v.Position),
	}
}

func matchweekToDTO(v matchweek.Matchweek) matchweekDTO {
	return matchweekDTO{
		ID:        v.ID,
		Name:      v.Name,
		StartDate: v.StartDate.UTC().Format(time.RFC3339),
		EndDate:   v.EndDate.UTC().Format(time.RFC3339),
		IsActive:  v.IsActive,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:          v.ID,
		MatchweekID: v.MatchweekID,
		HomeTeamID:  v.HomeTeamID,
		AwayTeamID:  v.AwayTeamID,
		KickoffAt:   v.KickoffAt.UTC().Format(time.RFC3339),
		Status:      string(v.Status),
		HomeScore:   v.HomeScore,
		AwayScore:   v.AwayScore,
	}
}

func statLineToDTO(v stats.StatLine) statLineDTO {
	return statLineDTO{
		PlayerID:               v.PlayerID,
		MatchID:                v.MatchID,
		MatchweekID:            v.MatchweekID,
		MinutesPlayed:          v.MinutesPlayed,
		Goals:                  v.Goals,
		Assists:                v.Assists,
		YellowCards:            v.YellowCards,
		RedCards:               v.RedCards,
		OwnGoals:               v.OwnGoals,
		PenaltiesWon:           v.PenaltiesWon,
		PenaltiesMissed:        v.PenaltiesMissed,
		PenaltiesConceded:      v.PenaltiesConceded,
		Saves:                  v.Saves,
		PenaltiesSaved:         v.PenaltiesSaved,
		PenaltiesSavedOutfield: v.PenaltiesSavedOutfield,
	}
}

func scoringRuleToDTO(v scoring.Rule) scoringRuleDTO {
	return scoringRuleDTO{
		Stat:          string(v.Stat),
		PointsPerUnit: v.PointsPerUnit.Float64(),
		Eligibility:   string(v.Eligibility),
	}
}

func weeklyScoreToDTO(v scoring.WeeklyScore, rank int) weeklyScoreDTO {
	return weeklyScoreDTO{
		Rank:         rank,
		SquadID:      v.SquadID,
		MatchweekID:  v.MatchweekID,
		TotalPoints:  v.TotalPoints.Float64(),
		CalculatedAt: v.CalculatedAt.UTC().Format(time.RFC3339),
	}
}
