package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/squad"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	"github.com/matchweek/fantasy-api/internal/infrastructure/repository/memory"
)

type scoringFixture struct {
	service       *ScoringService
	matchweekRepo *memory.MatchweekRepository
	squadRepo     *memory.SquadRepository
	statsRepo     *memory.StatsRepository
	scoreRepo     *memory.ScoreRepository
	ruleRepo      *memory.RuleRepository
}

func newScoringFixture(t *testing.T, squads []squad.Squad, lines []stats.StatLine) scoringFixture {
	t.Helper()

	matchweekRepo := memory.NewMatchweekRepository([]matchweek.Matchweek{
		{ID: "mw1", Name: "Matchweek 1", IsActive: true},
		{ID: "mw2", Name: "Matchweek 2"},
	})
	matchRepo := memory.NewMatchRepository([]match.Match{
		{ID: "m1", MatchweekID: "mw1", HomeTeamID: "club-a", AwayTeamID: "club-b", Status: match.StatusFinished},
	})
	playerRepo := memory.NewPlayerRepository([]player.Player{
		{ID: "fwd1", TeamID: "club-a", FirstName: "Gustavo", LastName: "Almeida", Position: player.PositionForward},
		{ID: "fwd2", TeamID: "club-b", FirstName: "David", LastName: "da Silva", Position: player.PositionForward},
		{ID: "gk1", TeamID: "club-b", FirstName: "Teja", LastName: "Paku Alam", Position: player.PositionGoalkeeper},
		{ID: "mid1", TeamID: "club-a", FirstName: "Marc", LastName: "Klok", Position: player.PositionMidfielder},
	})
	squadRepo := memory.NewSquadRepository(squads)
	statsRepo := memory.NewStatsRepository(lines)
	ruleRepo := memory.NewRuleRepository()
	scoreRepo := memory.NewScoreRepository()

	service := NewScoringService(matchweekRepo, matchRepo, squadRepo, playerRepo, statsRepo, ruleRepo, scoreRepo)
	service.now = func() time.Time { return time.Date(2025, 8, 11, 22, 0, 0, 0, time.UTC) }

	return scoringFixture{
		service:       service,
		matchweekRepo: matchweekRepo,
		squadRepo:     squadRepo,
		statsRepo:     statsRepo,
		scoreRepo:     scoreRepo,
		ruleRepo:      ruleRepo,
	}
}

func singleSquad(players ...squad.SlotAssignment) []squad.Squad {
	return []squad.Squad{{
		ID:          "squad-1",
		UserID:      "user-1",
		MatchweekID: "mw1",
		TeamName:    "Test XI",
		Formation:   squad.Formation442,
		Assignments: players,
	}}
}

func TestScoringService_ComputeMatchweekScores_StatTotals(t *testing.T) {
	t.Parallel()

	// 2 goals and a yellow card: 2x2.00 - 1.00 plus 90 minutes at 0.01.
	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		[]stats.StatLine{{
			ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1",
			MinutesPlayed: 90, Goals: 2, YellowCards: 1,
		}},
	)

	result, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	if len(result.Squads) != 1 {
		t.Fatalf("unexpected squad count: got=%d want=1", len(result.Squads))
	}
	if got, want := result.Squads[0].TotalPoints, scoring.Points(390); got != want {
		t.Fatalf("unexpected squad total: got=%s want=%s", got, want)
	}

	stored, found, err := f.scoreRepo.GetWeeklyScore(context.Background(), "squad-1", "mw1")
	if err != nil || !found {
		t.Fatalf("stored weekly score missing: found=%v err=%v", found, err)
	}
	if stored.TotalPoints != 390 {
		t.Fatalf("unexpected stored total: got=%s want=3.90", stored.TotalPoints)
	}
}

func TestScoringService_ComputeMatchweekScores_EligibilityFilters(t *testing.T) {
	t.Parallel()

	// A forward credited with saves scores nothing from them; the same
	// line on a goalkeeper counts.
	lines := []stats.StatLine{
		{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Saves: 5},
		{ID: "s2", PlayerID: "gk1", MatchID: "m1", MatchweekID: "mw1", Saves: 5},
	}
	f := newScoringFixture(t,
		singleSquad(
			squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"},
			squad.SlotAssignment{Slot: "GK", PlayerID: "gk1"},
		),
		lines,
	)

	result, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	byPlayer := make(map[string]scoring.Points)
	for _, ps := range result.Squads[0].Players {
		byPlayer[ps.PlayerID] = ps.TotalPoints
	}
	if byPlayer["fwd1"] != 0 {
		t.Fatalf("forward saves scored: got=%s want=0.00", byPlayer["fwd1"])
	}
	if byPlayer["gk1"] != 250 {
		t.Fatalf("goalkeeper saves: got=%s want=2.50", byPlayer["gk1"])
	}
}

func TestScoringService_ComputeMatchweekScores_SquadTotalIsSumOfPlayers(t *testing.T) {
	t.Parallel()

	// fwd1: 1 goal + 1 penalty won = 3.00; mid1: 1 yellow = -1.00.
	lines := []stats.StatLine{
		{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Goals: 1, PenaltiesWon: 1},
		{ID: "s2", PlayerID: "mid1", MatchID: "m1", MatchweekID: "mw1", YellowCards: 1},
	}
	f := newScoringFixture(t,
		singleSquad(
			squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"},
			squad.SlotAssignment{Slot: "MID1", PlayerID: "mid1"},
		),
		lines,
	)

	result, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	got := result.Squads[0]
	if got.TotalPoints != 200 {
		t.Fatalf("unexpected squad total: got=%s want=2.00", got.TotalPoints)
	}

	var sum scoring.Points
	for _, ps := range got.Players {
		sum += ps.TotalPoints
	}
	if sum != got.TotalPoints {
		t.Fatalf("squad total %s does not equal player sum %s", got.TotalPoints, sum)
	}
}

func TestScoringService_ComputeMatchweekScores_MissingStatLineScoresZero(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		nil,
	)

	result, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}
	if result.Squads[0].TotalPoints != 0 {
		t.Fatalf("unexpected total without stats: got=%s want=0.00", result.Squads[0].TotalPoints)
	}
}

func TestScoringService_ComputeMatchweekScores_NoSquads(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t, nil, nil)

	_, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if !errors.Is(err, ErrNoSquads) {
		t.Fatalf("unexpected error: got=%v want=ErrNoSquads", err)
	}

	// The matchweek must stay untouched.
	mw, _, err := f.matchweekRepo.GetByID(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if !mw.IsActive {
		t.Fatal("failed computation deactivated the matchweek")
	}
}

func TestScoringService_ComputeMatchweekScores_NoMatches(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t, singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}), nil)

	// mw2 exists but has no matches scheduled.
	_, err := f.service.ComputeMatchweekScores(context.Background(), "mw2")
	if !errors.Is(err, ErrNoMatches) {
		t.Fatalf("unexpected error: got=%v want=ErrNoMatches", err)
	}
}

func TestScoringService_ComputeMatchweekScores_UnknownMatchweek(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t, nil, nil)

	_, err := f.service.ComputeMatchweekScores(context.Background(), "mw-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unexpected error: got=%v want=ErrNotFound", err)
	}
}

func TestScoringService_ComputeMatchweekScores_DeactivatesMatchweek(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		[]stats.StatLine{{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Goals: 1}},
	)

	if _, err := f.service.ComputeMatchweekScores(context.Background(), "mw1"); err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	mw, _, err := f.matchweekRepo.GetByID(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if mw.IsActive {
		t.Fatal("matchweek still active after scoring")
	}
}

func TestScoringService_ComputeMatchweekScores_Idempotent(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		[]stats.StatLine{{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Goals: 2, Assists: 1}},
	)

	first, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("first run error: %v", err)
	}
	second, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("second run error: %v", err)
	}

	if first.Squads[0].TotalPoints != second.Squads[0].TotalPoints {
		t.Fatalf("reruns differ: first=%s second=%s", first.Squads[0].TotalPoints, second.Squads[0].TotalPoints)
	}

	scores, err := f.scoreRepo.ListWeeklyScoresByMatchweek(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("ListWeeklyScoresByMatchweek error: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("rerun appended rows: got=%d want=1", len(scores))
	}
}

func TestScoringService_ComputeMatchweekScores_RejectsConcurrentRun(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		nil,
	)

	if !f.service.acquire("mw1") {
		t.Fatal("acquire failed on idle matchweek")
	}
	defer f.service.release("mw1")

	_, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if !errors.Is(err, ErrComputationInFlight) {
		t.Fatalf("unexpected error: got=%v want=ErrComputationInFlight", err)
	}

	// A different matchweek is not blocked by mw1's run.
	if _, err := f.service.ComputeMatchweekScores(context.Background(), "mw2"); errors.Is(err, ErrComputationInFlight) {
		t.Fatal("independent matchweek rejected as in flight")
	}
}

func TestScoringService_GetSquadBreakdown_OwnershipChecked(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		[]stats.StatLine{{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Goals: 1}},
	)
	if _, err := f.service.ComputeMatchweekScores(context.Background(), "mw1"); err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	breakdown, err := f.service.GetSquadBreakdown(context.Background(), "user-1", "squad-1", "mw1")
	if err != nil {
		t.Fatalf("GetSquadBreakdown error: %v", err)
	}
	if len(breakdown.Players) != 1 {
		t.Fatalf("unexpected player rows: got=%d want=1", len(breakdown.Players))
	}

	_, err = f.service.GetSquadBreakdown(context.Background(), "user-2", "squad-1", "mw1")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("unexpected error for foreign squad: got=%v want=ErrForbidden", err)
	}
}

func TestScoringService_ExportMatchweekScoresCSV(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t,
		singleSquad(squad.SlotAssignment{Slot: "FWD1", PlayerID: "fwd1"}),
		[]stats.StatLine{{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Goals: 3}},
	)
	if _, err := f.service.ComputeMatchweekScores(context.Background(), "mw1"); err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	var out strings.Builder
	if err := f.service.ExportMatchweekScoresCSV(context.Background(), "mw1", &out); err != nil {
		t.Fatalf("ExportMatchweekScoresCSV error: %v", err)
	}

	csv := out.String()
	lines := strings.Split(strings.TrimSpace(csv), "\n")
	if len(lines) != 2 {
		t.Fatalf("unexpected csv line count: got=%d want=2", len(lines))
	}
	if !strings.HasPrefix(lines[0], "rank,squad_id") {
		t.Fatalf("unexpected csv header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "squad-1") || !strings.Contains(lines[1], "6.00") {
		t.Fatalf("unexpected csv row: %q", lines[1])
	}
}

func TestScoringService_ComputeMatchweekScores_ParallelSquads(t *testing.T) {
	t.Parallel()

	squads := []squad.Squad{
		{
			ID: "squad-1", UserID: "user-1", MatchweekID: "mw1", TeamName: "A",
			Formation:   squad.Formation442,
			Assignments: []squad.SlotAssignment{{Slot: "FWD1", PlayerID: "fwd1"}},
		},
		{
			ID: "squad-2", UserID: "user-2", MatchweekID: "mw1", TeamName: "B",
			Formation:   squad.Formation442,
			Assignments: []squad.SlotAssignment{{Slot: "FWD1", PlayerID: "fwd2"}},
		},
	}
	lines := []stats.StatLine{
		{ID: "s1", PlayerID: "fwd1", MatchID: "m1", MatchweekID: "mw1", Goals: 2},
		{ID: "s2", PlayerID: "fwd2", MatchID: "m1", MatchweekID: "mw1", Goals: 1},
	}
	f := newScoringFixture(t, squads, lines)

	result, err := f.service.ComputeMatchweekScores(context.Background(), "mw1")
	if err != nil {
		t.Fatalf("ComputeMatchweekScores error: %v", err)
	}

	if len(result.Squads) != 2 {
		t.Fatalf("unexpected squad count: got=%d want=2", len(result.Squads))
	}
	// Leaderboard order: highest total first.
	if result.Squads[0].SquadID != "squad-1" || result.Squads[0].TotalPoints != 400 {
		t.Fatalf("unexpected leader: %s %s", result.Squads[0].SquadID, result.Squads[0].TotalPoints)
	}
	if result.Squads[1].SquadID != "squad-2" || result.Squads[1].TotalPoints != 200 {
		t.Fatalf("unexpected runner-up: %s %s", result.Squads[1].SquadID, result.Squads[1].TotalPoints)
	}
}

func TestScoringService_InflightSetIsPerMatchweek(t *testing.T) {
	t.Parallel()

	f := newScoringFixture(t, nil, nil)

	var wg sync.WaitGroup
	acquired := make([]bool, 4)
	for i := range acquired {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			acquired[i] = f.service.acquire("mw-x")
		}()
	}
	wg.Wait()

	wins := 0
	for _, ok := range acquired {
		if ok {
			wins++
		}
	}
	if wins != 1 {
		t.Fatalf("concurrent acquires succeeded: got=%d want=1", wins)
	}

	f.service.release("mw-x")
	if !f.service.acquire("mw-x") {
		t.Fatal("acquire after release failed")
	}
}
