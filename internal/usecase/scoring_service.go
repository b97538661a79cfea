package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"
	"github.com/valyala/bytebufferpool"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/squad"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

const (
	defaultScoringWorkers = 8
	defaultStatsPrefetch  = 4
)

type ScoringService struct {
	matchweekRepo matchweek.Repository
	matchRepo     match.Repository
	squadRepo     squad.Repository
	playerRepo    player.Repository
	statsRepo     stats.Repository
	ruleRepo      scoring.RuleRepository
	scoreRepo     scoring.ScoreRepository
	now           func() time.Time
	workers       int

	inflightMu sync.Mutex
	inflight   map[string]struct{}
}

type PlayerScore struct {
	PlayerID    string
	PlayerName  string
	Position    player.Position
	TotalPoints scoring.Points
}

type SquadScore struct {
	SquadID     string
	UserID      string
	TeamName    string
	TotalPoints scoring.Points
	Players     []PlayerScore
}

type MatchweekScoringResult struct {
	MatchweekID  string
	CalculatedAt time.Time
	Squads       []SquadScore
}

type SquadBreakdown struct {
	Squad   squad.Squad
	Score   scoring.WeeklyScore
	Players []scoring.PlayerWeeklyScore
}

func NewScoringService(
	matchweekRepo matchweek.Repository,
	matchRepo match.Repository,
	squadRepo squad.Repository,
	playerRepo player.Repository,
	statsRepo stats.Repository,
	ruleRepo scoring.RuleRepository,
	scoreRepo scoring.ScoreRepository,
) *ScoringService {
	return &ScoringService{
		matchweekRepo: matchweekRepo,
		matchRepo:     matchRepo,
		squadRepo:     squadRepo,
		playerRepo:    playerRepo,
		statsRepo:     statsRepo,
		ruleRepo:      ruleRepo,
		scoreRepo:     scoreRepo,
		now:           time.Now,
		workers:       defaultScoringWorkers,
		inflight:      make(map[string]struct{}),
	}
}

// WithWorkers overrides the squad scoring concurrency. Values below 1
// keep the default.
func (s *ScoringService) WithWorkers(n int) *ScoringService {
	if n >= 1 {
		s.workers = n
	}
	return s
}

// ComputeMatchweekScores scores every squad of a matchweek against the
// recorded match statistics, persists the totals, and closes the
// matchweek. Re-running with the same inputs overwrites the stored
// rows with identical values.
//
// A second call for the same matchweek while one is running fails fast
// with ErrComputationInFlight; other matchweeks are unaffected.
func (s *ScoringService) ComputeMatchweekScores(ctx context.Context, matchweekID string) (MatchweekScoringResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ComputeMatchweekScores")
	defer span.End()

	if matchweekID == "" {
		return MatchweekScoringResult{}, fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	if !s.acquire(matchweekID) {
		return MatchweekScoringResult{}, fmt.Errorf("%w: matchweek %s", ErrComputationInFlight, matchweekID)
	}
	defer s.release(matchweekID)

	mw, found, err := s.matchweekRepo.GetByID(ctx, matchweekID)
	if err != nil {
		return MatchweekScoringResult{}, fmt.Errorf("get matchweek for scoring: %w", err)
	}
	if !found {
		return MatchweekScoringResult{}, fmt.Errorf("%w: matchweek %s", ErrNotFound, matchweekID)
	}

	ruleSet, err := s.ruleRepo.GetRuleSet(ctx)
	if err != nil {
		return MatchweekScoringResult{}, fmt.Errorf("load rule set: %w", err)
	}

	matches, err := s.matchRepo.ListByMatchweek(ctx, mw.ID)
	if err != nil {
		return MatchweekScoringResult{}, fmt.Errorf("list matches for scoring: %w", err)
	}
	if len(matches) == 0 {
		return MatchweekScoringResult{}, fmt.Errorf("%w: matchweek %s", ErrNoMatches, mw.ID)
	}

	squads, err := s.squadRepo.ListByMatchweek(ctx, mw.ID)
	if err != nil {
		return MatchweekScoringResult{}, fmt.Errorf("list squads for scoring: %w", err)
	}
	if len(squads) == 0 {
		return MatchweekScoringResult{}, fmt.Errorf("%w: matchweek %s", ErrNoSquads, mw.ID)
	}

	statIndex, err := s.prefetchStats(ctx, matches)
	if err != nil {
		return MatchweekScoringResult{}, err
	}

	players, err := s.resolvePlayers(ctx, squads)
	if err != nil {
		return MatchweekScoringResult{}, err
	}

	squadScores, err := s.scoreSquads(ctx, squads, matches, statIndex, players, ruleSet)
	if err != nil {
		return MatchweekScoringResult{}, err
	}

	calculatedAt := s.now().UTC()
	for _, sc := range squadScores {
		playerRows := make([]scoring.PlayerWeeklyScore, 0, len(sc.Players))
		for _, ps := range sc.Players {
			playerRows = append(playerRows, scoring.PlayerWeeklyScore{
				SquadID:     sc.SquadID,
				PlayerID:    ps.PlayerID,
				MatchweekID: mw.ID,
				TotalPoints: ps.TotalPoints,
			})
		}
		if err := s.scoreRepo.UpsertPlayerWeeklyScores(ctx, playerRows); err != nil {
			return MatchweekScoringResult{}, fmt.Errorf("store player scores for squad %s: %w", sc.SquadID, err)
		}
		if err := s.scoreRepo.UpsertWeeklyScore(ctx, scoring.WeeklyScore{
			SquadID:      sc.SquadID,
			MatchweekID:  mw.ID,
			TotalPoints:  sc.TotalPoints,
			CalculatedAt: calculatedAt,
		}); err != nil {
			return MatchweekScoringResult{}, fmt.Errorf("store weekly score for squad %s: %w", sc.SquadID, err)
		}
	}

	// Closing the matchweek is the last step so a failed run leaves it
	// open for a retry.
	if err := s.matchweekRepo.Deactivate(ctx, mw.ID); err != nil {
		return MatchweekScoringResult{}, fmt.Errorf("deactivate matchweek %s: %w", mw.ID, err)
	}

	sort.SliceStable(squadScores, func(i, j int) bool {
		return squadScores[i].TotalPoints > squadScores[j].TotalPoints
	})

	return MatchweekScoringResult{
		MatchweekID:  mw.ID,
		CalculatedAt: calculatedAt,
		Squads:       squadScores,
	}, nil
}

func (s *ScoringService) acquire(matchweekID string) bool {
	s.inflightMu.Lock()
	defer s.inflightMu.Unlock()
	if _, busy := s.inflight[matchweekID]; busy {
		return false
	}
	s.inflight[matchweekID] = struct{}{}
	return true
}

func (s *ScoringService) release(matchweekID string) {
	s.inflightMu.Lock()
	delete(s.inflight, matchweekID)
	s.inflightMu.Unlock()
}

type statKey struct {
	matchID  string
	playerID string
}

func (s *ScoringService) prefetchStats(ctx context.Context, matches []match.Match) (map[statKey]stats.StatLine, error) {
	var mu sync.Mutex
	index := make(map[statKey]stats.StatLine)

	p := pool.New().WithContext(ctx).WithMaxGoroutines(defaultStatsPrefetch)
	for _, m := range matches {
		m := m
		p.Go(func(ctx context.Context) error {
			lines, err := s.statsRepo.ListByMatch(ctx, m.ID)
			if err != nil {
				return fmt.Errorf("list statistics for match %s: %w", m.ID, err)
			}
			mu.Lock()
			for _, l := range lines {
				index[statKey{matchID: l.MatchID, playerID: l.PlayerID}] = l
			}
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return index, nil
}

func (s *ScoringService) resolvePlayers(ctx context.Context, squads []squad.Squad) (map[string]player.Player, error) {
	idSet := make(map[string]struct{})
	for _, sq := range squads {
		for _, id := range sq.PlayerIDs() {
			idSet[id] = struct{}{}
		}
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	players, err := s.playerRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve squad players: %w", err)
	}

	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID, nil
}

func (s *ScoringService) scoreSquads(
	ctx context.Context,
	squads []squad.Squad,
	matches []match.Match,
	statIndex map[statKey]stats.StatLine,
	players map[string]player.Player,
	ruleSet scoring.RuleSet,
) ([]SquadScore, error) {
	workers := s.workers
	if workers < 1 {
		workers = 1
	}

	workerPool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create scoring worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make([]SquadScore, len(squads))
	var wg sync.WaitGroup
	for i, sq := range squads {
		i, sq := i, sq
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = scoreSquad(sq, matches, statIndex, players, ruleSet)
		}
		if err := workerPool.Submit(task); err != nil {
			// Pool refused the task; run it inline so every squad is
			// still scored.
			task()
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scoreSquad(
	sq squad.Squad,
	matches []match.Match,
	statIndex map[statKey]stats.StatLine,
	players map[string]player.Player,
	ruleSet scoring.RuleSet,
) SquadScore {
	score := SquadScore{
		SquadID:  sq.ID,
		UserID:   sq.UserID,
		TeamName: sq.TeamName,
		Players:  make([]PlayerScore, 0, len(sq.Assignments)),
	}

	for _, a := range sq.Assignments {
		p, known := players[a.PlayerID]
		if !known {
			// Player was deleted after assignment; scores as zero.
			score.Players = append(score.Players, PlayerScore{PlayerID: a.PlayerID})
			continue
		}

		var total scoring.Points
		for _, m := range matches {
			line, ok := statIndex[statKey{matchID: m.ID, playerID: p.ID}]
			if !ok {
				continue
			}
			total += scoring.ScoreStatLine(ruleSet, p.Position, line)
		}

		score.Players = append(score.Players, PlayerScore{
			PlayerID:    p.ID,
			PlayerName:  p.FullName(),
			Position:    p.Position,
			TotalPoints: total,
		})
		score.TotalPoints += total
	}

	return score
}

// ListMatchweekScores returns the stored leaderboard for a matchweek,
// highest total first.
func (s *ScoringService) ListMatchweekScores(ctx context.Context, matchweekID string) ([]scoring.WeeklyScore, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListMatchweekScores")
	defer span.End()

	if matchweekID == "" {
		return nil, fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	scores, err := s.scoreRepo.ListWeeklyScoresByMatchweek(ctx, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("list weekly scores: %w", err)
	}
	return scores, nil
}

// GetSquadBreakdown returns one squad's stored weekly score with its
// per-player rows. Only the squad owner may read it.
func (s *ScoringService) GetSquadBreakdown(ctx context.Context, userID, squadID, matchweekID string) (SquadBreakdown, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.GetSquadBreakdown")
	defer span.End()

	if userID == "" {
		return SquadBreakdown{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if squadID == "" || matchweekID == "" {
		return SquadBreakdown{}, fmt.Errorf("%w: squad id and matchweek id are required", ErrInvalidInput)
	}

	sq, found, err := s.squadRepo.GetByID(ctx, squadID)
	if err != nil {
		return SquadBreakdown{}, fmt.Errorf("get squad: %w", err)
	}
	if !found {
		return SquadBreakdown{}, fmt.Errorf("%w: squad %s", ErrNotFound, squadID)
	}
	if sq.UserID != userID {
		return SquadBreakdown{}, fmt.Errorf("%w: squad %s belongs to another user", ErrForbidden, squadID)
	}

	score, found, err := s.scoreRepo.GetWeeklyScore(ctx, squadID, matchweekID)
	if err != nil {
		return SquadBreakdown{}, fmt.Errorf("get weekly score: %w", err)
	}
	if !found {
		return SquadBreakdown{}, fmt.Errorf("%w: no score for squad %s in matchweek %s", ErrNotFound, squadID, matchweekID)
	}

	playerScores, err := s.scoreRepo.ListPlayerScoresBySquad(ctx, squadID, matchweekID)
	if err != nil {
		return SquadBreakdown{}, fmt.Errorf("list player scores: %w", err)
	}

	return SquadBreakdown{Squad: sq, Score: score, Players: playerScores}, nil
}

// ExportMatchweekScoresCSV streams the matchweek leaderboard as CSV.
func (s *ScoringService) ExportMatchweekScoresCSV(ctx context.Context, matchweekID string, w io.Writer) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ExportMatchweekScoresCSV")
	defer span.End()

	scores, err := s.ListMatchweekScores(ctx, matchweekID)
	if err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	cw := csv.NewWriter(buf)
	if err := cw.Write([]string{"rank", "squad_id", "matchweek_id", "total_points", "calculated_at"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, sc := range scores {
		row := []string{
			strconv.Itoa(i + 1),
			sc.SquadID,
			sc.MatchweekID,
			sc.TotalPoints.String(),
			sc.CalculatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write csv export: %w", err)
	}
	return nil
}
