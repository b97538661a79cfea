package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

type RuleRepository struct {
	mu      sync.RWMutex
	ruleSet scoring.RuleSet
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{ruleSet: scoring.DefaultRuleSet()}
}

func (r *RuleRepository) GetRuleSet(_ context.Context) (scoring.RuleSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return cloneRuleSet(r.ruleSet), nil
}

func (r *RuleRepository) UpdateRulePoints(_ context.Context, stat stats.StatName, points scoring.Points) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule, ok := r.ruleSet.Rules[stat]
	if !ok {
		return scoring.ErrRuleNotFound
	}
	rule.PointsPerUnit = points
	r.ruleSet.Rules[stat] = rule

	return nil
}

func (r *RuleRepository) UpdateTeamPlayerLimit(_ context.Context, limit int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ruleSet.TeamPlayerLimit = limit
	return nil
}

func (r *RuleRepository) ResetDefaults(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.ruleSet = scoring.DefaultRuleSet()
	return nil
}

func cloneRuleSet(rs scoring.RuleSet) scoring.RuleSet {
	out := scoring.RuleSet{
		Rules:           make(map[stats.StatName]scoring.Rule, len(rs.Rules)),
		TeamPlayerLimit: rs.TeamPlayerLimit,
	}
	for name, rule := range rs.Rules {
		out.Rules[name] = rule
	}
	return out
}

type scoreKey struct {
	squadID     string
	matchweekID string
}

type playerScoreKey struct {
	squadID     string
	playerID    string
	matchweekID string
}

type ScoreRepository struct {
	mu           sync.RWMutex
	weekly       map[scoreKey]scoring.WeeklyScore
	playerWeekly map[playerScoreKey]scoring.PlayerWeeklyScore
}

func NewScoreRepository() *ScoreRepository {
	return &ScoreRepository{
		weekly:       make(map[scoreKey]scoring.WeeklyScore),
		playerWeekly: make(map[playerScoreKey]scoring.PlayerWeeklyScore),
	}
}

func (r *ScoreRepository) UpsertWeeklyScore(_ context.Context, score scoring.WeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.weekly[scoreKey{squadID: score.SquadID, matchweekID: score.MatchweekID}] = score
	return nil
}

func (r *ScoreRepository) UpsertPlayerWeeklyScores(_ context.Context, scores []scoring.PlayerWeeklyScore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, score := range scores {
		key := playerScoreKey{squadID: score.SquadID, playerID: score.PlayerID, matchweekID: score.MatchweekID}
		r.playerWeekly[key] = score
	}
	return nil
}

func (r *ScoreRepository) GetWeeklyScore(_ context.Context, squadID, matchweekID string) (scoring.WeeklyScore, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	score, ok := r.weekly[scoreKey{squadID: squadID, matchweekID: matchweekID}]
	return score, ok, nil
}

func (r *ScoreRepository) ListWeeklyScoresByMatchweek(_ context.Context, matchweekID string) ([]scoring.WeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyScore, 0)
	for key, score := range r.weekly {
		if key.matchweekID == matchweekID {
			out = append(out, score)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].SquadID < out[j].SquadID
	})

	return out, nil
}

func (r *ScoreRepository) ListPlayerScoresBySquad(_ context.Context, squadID, matchweekID string) ([]scoring.PlayerWeeklyScore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.PlayerWeeklyScore, 0)
	for key, score := range r.playerWeekly {
		if key.squadID == squadID && key.matchweekID == matchweekID {
			out = append(out, score)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })

	return out, nil
}
