package scoring

import (
	"context"
	"errors"

	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

var (
	ErrRuleNotFound  = errors.New("scoring rule not found")
	ErrScoreNotFound = errors.New("weekly score not found")
)

// RuleRepository persists the scoring configuration.
type RuleRepository interface {
	GetRuleSet(ctx context.Context) (RuleSet, error)
	UpdateRulePoints(ctx context.Context, stat stats.StatName, points Points) error
	UpdateTeamPlayerLimit(ctx context.Context, limit int) error
	ResetDefaults(ctx context.Context) error
}

// ScoreRepository persists computed weekly scores. Writes are
// overwrite-by-natural-key so recomputation replaces earlier runs.
type ScoreRepository interface {
	UpsertWeeklyScore(ctx context.Context, score WeeklyScore) error
	UpsertPlayerWeeklyScores(ctx context.Context, scores []PlayerWeeklyScore) error
	GetWeeklyScore(ctx context.Context, squadID, matchweekID string) (WeeklyScore, bool, error)
	// ListWeeklyScoresByMatchweek returns scores ordered by total points
	// descending.
	ListWeeklyScoresByMatchweek(ctx context.Context, matchweekID string) ([]WeeklyScore, error)
	ListPlayerScoresBySquad(ctx context.Context, squadID, matchweekID string) ([]PlayerWeeklyScore, error)
}
