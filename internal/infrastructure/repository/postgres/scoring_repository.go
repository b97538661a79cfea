package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

// RuleRepository stores one row per stat; the team player limit is
// written redundantly on every row and surfaced as a single value.
type RuleRepository struct {
	db *sqlx.DB
}

func NewRuleRepository(db *sqlx.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

func (r *RuleRepository) GetRuleSet(ctx context.Context) (scoring.RuleSet, error) {
	query, args, err := qb.Select("*").From("scoring_rules").
		OrderBy("stat_name").
		ToSQL()
	if err != nil {
		return scoring.RuleSet{}, fmt.Errorf("build select rules query: %w", err)
	}

	var rows []scoringRuleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return scoring.RuleSet{}, fmt.Errorf("select scoring rules: %w", err)
	}
	if len(rows) == 0 {
		return scoring.DefaultRuleSet(), nil
	}

	out := scoring.RuleSet{
		Rules:           make(map[stats.StatName]scoring.Rule, len(rows)),
		TeamPlayerLimit: scoring.DefaultTeamPlayerLimit,
	}
	for _, row := range rows {
		name := stats.StatName(row.StatName)
		out.Rules[name] = scoring.Rule{
			Stat:          name,
			PointsPerUnit: scoring.Points(row.PointsPerUnit),
			Eligibility:   scoring.Eligibility(row.Eligibility),
		}
		out.TeamPlayerLimit = row.TeamPlayerLimit
	}

	return out, nil
}

func (r *RuleRepository) UpdateRulePoints(ctx context.Context, stat stats.StatName, points scoring.Points) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE scoring_rules SET points_per_unit = $1, updated_at = NOW() WHERE stat_name = $2`,
		int64(points), string(stat))
	if err != nil {
		return fmt.Errorf("update rule points: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update rule points rows affected: %w", err)
	}
	if affected == 0 {
		return scoring.ErrRuleNotFound
	}

	return nil
}

func (r *RuleRepository) UpdateTeamPlayerLimit(ctx context.Context, limit int) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE scoring_rules SET team_player_limit = $1, updated_at = NOW()`, limit); err != nil {
		return fmt.Errorf("update team player limit: %w", err)
	}
	return nil
}

func (r *RuleRepository) ResetDefaults(ctx context.Context) error {
	defaults := scoring.DefaultRuleSet()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rules reset: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsertQuery = `
INSERT INTO scoring_rules (stat_name, points_per_unit, eligibility, team_player_limit)
VALUES (:stat_name, :points_per_unit, :eligibility, :team_player_limit)
ON CONFLICT (stat_name)
DO UPDATE SET
    points_per_unit = EXCLUDED.points_per_unit,
    eligibility = EXCLUDED.eligibility,
    team_player_limit = EXCLUDED.team_player_limit,
    updated_at = NOW()`

	for _, name := range stats.AllStatNames {
		rule := defaults.Rules[name]
		query, args, err := sqlx.Named(upsertQuery, map[string]any{
			"stat_name":         string(rule.Stat),
			"points_per_unit":   int64(rule.PointsPerUnit),
			"eligibility":       string(rule.Eligibility),
			"team_player_limit": defaults.TeamPlayerLimit,
		})
		if err != nil {
			return fmt.Errorf("build reset rule query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("reset rule %s: %w", rule.Stat, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rules reset: %w", err)
	}

	return nil
}

type ScoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

func (r *ScoreRepository) UpsertWeeklyScore(ctx context.Context, score scoring.WeeklyScore) error {
	const upsertQuery = `
INSERT INTO weekly_scores (squad_public_id, matchweek_public_id, total_points, calculated_at)
VALUES (:squad_public_id, :matchweek_public_id, :total_points, :calculated_at)
ON CONFLICT (squad_public_id, matchweek_public_id)
DO UPDATE SET
    total_points = EXCLUDED.total_points,
    calculated_at = EXCLUDED.calculated_at`

	query, args, err := sqlx.Named(upsertQuery, map[string]any{
		"squad_public_id":     score.SquadID,
		"matchweek_public_id": score.MatchweekID,
		"total_points":        int64(score.TotalPoints),
		"calculated_at":       score.CalculatedAt,
	})
	if err != nil {
		return fmt.Errorf("build upsert weekly score query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert weekly score: %w", err)
	}

	return nil
}

func (r *ScoreRepository) UpsertPlayerWeeklyScores(ctx context.Context, scores []scoring.PlayerWeeklyScore) error {
	if len(scores) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin player scores upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsertQuery = `
INSERT INTO player_weekly_scores (squad_public_id, player_public_id, matchweek_public_id, total_points)
VALUES (:squad_public_id, :player_public_id, :matchweek_public_id, :total_points)
ON CONFLICT (squad_public_id, player_public_id, matchweek_public_id)
DO UPDATE SET
    total_points = EXCLUDED.total_points`

	for _, score := range scores {
		query, args, err := sqlx.Named(upsertQuery, map[string]any{
			"squad_public_id":     score.SquadID,
			"player_public_id":    score.PlayerID,
			"matchweek_public_id": score.MatchweekID,
			"total_points":        int64(score.TotalPoints),
		})
		if err != nil {
			return fmt.Errorf("build upsert player score query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return fmt.Errorf("upsert player score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit player scores upsert: %w", err)
	}

	return nil
}

func (r *ScoreRepository) GetWeeklyScore(ctx context.Context, squadID, matchweekID string) (scoring.WeeklyScore, bool, error) {
	query, args, err := qb.Select("*").From("weekly_scores").
		Where(
			qb.Eq("squad_public_id", squadID),
			qb.Eq("matchweek_public_id", matchweekID),
		).
		ToSQL()
	if err != nil {
		return scoring.WeeklyScore{}, false, fmt.Errorf("build select weekly score query: %w", err)
	}

	var row weeklyScoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return scoring.WeeklyScore{}, false, nil
		}
		return scoring.WeeklyScore{}, false, fmt.Errorf("select weekly score: %w", err)
	}

	return weeklyScoreFromRow(row), true, nil
}

func (r *ScoreRepository) ListWeeklyScoresByMatchweek(ctx context.Context, matchweekID string) ([]scoring.WeeklyScore, error) {
	query, args, err := qb.Select("*").From("weekly_scores").
		Where(qb.Eq("matchweek_public_id", matchweekID)).
		OrderBy("total_points DESC", "squad_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select weekly scores query: %w", err)
	}

	var rows []weeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select weekly scores: %w", err)
	}

	out := make([]scoring.WeeklyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyScoreFromRow(row))
	}

	return out, nil
}

func (r *ScoreRepository) ListPlayerScoresBySquad(ctx context.Context, squadID, matchweekID string) ([]scoring.PlayerWeeklyScore, error) {
	query, args, err := qb.Select("*").From("player_weekly_scores").
		Where(
			qb.Eq("squad_public_id", squadID),
			qb.Eq("matchweek_public_id", matchweekID),
		).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select player scores query: %w", err)
	}

	var rows []playerWeeklyScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player scores: %w", err)
	}

	out := make([]scoring.PlayerWeeklyScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, scoring.PlayerWeeklyScore{
			SquadID:     row.SquadID,
			PlayerID:    row.PlayerID,
			MatchweekID: row.MatchweekID,
			TotalPoints: scoring.Points(row.TotalPoints),
		})
	}

	return out, nil
}

func weeklyScoreFromRow(row weeklyScoreTableModel) scoring.WeeklyScore {
	return scoring.WeeklyScore{
		SquadID:      row.SquadID,
		MatchweekID:  row.MatchweekID,
		TotalPoints:  scoring.Points(row.TotalPoints),
		CalculatedAt: row.CalculatedAt,
	}
}
