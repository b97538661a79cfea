package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match: %w", err)
	}

	return matchFromRow(row), true, nil
}

func (r *MatchRepository) ListByMatchweek(ctx context.Context, matchweekID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("matchweek_public_id", matchweekID)).
		OrderBy("kickoff_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromRow(row))
	}

	return out, nil
}

func (r *MatchRepository) Upsert(ctx context.Context, item match.Match) error {
	const upsertQuery = `
INSERT INTO matches (public_id, matchweek_public_id, home_team_public_id, away_team_public_id, kickoff_at, status, home_score, away_score)
VALUES (:public_id, :matchweek_public_id, :home_team_public_id, :away_team_public_id, :kickoff_at, :status, :home_score, :away_score)
ON CONFLICT (public_id)
DO UPDATE SET
    kickoff_at = EXCLUDED.kickoff_at,
    status = EXCLUDED.status,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = NOW()`

	query, args, err := sqlx.Named(upsertQuery, map[string]any{
		"public_id":           item.ID,
		"matchweek_public_id": item.MatchweekID,
		"home_team_public_id": item.HomeTeamID,
		"away_team_public_id": item.AwayTeamID,
		"kickoff_at":          item.KickoffAt,
		"status":              string(item.Status),
		"home_score":          item.HomeScore,
		"away_score":          item.AwayScore,
	})
	if err != nil {
		return fmt.Errorf("build upsert match query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE public_id = $1`, matchID)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete match rows affected: %w", err)
	}

	return affected > 0, nil
}

func matchFromRow(row matchTableModel) match.Match {
	return match.Match{
		ID:          row.PublicID,
		MatchweekID: row.MatchweekID,
		HomeTeamID:  row.HomeTeamID,
		AwayTeamID:  row.AwayTeamID,
		KickoffAt:   row.KickoffAt,
		Status:      match.Status(row.Status),
		HomeScore:   row.HomeScore,
		AwayScore:   row.AwayScore,
	}
}
