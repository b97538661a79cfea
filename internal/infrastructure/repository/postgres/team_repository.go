package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/team"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select("*").From("teams").
		Where(qb.Eq("public_id", teamID)).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("select team: %w", err)
	}

	return team.Team{ID: row.PublicID, Name: row.Name}, true, nil
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select("*").From("teams").
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select teams: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, team.Team{ID: row.PublicID, Name: row.Name})
	}

	return out, nil
}

func (r *TeamRepository) Upsert(ctx context.Context, item team.Team) error {
	const upsertQuery = `
INSERT INTO teams (public_id, name)
VALUES (:public_id, :name)
ON CONFLICT (public_id)
DO UPDATE SET
    name = EXCLUDED.name,
    updated_at = NOW()`

	query, args, err := sqlx.Named(upsertQuery, map[string]any{
		"public_id": item.ID,
		"name":      item.Name,
	})
	if err != nil {
		return fmt.Errorf("build upsert team query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) Delete(ctx context.Context, teamID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE public_id = $1`, teamID)
	if err != nil {
		return false, fmt.Errorf("delete team: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete team rows affected: %w", err)
	}

	return affected > 0, nil
}
