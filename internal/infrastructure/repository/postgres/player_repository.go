package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/player"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("public_id", playerID)).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}

	values := make([]any, 0, len(playerIDs))
	for _, id := range playerIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("players").
		Where(qb.In("public_id", values)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	query, args, err := qb.Select("*").From("players").
		Where(qb.Eq("team_public_id", teamID)).
		OrderBy("last_name", "first_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by team query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by team: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Search(ctx context.Context, query, teamID string) ([]player.Player, error) {
	builder := qb.Select("*").From("players")

	conditions := make([]qb.Condition, 0, 2)
	if query != "" {
		conditions = append(conditions, qb.Expr(
			"(first_name || ' ' || last_name) ILIKE ?",
			"%"+query+"%",
		))
	}
	if teamID != "" {
		conditions = append(conditions, qb.Eq("team_public_id", teamID))
	}
	if len(conditions) > 0 {
		builder = builder.Where(conditions...)
	}

	sqlQuery, args, err := builder.OrderBy("last_name", "first_name").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build search players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, sqlQuery, args...); err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, item player.Player) error {
	const upsertQuery = `
INSERT INTO players (public_id, team_public_id, first_name, last_name, position)
VALUES (:public_id, :team_public_id, :first_name, :last_name, :position)
ON CONFLICT (public_id)
DO UPDATE SET
    team_public_id = EXCLUDED.team_public_id,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    position = EXCLUDED.position,
    updated_at = NOW()`

	query, args, err := sqlx.Named(upsertQuery, map[string]any{
		"public_id":      item.ID,
		"team_public_id": item.TeamID,
		"first_name":     item.FirstName,
		"last_name":      item.LastName,
		"position":       string(item.Position),
	})
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) Delete(ctx context.Context, playerID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM players WHERE public_id = $1`, playerID)
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete player rows affected: %w", err)
	}

	return affected > 0, nil
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:        row.PublicID,
		TeamID:    row.TeamID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Position:  player.Position(row.Position),
	}
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
