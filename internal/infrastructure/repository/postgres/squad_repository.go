package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/squad"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

type SquadRepository struct {
	db *sqlx.DB
}

func NewSquadRepository(db *sqlx.DB) *SquadRepository {
	return &SquadRepository{db: db}
}

func (r *SquadRepository) GetByID(ctx context.Context, squadID string) (squad.Squad, bool, error) {
	query, args, err := qb.Select("*").From("squads").
		Where(qb.Eq("public_id", squadID)).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build select squad query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *SquadRepository) GetByUserAndMatchweek(ctx context.Context, userID, matchweekID string) (squad.Squad, bool, error) {
	query, args, err := qb.Select("*").From("squads").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("matchweek_public_id", matchweekID),
		).
		ToSQL()
	if err != nil {
		return squad.Squad{}, false, fmt.Errorf("build select squad by user query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *SquadRepository) getOne(ctx context.Context, query string, args []any) (squad.Squad, bool, error) {
	var row squadTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return squad.Squad{}, false, nil
		}
		return squad.Squad{}, false, fmt.Errorf("select squad: %w", err)
	}

	assignments, err := r.loadAssignments(ctx, []string{row.PublicID})
	if err != nil {
		return squad.Squad{}, false, err
	}

	return squadFromRow(row, assignments[row.PublicID]), true, nil
}

func (r *SquadRepository) ListByMatchweek(ctx context.Context, matchweekID string) ([]squad.Squad, error) {
	query, args, err := qb.Select("*").From("squads").
		Where(qb.Eq("matchweek_public_id", matchweekID)).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select squads query: %w", err)
	}

	var rows []squadTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squads: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.PublicID)
	}
	assignments, err := r.loadAssignments(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]squad.Squad, 0, len(rows))
	for _, row := range rows {
		out = append(out, squadFromRow(row, assignments[row.PublicID]))
	}

	return out, nil
}

// Upsert stores the squad row and replaces its slot assignments in one
// transaction.
func (r *SquadRepository) Upsert(ctx context.Context, item squad.Squad) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin squad upsert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const upsertSquadQuery = `
INSERT INTO squads (public_id, user_id, matchweek_public_id, team_name, formation, created_at, updated_at)
VALUES (:public_id, :user_id, :matchweek_public_id, :team_name, :formation, :created_at, :updated_at)
ON CONFLICT (user_id, matchweek_public_id)
DO UPDATE SET
    team_name = EXCLUDED.team_name,
    formation = EXCLUDED.formation,
    updated_at = EXCLUDED.updated_at`

	upsertSQL, upsertArgs, err := sqlx.Named(upsertSquadQuery, map[string]any{
		"public_id":           item.ID,
		"user_id":             item.UserID,
		"matchweek_public_id": item.MatchweekID,
		"team_name":           item.TeamName,
		"formation":           string(item.Formation),
		"created_at":          item.CreatedAt,
		"updated_at":          item.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("build upsert squad query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(upsertSQL), upsertArgs...); err != nil {
		return fmt.Errorf("upsert squad: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM squad_assignments WHERE squad_public_id = $1`, item.ID); err != nil {
		return fmt.Errorf("clear squad assignments: %w", err)
	}

	const insertAssignmentQuery = `
INSERT INTO squad_assignments (squad_public_id, slot, player_public_id)
VALUES (:squad_public_id, :slot, :player_public_id)`

	for _, a := range item.Assignments {
		assignSQL, assignArgs, err := sqlx.Named(insertAssignmentQuery, map[string]any{
			"squad_public_id":  item.ID,
			"slot":             a.Slot,
			"player_public_id": a.PlayerID,
		})
		if err != nil {
			return fmt.Errorf("build insert assignment query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, tx.Rebind(assignSQL), assignArgs...); err != nil {
			return fmt.Errorf("insert squad assignment: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit squad upsert: %w", err)
	}

	return nil
}

func (r *SquadRepository) loadAssignments(ctx context.Context, squadIDs []string) (map[string][]squad.SlotAssignment, error) {
	values := make([]any, 0, len(squadIDs))
	for _, id := range squadIDs {
		values = append(values, id)
	}

	query, args, err := qb.Select("*").From("squad_assignments").
		Where(qb.In("squad_public_id", values)).
		OrderBy("squad_public_id", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select assignments query: %w", err)
	}

	var rows []squadAssignmentTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select squad assignments: %w", err)
	}

	out := make(map[string][]squad.SlotAssignment, len(squadIDs))
	for _, row := range rows {
		out[row.SquadID] = append(out[row.SquadID], squad.SlotAssignment{
			Slot:     row.Slot,
			PlayerID: row.PlayerID,
		})
	}

	return out, nil
}

func squadFromRow(row squadTableModel, assignments []squad.SlotAssignment) squad.Squad {
	return squad.Squad{
		ID:          row.PublicID,
		UserID:      row.UserID,
		MatchweekID: row.MatchweekID,
		TeamName:    row.TeamName,
		Formation:   squad.Formation(row.Formation),
		Assignments: assignments,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
