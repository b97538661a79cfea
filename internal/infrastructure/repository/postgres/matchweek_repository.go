package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

type MatchweekRepository struct {
	db *sqlx.DB
}

func NewMatchweekRepository(db *sqlx.DB) *MatchweekRepository {
	return &MatchweekRepository{db: db}
}

func (r *MatchweekRepository) GetByID(ctx context.Context, matchweekID string) (matchweek.Matchweek, bool, error) {
	query, args, err := qb.Select("*").From("matchweeks").
		Where(qb.Eq("public_id", matchweekID)).
		ToSQL()
	if err != nil {
		return matchweek.Matchweek{}, false, fmt.Errorf("build select matchweek query: %w", err)
	}

	var row matchweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchweek.Matchweek{}, false, nil
		}
		return matchweek.Matchweek{}, false, fmt.Errorf("select matchweek: %w", err)
	}

	return matchweekFromRow(row), true, nil
}

func (r *MatchweekRepository) GetActive(ctx context.Context) (matchweek.Matchweek, bool, error) {
	query, args, err := qb.Select("*").From("matchweeks").
		Where(qb.Eq("is_active", true)).
		Limit(1).
		ToSQL()
	if err != nil {
		return matchweek.Matchweek{}, false, fmt.Errorf("build select active matchweek query: %w", err)
	}

	var row matchweekTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchweek.Matchweek{}, false, nil
		}
		return matchweek.Matchweek{}, false, fmt.Errorf("select active matchweek: %w", err)
	}

	return matchweekFromRow(row), true, nil
}

func (r *MatchweekRepository) List(ctx context.Context) ([]matchweek.Matchweek, error) {
	query, args, err := qb.Select("*").From("matchweeks").
		OrderBy("start_date").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchweeks query: %w", err)
	}

	var rows []matchweekTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchweeks: %w", err)
	}

	out := make([]matchweek.Matchweek, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchweekFromRow(row))
	}

	return out, nil
}

func (r *MatchweekRepository) Create(ctx context.Context, mw matchweek.Matchweek) error {
	const insertQuery = `
INSERT INTO matchweeks (public_id, name, start_date, end_date, is_active, created_at)
VALUES (:public_id, :name, :start_date, :end_date, :is_active, :created_at)`

	query, args, err := sqlx.Named(insertQuery, map[string]any{
		"public_id":  mw.ID,
		"name":       mw.Name,
		"start_date": mw.StartDate,
		"end_date":   mw.EndDate,
		"is_active":  mw.IsActive,
		"created_at": mw.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("build insert matchweek query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("insert matchweek: %w", err)
	}

	return nil
}

// Activate moves the single active flag to the target matchweek. The
// clear must land before the set: the partial unique index on is_active
// rejects a second live entry mid-statement, so a single swap UPDATE
// can fail depending on which row it visits first. Running both steps
// in one transaction keeps the index happy and the invariant intact.
func (r *MatchweekRepository) Activate(ctx context.Context, matchweekID string) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin tx activate matchweek: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// An unknown id must leave the currently active matchweek untouched,
	// so check the target before clearing anything.
	var exists bool
	if err := tx.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM matchweeks WHERE public_id = $1)`, matchweekID); err != nil {
		return false, fmt.Errorf("check matchweek exists: %w", err)
	}
	if !exists {
		return false, nil
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE matchweeks SET is_active = FALSE WHERE is_active`); err != nil {
		return false, fmt.Errorf("clear active matchweek: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE matchweeks SET is_active = TRUE WHERE public_id = $1`, matchweekID); err != nil {
		return false, fmt.Errorf("set active matchweek: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit activate matchweek: %w", err)
	}

	return true, nil
}

func (r *MatchweekRepository) Deactivate(ctx context.Context, matchweekID string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE matchweeks SET is_active = FALSE WHERE public_id = $1`, matchweekID); err != nil {
		return fmt.Errorf("deactivate matchweek: %w", err)
	}
	return nil
}

func (r *MatchweekRepository) Delete(ctx context.Context, matchweekID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM matchweeks WHERE public_id = $1`, matchweekID)
	if err != nil {
		return false, fmt.Errorf("delete matchweek: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete matchweek rows affected: %w", err)
	}

	return affected > 0, nil
}

func matchweekFromRow(row matchweekTableModel) matchweek.Matchweek {
	return matchweek.Matchweek{
		ID:        row.PublicID,
		Name:      row.Name,
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
	}
}
