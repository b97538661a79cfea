package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchweek/fantasy-api/internal/domain/stats"
	qb "github.com/matchweek/fantasy-api/internal/platform/querybuilder"
)

type StatsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

func (r *StatsRepository) GetByID(ctx context.Context, statLineID string) (stats.StatLine, bool, error) {
	query, args, err := qb.Select("*").From("match_statistics").
		Where(qb.Eq("public_id", statLineID)).
		ToSQL()
	if err != nil {
		return stats.StatLine{}, false, fmt.Errorf("build select stat line query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *StatsRepository) GetForPlayerMatch(ctx context.Context, playerID, matchID string) (stats.StatLine, bool, error) {
	query, args, err := qb.Select("*").From("match_statistics").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("match_public_id", matchID),
		).
		ToSQL()
	if err != nil {
		return stats.StatLine{}, false, fmt.Errorf("build select stat line by pair query: %w", err)
	}

	return r.getOne(ctx, query, args)
}

func (r *StatsRepository) getOne(ctx context.Context, query string, args []any) (stats.StatLine, bool, error) {
	var row statLineTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return stats.StatLine{}, false, nil
		}
		return stats.StatLine{}, false, fmt.Errorf("select stat line: %w", err)
	}

	return statLineFromRow(row), true, nil
}

func (r *StatsRepository) ListByMatch(ctx context.Context, matchID string) ([]stats.StatLine, error) {
	return r.list(ctx, qb.Eq("match_public_id", matchID))
}

func (r *StatsRepository) ListByMatchweek(ctx context.Context, matchweekID string) ([]stats.StatLine, error) {
	return r.list(ctx, qb.Eq("matchweek_public_id", matchweekID))
}

func (r *StatsRepository) list(ctx context.Context, cond qb.Condition) ([]stats.StatLine, error) {
	query, args, err := qb.Select("*").From("match_statistics").
		Where(cond).
		OrderBy("match_public_id", "player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select stat lines query: %w", err)
	}

	var rows []statLineTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select stat lines: %w", err)
	}

	out := make([]stats.StatLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, statLineFromRow(row))
	}

	return out, nil
}

func (r *StatsRepository) Upsert(ctx context.Context, line stats.StatLine) error {
	const upsertQuery = `
INSERT INTO match_statistics (
    public_id, player_public_id, match_public_id, matchweek_public_id,
    minutes_played, goals, assists, yellow_cards, red_cards, own_goals,
    penalties_won, penalties_missed, penalties_conceded, saves,
    penalties_saved, penalties_saved_outfield
) VALUES (
    :public_id, :player_public_id, :match_public_id, :matchweek_public_id,
    :minutes_played, :goals, :assists, :yellow_cards, :red_cards, :own_goals,
    :penalties_won, :penalties_missed, :penalties_conceded, :saves,
    :penalties_saved, :penalties_saved_outfield
)
ON CONFLICT (player_public_id, match_public_id)
DO UPDATE SET
    matchweek_public_id = EXCLUDED.matchweek_public_id,
    minutes_played = EXCLUDED.minutes_played,
    goals = EXCLUDED.goals,
    assists = EXCLUDED.assists,
    yellow_cards = EXCLUDED.yellow_cards,
    red_cards = EXCLUDED.red_cards,
    own_goals = EXCLUDED.own_goals,
    penalties_won = EXCLUDED.penalties_won,
    penalties_missed = EXCLUDED.penalties_missed,
    penalties_conceded = EXCLUDED.penalties_conceded,
    saves = EXCLUDED.saves,
    penalties_saved = EXCLUDED.penalties_saved,
    penalties_saved_outfield = EXCLUDED.penalties_saved_outfield,
    updated_at = NOW()`

	query, args, err := sqlx.Named(upsertQuery, map[string]any{
		"public_id":                line.ID,
		"player_public_id":         line.PlayerID,
		"match_public_id":          line.MatchID,
		"matchweek_public_id":      line.MatchweekID,
		"minutes_played":           line.MinutesPlayed,
		"goals":                    line.Goals,
		"assists":                  line.Assists,
		"yellow_cards":             line.YellowCards,
		"red_cards":                line.RedCards,
		"own_goals":                line.OwnGoals,
		"penalties_won":            line.PenaltiesWon,
		"penalties_missed":         line.PenaltiesMissed,
		"penalties_conceded":       line.PenaltiesConceded,
		"saves":                    line.Saves,
		"penalties_saved":          line.PenaltiesSaved,
		"penalties_saved_outfield": line.PenaltiesSavedOutfield,
	})
	if err != nil {
		return fmt.Errorf("build upsert stat line query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("upsert stat line: %w", err)
	}

	return nil
}

func (r *StatsRepository) Delete(ctx context.Context, statLineID string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM match_statistics WHERE public_id = $1`, statLineID)
	if err != nil {
		return false, fmt.Errorf("delete stat line: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete stat line rows affected: %w", err)
	}

	return affected > 0, nil
}

func statLineFromRow(row statLineTableModel) stats.StatLine {
	return stats.StatLine{
		ID:          row.PublicID,
		PlayerID:    row.PlayerID,
		MatchID:     row.MatchID,
		MatchweekID: row.MatchweekID,

		MinutesPlayed:          row.MinutesPlayed,
		Goals:                  row.Goals,
		Assists:                row.Assists,
		YellowCards:            row.YellowCards,
		RedCards:               row.RedCards,
		OwnGoals:               row.OwnGoals,
		PenaltiesWon:           row.PenaltiesWon,
		PenaltiesMissed:        row.PenaltiesMissed,
		PenaltiesConceded:      row.PenaltiesConceded,
		Saves:                  row.Saves,
		PenaltiesSaved:         row.PenaltiesSaved,
		PenaltiesSavedOutfield: row.PenaltiesSavedOutfield,
	}
}
