package stats

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("stat line not found")
)

// Repository persists per-match player stat lines.
type Repository interface {
	GetByID(ctx context.Context, id string) (StatLine, bool, error)
	// GetForPlayerMatch returns the single stat line for a player in a
	// match; a player has at most one line per match.
	GetForPlayerMatch(ctx context.Context, playerID, matchID string) (StatLine, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]StatLine, error)
	ListByMatchweek(ctx context.Context, matchweekID string) ([]StatLine, error)
	// Upsert writes a stat line keyed on (player, match), replacing any
	// earlier observation for the pair.
	Upsert(ctx context.Context, line StatLine) error
	Delete(ctx context.Context, id string) (bool, error)
}
