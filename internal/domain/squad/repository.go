package squad

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("squad not found")
)

// Repository persists squads. A squad is unique per (user, matchweek).
type Repository interface {
	GetByID(ctx context.Context, id string) (Squad, bool, error)
	GetByUserAndMatchweek(ctx context.Context, userID, matchweekID string) (Squad, bool, error)
	ListByMatchweek(ctx context.Context, matchweekID string) ([]Squad, error)
	Upsert(ctx context.Context, s Squad) error
}
