package match

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("match not found")
)

// Repository persists matches.
type Repository interface {
	GetByID(ctx context.Context, id string) (Match, bool, error)
	ListByMatchweek(ctx context.Context, matchweekID string) ([]Match, error)
	Upsert(ctx context.Context, m Match) error
	Delete(ctx context.Context, id string) (bool, error)
}
