package team

import "context"

// Repository exposes team persistence operations.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	List(ctx context.Context) ([]Team, error)
	Upsert(ctx context.Context, item Team) error
	Delete(ctx context.Context, teamID string) (bool, error)
}
