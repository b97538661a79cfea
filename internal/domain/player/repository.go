package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, playerIDs []string) ([]Player, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	Search(ctx context.Context, query, teamID string) ([]Player, error)
	Upsert(ctx context.Context, item Player) error
	Delete(ctx context.Context, playerID string) (bool, error)
}
