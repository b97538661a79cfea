package matchweek

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a matchweek does not exist.
	ErrNotFound = errors.New("matchweek not found")
)

// Repository persists matchweeks.
type Repository interface {
	GetByID(ctx context.Context, id string) (Matchweek, bool, error)
	// GetActive returns the single active matchweek, if any.
	GetActive(ctx context.Context) (Matchweek, bool, error)
	List(ctx context.Context) ([]Matchweek, error)
	Create(ctx context.Context, mw Matchweek) error

	// Activate marks the given matchweek active and every other matchweek
	// inactive in one conditional write. It reports whether the target
	// matchweek exists; the swap is atomic so two concurrent activations
	// cannot leave more than one matchweek active.
	Activate(ctx context.Context, id string) (bool, error)
	// Deactivate clears the active flag on the given matchweek.
	Deactivate(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) (bool, error)
}
