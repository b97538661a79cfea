package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchweek/fantasy-api/internal/domain/squad"
)

type SquadRepository struct {
	mu     sync.RWMutex
	squads map[string]squad.Squad
}

func NewSquadRepository(squads []squad.Squad) *SquadRepository {
	byID := make(map[string]squad.Squad, len(squads))
	for _, item := range squads {
		byID[item.ID] = cloneSquad(item)
	}

	return &SquadRepository{squads: byID}
}

func (r *SquadRepository) GetByID(_ context.Context, squadID string) (squad.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.squads[squadID]
	if !ok {
		return squad.Squad{}, false, nil
	}

	return cloneSquad(item), true, nil
}

func (r *SquadRepository) GetByUserAndMatchweek(_ context.Context, userID, matchweekID string) (squad.Squad, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.squads {
		if item.UserID == userID && item.MatchweekID == matchweekID {
			return cloneSquad(item), true, nil
		}
	}

	return squad.Squad{}, false, nil
}

func (r *SquadRepository) ListByMatchweek(_ context.Context, matchweekID string) ([]squad.Squad, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]squad.Squad, 0)
	for _, item := range r.squads {
		if item.MatchweekID == matchweekID {
			out = append(out, cloneSquad(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *SquadRepository) Upsert(_ context.Context, item squad.Squad) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.squads[item.ID] = cloneSquad(item)
	return nil
}

// cloneSquad copies the assignments slice so callers can mutate their
// copy without racing repository state.
func cloneSquad(item squad.Squad) squad.Squad {
	out := item
	out.Assignments = make([]squad.SlotAssignment, len(item.Assignments))
	copy(out.Assignments, item.Assignments)
	return out
}
