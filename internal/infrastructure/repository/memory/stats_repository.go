package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

type StatsRepository struct {
	mu    sync.RWMutex
	lines map[string]stats.StatLine
}

func NewStatsRepository(lines []stats.StatLine) *StatsRepository {
	byID := make(map[string]stats.StatLine, len(lines))
	for _, item := range lines {
		byID[item.ID] = item
	}

	return &StatsRepository{lines: byID}
}

func (r *StatsRepository) GetByID(_ context.Context, statLineID string) (stats.StatLine, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.lines[statLineID]
	return item, ok, nil
}

func (r *StatsRepository) GetForPlayerMatch(_ context.Context, playerID, matchID string) (stats.StatLine, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.lines {
		if item.PlayerID == playerID && item.MatchID == matchID {
			return item, true, nil
		}
	}

	return stats.StatLine{}, false, nil
}

func (r *StatsRepository) ListByMatch(_ context.Context, matchID string) ([]stats.StatLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.StatLine, 0)
	for _, item := range r.lines {
		if item.MatchID == matchID {
			out = append(out, item)
		}
	}
	sortStatLines(out)

	return out, nil
}

func (r *StatsRepository) ListByMatchweek(_ context.Context, matchweekID string) ([]stats.StatLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]stats.StatLine, 0)
	for _, item := range r.lines {
		if item.MatchweekID == matchweekID {
			out = append(out, item)
		}
	}
	sortStatLines(out)

	return out, nil
}

// Upsert keys on (player, match): a second write for the same pair
// replaces the first even when the ids differ.
func (r *StatsRepository) Upsert(_ context.Context, line stats.StatLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.lines {
		if item.PlayerID == line.PlayerID && item.MatchID == line.MatchID && id != line.ID {
			delete(r.lines, id)
			break
		}
	}
	r.lines[line.ID] = line

	return nil
}

func (r *StatsRepository) Delete(_ context.Context, statLineID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.lines[statLineID]; !ok {
		return false, nil
	}
	delete(r.lines, statLineID)
	return true, nil
}

func sortStatLines(items []stats.StatLine) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].MatchID != items[j].MatchID {
			return items[i].MatchID < items[j].MatchID
		}
		return items[i].PlayerID < items[j].PlayerID
	})
}
