package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
)

type MatchweekRepository struct {
	mu    sync.RWMutex
	weeks map[string]matchweek.Matchweek
}

func NewMatchweekRepository(weeks []matchweek.Matchweek) *MatchweekRepository {
	byID := make(map[string]matchweek.Matchweek, len(weeks))
	for _, item := range weeks {
		byID[item.ID] = item
	}

	return &MatchweekRepository{weeks: byID}
}

func (r *MatchweekRepository) GetByID(_ context.Context, matchweekID string) (matchweek.Matchweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.weeks[matchweekID]
	return item, ok, nil
}

func (r *MatchweekRepository) GetActive(_ context.Context) (matchweek.Matchweek, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.weeks {
		if item.IsActive {
			return item, true, nil
		}
	}

	return matchweek.Matchweek{}, false, nil
}

func (r *MatchweekRepository) List(_ context.Context) ([]matchweek.Matchweek, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchweek.Matchweek, 0, len(r.weeks))
	for _, item := range r.weeks {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })

	return out, nil
}

func (r *MatchweekRepository) Create(_ context.Context, mw matchweek.Matchweek) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.weeks[mw.ID] = mw
	return nil
}

// Activate flips the active flag to the target matchweek under one
// lock so at most one matchweek ever reads as active.
func (r *MatchweekRepository) Activate(_ context.Context, matchweekID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, ok := r.weeks[matchweekID]
	if !ok {
		return false, nil
	}

	for id, item := range r.weeks {
		if item.IsActive && id != matchweekID {
			item.IsActive = false
			r.weeks[id] = item
		}
	}
	target.IsActive = true
	r.weeks[matchweekID] = target

	return true, nil
}

func (r *MatchweekRepository) Deactivate(_ context.Context, matchweekID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.weeks[matchweekID]
	if !ok {
		return nil
	}
	item.IsActive = false
	r.weeks[matchweekID] = item

	return nil
}

func (r *MatchweekRepository) Delete(_ context.Context, matchweekID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.weeks[matchweekID]; !ok {
		return false, nil
	}
	delete(r.weeks, matchweekID)
	return true, nil
}
