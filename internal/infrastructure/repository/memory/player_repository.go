package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/matchweek/fantasy-api/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byID := make(map[string]player.Player, len(players))
	for _, item := range players {
		byID[item.ID] = item
	}

	return &PlayerRepository{players: byID}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return item, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		if item, ok := r.players[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0)
	for _, item := range r.players {
		if item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) Search(_ context.Context, query, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	out := make([]player.Player, 0)
	for _, item := range r.players {
		if teamID != "" && item.TeamID != teamID {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(item.FullName()), needle) {
			continue
		}
		out = append(out, item)
	}
	sortPlayers(out)

	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, item player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.players[item.ID] = item
	return nil
}

func (r *PlayerRepository) Delete(_ context.Context, playerID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[playerID]; !ok {
		return false, nil
	}
	delete(r.players, playerID)
	return true, nil
}

func sortPlayers(items []player.Player) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].LastName != items[j].LastName {
			return items[i].LastName < items[j].LastName
		}
		return items[i].FirstName < items[j].FirstName
	})
}
