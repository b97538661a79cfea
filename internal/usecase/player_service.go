package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/team"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

type PlayerService struct {
	playerRepo player.Repository
	teamRepo   team.Repository
	idGen      idgen.Generator
}

func NewPlayerService(playerRepo player.Repository, teamRepo team.Repository, idGen idgen.Generator) *PlayerService {
	return &PlayerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
		idGen:      idGen,
	}
}

type UpsertPlayerInput struct {
	ID        string
	TeamID    string
	FirstName string
	LastName  string
	Position  player.Position
}

func (s *PlayerService) Upsert(ctx context.Context, input UpsertPlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Upsert")
	defer span.End()

	p := player.Player{
		ID:        input.ID,
		TeamID:    input.TeamID,
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		Position:  input.Position,
	}
	if p.ID == "" {
		newID, err := s.idGen.NewID()
		if err != nil {
			return player.Player{}, fmt.Errorf("generate player id: %w", err)
		}
		p.ID = newID
	}
	if err := p.Validate(); err != nil {
		return player.Player{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	_, found, err := s.teamRepo.GetByID(ctx, p.TeamID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get team for player: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: team %s", ErrNotFound, p.TeamID)
	}

	if err := s.playerRepo.Upsert(ctx, p); err != nil {
		return player.Player{}, fmt.Errorf("store player: %w", err)
	}
	return p, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	p, found, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player: %w", err)
	}
	if !found {
		return player.Player{}, fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return p, nil
}

// Search finds players by name fragment, optionally narrowed to one
// club. An empty query lists everyone.
func (s *PlayerService) Search(ctx context.Context, query, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Search")
	defer span.End()

	players, err := s.playerRepo.Search(ctx, strings.TrimSpace(query), teamID)
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}
	return players, nil
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	if teamID == "" {
		return nil, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return players, nil
}

func (s *PlayerService) Delete(ctx context.Context, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Delete")
	defer span.End()

	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	deleted, err := s.playerRepo.Delete(ctx, playerID)
	if err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: player %s", ErrNotFound, playerID)
	}
	return nil
}
