package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchweek/fantasy-api/internal/domain/team"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

type TeamService struct {
	teamRepo team.Repository
	idGen    idgen.Generator
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		idGen:    idGen,
	}
}

func (s *TeamService) Create(ctx context.Context, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	newID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	t := team.Team{ID: newID, Name: strings.TrimSpace(name)}
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return t, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	t, found, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !found {
		return team.Team{}, fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	return t, nil
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) Rename(ctx context.Context, teamID, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Rename")
	defer span.End()

	t, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}

	t.Name = strings.TrimSpace(name)
	if err := t.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.teamRepo.Upsert(ctx, t); err != nil {
		return team.Team{}, fmt.Errorf("rename team: %w", err)
	}
	return t, nil
}

func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	deleted, err := s.teamRepo.Delete(ctx, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: team %s", ErrNotFound, teamID)
	}
	return nil
}
