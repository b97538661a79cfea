package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

type MatchService struct {
	matchRepo     match.Repository
	matchweekRepo matchweek.Repository
	idGen         idgen.Generator
}

func NewMatchService(matchRepo match.Repository, matchweekRepo matchweek.Repository, idGen idgen.Generator) *MatchService {
	return &MatchService{
		matchRepo:     matchRepo,
		matchweekRepo: matchweekRepo,
		idGen:         idGen,
	}
}

type CreateMatchInput struct {
	MatchweekID string
	HomeTeamID  string
	AwayTeamID  string
	KickoffAt   time.Time
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	_, found, err := s.matchweekRepo.GetByID(ctx, input.MatchweekID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get matchweek for match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: matchweek %s", ErrNotFound, input.MatchweekID)
	}

	newID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:          newID,
		MatchweekID: input.MatchweekID,
		HomeTeamID:  input.HomeTeamID,
		AwayTeamID:  input.AwayTeamID,
		KickoffAt:   input.KickoffAt,
		Status:      match.StatusScheduled,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Upsert(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}
	return m, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, found, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !found {
		return match.Match{}, fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return m, nil
}

func (s *MatchService) ListByMatchweek(ctx context.Context, matchweekID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByMatchweek")
	defer span.End()

	if matchweekID == "" {
		return nil, fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByMatchweek(ctx, matchweekID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return matches, nil
}

// UpdateScore records the running or final score of a match.
func (s *MatchService) UpdateScore(ctx context.Context, matchID string, status match.Status, homeScore, awayScore int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateScore")
	defer span.End()

	m, err := s.Get(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}

	m.Status = status
	m.HomeScore = homeScore
	m.AwayScore = awayScore
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Upsert(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("update match score: %w", err)
	}
	return m, nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	deleted, err := s.matchRepo.Delete(ctx, matchID)
	if err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: match %s", ErrNotFound, matchID)
	}
	return nil
}
