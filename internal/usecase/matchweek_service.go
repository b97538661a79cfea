package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

type MatchweekService struct {
	matchweekRepo matchweek.Repository
	idGen         idgen.Generator
	now           func() time.Time
}

func NewMatchweekService(matchweekRepo matchweek.Repository, idGen idgen.Generator) *MatchweekService {
	return &MatchweekService{
		matchweekRepo: matchweekRepo,
		idGen:         idGen,
		now:           time.Now,
	}
}

type CreateMatchweekInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

func (s *MatchweekService) Create(ctx context.Context, input CreateMatchweekInput) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchweekService.Create")
	defer span.End()

	newID, err := s.idGen.NewID()
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("generate matchweek id: %w", err)
	}

	mw := matchweek.Matchweek{
		ID:        newID,
		Name:      strings.TrimSpace(input.Name),
		StartDate: input.StartDate,
		EndDate:   input.EndDate,
		CreatedAt: s.now().UTC(),
	}
	if err := mw.Validate(); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchweekRepo.Create(ctx, mw); err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("create matchweek: %w", err)
	}
	return mw, nil
}

func (s *MatchweekService) Get(ctx context.Context, matchweekID string) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchweekService.Get")
	defer span.End()

	if matchweekID == "" {
		return matchweek.Matchweek{}, fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	mw, found, err := s.matchweekRepo.GetByID(ctx, matchweekID)
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("get matchweek: %w", err)
	}
	if !found {
		return matchweek.Matchweek{}, fmt.Errorf("%w: matchweek %s", ErrNotFound, matchweekID)
	}
	return mw, nil
}

func (s *MatchweekService) List(ctx context.Context) ([]matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchweekService.List")
	defer span.End()

	weeks, err := s.matchweekRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matchweeks: %w", err)
	}
	sort.SliceStable(weeks, func(i, j int) bool {
		return weeks[i].StartDate.Before(weeks[j].StartDate)
	})
	return weeks, nil
}

// GetActive returns the currently open matchweek, or ErrNotFound when
// none is active.
func (s *MatchweekService) GetActive(ctx context.Context) (matchweek.Matchweek, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchweekService.GetActive")
	defer span.End()

	mw, found, err := s.matchweekRepo.GetActive(ctx)
	if err != nil {
		return matchweek.Matchweek{}, fmt.Errorf("get active matchweek: %w", err)
	}
	if !found {
		return matchweek.Matchweek{}, fmt.Errorf("%w: no active matchweek", ErrNotFound)
	}
	return mw, nil
}

// Activate opens a matchweek for squad edits and closes every other
// one. The swap happens in a single repository write so concurrent
// activations can never leave two matchweeks open.
func (s *MatchweekService) Activate(ctx context.Context, matchweekID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchweekService.Activate")
	defer span.End()

	if matchweekID == "" {
		return fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	swapped, err := s.matchweekRepo.Activate(ctx, matchweekID)
	if err != nil {
		return fmt.Errorf("activate matchweek: %w", err)
	}
	if !swapped {
		return fmt.Errorf("%w: matchweek %s", ErrNotFound, matchweekID)
	}
	return nil
}

func (s *MatchweekService) Delete(ctx context.Context, matchweekID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchweekService.Delete")
	defer span.End()

	if matchweekID == "" {
		return fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	deleted, err := s.matchweekRepo.Delete(ctx, matchweekID)
	if err != nil {
		return fmt.Errorf("delete matchweek: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: matchweek %s", ErrNotFound, matchweekID)
	}
	return nil
}
