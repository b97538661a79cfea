package usecase

import (
	"context"
	"fmt"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

type StatsService struct {
	statsRepo  stats.Repository
	matchRepo  match.Repository
	playerRepo player.Repository
	idGen      idgen.Generator
}

func NewStatsService(statsRepo stats.Repository, matchRepo match.Repository, playerRepo player.Repository, idGen idgen.Generator) *StatsService {
	return &StatsService{
		statsRepo:  statsRepo,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		idGen:      idGen,
	}
}

// UpsertStatistics records a player's full stat line for a match,
// replacing any earlier line for the pair. The match and player must
// both exist; the line's matchweek is taken from the match.
func (s *StatsService) UpsertStatistics(ctx context.Context, line stats.StatLine) (stats.StatLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.UpsertStatistics")
	defer span.End()

	m, found, err := s.matchRepo.GetByID(ctx, line.MatchID)
	if err != nil {
		return stats.StatLine{}, fmt.Errorf("get match for statistics: %w", err)
	}
	if !found {
		return stats.StatLine{}, fmt.Errorf("%w: match %s", ErrNotFound, line.MatchID)
	}

	_, found, err = s.playerRepo.GetByID(ctx, line.PlayerID)
	if err != nil {
		return stats.StatLine{}, fmt.Errorf("get player for statistics: %w", err)
	}
	if !found {
		return stats.StatLine{}, fmt.Errorf("%w: player %s", ErrNotFound, line.PlayerID)
	}

	line.MatchweekID = m.MatchweekID
	if line.ID == "" {
		existing, exists, getErr := s.statsRepo.GetForPlayerMatch(ctx, line.PlayerID, line.MatchID)
		if getErr != nil {
			return stats.StatLine{}, fmt.Errorf("get existing stat line: %w", getErr)
		}
		if exists {
			line.ID = existing.ID
		} else {
			newID, idErr := s.idGen.NewID()
			if idErr != nil {
				return stats.StatLine{}, fmt.Errorf("generate stat line id: %w", idErr)
			}
			line.ID = newID
		}
	}

	if err := line.Validate(); err != nil {
		return stats.StatLine{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.statsRepo.Upsert(ctx, line); err != nil {
		return stats.StatLine{}, fmt.Errorf("store stat line: %w", err)
	}
	return line, nil
}

func (s *StatsService) ListByMatch(ctx context.Context, matchID string) ([]stats.StatLine, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListByMatch")
	defer span.End()

	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	lines, err := s.statsRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list stat lines: %w", err)
	}
	return lines, nil
}

func (s *StatsService) Delete(ctx context.Context, statLineID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Delete")
	defer span.End()

	if statLineID == "" {
		return fmt.Errorf("%w: stat line id is required", ErrInvalidInput)
	}

	deleted, err := s.statsRepo.Delete(ctx, statLineID)
	if err != nil {
		return fmt.Errorf("delete stat line: %w", err)
	}
	if !deleted {
		return fmt.Errorf("%w: stat line %s", ErrNotFound, statLineID)
	}
	return nil
}
