package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/squad"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
)

// SquadService is the squad-builder surface. Edits are only allowed
// while the target matchweek is active; the per-club player limit is
// enforced at assignment time.
type SquadService struct {
	squadRepo     squad.Repository
	matchweekRepo matchweek.Repository
	playerRepo    player.Repository
	rules         *RulesService
	idGen         idgen.Generator
	now           func() time.Time
}

func NewSquadService(
	squadRepo squad.Repository,
	matchweekRepo matchweek.Repository,
	playerRepo player.Repository,
	rules *RulesService,
	idGen idgen.Generator,
) *SquadService {
	return &SquadService{
		squadRepo:     squadRepo,
		matchweekRepo: matchweekRepo,
		playerRepo:    playerRepo,
		rules:         rules,
		idGen:         idGen,
		now:           time.Now,
	}
}

func (s *SquadService) GetUserSquad(ctx context.Context, userID, matchweekID string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetUserSquad")
	defer span.End()

	if userID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if matchweekID == "" {
		return squad.Squad{}, fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}

	sq, found, err := s.squadRepo.GetByUserAndMatchweek(ctx, userID, matchweekID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get user squad: %w", err)
	}
	if !found {
		return squad.Squad{}, fmt.Errorf("%w: no squad for matchweek %s", ErrNotFound, matchweekID)
	}
	return sq, nil
}

type UpsertSquadInput struct {
	UserID      string
	MatchweekID string
	TeamName    string
	Formation   squad.Formation
}

// UpsertSquad creates the user's squad for a matchweek, or updates its
// name and formation. Assignments in slots that vanish with a
// formation change are dropped; the rest revalidate against the new
// scheme.
func (s *SquadService) UpsertSquad(ctx context.Context, input UpsertSquadInput) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.UpsertSquad")
	defer span.End()

	if input.UserID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if input.MatchweekID == "" {
		return squad.Squad{}, fmt.Errorf("%w: matchweek id is required", ErrInvalidInput)
	}
	if !input.Formation.Valid() {
		return squad.Squad{}, fmt.Errorf("%w: unknown formation %q", ErrInvalidInput, input.Formation)
	}
	if strings.TrimSpace(input.TeamName) == "" {
		return squad.Squad{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	if err := s.requireActiveMatchweek(ctx, input.MatchweekID); err != nil {
		return squad.Squad{}, err
	}

	now := s.now().UTC()
	sq, found, err := s.squadRepo.GetByUserAndMatchweek(ctx, input.UserID, input.MatchweekID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get user squad: %w", err)
	}
	if !found {
		newID, idErr := s.idGen.NewID()
		if idErr != nil {
			return squad.Squad{}, fmt.Errorf("generate squad id: %w", idErr)
		}
		sq = squad.Squad{
			ID:          newID,
			UserID:      input.UserID,
			MatchweekID: input.MatchweekID,
			CreatedAt:   now,
		}
	}

	sq.TeamName = strings.TrimSpace(input.TeamName)
	if sq.Formation != input.Formation {
		sq.Formation = input.Formation
		kept := sq.Assignments[:0]
		for _, a := range sq.Assignments {
			if input.Formation.HasSlot(a.Slot) {
				kept = append(kept, a)
			}
		}
		sq.Assignments = kept
	}
	sq.UpdatedAt = now

	if err := s.validateSquad(ctx, sq); err != nil {
		return squad.Squad{}, err
	}

	if err := s.squadRepo.Upsert(ctx, sq); err != nil {
		return squad.Squad{}, fmt.Errorf("store squad: %w", err)
	}
	return sq, nil
}

// AssignPlayer places a player in a formation slot, replacing any
// previous occupant of that slot.
func (s *SquadService) AssignPlayer(ctx context.Context, userID, matchweekID, slot, playerID string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.AssignPlayer")
	defer span.End()

	if userID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if matchweekID == "" || slot == "" || playerID == "" {
		return squad.Squad{}, fmt.Errorf("%w: matchweek id, slot and player id are required", ErrInvalidInput)
	}

	if err := s.requireActiveMatchweek(ctx, matchweekID); err != nil {
		return squad.Squad{}, err
	}

	sq, found, err := s.squadRepo.GetByUserAndMatchweek(ctx, userID, matchweekID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get user squad: %w", err)
	}
	if !found {
		return squad.Squad{}, fmt.Errorf("%w: no squad for matchweek %s", ErrNotFound, matchweekID)
	}

	if !sq.Formation.HasSlot(slot) {
		return squad.Squad{}, fmt.Errorf("%w: %q in %s", squad.ErrUnknownSlot, slot, sq.Formation)
	}

	replaced := false
	for i, a := range sq.Assignments {
		if a.Slot == slot {
			sq.Assignments[i].PlayerID = playerID
			replaced = true
			break
		}
	}
	if !replaced {
		sq.Assignments = append(sq.Assignments, squad.SlotAssignment{Slot: slot, PlayerID: playerID})
	}
	sq.UpdatedAt = s.now().UTC()

	if err := s.validateSquad(ctx, sq); err != nil {
		return squad.Squad{}, err
	}

	if err := s.squadRepo.Upsert(ctx, sq); err != nil {
		return squad.Squad{}, fmt.Errorf("store squad: %w", err)
	}
	return sq, nil
}

// RemovePlayer clears a formation slot.
func (s *SquadService) RemovePlayer(ctx context.Context, userID, matchweekID, slot string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.RemovePlayer")
	defer span.End()

	if userID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user id is required", ErrUnauthorized)
	}
	if matchweekID == "" || slot == "" {
		return squad.Squad{}, fmt.Errorf("%w: matchweek id and slot are required", ErrInvalidInput)
	}

	if err := s.requireActiveMatchweek(ctx, matchweekID); err != nil {
		return squad.Squad{}, err
	}

	sq, found, err := s.squadRepo.GetByUserAndMatchweek(ctx, userID, matchweekID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get user squad: %w", err)
	}
	if !found {
		return squad.Squad{}, fmt.Errorf("%w: no squad for matchweek %s", ErrNotFound, matchweekID)
	}

	kept := sq.Assignments[:0]
	for _, a := range sq.Assignments {
		if a.Slot != slot {
			kept = append(kept, a)
		}
	}
	sq.Assignments = kept
	sq.UpdatedAt = s.now().UTC()

	if err := s.squadRepo.Upsert(ctx, sq); err != nil {
		return squad.Squad{}, fmt.Errorf("store squad: %w", err)
	}
	return sq, nil
}

func (s *SquadService) requireActiveMatchweek(ctx context.Context, matchweekID string) error {
	mw, found, err := s.matchweekRepo.GetByID(ctx, matchweekID)
	if err != nil {
		return fmt.Errorf("get matchweek: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: matchweek %s", ErrNotFound, matchweekID)
	}
	if !mw.IsActive {
		return fmt.Errorf("%w: matchweek %s is closed for edits", ErrInvalidInput, matchweekID)
	}
	return nil
}

func (s *SquadService) validateSquad(ctx context.Context, sq squad.Squad) error {
	players, err := s.playerRepo.GetByIDs(ctx, sq.PlayerIDs())
	if err != nil {
		return fmt.Errorf("resolve squad players: %w", err)
	}
	byID := make(map[string]player.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	limit, err := s.rules.GetTeamPlayerLimit(ctx)
	if err != nil {
		return err
	}

	if err := squad.ValidateAssignments(sq.Formation, sq.Assignments, byID, limit); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
