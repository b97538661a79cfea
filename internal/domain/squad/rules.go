package squad

import (
	"errors"
	"fmt"

	"github.com/matchweek/fantasy-api/internal/domain/player"
)

var (
	ErrUnknownFormation       = errors.New("unknown formation")
	ErrUnknownSlot            = errors.New("slot does not belong to formation")
	ErrSlotPositionMismatch   = errors.New("player position does not match slot")
	ErrDuplicatePlayerInSquad = errors.New("player already assigned to another slot")
	ErrExceededTeamLimit      = errors.New("too many players from the same club")
)

// ValidateAssignments checks a full set of slot assignments against a
// formation and the per-club player limit. Every assigned player must
// be present in playerByID. Validation runs when a squad is edited;
// scoring trusts what was stored.
func ValidateAssignments(formation Formation, assignments []SlotAssignment, playerByID map[string]player.Player, teamLimit int) error {
	if !formation.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormation, formation)
	}

	seen := make(map[string]string, len(assignments))
	perClub := make(map[string]int)
	for _, a := range assignments {
		if !formation.HasSlot(a.Slot) {
			return fmt.Errorf("%w: %q in %s", ErrUnknownSlot, a.Slot, formation)
		}

		p, ok := playerByID[a.PlayerID]
		if !ok {
			return fmt.Errorf("unknown player %q in slot %s", a.PlayerID, a.Slot)
		}

		want, _ := SlotPosition(a.Slot)
		if p.Position != want {
			return fmt.Errorf("%w: slot %s needs %s, player %s is %s", ErrSlotPositionMismatch, a.Slot, want, p.ID, p.Position)
		}

		if prev, dup := seen[a.PlayerID]; dup {
			return fmt.Errorf("%w: player %s in slots %s and %s", ErrDuplicatePlayerInSquad, a.PlayerID, prev, a.Slot)
		}
		seen[a.PlayerID] = a.Slot

		perClub[p.TeamID]++
		if perClub[p.TeamID] > teamLimit {
			return fmt.Errorf("%w: club %s exceeds limit %d", ErrExceededTeamLimit, p.TeamID, teamLimit)
		}
	}

	return nil
}
