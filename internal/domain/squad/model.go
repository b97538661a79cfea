package squad

import (
	"fmt"
	"strings"
	"time"
)

// Squad is one user's lineup for one matchweek. A user keeps at most
// one squad per matchweek.
type Squad struct {
	ID          string
	UserID      string
	MatchweekID string
	TeamName    string
	Formation   Formation
	Assignments []SlotAssignment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SlotAssignment places one player in one formation slot.
type SlotAssignment struct {
	Slot     string
	PlayerID string
}

func (s Squad) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("squad user id is required")
	}
	if s.MatchweekID == "" {
		return fmt.Errorf("squad matchweek id is required")
	}
	if strings.TrimSpace(s.TeamName) == "" {
		return fmt.Errorf("squad team name is required")
	}
	if !s.Formation.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownFormation, s.Formation)
	}

	return nil
}

// PlayerIDs returns the ids of every assigned player, in slot order.
func (s Squad) PlayerIDs() []string {
	ids := make([]string, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		ids = append(ids, a.PlayerID)
	}
	return ids
}

// AssignedTo returns the player occupying a slot, if any.
func (s Squad) AssignedTo(slot string) (string, bool) {
	for _, a := range s.Assignments {
		if a.Slot == slot {
			return a.PlayerID, true
		}
	}
	return "", false
}
