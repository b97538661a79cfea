package player

import (
	"fmt"
	"strings"
)

// Position represents football position categories used across squad
// building and scoring eligibility.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// IsGoalkeeper is the single source of truth for goalkeeper-restricted
// scoring rules.
func (p Position) IsGoalkeeper() bool {
	return p == PositionGoalkeeper
}

// Player is a real-world athlete registered to exactly one real team.
type Player struct {
	ID        string
	TeamID    string
	FirstName string
	LastName  string
	Position  Position
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.TeamID == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player last name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
