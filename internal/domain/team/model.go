package team

import (
	"fmt"
	"strings"
)

// Team is a real-world club whose players can be drafted into fantasy
// squads.
type Team struct {
	ID   string
	Name string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
