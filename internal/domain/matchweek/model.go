package matchweek

import (
	"fmt"
	"strings"
	"time"
)

// Matchweek is a scheduling period grouping several real matches.
// At most one matchweek is active (open for squad edits) at any time;
// closing a matchweek is the scoring engine's final side effect.
type Matchweek struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
}

func (m Matchweek) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("matchweek id is required")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("matchweek name is required")
	}
	if !m.EndDate.IsZero() && !m.StartDate.IsZero() && m.EndDate.Before(m.StartDate) {
		return fmt.Errorf("matchweek end date before start date")
	}

	return nil
}
