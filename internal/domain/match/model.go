package match

import (
	"fmt"
	"time"
)

// Status tracks a match through its lifecycle.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusFinished  Status = "finished"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusFinished:  {},
}

// Match is a single fixture between two teams inside a matchweek.
type Match struct {
	ID          string
	MatchweekID string
	HomeTeamID  string
	AwayTeamID  string
	KickoffAt   time.Time
	Status      Status
	HomeScore   int
	AwayScore   int
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.MatchweekID == "" {
		return fmt.Errorf("match matchweek id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match requires both team ids")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match teams must differ")
	}
	if _, ok := AllStatuses[m.Status]; !ok {
		return fmt.Errorf("unknown match status %q", m.Status)
	}
	if m.HomeScore < 0 || m.AwayScore < 0 {
		return fmt.Errorf("match score cannot be negative")
	}

	return nil
}
