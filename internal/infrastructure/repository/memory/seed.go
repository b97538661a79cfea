package memory

import (
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/team"
)

const (
	MatchweekID1 = "mw-2025-01"
	MatchweekID2 = "mw-2025-02"
)

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "team-persija", Name: "Persija Jakarta"},
		{ID: "team-persib", Name: "Persib Bandung"},
		{ID: "team-persebaya", Name: "Persebaya Surabaya"},
		{ID: "team-baliutd", Name: "Bali United"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "gk-01", TeamID: "team-persija", FirstName: "Andritany", LastName: "Ardhiyasa", Position: player.PositionGoalkeeper},
		{ID: "gk-02", TeamID: "team-persib", FirstName: "Teja", LastName: "Paku Alam", Position: player.PositionGoalkeeper},
		{ID: "def-01", TeamID: "team-persija", FirstName: "Hansamu", LastName: "Yama", Position: player.PositionDefender},
		{ID: "def-02", TeamID: "team-persib", FirstName: "Nick", LastName: "Kuipers", Position: player.PositionDefender},
		{ID: "def-03", TeamID: "team-persebaya", FirstName: "Dusan", LastName: "Stevanovic", Position: player.PositionDefender},
		{ID: "def-04", TeamID: "team-baliutd", FirstName: "Ricky", LastName: "Fajrin", Position: player.PositionDefender},
		{ID: "def-05", TeamID: "team-persebaya", FirstName: "Rizky", LastName: "Ridho", Position: player.PositionDefender},
		{ID: "mid-01", TeamID: "team-persija", FirstName: "Maciej", LastName: "Gajos", Position: player.PositionMidfielder},
		{ID: "mid-02", TeamID: "team-persib", FirstName: "Marc", LastName: "Klok", Position: player.PositionMidfielder},
		{ID: "mid-03", TeamID: "team-persebaya", FirstName: "Bruno", LastName: "Moreira", Position: player.PositionMidfielder},
		{ID: "mid-04", TeamID: "team-baliutd", FirstName: "Eber", LastName: "Bessa", Position: player.PositionMidfielder},
		{ID: "mid-05", TeamID: "team-baliutd", FirstName: "Kadek", LastName: "Agung", Position: player.PositionMidfielder},
		{ID: "fwd-01", TeamID: "team-persija", FirstName: "Gustavo", LastName: "Almeida", Position: player.PositionForward},
		{ID: "fwd-02", TeamID: "team-persib", FirstName: "David", LastName: "da Silva", Position: player.PositionForward},
		{ID: "fwd-03", TeamID: "team-persebaya", FirstName: "Flavio", LastName: "Silva", Position: player.PositionForward},
	}
}

func SeedMatchweeks() []matchweek.Matchweek {
	return []matchweek.Matchweek{
		{
			ID:        MatchweekID1,
			Name:      "Matchweek 1",
			StartDate: time.Date(2025, 8, 8, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 8, 11, 0, 0, 0, 0, time.UTC),
			IsActive:  true,
			CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:        MatchweekID2,
			Name:      "Matchweek 2",
			StartDate: time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:          "match-01",
			MatchweekID: MatchweekID1,
			HomeTeamID:  "team-persija",
			AwayTeamID:  "team-persib",
			KickoffAt:   time.Date(2025, 8, 9, 19, 0, 0, 0, time.UTC),
			Status:      match.StatusScheduled,
		},
		{
			ID:          "match-02",
			MatchweekID: MatchweekID1,
			HomeTeamID:  "team-persebaya",
			AwayTeamID:  "team-baliutd",
			KickoffAt:   time.Date(2025, 8, 10, 19, 0, 0, 0, time.UTC),
			Status:      match.StatusScheduled,
		},
		{
			ID:          "match-03",
			MatchweekID: MatchweekID2,
			HomeTeamID:  "team-persib",
			AwayTeamID:  "team-persebaya",
			KickoffAt:   time.Date(2025, 8, 16, 19, 0, 0, 0, time.UTC),
			Status:      match.StatusScheduled,
		},
	}
}
