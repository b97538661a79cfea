package postgres

import "time"

type scoringRuleTableModel struct {
	StatName        string `db:"stat_name"`
	PointsPerUnit   int64  `db:"points_per_unit"`
	Eligibility     string `db:"eligibility"`
	TeamPlayerLimit int    `db:"team_player_limit"`
}

type weeklyScoreTableModel struct {
	SquadID      string    `db:"squad_public_id"`
	MatchweekID  string    `db:"matchweek_public_id"`
	TotalPoints  int64     `db:"total_points"`
	CalculatedAt time.Time `db:"calculated_at"`
}

type playerWeeklyScoreTableModel struct {
	SquadID     string `db:"squad_public_id"`
	PlayerID    string `db:"player_public_id"`
	MatchweekID string `db:"matchweek_public_id"`
	TotalPoints int64  `db:"total_points"`
}
