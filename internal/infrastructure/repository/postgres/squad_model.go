package postgres

import "time"

type squadTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	UserID      string    `db:"user_id"`
	MatchweekID string    `db:"matchweek_public_id"`
	TeamName    string    `db:"team_name"`
	Formation   string    `db:"formation"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type squadAssignmentTableModel struct {
	SquadID  string `db:"squad_public_id"`
	Slot     string `db:"slot"`
	PlayerID string `db:"player_public_id"`
}
