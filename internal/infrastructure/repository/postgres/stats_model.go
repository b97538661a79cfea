package postgres

import "time"

type statLineTableModel struct {
	ID          int64  `db:"id"`
	PublicID    string `db:"public_id"`
	PlayerID    string `db:"player_public_id"`
	MatchID     string `db:"match_public_id"`
	MatchweekID string `db:"matchweek_public_id"`

	MinutesPlayed          int `db:"minutes_played"`
	Goals                  int `db:"goals"`
	Assists                int `db:"assists"`
	YellowCards            int `db:"yellow_cards"`
	RedCards               int `db:"red_cards"`
	OwnGoals               int `db:"own_goals"`
	PenaltiesWon           int `db:"penalties_won"`
	PenaltiesMissed        int `db:"penalties_missed"`
	PenaltiesConceded      int `db:"penalties_conceded"`
	Saves                  int `db:"saves"`
	PenaltiesSaved         int `db:"penalties_saved"`
	PenaltiesSavedOutfield int `db:"penalties_saved_outfield"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
