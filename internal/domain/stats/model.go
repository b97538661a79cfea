package stats

import "fmt"

// StatName identifies one statistic recorded for a player in a match.
// The set is closed: scoring rules and stat lines both key off it, so a
// name outside this list is rejected at the edge rather than silently
// scored as zero.
type StatName string

const (
	MinutesPlayed           StatName = "minutes_played"
	Goals                   StatName = "goals"
	Assists                 StatName = "assists"
	YellowCards             StatName = "yellow_cards"
	RedCards                StatName = "red_cards"
	OwnGoals                StatName = "own_goals"
	PenaltiesWon            StatName = "penalties_won"
	PenaltiesMissed         StatName = "penalties_missed"
	PenaltiesConceded       StatName = "penalties_conceded"
	Saves                   StatName = "saves"
	PenaltiesSaved          StatName = "penalties_saved"
	PenaltiesSavedOutfield  StatName = "penalties_saved_outfield"
)

// AllStatNames lists every recordable statistic, in presentation order.
var AllStatNames = []StatName{
	MinutesPlayed,
	Goals,
	Assists,
	YellowCards,
	RedCards,
	OwnGoals,
	PenaltiesWon,
	PenaltiesMissed,
	PenaltiesConceded,
	Saves,
	PenaltiesSaved,
	PenaltiesSavedOutfield,
}

var validStatNames = func() map[StatName]struct{} {
	m := make(map[StatName]struct{}, len(AllStatNames))
	for _, n := range AllStatNames {
		m[n] = struct{}{}
	}
	return m
}()

func (n StatName) Valid() bool {
	_, ok := validStatNames[n]
	return ok
}

// StatLine holds every statistic a player recorded in one match. Fields
// left unset mean the player recorded zero of that statistic, never
// "unknown": a stored stat line asserts a complete observation.
type StatLine struct {
	ID          string
	PlayerID    string
	MatchID     string
	MatchweekID string

	MinutesPlayed          int
	Goals                  int
	Assists                int
	YellowCards            int
	RedCards               int
	OwnGoals               int
	PenaltiesWon           int
	PenaltiesMissed        int
	PenaltiesConceded      int
	Saves                  int
	PenaltiesSaved         int
	PenaltiesSavedOutfield int
}

// Value returns the recorded count for the named statistic. Unknown
// names return an error so a misspelled rule can never score as zero.
func (l StatLine) Value(name StatName) (int, error) {
	switch name {
	case MinutesPlayed:
		return l.MinutesPlayed, nil
	case Goals:
		return l.Goals, nil
	case Assists:
		return l.Assists, nil
	case YellowCards:
		return l.YellowCards, nil
	case RedCards:
		return l.RedCards, nil
	case OwnGoals:
		return l.OwnGoals, nil
	case PenaltiesWon:
		return l.PenaltiesWon, nil
	case PenaltiesMissed:
		return l.PenaltiesMissed, nil
	case PenaltiesConceded:
		return l.PenaltiesConceded, nil
	case Saves:
		return l.Saves, nil
	case PenaltiesSaved:
		return l.PenaltiesSaved, nil
	case PenaltiesSavedOutfield:
		return l.PenaltiesSavedOutfield, nil
	default:
		return 0, fmt.Errorf("unknown stat name %q", name)
	}
}

// Played reports whether the player took part in the match at all.
func (l StatLine) Played() bool {
	return l.MinutesPlayed > 0
}

func (l StatLine) Validate() error {
	if l.PlayerID == "" {
		return fmt.Errorf("stat line player id is required")
	}
	if l.MatchID == "" {
		return fmt.Errorf("stat line match id is required")
	}
	if l.MatchweekID == "" {
		return fmt.Errorf("stat line matchweek id is required")
	}
	for _, name := range AllStatNames {
		v, err := l.Value(name)
		if err != nil {
			return err
		}
		if v < 0 {
			return fmt.Errorf("stat %s cannot be negative", name)
		}
	}
	if l.MinutesPlayed > 120 {
		return fmt.Errorf("minutes played cannot exceed 120")
	}

	return nil
}
