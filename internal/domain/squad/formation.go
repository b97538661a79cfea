package squad

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/matchweek/fantasy-api/internal/domain/player"
)

// Formation is a tactical scheme naming defender/midfielder/forward
// counts. The set is closed; slot labels derive from the scheme.
type Formation string

const (
	Formation442 Formation = "4-4-2"
	Formation451 Formation = "4-5-1"
	Formation433 Formation = "4-3-3"
	Formation532 Formation = "5-3-2"
	Formation541 Formation = "5-4-1"
	Formation343 Formation = "3-4-3"
	Formation352 Formation = "3-5-2"
)

// AllFormations lists every playable scheme.
var AllFormations = []Formation{
	Formation442,
	Formation451,
	Formation433,
	Formation532,
	Formation541,
	Formation343,
	Formation352,
}

type formationShape struct {
	defenders   int
	midfielders int
	forwards    int
}

var formationShapes = map[Formation]formationShape{
	Formation442: {4, 4, 2},
	Formation451: {4, 5, 1},
	Formation433: {4, 3, 3},
	Formation532: {5, 3, 2},
	Formation541: {5, 4, 1},
	Formation343: {3, 4, 3},
	Formation352: {3, 5, 2},
}

func (f Formation) Valid() bool {
	_, ok := formationShapes[f]
	return ok
}

// Slots returns the ordered slot labels for the formation: GK, then
// DEF1..n, MID1..n, FWD1..n.
func (f Formation) Slots() []string {
	shape, ok := formationShapes[f]
	if !ok {
		return nil
	}

	slots := make([]string, 0, 11)
	slots = append(slots, "GK")
	for i := 1; i <= shape.defenders; i++ {
		slots = append(slots, fmt.Sprintf("DEF%d", i))
	}
	for i := 1; i <= shape.midfielders; i++ {
		slots = append(slots, fmt.Sprintf("MID%d", i))
	}
	for i := 1; i <= shape.forwards; i++ {
		slots = append(slots, fmt.Sprintf("FWD%d", i))
	}

	return slots
}

// HasSlot reports whether the label names a slot of this formation.
func (f Formation) HasSlot(label string) bool {
	shape, ok := formationShapes[f]
	if !ok {
		return false
	}
	if label == "GK" {
		return true
	}

	prefix, limit := "", 0
	switch {
	case strings.HasPrefix(label, "DEF"):
		prefix, limit = "DEF", shape.defenders
	case strings.HasPrefix(label, "MID"):
		prefix, limit = "MID", shape.midfielders
	case strings.HasPrefix(label, "FWD"):
		prefix, limit = "FWD", shape.forwards
	default:
		return false
	}

	n, err := strconv.Atoi(strings.TrimPrefix(label, prefix))
	if err != nil {
		return false
	}
	return n >= 1 && n <= limit
}

// SlotPosition maps a slot label to the player position it requires.
func SlotPosition(label string) (player.Position, bool) {
	switch {
	case label == "GK":
		return player.PositionGoalkeeper, true
	case strings.HasPrefix(label, "DEF"):
		return player.PositionDefender, true
	case strings.HasPrefix(label, "MID"):
		return player.PositionMidfielder, true
	case strings.HasPrefix(label, "FWD"):
		return player.PositionForward, true
	default:
		return "", false
	}
}
