package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

// Points is a fixed-point point total in centipoints: 2.00 points is
// stored as 200. Integer arithmetic keeps squad totals exactly equal to
// the sum of their player totals; floats are for display only.
type Points int64

// PointsFromFloat converts a decimal point value (as configured by an
// admin) to centipoints, rounding to the nearest hundredth.
func PointsFromFloat(f float64) Points {
	return Points(math.Round(f * 100))
}

func (p Points) Float64() float64 {
	return float64(p) / 100
}

func (p Points) String() string {
	return fmt.Sprintf("%.2f", p.Float64())
}

// Eligibility restricts a rule to a subset of positions. A rule is
// either open to everyone, goalkeeper-only, or outfield-only; the three
// variants are mutually exclusive by construction.
type Eligibility string

const (
	EligibilityAll            Eligibility = "all"
	EligibilityGoalkeeperOnly Eligibility = "goalkeeper_only"
	EligibilityOutfieldOnly   Eligibility = "outfield_only"
)

var AllEligibilities = map[Eligibility]struct{}{
	EligibilityAll:            {},
	EligibilityGoalkeeperOnly: {},
	EligibilityOutfieldOnly:   {},
}

// EligibilityAllows reports whether a rule with the given eligibility
// applies to a player in the given position.
func EligibilityAllows(e Eligibility, pos player.Position) bool {
	switch e {
	case EligibilityGoalkeeperOnly:
		return pos.IsGoalkeeper()
	case EligibilityOutfieldOnly:
		return !pos.IsGoalkeeper()
	default:
		return true
	}
}

// Rule awards PointsPerUnit for every unit of Stat a player records,
// provided the player's position passes the rule's eligibility.
type Rule struct {
	Stat          stats.StatName
	PointsPerUnit Points
	Eligibility   Eligibility
}

func (r Rule) Validate() error {
	if !r.Stat.Valid() {
		return fmt.Errorf("unknown stat name %q", r.Stat)
	}
	if _, ok := AllEligibilities[r.Eligibility]; !ok {
		return fmt.Errorf("unknown eligibility %q", r.Eligibility)
	}

	return nil
}

// TeamPlayerLimit bounds; a squad may field at most TeamPlayerLimit
// players from the same real club.
const (
	MinTeamPlayerLimit = 1
	MaxTeamPlayerLimit = 11
)

// RuleSet is the full scoring configuration: exactly one rule per stat
// plus the shared per-club player limit.
type RuleSet struct {
	Rules           map[stats.StatName]Rule
	TeamPlayerLimit int
}

// PointsFor returns the points-per-unit for a stat, if a rule exists
// for it.
func (rs RuleSet) PointsFor(name stats.StatName) (Points, bool) {
	r, ok := rs.Rules[name]
	if !ok {
		return 0, false
	}
	return r.PointsPerUnit, true
}

// RuleFor returns the full rule for a stat.
func (rs RuleSet) RuleFor(name stats.StatName) (Rule, bool) {
	r, ok := rs.Rules[name]
	return r, ok
}

func (rs RuleSet) Validate() error {
	if rs.TeamPlayerLimit < MinTeamPlayerLimit || rs.TeamPlayerLimit > MaxTeamPlayerLimit {
		return fmt.Errorf("team player limit %d out of range [%d,%d]", rs.TeamPlayerLimit, MinTeamPlayerLimit, MaxTeamPlayerLimit)
	}
	for name, r := range rs.Rules {
		if name != r.Stat {
			return fmt.Errorf("rule keyed %q carries stat %q", name, r.Stat)
		}
		if err := r.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// WeeklyScore is a squad's total for one matchweek, overwritten in
// place on recomputation.
type WeeklyScore struct {
	SquadID      string
	MatchweekID  string
	TotalPoints  Points
	CalculatedAt time.Time
}

// PlayerWeeklyScore is one squad player's contribution to a weekly
// score.
type PlayerWeeklyScore struct {
	SquadID     string
	PlayerID    string
	MatchweekID string
	TotalPoints Points
}
