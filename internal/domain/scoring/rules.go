package scoring

import (
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

// DefaultTeamPlayerLimit is the per-club cap applied until an admin
// changes it.
const DefaultTeamPlayerLimit = 3

// DefaultRuleSet returns the stock scoring configuration.
func DefaultRuleSet() RuleSet {
	rules := []Rule{
		{Stat: stats.MinutesPlayed, PointsPerUnit: 1, Eligibility: EligibilityAll},
		{Stat: stats.Goals, PointsPerUnit: 200, Eligibility: EligibilityAll},
		{Stat: stats.Assists, PointsPerUnit: 150, Eligibility: EligibilityAll},
		{Stat: stats.YellowCards, PointsPerUnit: -100, Eligibility: EligibilityAll},
		{Stat: stats.RedCards, PointsPerUnit: -300, Eligibility: EligibilityAll},
		{Stat: stats.OwnGoals, PointsPerUnit: -200, Eligibility: EligibilityAll},
		{Stat: stats.PenaltiesWon, PointsPerUnit: 100, Eligibility: EligibilityAll},
		{Stat: stats.PenaltiesMissed, PointsPerUnit: -200, Eligibility: EligibilityAll},
		{Stat: stats.PenaltiesConceded, PointsPerUnit: -100, Eligibility: EligibilityAll},
		{Stat: stats.Saves, PointsPerUnit: 50, Eligibility: EligibilityGoalkeeperOnly},
		{Stat: stats.PenaltiesSaved, PointsPerUnit: 200, Eligibility: EligibilityGoalkeeperOnly},
		{Stat: stats.PenaltiesSavedOutfield, PointsPerUnit: 300, Eligibility: EligibilityOutfieldOnly},
	}

	byStat := make(map[stats.StatName]Rule, len(rules))
	for _, r := range rules {
		byStat[r.Stat] = r
	}

	return RuleSet{Rules: byStat, TeamPlayerLimit: DefaultTeamPlayerLimit}
}

// ScoreStatLine totals one player's stat line under the given rule set.
// Stats without a rule, and rules whose eligibility excludes the
// player's position, contribute nothing.
func ScoreStatLine(rs RuleSet, pos player.Position, line stats.StatLine) Points {
	var total Points
	for _, name := range stats.AllStatNames {
		rule, ok := rs.RuleFor(name)
		if !ok {
			continue
		}
		if !EligibilityAllows(rule.Eligibility, pos) {
			continue
		}
		count, err := line.Value(name)
		if err != nil {
			continue
		}
		total += Points(count) * rule.PointsPerUnit
	}

	return total
}
