package scoring

import (
	"testing"

	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
)

func TestDefaultRuleSetCoversEveryStat(t *testing.T) {
	rs := DefaultRuleSet()

	if err := rs.Validate(); err != nil {
		t.Fatalf("Validate() = %v", err)
	}
	if rs.TeamPlayerLimit != 3 {
		t.Fatalf("TeamPlayerLimit = %d, want 3", rs.TeamPlayerLimit)
	}
	for _, name := range stats.AllStatNames {
		if _, ok := rs.RuleFor(name); !ok {
			t.Fatalf("no default rule for %s", name)
		}
	}
	if len(rs.Rules) != len(stats.AllStatNames) {
		t.Fatalf("len(Rules) = %d, want %d", len(rs.Rules), len(stats.AllStatNames))
	}
}

func TestEligibilityPartition(t *testing.T) {
	outfield := []player.Position{player.PositionDefender, player.PositionMidfielder, player.PositionForward}

	for _, pos := range outfield {
		if EligibilityAllows(EligibilityGoalkeeperOnly, pos) {
			t.Fatalf("goalkeeper-only rule allowed %s", pos)
		}
		if !EligibilityAllows(EligibilityOutfieldOnly, pos) {
			t.Fatalf("outfield-only rule rejected %s", pos)
		}
		if !EligibilityAllows(EligibilityAll, pos) {
			t.Fatalf("open rule rejected %s", pos)
		}
	}

	gk := player.PositionGoalkeeper
	if !EligibilityAllows(EligibilityGoalkeeperOnly, gk) {
		t.Fatal("goalkeeper-only rule rejected goalkeeper")
	}
	if EligibilityAllows(EligibilityOutfieldOnly, gk) {
		t.Fatal("outfield-only rule allowed goalkeeper")
	}
	if !EligibilityAllows(EligibilityAll, gk) {
		t.Fatal("open rule rejected goalkeeper")
	}
}

func TestScoreStatLineForward(t *testing.T) {
	rs := DefaultRuleSet()

	line := stats.StatLine{
		PlayerID:      "p1",
		MatchID:       "m1",
		MatchweekID:   "mw1",
		MinutesPlayed: 90,
		Goals:         2,
		Assists:       1,
		YellowCards:   1,
	}

	got := ScoreStatLine(rs, player.PositionForward, line)

	// 90*0.01 + 2*2.00 + 1*1.50 - 1.00 = 5.40
	if want := Points(540); got != want {
		t.Fatalf("ScoreStatLine = %s, want %s", got, want)
	}
}

func TestScoreStatLineGoalkeeperStats(t *testing.T) {
	rs := DefaultRuleSet()

	line := stats.StatLine{
		PlayerID:       "p1",
		MatchID:        "m1",
		MatchweekID:    "mw1",
		MinutesPlayed:  90,
		Saves:          4,
		PenaltiesSaved: 1,
	}

	gk := ScoreStatLine(rs, player.PositionGoalkeeper, line)
	// 90*0.01 + 4*0.50 + 1*2.00 = 4.90
	if want := Points(490); gk != want {
		t.Fatalf("goalkeeper total = %s, want %s", gk, want)
	}

	// The same line scored for a defender drops the goalkeeper-only
	// stats entirely.
	def := ScoreStatLine(rs, player.PositionDefender, line)
	if want := Points(90); def != want {
		t.Fatalf("defender total = %s, want %s", def, want)
	}
}

func TestScoreStatLineCanGoNegative(t *testing.T) {
	rs := DefaultRuleSet()

	line := stats.StatLine{
		PlayerID:      "p1",
		MatchID:       "m1",
		MatchweekID:   "mw1",
		MinutesPlayed: 30,
		RedCards:      1,
		OwnGoals:      1,
	}

	got := ScoreStatLine(rs, player.PositionMidfielder, line)
	// 30*0.01 - 3.00 - 2.00 = -4.70
	if want := Points(-470); got != want {
		t.Fatalf("ScoreStatLine = %s, want %s", got, want)
	}
}

func TestScoreStatLineZeroLine(t *testing.T) {
	rs := DefaultRuleSet()

	line := stats.StatLine{PlayerID: "p1", MatchID: "m1", MatchweekID: "mw1"}
	if got := ScoreStatLine(rs, player.PositionForward, line); got != 0 {
		t.Fatalf("ScoreStatLine on empty line = %s, want 0.00", got)
	}
}

func TestPointsFromFloat(t *testing.T) {
	if got := PointsFromFloat(2.00); got != 200 {
		t.Fatalf("PointsFromFloat(2.00) = %d, want 200", got)
	}
	if got := PointsFromFloat(-1.5); got != -150 {
		t.Fatalf("PointsFromFloat(-1.5) = %d, want -150", got)
	}
	if got := PointsFromFloat(0.01); got != 1 {
		t.Fatalf("PointsFromFloat(0.01) = %d, want 1", got)
	}
	if s := Points(-470).String(); s != "-4.70" {
		t.Fatalf("String() = %q, want -4.70", s)
	}
}
