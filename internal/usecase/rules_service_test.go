package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	"github.com/matchweek/fantasy-api/internal/infrastructure/repository/memory"
	"github.com/matchweek/fantasy-api/internal/platform/cache"
)

func newRulesService() *RulesService {
	return NewRulesService(memory.NewRuleRepository(), cache.NewStore(time.Minute))
}

func TestRulesService_ListRules_PresentationOrder(t *testing.T) {
	t.Parallel()

	service := newRulesService()

	rules, err := service.ListRules(context.Background())
	if err != nil {
		t.Fatalf("ListRules error: %v", err)
	}
	if len(rules) != len(stats.AllStatNames) {
		t.Fatalf("unexpected rule count: got=%d want=%d", len(rules), len(stats.AllStatNames))
	}
	for i, name := range stats.AllStatNames {
		if rules[i].Stat != name {
			t.Fatalf("rule[%d] = %s, want %s", i, rules[i].Stat, name)
		}
	}
}

func TestRulesService_UpdateRulePoints_InvalidatesCache(t *testing.T) {
	t.Parallel()

	service := newRulesService()
	ctx := context.Background()

	// Prime the cache.
	if _, err := service.GetRuleSet(ctx); err != nil {
		t.Fatalf("GetRuleSet error: %v", err)
	}

	if err := service.UpdateRulePoints(ctx, stats.Goals, scoring.PointsFromFloat(5)); err != nil {
		t.Fatalf("UpdateRulePoints error: %v", err)
	}

	rs, err := service.GetRuleSet(ctx)
	if err != nil {
		t.Fatalf("GetRuleSet error: %v", err)
	}
	got, _ := rs.PointsFor(stats.Goals)
	if got != 500 {
		t.Fatalf("goals points after update: got=%s want=5.00", got)
	}
}

func TestRulesService_UpdateRulePoints_UnknownStat(t *testing.T) {
	t.Parallel()

	service := newRulesService()

	err := service.UpdateRulePoints(context.Background(), stats.StatName("corners_won"), 100)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("unexpected error: got=%v want=ErrInvalidInput", err)
	}
}

func TestRulesService_UpdateTeamPlayerLimit_Bounds(t *testing.T) {
	t.Parallel()

	service := newRulesService()
	ctx := context.Background()

	for _, limit := range []int{0, -1, 12} {
		if err := service.UpdateTeamPlayerLimit(ctx, limit); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("limit %d accepted: err=%v", limit, err)
		}
	}

	for _, limit := range []int{1, 11} {
		if err := service.UpdateTeamPlayerLimit(ctx, limit); err != nil {
			t.Fatalf("limit %d rejected: %v", limit, err)
		}
		got, err := service.GetTeamPlayerLimit(ctx)
		if err != nil {
			t.Fatalf("GetTeamPlayerLimit error: %v", err)
		}
		if got != limit {
			t.Fatalf("stored limit: got=%d want=%d", got, limit)
		}
	}
}

func TestRulesService_ResetDefaults(t *testing.T) {
	t.Parallel()

	service := newRulesService()
	ctx := context.Background()

	if err := service.UpdateRulePoints(ctx, stats.Goals, 999); err != nil {
		t.Fatalf("UpdateRulePoints error: %v", err)
	}
	if err := service.UpdateTeamPlayerLimit(ctx, 5); err != nil {
		t.Fatalf("UpdateTeamPlayerLimit error: %v", err)
	}

	if err := service.ResetDefaults(ctx); err != nil {
		t.Fatalf("ResetDefaults error: %v", err)
	}

	rs, err := service.GetRuleSet(ctx)
	if err != nil {
		t.Fatalf("GetRuleSet error: %v", err)
	}
	if got, _ := rs.PointsFor(stats.Goals); got != 200 {
		t.Fatalf("goals points after reset: got=%s want=2.00", got)
	}
	if rs.TeamPlayerLimit != scoring.DefaultTeamPlayerLimit {
		t.Fatalf("team limit after reset: got=%d want=%d", rs.TeamPlayerLimit, scoring.DefaultTeamPlayerLimit)
	}
}
