package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	"github.com/matchweek/fantasy-api/internal/platform/cache"
)

const ruleSetCacheKey = "scoring:ruleset"

// RulesService exposes the scoring configuration. Reads go through a
// short-TTL cache; every write invalidates it.
type RulesService struct {
	ruleRepo scoring.RuleRepository
	store    *cache.Store
}

func NewRulesService(ruleRepo scoring.RuleRepository, store *cache.Store) *RulesService {
	return &RulesService{
		ruleRepo: ruleRepo,
		store:    store,
	}
}

func (s *RulesService) GetRuleSet(ctx context.Context) (scoring.RuleSet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.GetRuleSet")
	defer span.End()

	value, err := s.store.GetOrLoad(ctx, ruleSetCacheKey, func(ctx context.Context) (any, error) {
		rs, loadErr := s.ruleRepo.GetRuleSet(ctx)
		if loadErr != nil {
			return nil, fmt.Errorf("load rule set: %w", loadErr)
		}
		return rs, nil
	})
	if err != nil {
		return scoring.RuleSet{}, err
	}

	rs, ok := value.(scoring.RuleSet)
	if !ok {
		return scoring.RuleSet{}, fmt.Errorf("unexpected cached rule set type %T", value)
	}
	return rs, nil
}

// ListRules returns the configured rules in stat presentation order.
func (s *RulesService) ListRules(ctx context.Context) ([]scoring.Rule, error) {
	rs, err := s.GetRuleSet(ctx)
	if err != nil {
		return nil, err
	}

	rules := make([]scoring.Rule, 0, len(rs.Rules))
	for _, r := range rs.Rules {
		rules = append(rules, r)
	}

	order := make(map[stats.StatName]int, len(stats.AllStatNames))
	for i, name := range stats.AllStatNames {
		order[name] = i
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return order[rules[i].Stat] < order[rules[j].Stat]
	})

	return rules, nil
}

func (s *RulesService) GetTeamPlayerLimit(ctx context.Context) (int, error) {
	rs, err := s.GetRuleSet(ctx)
	if err != nil {
		return 0, err
	}
	return rs.TeamPlayerLimit, nil
}

func (s *RulesService) UpdateRulePoints(ctx context.Context, stat stats.StatName, points scoring.Points) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.UpdateRulePoints")
	defer span.End()

	if !stat.Valid() {
		return fmt.Errorf("%w: unknown stat name %q", ErrInvalidInput, stat)
	}

	if err := s.ruleRepo.UpdateRulePoints(ctx, stat, points); err != nil {
		return fmt.Errorf("update rule points: %w", err)
	}
	s.store.Delete(ctx, ruleSetCacheKey)
	return nil
}

func (s *RulesService) UpdateTeamPlayerLimit(ctx context.Context, limit int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.UpdateTeamPlayerLimit")
	defer span.End()

	if limit < scoring.MinTeamPlayerLimit || limit > scoring.MaxTeamPlayerLimit {
		return fmt.Errorf("%w: team player limit %d out of range [%d,%d]",
			ErrInvalidInput, limit, scoring.MinTeamPlayerLimit, scoring.MaxTeamPlayerLimit)
	}

	if err := s.ruleRepo.UpdateTeamPlayerLimit(ctx, limit); err != nil {
		return fmt.Errorf("update team player limit: %w", err)
	}
	s.store.Delete(ctx, ruleSetCacheKey)
	return nil
}

func (s *RulesService) ResetDefaults(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RulesService.ResetDefaults")
	defer span.End()

	if err := s.ruleRepo.ResetDefaults(ctx); err != nil {
		return fmt.Errorf("reset rule defaults: %w", err)
	}
	s.store.Delete(ctx, ruleSetCacheKey)
	return nil
}
