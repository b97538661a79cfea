package app

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	_ "github.com/lib/pq"

	"github.com/matchweek/fantasy-api/internal/config"
	"github.com/matchweek/fantasy-api/internal/domain/match"
	"github.com/matchweek/fantasy-api/internal/domain/matchweek"
	"github.com/matchweek/fantasy-api/internal/domain/player"
	"github.com/matchweek/fantasy-api/internal/domain/scoring"
	"github.com/matchweek/fantasy-api/internal/domain/squad"
	"github.com/matchweek/fantasy-api/internal/domain/stats"
	"github.com/matchweek/fantasy-api/internal/domain/team"
	"github.com/matchweek/fantasy-api/internal/infrastructure/account/gatekeeper"
	"github.com/matchweek/fantasy-api/internal/infrastructure/repository/memory"
	"github.com/matchweek/fantasy-api/internal/infrastructure/repository/postgres"
	"github.com/matchweek/fantasy-api/internal/interfaces/httpapi"
	"github.com/matchweek/fantasy-api/internal/platform/cache"
	idgen "github.com/matchweek/fantasy-api/internal/platform/id"
	"github.com/matchweek/fantasy-api/internal/platform/logging"
	"github.com/matchweek/fantasy-api/internal/platform/resilience"
	"github.com/matchweek/fantasy-api/internal/usecase"
)

type repositories struct {
	teams      team.Repository
	players    player.Repository
	matchweeks matchweek.Repository
	matches    match.Repository
	stats      stats.Repository
	squads     squad.Repository
	rules      scoring.RuleRepository
	scores     scoring.ScoreRepository
}

// NewHTTPServer wires repositories, services, and the router into a
// ready-to-run server. With an empty DB_URL it falls back to seeded
// in-memory repositories, which is the local development mode.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, err
	}

	idGen := idgen.NewRandomGenerator()
	ruleCache := cache.NewStore(cfg.CacheTTL)

	teamSvc := usecase.NewTeamService(repos.teams, idGen)
	playerSvc := usecase.NewPlayerService(repos.players, repos.teams, idGen)
	matchweekSvc := usecase.NewMatchweekService(repos.matchweeks, idGen)
	matchSvc := usecase.NewMatchService(repos.matches, repos.matchweeks, idGen)
	statsSvc := usecase.NewStatsService(repos.stats, repos.matches, repos.players, idGen)
	rulesSvc := usecase.NewRulesService(repos.rules, ruleCache)
	squadSvc := usecase.NewSquadService(repos.squads, repos.matchweeks, repos.players, rulesSvc, idGen)
	scoringSvc := usecase.NewScoringService(
		repos.matchweeks,
		repos.matches,
		repos.squads,
		repos.players,
		repos.stats,
		repos.rules,
		repos.scores,
	).WithWorkers(cfg.ScoringWorkers)

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenReq,
		},
		logger,
	)

	handler := httpapi.NewHandler(
		teamSvc,
		playerSvc,
		matchweekSvc,
		matchSvc,
		statsSvc,
		squadSvc,
		rulesSvc,
		scoringSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("using in-memory repositories", "reason", "DB_URL empty")
		return repositories{
			teams:      memory.NewTeamRepository(memory.SeedTeams()),
			players:    memory.NewPlayerRepository(memory.SeedPlayers()),
			matchweeks: memory.NewMatchweekRepository(memory.SeedMatchweeks()),
			matches:    memory.NewMatchRepository(memory.SeedMatches()),
			stats:      memory.NewStatsRepository(nil),
			squads:     memory.NewSquadRepository(nil),
			rules:      memory.NewRuleRepository(),
			scores:     memory.NewScoreRepository(),
		}, nil
	}

	db, err := openDB(cfg)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}

	logger.Info("using postgres repositories", "db_name", dbNameFromURL(cfg.DBURL))
	return repositories{
		teams:      postgres.NewTeamRepository(db),
		players:    postgres.NewPlayerRepository(db),
		matchweeks: postgres.NewMatchweekRepository(db),
		matches:    postgres.NewMatchRepository(db),
		stats:      postgres.NewStatsRepository(db),
		squads:     postgres.NewSquadRepository(db),
		rules:      postgres.NewRuleRepository(db),
		scores:     postgres.NewScoreRepository(db),
	}, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	return db, nil
}
