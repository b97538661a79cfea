package config

import (
	"testing"
	"time"

	"github.com/matchweek/fantasy-api/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr: %q", cfg.HTTPAddr)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}
	if cfg.ScoringWorkers != 8 {
		t.Fatalf("unexpected ScoringWorkers: %d", cfg.ScoringWorkers)
	}
	if cfg.GatekeeperIntrospectPath != "/v1/auth/introspect" {
		t.Fatalf("unexpected GatekeeperIntrospectPath: %q", cfg.GatekeeperIntrospectPath)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORSAllowedOrigins: %v", cfg.CORSAllowedOrigins)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestLoad_GatekeeperCircuitParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GATEKEEPER_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("GATEKEEPER_CIRCUIT_OPEN_TIMEOUT", "45s")
	t.Setenv("GATEKEEPER_CIRCUIT_HALF_OPEN_MAX_REQ", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.GatekeeperCircuitFailureCount != 3 {
		t.Fatalf("unexpected GatekeeperCircuitFailureCount: %d", cfg.GatekeeperCircuitFailureCount)
	}
	if cfg.GatekeeperCircuitOpenTimeout != 45*time.Second {
		t.Fatalf("unexpected GatekeeperCircuitOpenTimeout: %s", cfg.GatekeeperCircuitOpenTimeout)
	}
	if cfg.GatekeeperCircuitHalfOpenReq != 4 {
		t.Fatalf("unexpected GatekeeperCircuitHalfOpenReq: %d", cfg.GatekeeperCircuitHalfOpenReq)
	}
}

func TestLoad_ScoringWorkersMustBePositive(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("SCORING_WORKERS", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for SCORING_WORKERS=0")
	}
}

func TestLoad_InvalidLogLevelFallsBackToInfo(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LOG_LEVEL", "verbose")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
}

func TestSplitCSV(t *testing.T) {
	got := splitCSV(" https://a.example.com , ,https://b.example.com")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Fatalf("unexpected splitCSV result: %v", got)
	}
}
