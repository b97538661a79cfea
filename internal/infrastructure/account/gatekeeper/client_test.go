package gatekeeper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"

	"github.com/matchweek/fantasy-api/internal/platform/logging"
	"github.com/matchweek/fantasy-api/internal/platform/resilience"
	"github.com/matchweek/fantasy-api/internal/usecase"
)

func discardLogger() *logging.Logger {
	return logging.NewNop()
}

func TestClientVerifyAccessToken_ParsesPrincipal(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Fatalf("unexpected method: %s", r.Method)
		}
		if r.URL.Path != "/v1/auth/introspect" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}

		var req map[string]string
		if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request body: %v", err)
		}
		if req["token"] != "token-abc" {
			t.Fatalf("unexpected token value: %s", req["token"])
		}

		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{
			"active":   true,
			"user_id":  "user-123",
			"nickname": "Sam",
			"is_admin": true,
		})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect",
		resilience.DefaultCircuitBreakerConfig(), discardLogger())

	principal, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if err != nil {
		t.Fatalf("VerifyAccessToken error: %v", err)
	}
	if principal.UserID != "user-123" || principal.Nickname != "Sam" || !principal.IsAdmin {
		t.Fatalf("unexpected principal: %+v", principal)
	}
}

func TestClientVerifyAccessToken_InactiveToken(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = sonic.ConfigDefault.NewEncoder(w).Encode(map[string]any{"active": false})
	}))
	defer srv.Close()

	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect",
		resilience.DefaultCircuitBreakerConfig(), discardLogger())

	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("unexpected error: got=%v want=ErrUnauthorized", err)
	}
}

func TestClientVerifyAccessToken_EmptyToken(t *testing.T) {
	t.Parallel()

	client := NewClient(nil, "http://localhost:0", "/v1/auth/introspect",
		resilience.DefaultCircuitBreakerConfig(), discardLogger())

	_, err := client.VerifyAccessToken(context.Background(), "   ")
	if !errors.Is(err, usecase.ErrUnauthorized) {
		t.Fatalf("unexpected error: got=%v want=ErrUnauthorized", err)
	}
}

func TestClientVerifyAccessToken_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}
	client := NewClient(srv.Client(), srv.URL, "/v1/auth/introspect", cfg, discardLogger())

	for i := 0; i < 2; i++ {
		if _, err := client.VerifyAccessToken(context.Background(), "token-abc"); err == nil {
			t.Fatal("expected failure from 500 response")
		}
	}

	// Breaker is open now: the call fails fast without reaching the
	// backend.
	_, err := client.VerifyAccessToken(context.Background(), "token-abc")
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("unexpected error: got=%v want=ErrDependencyUnavailable", err)
	}
}
