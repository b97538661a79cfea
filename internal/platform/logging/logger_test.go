package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerWritesFields(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Info("score computed", "matchweek_id", "mw-1", "squads", 4)

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "score computed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "mw-1", fields["matchweek_id"])
	assert.EqualValues(t, 4, fields["squads"])
}

func TestLoggerWith(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "scoring")

	logger.Warn("rule cache stale")

	entries := recorded.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "scoring", entries[0].ContextMap()["component"])
}

func TestSetMirrorReceivesRecords(t *testing.T) {
	t.Cleanup(func() { SetMirror(nil) })

	type record struct {
		level Level
		msg   string
		args  []any
	}
	var got []record
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, record{level: level, msg: msg, args: args})
	})

	logger := NewNop()
	logger.Error("introspect failed", "status", 502)
	logger.InfoContext(context.Background(), "http_request", "http_path", "/v1/matchweeks")

	require.Len(t, got, 2)
	assert.Equal(t, LevelError, got[0].level)
	assert.Equal(t, "introspect failed", got[0].msg)
	assert.Equal(t, []any{"status", 502}, got[0].args)
	assert.Equal(t, "http_request", got[1].msg)
}

func TestSetMirrorNilDisables(t *testing.T) {
	called := false
	SetMirror(func(context.Context, Level, string, ...any) { called = true })
	SetMirror(nil)

	NewNop().Info("ignored")

	assert.False(t, called)
}

func TestDefaultNeverNil(t *testing.T) {
	require.NotNil(t, Default())

	SetDefault(nil)
	require.NotNil(t, Default())
}
