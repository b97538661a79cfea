package postgres

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The activation swap must clear the old active row before setting the
// new one: the partial unique index on is_active enforces uniqueness
// per written tuple, so any ordering that writes the second TRUE while
// the first is still live fails with a duplicate-key violation. These
// tests pin the statement sequence with a recording driver.

type stmtRecorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *stmtRecorder) add(call string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call)
}

func (r *stmtRecorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type recordingConnector struct {
	conn *recordingConn
}

func (c *recordingConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *recordingConnector) Driver() driver.Driver                       { return nil }

type recordingConn struct {
	rec          *stmtRecorder
	targetExists bool
}

func (c *recordingConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recordingConn) Close() error { return nil }

func (c *recordingConn) Begin() (driver.Tx, error) {
	c.rec.add("begin")
	return &recordingTx{rec: c.rec}, nil
}

func (c *recordingConn) BeginTx(context.Context, driver.TxOptions) (driver.Tx, error) {
	return c.Begin()
}

func (c *recordingConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.rec.add("query: " + query)
	if strings.Contains(query, "SELECT EXISTS") {
		return &boolRows{value: c.targetExists}, nil
	}
	return nil, errors.New("unexpected query: " + query)
}

func (c *recordingConn) ExecContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Result, error) {
	c.rec.add("exec: " + query)
	return driver.RowsAffected(1), nil
}

type recordingTx struct {
	rec *stmtRecorder
}

func (t *recordingTx) Commit() error {
	t.rec.add("commit")
	return nil
}

func (t *recordingTx) Rollback() error {
	t.rec.add("rollback")
	return nil
}

type boolRows struct {
	value bool
	done  bool
}

func (r *boolRows) Columns() []string { return []string{"exists"} }
func (r *boolRows) Close() error      { return nil }

func (r *boolRows) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}
	r.done = true
	dest[0] = r.value
	return nil
}

func newRecordedRepo(targetExists bool) (*MatchweekRepository, *stmtRecorder) {
	rec := &stmtRecorder{}
	conn := &recordingConn{rec: rec, targetExists: targetExists}
	db := sqlx.NewDb(sql.OpenDB(&recordingConnector{conn: conn}), "postgres")
	return NewMatchweekRepository(db), rec
}

func TestMatchweekRepositoryActivateClearsBeforeSet(t *testing.T) {
	repo, rec := newRecordedRepo(true)

	ok, err := repo.Activate(context.Background(), "mw-2")
	require.NoError(t, err)
	require.True(t, ok)

	var clearIdx, setIdx, commitIdx int
	calls := rec.all()
	for i, call := range calls {
		switch {
		case strings.Contains(call, "is_active = FALSE"):
			clearIdx = i
		case strings.Contains(call, "is_active = TRUE"):
			setIdx = i
		case call == "commit":
			commitIdx = i
		}
	}

	assert.Equal(t, "begin", calls[0])
	assert.Greater(t, clearIdx, 0, "clear statement missing: %v", calls)
	assert.Greater(t, setIdx, clearIdx, "set must run after clear: %v", calls)
	assert.Greater(t, commitIdx, setIdx, "commit must follow the set: %v", calls)
}

func TestMatchweekRepositoryActivateUnknownIDLeavesActiveUntouched(t *testing.T) {
	repo, rec := newRecordedRepo(false)

	ok, err := repo.Activate(context.Background(), "mw-missing")
	require.NoError(t, err)
	require.False(t, ok)

	for _, call := range rec.all() {
		assert.NotContains(t, call, "UPDATE matchweeks", "unknown id must not write: %v", rec.all())
	}
	assert.Contains(t, rec.all(), "rollback")
}
