package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func sampleMatch() MatchRecord {
	return MatchRecord{
		RunID:    "01JWQ8V0000000000000000000",
		Symbol:   "SBIN",
		Kind:     "Gravestone Doji",
		Time:     time.Date(2025, 6, 2, 3, 45, 0, 0, time.UTC),
		Open:     decimal.RequireFromString("812.50"),
		High:     decimal.RequireFromString("815.75"),
		Low:      decimal.RequireFromString("812.40"),
		Close:    decimal.RequireFromString("812.55"),
		RangePct: decimal.RequireFromString("0.4123"),
	}
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('runs','matches')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["matches"])
}

func TestSQLiteRecordRun(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	rec := RunRecord{
		RunID:    "R1",
		Started:  time.Date(2025, 6, 2, 3, 50, 0, 0, time.UTC),
		Finished: time.Date(2025, 6, 2, 3, 53, 10, 0, time.UTC),
		Scanned:  216,
		NoData:   4,
		Errors:   1,
		Matches:  2,
		Notified: true,
	}
	require.NoError(t, j.RecordRun(rec))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		runID           string
		started, done   time.Time
		scanned, noData int
		errs, matches   int
		notified        bool
	)
	err = db.QueryRow(`
		SELECT run_id, started, finished, scanned, no_data, errors, matches, notified
		FROM runs LIMIT 1`).Scan(&runID, &started, &done, &scanned, &noData, &errs, &matches, &notified)
	require.NoError(t, err)

	assert.Equal(t, "R1", runID)
	assert.True(t, started.Equal(rec.Started))
	assert.True(t, done.Equal(rec.Finished))
	assert.Equal(t, 216, scanned)
	assert.Equal(t, 4, noData)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, matches)
	assert.True(t, notified)
}

func TestSQLiteRecordMatch(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)

	rec := sampleMatch()
	require.NoError(t, j.RecordMatch(rec))
	// same symbol twice in a run is rejected
	assert.Error(t, j.RecordMatch(rec))
	require.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var symbol, kind, open, high, rangePct string
	err = db.QueryRow(`SELECT symbol, kind, open, high, range_pct FROM matches LIMIT 1`).
		Scan(&symbol, &kind, &open, &high, &rangePct)
	require.NoError(t, err)

	assert.Equal(t, "SBIN", symbol)
	assert.Equal(t, "Gravestone Doji", kind)
	assert.Equal(t, "812.5", open)
	assert.Equal(t, "815.75", high)
	assert.Equal(t, "0.4123", rangePct)
}
