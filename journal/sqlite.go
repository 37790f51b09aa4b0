package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, started, finished, scanned, no_data, errors, matches, notified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Started, r.Finished, r.Scanned, r.NoData, r.Errors, r.Matches, r.Notified,
	)
	return err
}

func (j *SQLite) RecordMatch(m MatchRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO matches
		(run_id, symbol, kind, time, open, high, low, close, range_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.Symbol, m.Kind, m.Time,
		m.Open.String(), m.High.String(), m.Low.String(), m.Close.String(), m.RangePct.String(),
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
