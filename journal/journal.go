// Package journal archives scan runs and the matches they reported.
package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RunRecord summarises one scan.
type RunRecord struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Scanned  int
	NoData   int
	Errors   int
	Matches  int
	Notified bool
}

// MatchRecord is one reported candle.
type MatchRecord struct {
	RunID    string
	Symbol   string
	Kind     string
	Time     time.Time
	Open     decimal.Decimal
	High     decimal.Decimal
	Low      decimal.Decimal
	Close    decimal.Decimal
	RangePct decimal.Decimal
}

type Journal interface {
	RecordRun(RunRecord) error
	RecordMatch(MatchRecord) error
	Close() error
}

// Open picks a journal from a path: *.csv prefixes writes to <base>_runs.csv
// and <base>_matches.csv, anything else is a SQLite database.
func Open(path string) (Journal, error) {
	if path == "" {
		return nil, fmt.Errorf("journal: empty path")
	}
	if base, ok := strings.CutSuffix(path, ".csv"); ok {
		return NewCSV(base+"_runs.csv", base+"_matches.csv")
	}
	return NewSQLite(path)
}
