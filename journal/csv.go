package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

type CSV struct {
	runs    *csv.Writer
	matches *csv.Writer
	rf, mf  *os.File
}

var (
	runsHeader    = []string{"run_id", "started", "finished", "scanned", "no_data", "errors", "matches", "notified"}
	matchesHeader = []string{"run_id", "symbol", "kind", "time", "open", "high", "low", "close", "range_pct"}
)

// NewCSV appends to the two files, writing headers to files that are new.
func NewCSV(runsPath, matchesPath string) (*CSV, error) {
	rf, rw, err := openCSV(runsPath, runsHeader)
	if err != nil {
		return nil, err
	}
	mf, mw, err := openCSV(matchesPath, matchesHeader)
	if err != nil {
		_ = rf.Close()
		return nil, err
	}
	return &CSV{runs: rw, matches: mw, rf: rf, mf: mf}, nil
}

func openCSV(path string, header []string) (*os.File, *csv.Writer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(header); err != nil {
			_ = f.Close()
			return nil, nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, nil, err
		}
	}
	return f, w, nil
}

func (j *CSV) RecordRun(r RunRecord) error {
	err := j.runs.Write([]string{
		r.RunID,
		r.Started.Format(time.RFC3339),
		r.Finished.Format(time.RFC3339),
		strconv.Itoa(r.Scanned),
		strconv.Itoa(r.NoData),
		strconv.Itoa(r.Errors),
		strconv.Itoa(r.Matches),
		strconv.FormatBool(r.Notified),
	})
	if err != nil {
		return err
	}
	j.runs.Flush()
	return j.runs.Error()
}

func (j *CSV) RecordMatch(m MatchRecord) error {
	err := j.matches.Write([]string{
		m.RunID,
		m.Symbol,
		m.Kind,
		m.Time.Format(time.RFC3339),
		m.Open.String(),
		m.High.String(),
		m.Low.String(),
		m.Close.String(),
		m.RangePct.StringFixed(2),
	})
	if err != nil {
		return err
	}
	j.matches.Flush()
	return j.matches.Error()
}

func (j *CSV) Close() error {
	j.runs.Flush()
	if err := j.runs.Error(); err != nil {
		return err
	}
	j.matches.Flush()
	if err := j.matches.Error(); err != nil {
		return err
	}

	if err := j.rf.Close(); err != nil {
		return err
	}
	return j.mf.Close()
}
