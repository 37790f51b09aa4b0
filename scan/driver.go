// Package scan runs the opening-window Doji scan over a symbol list.
package scan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/rustyeddy/dojiwatch/config"
	"github.com/rustyeddy/dojiwatch/internal/id"
	"github.com/rustyeddy/dojiwatch/internal/metrics"
	"github.com/rustyeddy/dojiwatch/journal"
	"github.com/rustyeddy/dojiwatch/pattern"
	"github.com/rustyeddy/dojiwatch/pricing"
)

// Match is a symbol whose opening candle passed both the pattern and the
// range filter.
type Match struct {
	Symbol string
	Kind   pattern.Kind
	Candle pricing.Candle
}

// RangePercent is the candle's high-low range in percent of its open.
func (m Match) RangePercent() decimal.Decimal {
	return pattern.RangePercent(m.Candle)
}

// Notifier delivers the matches of a run. It is only called with a
// non-empty list.
type Notifier interface {
	Notify(ctx context.Context, matches []Match) error
}

// Report describes a finished run.
type Report struct {
	RunID    string
	Started  time.Time
	Finished time.Time
	Scanned  int
	NoData   int // no ticks inside the window
	Errors   int
	Matches  []Match
	Notified bool
}

type Driver struct {
	symbols       []string
	window        pricing.Window
	bodyThreshold float64
	maxRangePct   float64

	source   pricing.TickSource
	notifier Notifier
	journal  journal.Journal
	limiter  *rate.Limiter
	metrics  *metrics.Metrics
	now      func() time.Time
}

type Option func(*Driver)

// WithJournal archives every run and its matches.
func WithJournal(j journal.Journal) Option {
	return func(d *Driver) { d.journal = j }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Driver) { d.metrics = m }
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// NewDriver validates cfg and wires the driver. Nothing is fetched here.
func NewDriver(cfg *config.Config, source pricing.TickSource, notifier Notifier, opts ...Option) (*Driver, error) {
	if cfg == nil {
		return nil, errors.New("scan: nil config")
	}
	if source == nil {
		return nil, errors.New("scan: nil tick source")
	}
	if notifier == nil {
		return nil, errors.New("scan: nil notifier")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	w, err := cfg.Window()
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}

	limit := rate.Inf
	if p := cfg.Fetch.Pacing.Std(); p > 0 {
		limit = rate.Every(p)
	}

	d := &Driver{
		symbols:       append([]string(nil), cfg.Symbols...),
		window:        w,
		bodyThreshold: cfg.Pattern.BodyThreshold,
		maxRangePct:   cfg.Pattern.MaxRangePct,
		source:        source,
		notifier:      notifier,
		limiter:       rate.NewLimiter(limit, 1),
		now:           time.Now,
	}
	for _, o := range opts {
		o(d)
	}
	if d.metrics == nil {
		d.metrics = metrics.New()
	}
	return d, nil
}

// Run scans every symbol in order and notifies when anything matched. A
// failing symbol or notifier never fails the run; only a cancelled context
// does.
func (d *Driver) Run(ctx context.Context) (Report, error) {
	started := d.now()
	rep := Report{RunID: id.At(started), Started: started}
	logger := log.With().Str("run_id", rep.RunID).Logger()
	logger.Info().Int("symbols", len(d.symbols)).Stringer("window_start", d.window.Start).
		Stringer("window_end", d.window.End).Msg("scan started")

	for _, sym := range d.symbols {
		if err := d.limiter.Wait(ctx); err != nil {
			return d.finish(rep), fmt.Errorf("scan interrupted at %s: %w", sym, err)
		}

		rep.Scanned++
		d.metrics.SymbolsScanned.Inc()

		m, status, err := d.scanSymbol(ctx, sym)
		switch {
		case err != nil:
			rep.Errors++
			d.metrics.SymbolErrors.Inc()
			logger.Error().Err(err).Str("symbol", sym).Msg("symbol skipped")
		case status == noData:
			rep.NoData++
			d.metrics.CandlesMissing.Inc()
		case status == matched:
			rep.Matches = append(rep.Matches, m)
			d.metrics.MatchesFound.WithLabelValues(m.Kind.String()).Inc()
			logger.Info().Str("symbol", sym).Str("kind", m.Kind.String()).
				Str("range_pct", m.RangePercent().StringFixed(2)).Msg("pattern matched")
		}
	}

	if len(rep.Matches) > 0 {
		if err := d.notifier.Notify(ctx, rep.Matches); err != nil {
			d.metrics.NotifyFailures.Inc()
			logger.Error().Err(err).Int("matches", len(rep.Matches)).Msg("notification failed")
		} else {
			rep.Notified = true
		}
	} else {
		logger.Info().Msg("no matches; nothing to send")
	}

	return d.finish(rep), nil
}

type symbolStatus int

const (
	noData symbolStatus = iota
	rejected
	matched
)

// scanSymbol runs fetch, aggregate, classify and the range filter for one
// symbol. Panics are turned into errors so one bad symbol cannot end the run.
func (d *Driver) scanSymbol(ctx context.Context, symbol string) (m Match, status symbolStatus, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic scanning %s: %v", symbol, r)
		}
	}()

	logger := log.With().Str("symbol", symbol).Logger()

	ticks := d.source.FetchTicks(ctx, symbol)
	candle, ok := d.window.Aggregate(ticks)
	if !ok {
		logger.Debug().Int("ticks", len(ticks)).Msg("no ticks in window")
		return Match{}, noData, nil
	}
	candle.Symbol = symbol

	res := pattern.Classify(candle, d.bodyThreshold)
	if !res.Match {
		return Match{}, rejected, nil
	}
	if !pattern.WithinRange(candle, d.maxRangePct) {
		logger.Debug().Str("kind", res.Kind.String()).
			Str("range_pct", pattern.RangePercent(candle).StringFixed(2)).
			Msg("pattern outside range cap")
		return Match{}, rejected, nil
	}

	return Match{Symbol: symbol, Kind: res.Kind, Candle: candle}, matched, nil
}

func (d *Driver) finish(rep Report) Report {
	rep.Finished = d.now()
	d.metrics.RunDuration.Observe(rep.Finished.Sub(rep.Started).Seconds())
	d.metrics.LastRunTimestamp.Set(float64(rep.Finished.Unix()))

	log.Info().Str("run_id", rep.RunID).
		Int("scanned", rep.Scanned).
		Int("no_data", rep.NoData).
		Int("errors", rep.Errors).
		Int("matches", len(rep.Matches)).
		Bool("notified", rep.Notified).
		Dur("elapsed", rep.Finished.Sub(rep.Started)).
		Msg("scan finished")

	if d.journal != nil {
		if err := record(d.journal, rep); err != nil {
			log.Error().Err(err).Str("run_id", rep.RunID).Msg("journal write failed")
		}
	}
	return rep
}

// record writes the run row first, then every match. A failed match does
// not stop the others; all failures are joined.
func record(j journal.Journal, rep Report) error {
	var errs []error
	err := j.RecordRun(journal.RunRecord{
		RunID:    rep.RunID,
		Started:  rep.Started,
		Finished: rep.Finished,
		Scanned:  rep.Scanned,
		NoData:   rep.NoData,
		Errors:   rep.Errors,
		Matches:  len(rep.Matches),
		Notified: rep.Notified,
	})
	if err != nil {
		errs = append(errs, fmt.Errorf("record run: %w", err))
	}
	for _, m := range rep.Matches {
		err := j.RecordMatch(journal.MatchRecord{
			RunID:    rep.RunID,
			Symbol:   m.Symbol,
			Kind:     m.Kind.String(),
			Time:     m.Candle.Time,
			Open:     m.Candle.Open,
			High:     m.Candle.High,
			Low:      m.Candle.Low,
			Close:    m.Candle.Close,
			RangePct: m.RangePercent(),
		})
		if err != nil {
			errs = append(errs, fmt.Errorf("record match %s: %w", m.Symbol, err))
		}
	}
	return errors.Join(errs...)
}
