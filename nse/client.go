// Package nse fetches intraday ticks from the NSE India public chart API.
//
// The API rejects clients without a browser-like session, so every attempt
// primes a cookie against the human-facing quote page before requesting the
// chart data.
package nse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rustyeddy/dojiwatch/internal/metrics"
	"github.com/rustyeddy/dojiwatch/pricing"
)

const (
	// DefaultBaseURL is the NSE India site.
	DefaultBaseURL = "https://www.nseindia.com"

	// indexSuffix turns an equity symbol into a chart index ("SBIN" -> "SBINEQN").
	indexSuffix = "EQN"

	maxBodyBytes = 8 << 20
)

// Browser headers. The upstream blocks anything that does not look like Chrome.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/plain, */*",
	"Accept-Language": "en-US,en;q=0.9",
}

// ErrPermanent marks a response that retrying cannot fix.
var ErrPermanent = errors.New("permanent upstream failure")

// StatusError is a non-200 response from one stage of an attempt.
type StatusError struct {
	Stage string
	Code  int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: http %d", e.Stage, e.Code)
}

// retryable reports whether a data-call status is worth another attempt.
func retryable(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// state names the step an attempt is in, for logging.
type state string

const (
	statePriming  state = "priming"
	stateFetching state = "fetching"
	stateBackoff  state = "backoff"
	stateDone     state = "done"
	stateFailed   state = "failed"
)

// Config is the fetch policy of a Client.
type Config struct {
	BaseURL     string
	MaxAttempts int
	Timeout     time.Duration // per request

	// After attempt n fails the client waits 2^n*BackoffUnit + RetryPause.
	BackoffUnit time.Duration
	RetryPause  time.Duration

	Location        *time.Location
	WallClockMillis bool
}

type Client struct {
	cfg       Config
	transport http.RoundTripper
	timer     backoff.Timer
	metrics   *metrics.Metrics
	stamp     func(int64) time.Time
}

type Option func(*Client)

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

// WithTimer replaces the timer used for backoff waits.
func WithTimer(t backoff.Timer) Option {
	return func(c *Client) { c.timer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

// NewClient validates cfg and returns a Client.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("nse: max attempts must be at least 1, got %d", cfg.MaxAttempts)
	}
	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("nse: request timeout must be positive")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("nse: base url: %w", err)
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{cfg: cfg}
	for _, o := range opts {
		o(c)
	}
	if c.transport == nil {
		c.transport = NewTransport()
	}
	if c.metrics == nil {
		c.metrics = metrics.New()
	}
	c.stamp = stamper(cfg.Location, cfg.WallClockMillis)
	return c, nil
}

// FetchTicks returns today's ticks for symbol in feed order. It never fails:
// a symbol that cannot be fetched yields an empty slice and a logged error.
func (c *Client) FetchTicks(ctx context.Context, symbol string) []pricing.Tick {
	logger := log.With().Str("symbol", symbol).Logger()

	var (
		ticks   []pricing.Tick
		attempt int
	)
	op := func() error {
		attempt++
		t, err := c.attempt(ctx, logger.With().Int("attempt", attempt).Logger(), symbol)
		if err != nil {
			return err
		}
		ticks = t
		return nil
	}
	notify := func(err error, wait time.Duration) {
		c.metrics.FetchAttempts.WithLabelValues("transient").Inc()
		logger.Warn().Err(err).
			Int("attempt", attempt).
			Str("state", string(stateBackoff)).
			Dur("wait", wait).
			Msg("fetch attempt failed; backing off")
	}

	err := backoff.RetryNotifyWithTimer(op, c.newBackOff(ctx), notify, c.timer)
	if err != nil {
		reason := "exhausted"
		if errors.Is(err, ErrPermanent) {
			reason = "permanent"
			c.metrics.FetchAttempts.WithLabelValues("permanent").Inc()
		} else {
			c.metrics.FetchAttempts.WithLabelValues("transient").Inc()
		}
		c.metrics.FetchFailures.WithLabelValues(reason).Inc()
		logger.Error().Err(err).
			Int("attempts", attempt).
			Str("state", string(stateFailed)).
			Str("reason", reason).
			Msg("symbol fetch failed")
		return nil
	}

	c.metrics.FetchAttempts.WithLabelValues("ok").Inc()
	logger.Debug().Int("ticks", len(ticks)).Str("state", string(stateDone)).Msg("fetched ticks")
	return ticks
}

// attempt runs one prime + fetch cycle. Errors wrapped with
// backoff.Permanent stop the retry loop.
func (c *Client) attempt(ctx context.Context, logger zerolog.Logger, symbol string) ([]pricing.Tick, error) {
	session, err := newSession(c.transport, c.cfg.Timeout)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: cookie jar: %v", ErrPermanent, err))
	}

	logger.Debug().Str("state", string(statePriming)).Msg("priming session")
	code, _, err := c.get(ctx, session, c.quoteURL(symbol), false)
	if err != nil {
		return nil, fmt.Errorf("prime: %w", err)
	}
	if code != http.StatusOK {
		return nil, &StatusError{Stage: "prime", Code: code}
	}

	logger.Debug().Str("state", string(stateFetching)).Msg("fetching chart data")
	code, body, err := c.get(ctx, session, c.chartURL(symbol), true)
	if err != nil {
		return nil, fmt.Errorf("chart: %w", err)
	}
	if code != http.StatusOK {
		se := &StatusError{Stage: "chart", Code: code}
		if retryable(code) {
			return nil, se
		}
		return nil, backoff.Permanent(fmt.Errorf("%w: %w", ErrPermanent, se))
	}

	return parseChart(symbol, body, c.stamp)
}

func (c *Client) get(ctx context.Context, hc *http.Client, u string, keepBody bool) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return 0, nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("Referer", c.cfg.BaseURL+"/")

	resp, err := hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	if !keepBody || resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return resp.StatusCode, nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read body: %w", err)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) quoteURL(symbol string) string {
	q := url.Values{}
	q.Set("symbol", symbol)
	return c.cfg.BaseURL + "/get-quotes/equity?" + q.Encode()
}

func (c *Client) chartURL(symbol string) string {
	q := url.Values{}
	q.Set("index", symbol+indexSuffix)
	return c.cfg.BaseURL + "/api/chart-databyindex?" + q.Encode()
}

// newBackOff waits 2^n units after attempt n, plus the fixed pause, and
// stops after MaxAttempts attempts.
func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = 2 * c.cfg.BackoffUnit
	exp.Multiplier = 2
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Duration(math.MaxInt64)
	exp.MaxElapsedTime = 0
	exp.Reset()

	b := backoff.WithMaxRetries(&pausedBackOff{BackOff: exp, pause: c.cfg.RetryPause}, uint64(c.cfg.MaxAttempts-1))
	return backoff.WithContext(b, ctx)
}

type pausedBackOff struct {
	backoff.BackOff
	pause time.Duration
}

func (p *pausedBackOff) NextBackOff() time.Duration {
	next := p.BackOff.NextBackOff()
	if next == backoff.Stop {
		return next
	}
	return next + p.pause
}
