package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/dojiwatch/pricing"
)

// Environment variables holding the mail credentials.
const (
	EnvMailUser     = "GMAIL_USER"
	EnvMailPassword = "GMAIL_APP_PWD"
)

// ErrMissingCredentials is returned when the mail identity or app password is unset.
var ErrMissingCredentials = errors.New("missing mail credentials")

// Config is the complete scan configuration.
type Config struct {
	Symbols  []string       `json:"symbols" yaml:"symbols"`
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Fetch    FetchConfig    `json:"fetch" yaml:"fetch"`
	Pattern  PatternConfig  `json:"pattern" yaml:"pattern"`
	Mail     MailConfig     `json:"mail" yaml:"mail"`

	// Credentials come from the environment only.
	Credentials Credentials `json:"-" yaml:"-"`
}

// ExchangeConfig describes the upstream and the opening window.
type ExchangeConfig struct {
	BaseURL  string `json:"base_url" yaml:"base_url"`
	Location string `json:"location" yaml:"location"` // IANA zone, e.g. Asia/Kolkata

	// WallClockMillis means the feed's epoch-millis encode exchange wall-clock
	// time rather than a UTC instant.
	WallClockMillis bool `json:"wall_clock_millis" yaml:"wall_clock_millis"`

	WindowStart string `json:"window_start" yaml:"window_start"` // "09:15"
	WindowEnd   string `json:"window_end" yaml:"window_end"`     // "09:20"
}

// FetchConfig holds the timeout, retry and pacing policy.
type FetchConfig struct {
	MaxAttempts int      `json:"max_attempts" yaml:"max_attempts"`
	Timeout     Duration `json:"timeout" yaml:"timeout"`
	BackoffUnit Duration `json:"backoff_unit" yaml:"backoff_unit"`
	RetryPause  Duration `json:"retry_pause" yaml:"retry_pause"`
	Pacing      Duration `json:"pacing" yaml:"pacing"`
}

type PatternConfig struct {
	BodyThreshold float64 `json:"body_threshold" yaml:"body_threshold"`
	MaxRangePct   float64 `json:"max_range_pct" yaml:"max_range_pct"`
}

// MailConfig describes the SMTP relay. An empty To sends to the sender.
type MailConfig struct {
	Host    string `json:"host" yaml:"host"`
	Port    int    `json:"port" yaml:"port"`
	To      string `json:"to,omitempty" yaml:"to,omitempty"`
	Subject string `json:"subject" yaml:"subject"`
}

type Credentials struct {
	User     string
	Password string
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
// layered over Default. Credentials are not loaded here.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes the configuration as YAML or JSON based on the extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the static configuration. It does not look at credentials.
func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return fmt.Errorf("symbols must not be empty")
	}
	for i, s := range c.Symbols {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("symbols[%d] is empty", i)
		}
	}
	if c.Exchange.BaseURL == "" {
		return fmt.Errorf("exchange.base_url is required")
	}
	if _, err := time.LoadLocation(c.Exchange.Location); err != nil {
		return fmt.Errorf("exchange.location: %w", err)
	}
	w, err := c.window(time.UTC)
	if err != nil {
		return err
	}
	if w.End <= w.Start {
		return fmt.Errorf("exchange.window_end must be after window_start")
	}
	if c.Fetch.MaxAttempts < 1 {
		return fmt.Errorf("fetch.max_attempts must be at least 1")
	}
	if c.Fetch.Timeout <= 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.BackoffUnit < 0 || c.Fetch.RetryPause < 0 || c.Fetch.Pacing < 0 {
		return fmt.Errorf("fetch delays must not be negative")
	}
	if c.Pattern.BodyThreshold <= 0 || c.Pattern.BodyThreshold > 1 {
		return fmt.Errorf("pattern.body_threshold must be in (0, 1]")
	}
	if c.Pattern.MaxRangePct <= 0 {
		return fmt.Errorf("pattern.max_range_pct must be positive")
	}
	if c.Mail.Host == "" {
		return fmt.Errorf("mail.host is required")
	}
	if c.Mail.Port <= 0 || c.Mail.Port > 65535 {
		return fmt.Errorf("mail.port must be a valid port")
	}
	return nil
}

// Window resolves the configured opening window in the exchange location.
func (c *Config) Window() (pricing.Window, error) {
	loc, err := time.LoadLocation(c.Exchange.Location)
	if err != nil {
		return pricing.Window{}, fmt.Errorf("exchange.location: %w", err)
	}
	return c.window(loc)
}

func (c *Config) window(loc *time.Location) (pricing.Window, error) {
	start, err := pricing.ParseClock(c.Exchange.WindowStart)
	if err != nil {
		return pricing.Window{}, fmt.Errorf("exchange.window_start: %w", err)
	}
	end, err := pricing.ParseClock(c.Exchange.WindowEnd)
	if err != nil {
		return pricing.Window{}, fmt.Errorf("exchange.window_end: %w", err)
	}
	return pricing.Window{Start: start, End: end, Location: loc}, nil
}

// Recipient is the configured To address or, if unset, the sender.
func (c *Config) Recipient() string {
	if c.Mail.To != "" {
		return c.Mail.To
	}
	return c.Credentials.User
}

// Default returns the NSE opening-window configuration.
func Default() *Config {
	return &Config{
		Symbols: append([]string(nil), DefaultSymbols...),
		Exchange: ExchangeConfig{
			BaseURL:         "https://www.nseindia.com",
			Location:        "Asia/Kolkata",
			WallClockMillis: true,
			WindowStart:     "09:15",
			WindowEnd:       "09:20",
		},
		Fetch: FetchConfig{
			MaxAttempts: 3,
			Timeout:     Duration(10 * time.Second),
			BackoffUnit: Duration(time.Second),
			RetryPause:  Duration(time.Second),
			Pacing:      Duration(500 * time.Millisecond),
		},
		Pattern: PatternConfig{
			BodyThreshold: 0.1,
			MaxRangePct:   1.0,
		},
		Mail: MailConfig{
			Host:    "smtp.gmail.com",
			Port:    465,
			Subject: "Intraday Doji Alert (9:15–9:20 IST)",
		},
	}
}
