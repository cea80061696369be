// Package config handles loading and validating the watcher configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fleawatch/fleawatch/internal/match"
	domain "github.com/fleawatch/fleawatch/pkg/types"
)

// Config is the top-level application configuration.
type Config struct {
	Watch     WatchConfig     `yaml:"watch"`
	Source    SourceConfig    `yaml:"source"`
	Notify    NotifyConfig    `yaml:"notify"`
	Server    ServerConfig    `yaml:"server"`
	Heartbeat HeartbeatConfig `yaml:"heartbeat"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WatchConfig holds the filter criteria and scan interval. Term sets are
// kept verbatim here; Profile() returns the normalized form the matcher
// consumes.
type WatchConfig struct {
	Models                []string   `yaml:"models"`
	PriceMin              float64    `yaml:"price_min"`
	PriceMax              float64    `yaml:"price_max"`
	PriceUnknown          string     `yaml:"price_unknown"` // reject (default) or accept
	RequireShipping       bool       `yaml:"require_shipping"`
	ShippingPositive      []string   `yaml:"shipping_positive"`
	ShippingNegative      []string   `yaml:"shipping_negative"`
	TermsAny              [][]string `yaml:"terms_any"`
	TermsOptional         []string   `yaml:"terms_optional"`
	TermsExclude          []string   `yaml:"terms_exclude"`
	SearchIntervalSeconds int        `yaml:"search_interval_seconds"`
	TagPrefix             string     `yaml:"tag_prefix"`
}

// SourceConfig defines the listing feed endpoint settings.
type SourceConfig struct {
	URL        string        `yaml:"url"`
	Timeout    time.Duration `yaml:"timeout"`
	UserAgent  string        `yaml:"user_agent"`
	MaxRetries int           `yaml:"max_retries"`
}

// NotifyConfig defines outbound delivery settings. Credentials (bot token,
// chat ID) come from the environment, never from the file.
type NotifyConfig struct {
	Timeout        time.Duration   `yaml:"timeout"`
	StartupMessage bool            `yaml:"startup_message"`
	RateLimit      RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines outbound message rate limiting.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ServerConfig defines the ops HTTP server settings.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// Addr returns the listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// HeartbeatConfig defines the periodic status summary.
type HeartbeatConfig struct {
	Interval time.Duration `yaml:"interval"`
	ToChat   bool          `yaml:"to_chat"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Secrets holds the chat credentials read from the environment.
type Secrets struct {
	BotToken string
	ChatID   string
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadSecrets reads the bot token and chat ID from the environment. Both
// are required; a missing variable is a fatal startup error naming it.
func LoadSecrets() (*Secrets, error) {
	var errs []error

	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		errs = append(errs, fmt.Errorf("environment variable TELEGRAM_BOT_TOKEN is required"))
	}

	chatID := os.Getenv("TELEGRAM_CHAT_ID")
	if chatID == "" {
		errs = append(errs, fmt.Errorf("environment variable TELEGRAM_CHAT_ID is required"))
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return &Secrets{BotToken: token, ChatID: chatID}, nil
}

// Profile converts the watch section into the normalized matcher profile.
// All term sets are case- and accent-normalized here, once, at load time.
func (w *WatchConfig) Profile() *domain.Profile {
	return &domain.Profile{
		Models:           match.NormalizeTerms(w.Models),
		PriceMin:         w.PriceMin,
		PriceMax:         w.PriceMax,
		PriceUnknown:     domain.PriceUnknownPolicy(w.PriceUnknown),
		RequireShipping:  w.RequireShipping,
		ShippingPositive: match.NormalizeTerms(w.ShippingPositive),
		ShippingNegative: match.NormalizeTerms(w.ShippingNegative),
		TermsAny:         match.NormalizeGroups(w.TermsAny),
		TermsOptional:    match.NormalizeTerms(w.TermsOptional),
		TermsExclude:     match.NormalizeTerms(w.TermsExclude),
		TagPrefix:        w.TagPrefix,
	}
}

// Interval returns the scan interval as a duration.
func (w *WatchConfig) Interval() time.Duration {
	return time.Duration(w.SearchIntervalSeconds) * time.Second
}

func applyDefaults(cfg *Config) {
	applyWatchDefaults(&cfg.Watch)
	applySourceDefaults(&cfg.Source)
	applyNotifyDefaults(&cfg.Notify)
	applyServerDefaults(&cfg.Server)
	applyHeartbeatDefaults(&cfg.Heartbeat)
	applyLoggingDefaults(&cfg.Logging)
}

func applyWatchDefaults(w *WatchConfig) {
	if w.SearchIntervalSeconds == 0 {
		w.SearchIntervalSeconds = 180
	}
	if w.PriceUnknown == "" {
		w.PriceUnknown = string(domain.PriceUnknownReject)
	}
}

func applySourceDefaults(s *SourceConfig) {
	if s.Timeout == 0 {
		s.Timeout = 20 * time.Second
	}
	if s.MaxRetries == 0 {
		s.MaxRetries = 3
	}
}

func applyNotifyDefaults(n *NotifyConfig) {
	if n.Timeout == 0 {
		n.Timeout = 10 * time.Second
	}
	if n.RateLimit.PerSecond == 0 {
		n.RateLimit.PerSecond = 1.0
	}
	if n.RateLimit.Burst == 0 {
		n.RateLimit.Burst = 5
	}
	if n.RateLimit.DailyLimit == 0 {
		n.RateLimit.DailyLimit = 500
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
}

func applyHeartbeatDefaults(h *HeartbeatConfig) {
	if h.Interval == 0 {
		h.Interval = 6 * time.Hour
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	w := &cfg.Watch
	if w.PriceMin > w.PriceMax {
		errs = append(errs, fmt.Errorf(
			"watch.price_min (%v) must not exceed watch.price_max (%v)",
			w.PriceMin, w.PriceMax,
		))
	}
	if w.SearchIntervalSeconds < 1 {
		errs = append(errs, fmt.Errorf(
			"watch.search_interval_seconds must be a positive integer (got %d)",
			w.SearchIntervalSeconds,
		))
	}
	switch domain.PriceUnknownPolicy(w.PriceUnknown) {
	case domain.PriceUnknownReject, domain.PriceUnknownAccept:
	default:
		errs = append(errs, fmt.Errorf(
			"watch.price_unknown must be one of: reject, accept (got %q)",
			w.PriceUnknown,
		))
	}
	for i, group := range w.TermsAny {
		if len(match.NormalizeTerms(group)) == 0 {
			errs = append(errs, fmt.Errorf("watch.terms_any[%d] is an empty group", i))
		}
	}

	// source.url is deliberately not validated here: commands that never
	// fetch (check, config validate) accept a profile-only config. The
	// run and once commands enforce it when they build the scan loop.

	return errors.Join(errs...)
}
