package main

import "errors"

// KnownMetrics is the set of metric names exported by fleawatch plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Scan loop metrics.
	"fleawatch_cycle_duration_seconds":   true,
	"fleawatch_listings_evaluated_total": true,
	"fleawatch_matches_total":            true,
	"fleawatch_dedup_store_size":         true,

	// Source metrics.
	"fleawatch_source_requests_total": true,
	"fleawatch_fetch_errors_total":    true,

	// Notification metrics.
	"fleawatch_notifications_total":   true,
	"fleawatch_notify_failures_total": true,

	// Recording rules.
	"fleawatch:listings_evaluated:rate5m": true,
	"fleawatch:matches:rate5m":            true,
	"fleawatch:source_requests:rate5m":    true,
	"fleawatch:fetch_errors:rate5m":       true,
	"fleawatch:notifications:rate5m":      true,
	"fleawatch:notify_failures:rate5m":    true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
