package testsupport

import (
	"path/filepath"
	"testing"

	"rosterpost/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.DataDir = filepath.Join(base, "data")
	cfgVal.Paths.MugshotDir = filepath.Join(base, "mugshots")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Posting.AccessToken = "test-token"
	cfgVal.Posting.BusinessID = "test-business"
	cfgVal.Posting.ImageBaseURL = "https://img.example.org"
	cfgVal.Archive.Enabled = false

	builder := &configBuilder{t: t, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return builder.cfg
}

// WithStrategy sets the ranking strategy on the test config.
func WithStrategy(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ranking.Strategy = name
	}
}

// WithTopN sets the queue truncation size on the test config.
func WithTopN(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Ranking.TopN = n
	}
}

// WithArchive enables the scrape archive with the given dedup window.
func WithArchive(windowDays int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Archive.Enabled = true
		b.cfg.Archive.DedupWindowDays = windowDays
	}
}

// WithSchedule overrides the posting-gate limits on the test config.
func WithSchedule(dailyLimit, startHour, endHour, intervalHours int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Schedule.DailyLimit = dailyLimit
		b.cfg.Schedule.WindowStartHour = startHour
		b.cfg.Schedule.WindowEndHour = endHour
		b.cfg.Schedule.MinIntervalHours = intervalHours
	}
}
