package config

import (
	"fmt"
	"strings"
	"time"
)

var validStrategies = map[string]struct{}{
	"priority-bail": {},
	"bail-only":     {},
}

var validCaptionFields = map[string]struct{}{
	"name":   {},
	"charge": {},
	"bail":   {},
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if _, ok := validStrategies[c.Ranking.Strategy]; !ok {
		return fmt.Errorf("ranking.strategy: unsupported value %q (expected priority-bail or bail-only)", c.Ranking.Strategy)
	}
	for _, field := range c.Caption.Fields {
		if _, ok := validCaptionFields[field]; !ok {
			return fmt.Errorf("caption.fields: unsupported field %q (expected name, charge, or bail)", field)
		}
	}
	if c.Schedule.WindowStartHour < 0 || c.Schedule.WindowStartHour > 23 {
		return fmt.Errorf("schedule.window_start_hour: %d out of range [0, 23]", c.Schedule.WindowStartHour)
	}
	if c.Schedule.WindowEndHour < 1 || c.Schedule.WindowEndHour > 24 {
		return fmt.Errorf("schedule.window_end_hour: %d out of range [1, 24]", c.Schedule.WindowEndHour)
	}
	if c.Schedule.WindowEndHour <= c.Schedule.WindowStartHour {
		return fmt.Errorf("schedule: window_end_hour (%d) must be after window_start_hour (%d)",
			c.Schedule.WindowEndHour, c.Schedule.WindowStartHour)
	}
	if _, err := time.LoadLocation(c.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone: %w", err)
	}
	if c.Vision.Enabled && c.Vision.Endpoint == "" {
		return fmt.Errorf("vision.endpoint is required when vision.enabled is true")
	}
	if !strings.HasPrefix(c.Roster.BaseURL, "http://") && !strings.HasPrefix(c.Roster.BaseURL, "https://") {
		return fmt.Errorf("roster.base_url: %q is not an http(s) URL", c.Roster.BaseURL)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

// Location resolves the configured reference timezone. Validate guarantees the
// zone loads, so errors after a successful Load indicate an altered config.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Schedule.Timezone)
}
