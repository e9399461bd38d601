package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRoster()
	c.normalizeRanking()
	c.normalizePosting()
	c.normalizeSchedule()
	c.normalizeArchive()
	c.normalizeCaption()
	c.normalizeVision()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.MugshotDir) == "" {
		c.Paths.MugshotDir = filepath.Join(c.Paths.DataDir, "mugshots")
	}
	if c.Paths.MugshotDir, err = expandPath(c.Paths.MugshotDir); err != nil {
		return fmt.Errorf("paths.mugshot_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = filepath.Join(c.Paths.DataDir, "logs")
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeRoster() {
	c.Roster.BaseURL = strings.TrimSpace(c.Roster.BaseURL)
	if c.Roster.BaseURL == "" {
		c.Roster.BaseURL = defaultRosterBaseURL
	}
	if c.Roster.InmateLimit <= 0 {
		c.Roster.InmateLimit = defaultInmateLimit
	}
	if c.Roster.DetailWaitSecs < 0 {
		c.Roster.DetailWaitSecs = defaultDetailWaitSecs
	}
	if c.Roster.RequestTimeout <= 0 {
		c.Roster.RequestTimeout = defaultRosterTimeout
	}
	if c.Roster.ResultsPerPage <= 0 {
		c.Roster.ResultsPerPage = defaultResultsPerPage
	}
	if c.Roster.ChargeScanWindow <= 0 {
		c.Roster.ChargeScanWindow = defaultChargeScanWindow
	}
}

func (c *Config) normalizeRanking() {
	c.Ranking.Strategy = strings.ToLower(strings.TrimSpace(c.Ranking.Strategy))
	if c.Ranking.Strategy == "" {
		c.Ranking.Strategy = defaultRankingStrategy
	}
	if c.Ranking.TopN <= 0 {
		c.Ranking.TopN = defaultTopN
	}
}

func (c *Config) normalizePosting() {
	c.Posting.GraphBaseURL = strings.TrimRight(strings.TrimSpace(c.Posting.GraphBaseURL), "/")
	if c.Posting.GraphBaseURL == "" {
		c.Posting.GraphBaseURL = defaultGraphBaseURL
	}
	c.Posting.AccessToken = strings.TrimSpace(c.Posting.AccessToken)
	if c.Posting.AccessToken == "" {
		if value, ok := os.LookupEnv("ROSTERPOST_ACCESS_TOKEN"); ok {
			c.Posting.AccessToken = strings.TrimSpace(value)
		}
	}
	c.Posting.BusinessID = strings.TrimSpace(c.Posting.BusinessID)
	if c.Posting.BusinessID == "" {
		if value, ok := os.LookupEnv("ROSTERPOST_BUSINESS_ID"); ok {
			c.Posting.BusinessID = strings.TrimSpace(value)
		}
	}
	c.Posting.ImageBaseURL = strings.TrimRight(strings.TrimSpace(c.Posting.ImageBaseURL), "/")
	if c.Posting.RequestTimeout <= 0 {
		c.Posting.RequestTimeout = defaultPostingTimeout
	}
	if c.Posting.BatchSize <= 0 {
		c.Posting.BatchSize = defaultBatchSize
	}
}

func (c *Config) normalizeSchedule() {
	if c.Schedule.DailyLimit <= 0 {
		c.Schedule.DailyLimit = defaultDailyLimit
	}
	if c.Schedule.MinIntervalHours < 0 {
		c.Schedule.MinIntervalHours = defaultMinIntervalHours
	}
	c.Schedule.Timezone = strings.TrimSpace(c.Schedule.Timezone)
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = defaultTimezone
	}
}

func (c *Config) normalizeArchive() {
	if c.Archive.DedupWindowDays <= 0 {
		c.Archive.DedupWindowDays = defaultDedupWindowDays
	}
}

func (c *Config) normalizeCaption() {
	fields := make([]string, 0, len(c.Caption.Fields))
	seen := make(map[string]struct{}, len(c.Caption.Fields))
	for _, field := range c.Caption.Fields {
		normalized := strings.ToLower(strings.TrimSpace(field))
		if normalized == "" {
			continue
		}
		if _, exists := seen[normalized]; exists {
			continue
		}
		seen[normalized] = struct{}{}
		fields = append(fields, normalized)
	}
	if len(fields) == 0 {
		fields = []string{"name", "bail"}
	}
	c.Caption.Fields = fields
	c.Caption.Location = strings.TrimSpace(c.Caption.Location)
	c.Caption.Hashtags = strings.TrimSpace(c.Caption.Hashtags)
	if strings.TrimSpace(c.Caption.AlertLabel) == "" {
		c.Caption.AlertLabel = defaultAlertLabel
	}
}

func (c *Config) normalizeVision() {
	c.Vision.Endpoint = strings.TrimSpace(c.Vision.Endpoint)
	if c.Vision.RequestTimeout <= 0 {
		c.Vision.RequestTimeout = defaultVisionTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
