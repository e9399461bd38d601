package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration for persisted state.
type Paths struct {
	DataDir    string `toml:"data_dir"`
	MugshotDir string `toml:"mugshot_dir"`
	LogDir     string `toml:"log_dir"`
}

// Roster contains settings for the scraped jail-roster site.
type Roster struct {
	BaseURL          string `toml:"base_url"`
	InmateLimit      int    `toml:"inmate_limit"`
	DetailWaitSecs   int    `toml:"detail_wait_seconds"`
	RequestTimeout   int    `toml:"request_timeout"`
	ResultsPerPage   int    `toml:"results_per_page"`
	ChargeScanWindow int    `toml:"charge_scan_window"`
}

// Ranking selects the batch prioritization policy.
type Ranking struct {
	Strategy string `toml:"strategy"`
	TopN     int    `toml:"top_n"`
}

// Posting contains configuration for the social publish API.
type Posting struct {
	GraphBaseURL   string `toml:"graph_base_url"`
	AccessToken    string `toml:"access_token"`
	BusinessID     string `toml:"business_id"`
	ImageBaseURL   string `toml:"image_base_url"`
	RequestTimeout int    `toml:"request_timeout"`
	BatchSize      int    `toml:"batch_size"`
}

// Schedule contains the posting-gate limits, evaluated in the reference timezone.
type Schedule struct {
	DailyLimit       int    `toml:"daily_limit"`
	WindowStartHour  int    `toml:"window_start_hour"`
	WindowEndHour    int    `toml:"window_end_hour"`
	MinIntervalHours int    `toml:"min_interval_hours"`
	Timezone         string `toml:"timezone"`
}

// Archive contains settings for the scrape-history database.
type Archive struct {
	Enabled         bool `toml:"enabled"`
	DedupWindowDays int  `toml:"dedup_window_days"`
}

// Caption controls the rendered caption template.
type Caption struct {
	Fields     []string `toml:"fields"`
	Location   string   `toml:"location"`
	Hashtags   string   `toml:"hashtags"`
	AlertLabel string   `toml:"alert_label"`
}

// Vision contains configuration for the optional image quality gate.
type Vision struct {
	Enabled        bool   `toml:"enabled"`
	Endpoint       string `toml:"endpoint"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for rosterpost.
//
// Configuration sections by subsystem:
//   - Paths: data, mugshot, and log directories
//   - Roster: scraped-site URL, per-run limits, parsing windows
//   - Ranking: prioritization strategy and batch truncation
//   - Posting: publish API credentials and public image URL prefix
//   - Schedule: daily cap, posting window, minimum interval, timezone
//   - Archive: scrape-history database and repeat-booking window
//   - Caption: rendered caption field list and trailer text
//   - Vision: optional image quality gate endpoint
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Roster   Roster   `toml:"roster"`
	Ranking  Ranking  `toml:"ranking"`
	Posting  Posting  `toml:"posting"`
	Schedule Schedule `toml:"schedule"`
	Archive  Archive  `toml:"archive"`
	Caption  Caption  `toml:"caption"`
	Vision   Vision   `toml:"vision"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/rosterpost/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config
// has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("rosterpost.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// SampleConfig returns the embedded annotated sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// QueuePath returns the location of the posting-queue snapshot file.
func (c *Config) QueuePath() string {
	return filepath.Join(c.Paths.DataDir, "posting_queue.json")
}

// ExportPath returns the location of the tabular scrape export.
func (c *Config) ExportPath() string {
	return filepath.Join(c.Paths.DataDir, "jail_roster_data.csv")
}

// ArchivePath returns the location of the scrape-history database.
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Paths.DataDir, "archive.db")
}

// LockPath returns the location of the single-writer cycle lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "rosterpost.lock")
}

// EnsureDirectories creates the directories required for a cycle to run.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.MugshotDir, c.Paths.LogDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}
