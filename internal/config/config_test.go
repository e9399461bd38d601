package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rosterpost/internal/config"
)

func TestLoadDefaultsUseEnvCredentialsAndExpandPaths(t *testing.T) {
	t.Setenv("ROSTERPOST_ACCESS_TOKEN", "token-from-env")
	t.Setenv("ROSTERPOST_BUSINESS_ID", "17841400000000000")
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantData := filepath.Join(tempHome, ".local", "share", "rosterpost")
	if cfg.Paths.DataDir != wantData {
		t.Fatalf("unexpected data dir: got %q want %q", cfg.Paths.DataDir, wantData)
	}
	if cfg.Paths.MugshotDir != filepath.Join(wantData, "mugshots") {
		t.Fatalf("unexpected mugshot dir: %q", cfg.Paths.MugshotDir)
	}
	if cfg.Posting.AccessToken != "token-from-env" {
		t.Fatalf("expected access token from env, got %q", cfg.Posting.AccessToken)
	}
	if cfg.Posting.BusinessID != "17841400000000000" {
		t.Fatalf("expected business id from env, got %q", cfg.Posting.BusinessID)
	}
	if cfg.Ranking.Strategy != "priority-bail" {
		t.Fatalf("unexpected default strategy: %q", cfg.Ranking.Strategy)
	}
	if cfg.Ranking.TopN != 10 {
		t.Fatalf("unexpected default top_n: %d", cfg.Ranking.TopN)
	}
	if cfg.Schedule.Timezone != "America/Chicago" {
		t.Fatalf("unexpected default timezone: %q", cfg.Schedule.Timezone)
	}
	if cfg.Vision.Enabled {
		t.Fatal("expected vision gate disabled by default")
	}
	if got := cfg.QueuePath(); got != filepath.Join(wantData, "posting_queue.json") {
		t.Fatalf("unexpected queue path: %q", got)
	}
}

func TestLoadParsesFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `/state"

[ranking]
strategy = "BAIL-ONLY"
top_n = 5

[caption]
fields = ["Name", "name", "charge"]

[schedule]
window_start_hour = 18
window_end_hour = 22
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected resolved existing path %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Ranking.Strategy != "bail-only" {
		t.Fatalf("expected lowered strategy, got %q", cfg.Ranking.Strategy)
	}
	if cfg.Ranking.TopN != 5 {
		t.Fatalf("unexpected top_n: %d", cfg.Ranking.TopN)
	}
	if len(cfg.Caption.Fields) != 2 || cfg.Caption.Fields[0] != "name" || cfg.Caption.Fields[1] != "charge" {
		t.Fatalf("expected deduped caption fields, got %v", cfg.Caption.Fields)
	}
	if cfg.Schedule.WindowStartHour != 18 || cfg.Schedule.WindowEndHour != 22 {
		t.Fatalf("unexpected window: [%d, %d)", cfg.Schedule.WindowStartHour, cfg.Schedule.WindowEndHour)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "unknown strategy",
			mutate: func(c *config.Config) { c.Ranking.Strategy = "alphabetical" },
			want:   "ranking.strategy",
		},
		{
			name:   "unknown caption field",
			mutate: func(c *config.Config) { c.Caption.Fields = []string{"shoe_size"} },
			want:   "caption.fields",
		},
		{
			name:   "inverted window",
			mutate: func(c *config.Config) { c.Schedule.WindowStartHour = 20; c.Schedule.WindowEndHour = 8 },
			want:   "window_end_hour",
		},
		{
			name:   "bad timezone",
			mutate: func(c *config.Config) { c.Schedule.Timezone = "Mars/Olympus_Mons" },
			want:   "schedule.timezone",
		},
		{
			name:   "vision enabled without endpoint",
			mutate: func(c *config.Config) { c.Vision.Enabled = true; c.Vision.Endpoint = "" },
			want:   "vision.endpoint",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestSampleConfigMentionsEverySection(t *testing.T) {
	sample := config.SampleConfig()
	for _, section := range []string{"[paths]", "[roster]", "[ranking]", "[posting]", "[schedule]", "[archive]", "[caption]", "[vision]", "[logging]"} {
		if !strings.Contains(sample, section) {
			t.Fatalf("sample config missing section %s", section)
		}
	}
}
