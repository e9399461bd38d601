package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rosterpost/internal/config"
)

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}
	configCmd.AddCommand(newConfigShowCommand())
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, exists, err := config.Load("")
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", path)
			if !exists {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			fmt.Fprintf(out, "Roster: %s (limit %d)\n", cfg.Roster.BaseURL, cfg.Roster.InmateLimit)
			fmt.Fprintf(out, "Ranking: %s, top %d\n", cfg.Ranking.Strategy, cfg.Ranking.TopN)
			fmt.Fprintf(out, "Schedule: %d/day, %02d:00-%02d:00 %s, min interval %dh\n",
				cfg.Schedule.DailyLimit, cfg.Schedule.WindowStartHour, cfg.Schedule.WindowEndHour,
				cfg.Schedule.Timezone, cfg.Schedule.MinIntervalHours)
			fmt.Fprintf(out, "Archive: enabled=%s window=%dd\n", yesNo(cfg.Archive.Enabled), cfg.Archive.DedupWindowDays)
			fmt.Fprintf(out, "Vision gate: enabled=%s\n", yesNo(cfg.Vision.Enabled))
			fmt.Fprintf(out, "Posting credentials: %s\n", yesNo(cfg.Posting.AccessToken != "" && cfg.Posting.BusinessID != ""))
			fmt.Fprintf(out, "Data dir: %s\n", cfg.Paths.DataDir)
			return nil
		},
	}
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := os.WriteFile(target, []byte(config.SampleConfig()), 0o644); err != nil {
				return fmt.Errorf("write sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set access_token and business_id (or export ROSTERPOST_ACCESS_TOKEN and ROSTERPOST_BUSINESS_ID) before posting.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}
