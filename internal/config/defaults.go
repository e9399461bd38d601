package config

const (
	defaultDataDir          = "~/.local/share/rosterpost"
	defaultRosterBaseURL    = "https://jailroster.hennepin.us/"
	defaultInmateLimit      = 100
	defaultDetailWaitSecs   = 5
	defaultRosterTimeout    = 30
	defaultResultsPerPage   = 100
	defaultChargeScanWindow = 10
	defaultRankingStrategy  = "priority-bail"
	defaultTopN             = 10
	defaultGraphBaseURL     = "https://graph.facebook.com/v23.0"
	defaultPostingTimeout   = 30
	defaultBatchSize        = 1
	defaultDailyLimit       = 5
	defaultWindowStartHour  = 9
	defaultWindowEndHour    = 21
	defaultMinIntervalHours = 2
	defaultTimezone         = "America/Chicago"
	defaultDedupWindowDays  = 30
	defaultCaptionLocation  = "Hennepin County, MN"
	defaultCaptionHashtags  = "#HennepinCounty #Arrest #PublicRecord #Minnesota #Minneapolis"
	defaultAlertLabel       = "Arrest Alert"
	defaultVisionTimeout    = 60
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
		},
		Roster: Roster{
			BaseURL:          defaultRosterBaseURL,
			InmateLimit:      defaultInmateLimit,
			DetailWaitSecs:   defaultDetailWaitSecs,
			RequestTimeout:   defaultRosterTimeout,
			ResultsPerPage:   defaultResultsPerPage,
			ChargeScanWindow: defaultChargeScanWindow,
		},
		Ranking: Ranking{
			Strategy: defaultRankingStrategy,
			TopN:     defaultTopN,
		},
		Posting: Posting{
			GraphBaseURL:   defaultGraphBaseURL,
			RequestTimeout: defaultPostingTimeout,
			BatchSize:      defaultBatchSize,
		},
		Schedule: Schedule{
			DailyLimit:       defaultDailyLimit,
			WindowStartHour:  defaultWindowStartHour,
			WindowEndHour:    defaultWindowEndHour,
			MinIntervalHours: defaultMinIntervalHours,
			Timezone:         defaultTimezone,
		},
		Archive: Archive{
			Enabled:         true,
			DedupWindowDays: defaultDedupWindowDays,
		},
		Caption: Caption{
			Fields:     []string{"name", "bail"},
			Location:   defaultCaptionLocation,
			Hashtags:   defaultCaptionHashtags,
			AlertLabel: defaultAlertLabel,
		},
		Vision: Vision{
			RequestTimeout: defaultVisionTimeout,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
