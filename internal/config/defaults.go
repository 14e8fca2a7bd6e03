package config

const (
	defaultOutputDir        = "."
	defaultStateDB          = "~/.local/share/xray/state.db"
	defaultSampleRows       = 10
	defaultExportFormat     = "xlsx"
	defaultSheetName        = "Unique Records"
	defaultFilenamePrefix   = "Cleaned_Leads"
	defaultMaxPages         = 1
	defaultPageDelaySeconds = 3
	defaultSearchURL        = "https://www.google.com/search"
	defaultTimeoutMinutes   = 15
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogFile          = "~/.local/share/xray/xray.log"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			StateDB:   defaultStateDB,
		},
		Dedupe: Dedupe{
			SampleRows:     defaultSampleRows,
			ExportFormat:   defaultExportFormat,
			SheetName:      defaultSheetName,
			FilenamePrefix: defaultFilenamePrefix,
		},
		Scrape: Scrape{
			MaxPages:         defaultMaxPages,
			PageDelaySeconds: defaultPageDelaySeconds,
			Headless:         true,
			SearchURL:        defaultSearchURL,
			TimeoutMinutes:   defaultTimeoutMinutes,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
			File:   defaultLogFile,
		},
	}
}
