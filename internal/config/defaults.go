package config

const (
	defaultConfigPath    = "~/.config/luqy/config.toml"
	defaultOutputDir     = "~/.local/share/luqy/entries"
	defaultLogDir        = ""
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultParseEncoding = "windows-1252"
	defaultExportFormat  = "json"
	defaultBatchWorkers  = 4
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			LogDir:    defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Parser: Parser{
			Encoding: defaultParseEncoding,
		},
		Export: Export{
			Format: defaultExportFormat,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
	}
}
