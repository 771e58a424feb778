package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix namespaces environment overrides, e.g. LUQY_LOG_LEVEL.
const envPrefix = "LUQY"

// envOverrides lists the settings that may be supplied through the
// environment. Empty values leave the file/default value untouched.
type envOverrides struct {
	OutputDir    string `envconfig:"OUTPUT_DIR"`
	LogDir       string `envconfig:"LOG_DIR"`
	LogLevel     string `envconfig:"LOG_LEVEL"`
	LogFormat    string `envconfig:"LOG_FORMAT"`
	Encoding     string `envconfig:"ENCODING"`
	ExportFormat string `envconfig:"EXPORT_FORMAT"`
	Workers      int    `envconfig:"WORKERS"`
}

func (c *Config) applyEnv() error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return fmt.Errorf("read %s_* environment: %w", envPrefix, err)
	}
	setIfNonEmpty(&c.Paths.OutputDir, env.OutputDir)
	setIfNonEmpty(&c.Paths.LogDir, env.LogDir)
	setIfNonEmpty(&c.Logging.Level, env.LogLevel)
	setIfNonEmpty(&c.Logging.Format, env.LogFormat)
	setIfNonEmpty(&c.Parser.Encoding, env.Encoding)
	setIfNonEmpty(&c.Export.Format, env.ExportFormat)
	if env.Workers != 0 {
		c.Batch.Workers = env.Workers
	}
	return nil
}

func setIfNonEmpty(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
