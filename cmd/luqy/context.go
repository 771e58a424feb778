package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"luqy/internal/archive"
	"luqy/internal/config"
	"luqy/internal/logging"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) configPath() string {
	if c.configFlag == nil {
		return ""
	}
	return strings.TrimSpace(*c.configFlag)
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, _, _, err := config.Load(c.configPath())
		if err != nil {
			c.configErr = err
			return
		}
		if c.logLevelFlag != nil {
			if level := strings.TrimSpace(*c.logLevelFlag); level != "" {
				cfg.Logging.Level = strings.ToLower(level)
				if err := cfg.Validate(); err != nil {
					c.configErr = fmt.Errorf("--log-level: %w", err)
					return
				}
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the command logger from the loaded configuration.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// inputFile is a command-line path resolved against the filesystem root so
// the internal packages can read it through fs.FS.
type inputFile struct {
	Arg  string
	Abs  string
	Name string
}

// resolveInputs maps command-line paths to names inside the returned FS.
func resolveInputs(args []string) (fs.FS, []inputFile, error) {
	files := make([]inputFile, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, nil, fmt.Errorf("resolve %q: %w", arg, err)
		}
		name := strings.TrimPrefix(filepath.ToSlash(abs), "/")
		if !fs.ValidPath(name) {
			return nil, nil, fmt.Errorf("resolve %q: unsupported path", arg)
		}
		files = append(files, inputFile{Arg: arg, Abs: abs, Name: name})
	}
	return os.DirFS("/"), files, nil
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

// writeFailureHint suggests a next step for a failed entry or export write.
// existsHint applies only when the target already existed.
func writeFailureHint(err error, existsHint string) string {
	if errors.Is(err, archive.ErrExists) {
		return existsHint
	}
	return "check that the output directory exists and is writable"
}
