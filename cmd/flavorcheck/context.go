package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"flavorcheck/internal/config"
	"flavorcheck/internal/logging"
	"flavorcheck/internal/services"
)

type commandContext struct {
	configFlag    *string
	logLevelFlag  *string
	logFormatFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configFile bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag, logFormatFlag *string) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logLevelFlag:  logLevelFlag,
		logFormatFlag: logFormatFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		cfg, path, exists, err := config.Load(flagValue(c.configFlag))
		if err != nil {
			c.configErr = err
			return
		}
		if err := applyLogOverrides(cfg, flagValue(c.logLevelFlag), flagValue(c.logFormatFlag)); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = path
		c.configFile = exists
	})
	return c.config, c.configErr
}

// newLogger builds the diagnostic logger. Diagnostics always go to stderr so
// stdout carries nothing but the report.
func (c *commandContext) newLogger(stderr io.Writer, debug bool) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:    level,
		Format:   cfg.Logging.Format,
		Writer:   stderr,
		FilePath: cfg.Logging.File,
	})
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "cli", "logging", "build logger", err)
	}
	return logger, nil
}

func applyLogOverrides(cfg *config.Config, level, format string) error {
	if level != "" {
		if !logging.ValidLevel(level) {
			return services.Wrap(services.ErrConfiguration, "cli", "flags", fmt.Sprintf("unsupported --log-level %q", level), nil)
		}
		level = strings.ToLower(level)
		if level == "warning" {
			level = "warn"
		}
		cfg.Logging.Level = level
	}
	if format != "" {
		format = strings.ToLower(format)
		if format != "console" && format != "json" {
			return services.Wrap(services.ErrConfiguration, "cli", "flags", fmt.Sprintf("unsupported --log-format %q", format), nil)
		}
		cfg.Logging.Format = format
	}
	return nil
}

func flagValue(v *string) string {
	if v == nil {
		return ""
	}
	return strings.TrimSpace(*v)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
