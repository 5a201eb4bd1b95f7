package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeKaltura(); err != nil {
		return err
	}
	c.normalizeOutput()
	return c.normalizeLogging()
}

func (c *Config) normalizeKaltura() error {
	k := &c.Kaltura
	k.AdminSecret = strings.TrimSpace(k.AdminSecret)
	if k.AdminSecret == "" {
		if value, ok := os.LookupEnv(EnvAdminSecret); ok {
			k.AdminSecret = strings.TrimSpace(value)
		}
	}
	if k.PartnerID == 0 {
		if value, ok := os.LookupEnv(EnvPartnerID); ok && strings.TrimSpace(value) != "" {
			id, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil {
				return fmt.Errorf("%s: partner id must be an integer, got %q", EnvPartnerID, value)
			}
			k.PartnerID = id
		}
	}
	k.AdminUserID = strings.TrimSpace(k.AdminUserID)
	if k.AdminUserID == "" {
		if value, ok := os.LookupEnv(EnvAdminUserID); ok {
			k.AdminUserID = strings.TrimSpace(value)
		}
	}
	k.ServiceURL = strings.TrimSpace(k.ServiceURL)
	if value, ok := os.LookupEnv(EnvServiceURL); ok && strings.TrimSpace(value) != "" && (k.ServiceURL == "" || k.ServiceURL == defaultServiceURL) {
		k.ServiceURL = strings.TrimSpace(value)
	}
	if k.ServiceURL == "" {
		k.ServiceURL = defaultServiceURL
	}
	k.UserAgent = strings.TrimSpace(k.UserAgent)
	if k.UserAgent == "" {
		k.UserAgent = defaultUserAgent
	}
	return nil
}

func (c *Config) normalizeOutput() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = defaultOutputFormat
	}
	c.Output.Color = strings.ToLower(strings.TrimSpace(c.Output.Color))
	if c.Output.Color == "" {
		c.Output.Color = defaultColorMode
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch level {
	case "":
		level = defaultLogLevel
	case "warning":
		level = "warn"
	}
	c.Logging.Level = level
	if strings.TrimSpace(c.Logging.File) != "" {
		path, err := expandPath(strings.TrimSpace(c.Logging.File))
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = path
	}
	return nil
}
