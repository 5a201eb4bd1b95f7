package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"flavorcheck/internal/fileutil"
	"flavorcheck/internal/ladder"
	"flavorcheck/internal/profile"
)

//go:embed sample_config.toml
var sampleConfig string

// Kaltura contains API connection and pacing settings.
type Kaltura struct {
	ServiceURL            string  `toml:"service_url" validate:"required,url"`
	PartnerID             int     `toml:"partner_id" validate:"gte=0"`
	AdminSecret           string  `toml:"admin_secret"`
	AdminUserID           string  `toml:"admin_user_id"`
	SessionExpirySeconds  int     `toml:"session_expiry_seconds" validate:"gte=60,lte=31536000"`
	RequestTimeoutSeconds int     `toml:"request_timeout_seconds" validate:"gte=1,lte=600"`
	RequestsPerSecond     float64 `toml:"requests_per_second" validate:"gt=0,lte=100"`
	Burst                 int     `toml:"burst" validate:"gte=1,lte=100"`
	MaxRetries            int     `toml:"max_retries" validate:"gte=0,lte=10"`
	PageSize              int     `toml:"page_size" validate:"gte=1,lte=500"`
	UserAgent             string  `toml:"user_agent"`
}

// Analysis contains the ladder heuristics thresholds.
type Analysis struct {
	NearDuplicateThreshold float64 `toml:"near_duplicate_threshold" validate:"gt=0,lt=1"`
	TinyStepRatio          float64 `toml:"tiny_step_ratio" validate:"gt=1"`
	LargeStepRatio         float64 `toml:"large_step_ratio" validate:"gt=1"`
}

// Output contains report rendering settings.
type Output struct {
	Format      string `toml:"format" validate:"oneof=text json"`
	IncludeURLs bool   `toml:"include_urls"`
	Color       string `toml:"color" validate:"oneof=auto always never"`
	BarWidth    int    `toml:"bar_width" validate:"gte=10,lte=200"`
	MinBarWidth int    `toml:"min_bar_width" validate:"gte=1"`
	Progress    bool   `toml:"progress"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" validate:"oneof=console json"`
	Level  string `toml:"level" validate:"oneof=debug info warn error"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for flavorcheck.
//
// Configuration sections:
//   - Kaltura: API endpoint, credentials, pacing and retries
//   - Analysis: near-duplicate and switching-step thresholds
//   - Output: report format, colors and ladder bar scaling
//   - Logging: diagnostic log format, level and optional file
type Config struct {
	Kaltura  Kaltura  `toml:"kaltura"`
	Analysis Analysis `toml:"analysis"`
	Output   Output   `toml:"output"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. Credentials are
// not required here; commands that talk to the API call RequireCredentials.
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
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, "", false, fmt.Errorf("parse config: unknown keys:\n%s", strict.String())
			}
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

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(projectConfigFile)
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

// CreateSample writes the sample configuration file to path.
func CreateSample(ctx context.Context, path string) error {
	if err := fileutil.WriteFileAtomic(ctx, path, []byte(sampleConfig), 0o600); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// SampleConfig returns the embedded sample configuration.
func SampleConfig() string {
	return sampleConfig
}

// SessionExpiry returns the admin session lifetime.
func (c *Config) SessionExpiry() time.Duration {
	return time.Duration(c.Kaltura.SessionExpirySeconds) * time.Second
}

// RequestTimeout returns the per-request HTTP timeout.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Kaltura.RequestTimeoutSeconds) * time.Second
}

// AnalysisOptions returns the profile analyzer settings.
func (c *Config) AnalysisOptions() profile.Options {
	return profile.Options{NearDuplicateThreshold: c.Analysis.NearDuplicateThreshold}
}

// LadderOptions returns the ladder builder settings.
func (c *Config) LadderOptions() ladder.Options {
	return ladder.Options{
		BarWidth:       c.Output.BarWidth,
		MinBarWidth:    c.Output.MinBarWidth,
		TinyStepRatio:  c.Analysis.TinyStepRatio,
		LargeStepRatio: c.Analysis.LargeStepRatio,
	}
}
