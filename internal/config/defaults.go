package config

import (
	"flavorcheck/internal/ladder"
	"flavorcheck/internal/profile"
)

const (
	defaultConfigPath            = "~/.config/flavorcheck/config.toml"
	projectConfigFile            = "flavorcheck.toml"
	defaultServiceURL            = "https://www.kaltura.com/"
	defaultSessionExpirySeconds  = 86400
	defaultRequestTimeoutSeconds = 30
	defaultRequestsPerSecond     = 5
	defaultBurst                 = 5
	defaultMaxRetries            = 3
	defaultPageSize              = 500
	defaultUserAgent             = "flavorcheck/dev"
	defaultOutputFormat          = "text"
	defaultColorMode             = "auto"
	defaultLogFormat             = "console"
	defaultLogLevel              = "info"
)

// Environment variables consulted when the file leaves a credential empty.
const (
	EnvAdminSecret = "KALTURA_ADMIN_SECRET"
	EnvPartnerID   = "KALTURA_PARTNER_ID"
	EnvAdminUserID = "KALTURA_ADMIN_USER_ID"
	EnvServiceURL  = "KALTURA_SERVICE_URL"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Kaltura: Kaltura{
			ServiceURL:            defaultServiceURL,
			SessionExpirySeconds:  defaultSessionExpirySeconds,
			RequestTimeoutSeconds: defaultRequestTimeoutSeconds,
			RequestsPerSecond:     defaultRequestsPerSecond,
			Burst:                 defaultBurst,
			MaxRetries:            defaultMaxRetries,
			PageSize:              defaultPageSize,
			UserAgent:             defaultUserAgent,
		},
		Analysis: Analysis{
			NearDuplicateThreshold: profile.DefaultNearDuplicateThreshold,
			TinyStepRatio:          ladder.DefaultTinyStepRatio,
			LargeStepRatio:         ladder.DefaultLargeStepRatio,
		},
		Output: Output{
			Format:      defaultOutputFormat,
			Color:       defaultColorMode,
			BarWidth:    ladder.DefaultBarWidth,
			MinBarWidth: ladder.DefaultMinBarWidth,
			Progress:    true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
