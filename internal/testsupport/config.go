package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"flavorcheck/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config with test credentials, a log file under a
// unique temp directory, and progress output disabled. Options are applied
// in order.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Kaltura.PartnerID = TestPartnerID
	cfgVal.Kaltura.AdminSecret = TestSecret
	cfgVal.Kaltura.AdminUserID = "tester@example.com"
	cfgVal.Kaltura.MaxRetries = 0
	cfgVal.Kaltura.RequestsPerSecond = 100
	cfgVal.Kaltura.Burst = 100
	cfgVal.Output.Progress = false
	cfgVal.Output.Color = "never"
	cfgVal.Logging.File = filepath.Join(base, "logs", "flavorcheck.log")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithServiceURL points the config at a test server.
func WithServiceURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Kaltura.ServiceURL = url
	}
}

// WithCredentials overrides the partner id and admin secret.
func WithCredentials(partnerID int, secret string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Kaltura.PartnerID = partnerID
		b.cfg.Kaltura.AdminSecret = secret
	}
}

// WithOutputFormat selects text or json report output.
func WithOutputFormat(format string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Format = format
	}
}

// WriteConfig marshals cfg to config.toml in a fresh temp directory and
// returns the path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

// LogPath returns the log file configured by NewConfig.
func LogPath(cfg *config.Config) string {
	return cfg.Logging.File
}
