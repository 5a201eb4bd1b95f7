package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"flavorcheck/internal/config"
	"flavorcheck/internal/services"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{config.EnvAdminSecret, config.EnvPartnerID, config.EnvAdminUserID, config.EnvServiceURL} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Chdir(t.TempDir())
	return home
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	home := isolate(t)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(home, ".config", "flavorcheck", "config.toml"); resolved != want {
		t.Fatalf("resolved = %q, want %q", resolved, want)
	}
	def := config.Default()
	if cfg.Kaltura.ServiceURL != def.Kaltura.ServiceURL || cfg.Kaltura.PageSize != 500 {
		t.Fatalf("unexpected kaltura defaults: %+v", cfg.Kaltura)
	}
	if cfg.Analysis.NearDuplicateThreshold != 0.10 {
		t.Fatalf("threshold = %v", cfg.Analysis.NearDuplicateThreshold)
	}
	if cfg.Output.BarWidth != 54 || cfg.Output.Color != "auto" || !cfg.Output.Progress {
		t.Fatalf("unexpected output defaults: %+v", cfg.Output)
	}
	if err := cfg.RequireCredentials(); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected missing credentials, got %v", err)
	}
}

func TestLoadEnvFallbacks(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvPartnerID, " 1234 ")
	t.Setenv(config.EnvAdminSecret, "env-secret")
	t.Setenv(config.EnvAdminUserID, "ops@example.com")
	t.Setenv(config.EnvServiceURL, "https://kaltura.example.edu")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kaltura.PartnerID != 1234 || cfg.Kaltura.AdminSecret != "env-secret" || cfg.Kaltura.AdminUserID != "ops@example.com" {
		t.Fatalf("env fallbacks not applied: %+v", cfg.Kaltura)
	}
	if cfg.Kaltura.ServiceURL != "https://kaltura.example.edu" {
		t.Fatalf("service url = %q", cfg.Kaltura.ServiceURL)
	}
	if err := cfg.RequireCredentials(); err != nil {
		t.Fatalf("RequireCredentials: %v", err)
	}
}

func TestFileValuesBeatEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvAdminSecret, "env-secret")
	t.Setenv(config.EnvPartnerID, "1")
	path := writeConfig(t, `
[kaltura]
partner_id = 42
admin_secret = "file-secret"
service_url = "https://files.example.com/"
`)
	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if cfg.Kaltura.PartnerID != 42 || cfg.Kaltura.AdminSecret != "file-secret" {
		t.Fatalf("file values lost: %+v", cfg.Kaltura)
	}
	if cfg.Kaltura.ServiceURL != "https://files.example.com/" {
		t.Fatalf("service url = %q", cfg.Kaltura.ServiceURL)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		body string
		want []string
	}{
		{
			name: "ranges",
			body: "[kaltura]\npage_size = 900\nmax_retries = -1\n",
			want: []string{"kaltura.page_size must be less than or equal to 500", "kaltura.max_retries must be greater than or equal to 0"},
		},
		{
			name: "enumerations",
			body: "[output]\nformat = \"yaml\"\ncolor = \"sometimes\"\n",
			want: []string{"output.format must be one of: text, json", "output.color must be one of: auto, always, never"},
		},
		{
			name: "threshold",
			body: "[analysis]\nnear_duplicate_threshold = 1.5\n",
			want: []string{"analysis.near_duplicate_threshold must be less than 1"},
		},
		{
			name: "cross field ratios",
			body: "[analysis]\ntiny_step_ratio = 3.0\nlarge_step_ratio = 2.0\n",
			want: []string{"analysis.large_step_ratio must be greater than analysis.tiny_step_ratio"},
		},
		{
			name: "bar widths",
			body: "[output]\nbar_width = 20\nmin_bar_width = 30\n",
			want: []string{"output.min_bar_width must not exceed output.bar_width"},
		},
		{
			name: "service url",
			body: "[kaltura]\nservice_url = \"not a url\"\n",
			want: []string{"kaltura.service_url must be a valid URL"},
		},
		{
			name: "log level",
			body: "[logging]\nlevel = \"verbose\"\n",
			want: []string{"logging.level must be one of"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, _, err := config.Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, services.ErrConfiguration) {
				t.Fatalf("expected configuration marker, got %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(err.Error(), want) {
					t.Fatalf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	isolate(t)
	_, _, _, err := config.Load(writeConfig(t, "[kaltura]\nparter_id = 5\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown keys") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadNormalizesCase(t *testing.T) {
	isolate(t)
	cfg, _, _, err := config.Load(writeConfig(t, "[output]\nformat = \"JSON\"\ncolor = \" Never \"\n[logging]\nlevel = \"WARNING\"\nformat = \"Json\"\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Format != "json" || cfg.Output.Color != "never" {
		t.Fatalf("output = %+v", cfg.Output)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
}

func TestInvalidPartnerEnv(t *testing.T) {
	isolate(t)
	t.Setenv(config.EnvPartnerID, "abc")
	if _, _, _, err := config.Load(""); err == nil || !strings.Contains(err.Error(), config.EnvPartnerID) {
		t.Fatalf("expected partner id env error, got %v", err)
	}
}

func TestSampleConfigRoundTrip(t *testing.T) {
	isolate(t)
	var decoded config.Config
	if err := toml.Unmarshal([]byte(config.SampleConfig()), &decoded); err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(context.Background(), path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Analysis != config.Default().Analysis {
		t.Fatalf("sample analysis differs from defaults: %+v", cfg.Analysis)
	}
	if cfg.Output != config.Default().Output {
		t.Fatalf("sample output differs from defaults: %+v", cfg.Output)
	}
}

func TestOptionsMapping(t *testing.T) {
	cfg := config.Default()
	cfg.Analysis.NearDuplicateThreshold = 0.2
	cfg.Output.BarWidth = 40
	if got := cfg.AnalysisOptions().NearDuplicateThreshold; got != 0.2 {
		t.Fatalf("analysis threshold = %v", got)
	}
	lo := cfg.LadderOptions()
	if lo.BarWidth != 40 || lo.TinyStepRatio != cfg.Analysis.TinyStepRatio {
		t.Fatalf("ladder options = %+v", lo)
	}
	if cfg.SessionExpiry().Hours() != 24 {
		t.Fatalf("session expiry = %v", cfg.SessionExpiry())
	}
}
