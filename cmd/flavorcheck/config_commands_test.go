package main

import (
	"os"
	"path/filepath"
	"testing"

	"flavorcheck/internal/testsupport"
)

func TestConfigInitAndValidate(t *testing.T) {
	isolateEnv(t)

	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err := runCLI(t, []string{"config", "init", "--path", target}, "")
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("expected mode 0600, got %o", perm)
	}

	_, _, err = runCLI(t, []string{"config", "init", "--path", target}, "")
	if err == nil {
		t.Fatal("expected init to refuse an existing file")
	}
	requireContains(t, err.Error(), "--overwrite")

	if _, _, err := runCLI(t, []string{"config", "init", "--path", target, "--overwrite"}, ""); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}

	out, stderr, err := runCLI(t, []string{"config", "validate"}, target)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Config path: "+target)
	requireContains(t, out, "Credentials: no")
	requireContains(t, out, "Configuration valid")
	requireContains(t, stderr, "kaltura.admin_secret")
}

func TestConfigValidateWithCredentials(t *testing.T) {
	isolateEnv(t)
	path := testsupport.WriteConfig(t, testsupport.NewConfig(t))

	out, _, err := runCLI(t, []string{"config", "validate"}, path)
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Credentials: yes")
}

func TestConfigValidateDefaultsWhenMissing(t *testing.T) {
	isolateEnv(t)

	out, _, err := runCLI(t, []string{"config", "validate"}, "")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "defaults were used")
}

func TestConfigValidateRejectsBadValues(t *testing.T) {
	isolateEnv(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"yaml\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, err := runCLI(t, []string{"config", "validate"}, path)
	if err == nil {
		t.Fatal("expected validation error")
	}
	requireContains(t, err.Error(), "output.format")
}

func TestRootRejectsBadLogLevel(t *testing.T) {
	isolateEnv(t)
	path := testsupport.WriteConfig(t, testsupport.NewConfig(t))

	_, _, err := runCLI(t, []string{"--log-level", "loud", "config", "validate"}, path)
	if err == nil {
		t.Fatal("expected error for unknown log level")
	}
	requireContains(t, err.Error(), "--log-level")
}
