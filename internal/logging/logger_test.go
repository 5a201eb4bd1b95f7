package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"flavorcheck/internal/logging"
	"flavorcheck/internal/services"
)

func TestConsoleLoggerOmitsSourceForInfo(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("message without caller", logging.String("entry_id", "0_abc"))

	out := buf.String()
	if strings.Contains(out, ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", out)
	}
	if !strings.Contains(out, "INFO") || !strings.Contains(out, "entry_id=0_abc") {
		t.Fatalf("unexpected console line %q", out)
	}
}

func TestConsoleLoggerIncludesSourceForDebug(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Level: "debug", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Debug("message with caller")
	if !strings.Contains(buf.String(), "logger_test.go:") {
		t.Fatalf("expected caller information in debug logs, got %q", buf.String())
	}
}

func TestConsoleLoggerPrefixesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "kaltura").Info("page fetched", logging.Int("page", 2), logging.String("note", "two words"))
	out := buf.String()
	if !strings.Contains(out, "kaltura: page fetched") {
		t.Fatalf("expected component prefix, got %q", out)
	}
	if strings.Contains(out, "component=") {
		t.Fatalf("component should not repeat as a field, got %q", out)
	}
	if !strings.Contains(out, `note="two words"`) || !strings.Contains(out, "page=2") {
		t.Fatalf("unexpected fields %q", out)
	}
}

func TestJSONLoggerUsesShortKeys(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "json", Level: "info", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("slow response", logging.Int("attempt", 2))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode json line: %v (%q)", err, buf.String())
	}
	if line["msg"] != "slow response" || line["level"] != "warn" {
		t.Fatalf("unexpected json line %v", line)
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", line)
	}
}

func TestLoggerMirrorsToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "flavorcheck.log")
	logger, err := logging.New(logging.Options{Writer: &buf, FilePath: path})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("mirrored")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"msg":"mirrored"`) {
		t.Fatalf("expected json line in file, got %q", data)
	}
	if !strings.Contains(buf.String(), "mirrored") {
		t.Fatalf("expected console line, got %q", buf.String())
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestParseLevel(t *testing.T) {
	if logging.ParseLevel("DEBUG").String() != "DEBUG" {
		t.Fatal("expected debug level")
	}
	if logging.ParseLevel("bogus").String() != "INFO" {
		t.Fatal("unknown level should map to info")
	}
	if logging.ValidLevel("bogus") || !logging.ValidLevel("warn") {
		t.Fatal("unexpected ValidLevel result")
	}
}

func TestWithContextAddsFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	ctx := services.WithEntryID(context.Background(), "1_xyz")
	ctx = services.WithPartnerID(ctx, 42)
	ctx = services.WithRequestID(ctx, "run-1")
	logging.WithContext(ctx, logger).Info("hello")

	out := buf.String()
	for _, want := range []string{"entry_id=1_xyz", "partner_id=42", "correlation_id=run-1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestWarnWithContextInjectsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.WarnWithContext(logger, "flavor params unavailable", "flavor_params_fetch_failed", logging.String(logging.FieldImpact, "skip reasons are generic"))
	out := buf.String()
	if !strings.Contains(out, "event_type=flavor_params_fetch_failed") || !strings.Contains(out, "error_hint=") {
		t.Fatalf("expected injected fields, got %q", out)
	}
	if strings.Count(out, "impact=") != 1 {
		t.Fatalf("caller impact should not be duplicated, got %q", out)
	}
	logging.WarnWithContext(nil, "ignored", "x")
}

func TestNopLoggerDiscards(t *testing.T) {
	logger := logging.NewNop()
	if logger.Enabled(context.Background(), 8) {
		t.Fatal("nop logger should never be enabled")
	}
}

func TestCredentialsAreRedacted(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			var buf bytes.Buffer
			logger, err := logging.New(logging.Options{Format: format, Writer: &buf})
			if err != nil {
				t.Fatalf("New returned error: %v", err)
			}
			logger.Info("session started", logging.String("ks", "djJ8MTIzNHw"), logging.String("secret", "abc123"), logging.Int("partner_id", 1234))
			out := buf.String()
			if strings.Contains(out, "djJ8MTIzNHw") || strings.Contains(out, "abc123") {
				t.Fatalf("credential leaked into log: %q", out)
			}
			if !strings.Contains(out, "[redacted]") || !strings.Contains(out, "1234") {
				t.Fatalf("unexpected log line %q", out)
			}
		})
	}
}

func TestErrorWithContextInjectsHint(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.ErrorWithContext(logger, "inspection failed", "api_call_failure", logging.ParamID(487041))
	out := buf.String()
	for _, want := range []string{"ERROR", "event_type=api_call_failure", "error_hint=", "flavor_params_id=487041"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "impact=") {
		t.Fatalf("errors should not carry a default impact, got %q", out)
	}
}
