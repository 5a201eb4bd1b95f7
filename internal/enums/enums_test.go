package enums_test

import (
	"testing"

	"flavorcheck/internal/enums"
)

func TestLabelKnownCodes(t *testing.T) {
	tests := []struct {
		domain enums.Domain
		code   int
		want   string
	}{
		{enums.FlavorStatus, -1, "ERROR"},
		{enums.FlavorStatus, 2, "READY"},
		{enums.FlavorStatus, 4, "NOT_APPLICABLE"},
		{enums.FlavorStatus, 9, "EXPORTING"},
		{enums.EntryStatus, -2, "ERROR_IMPORTING"},
		{enums.EntryStatus, 7, "NO_CONTENT"},
		{enums.EntryType, 1, "MEDIA_CLIP"},
		{enums.EntryType, 10, "DOCUMENT"},
		{enums.SourceType, 42, "LIVE_STREAM_ONTEXTDATA_CAPTIONS"},
		{enums.ProfileType, 2, "LIVE_STREAM"},
		{enums.ProfileStatus, 2, "ENABLED"},
	}
	for _, tt := range tests {
		if got := enums.Label(tt.domain, tt.code); got != tt.want {
			t.Fatalf("Label(%s, %d) = %q, want %q", tt.domain, tt.code, got, tt.want)
		}
	}
}

func TestLabelUnknownFailsSoft(t *testing.T) {
	if got := enums.Label(enums.FlavorStatus, 42); got != "UNKNOWN(42)" {
		t.Fatalf("unexpected unknown label %q", got)
	}
	if got := enums.Label(enums.Domain("nope"), 1); got != "UNKNOWN(1)" {
		t.Fatalf("unexpected label for unknown domain %q", got)
	}
	if !enums.IsUnknown(enums.Label(enums.EntryType, 3)) {
		t.Fatal("expected unknown entry type to be flagged")
	}
}

func TestLabelRawHandlesAliasesAndNumbers(t *testing.T) {
	tests := []struct {
		domain enums.Domain
		raw    string
		want   string
	}{
		{enums.EntryStatus, "2", "READY"},
		{enums.EntryStatus, " -1 ", "ERROR_CONVERTING"},
		{enums.EntryStatus, "virusScan.Infected", "INFECTED"},
		{enums.EntryType, "externalMedia.externalMedia", "EXTERNAL_MEDIA"},
		{enums.SourceType, "velocix.VELOCIX_LIVE", "VELOCIX_LIVE"},
		{enums.SourceType, "mystery.PLUGIN", "UNKNOWN(mystery.PLUGIN)"},
	}
	for _, tt := range tests {
		if got := enums.LabelRaw(tt.domain, tt.raw); got != tt.want {
			t.Fatalf("LabelRaw(%s, %q) = %q, want %q", tt.domain, tt.raw, got, tt.want)
		}
	}
}

func TestCodeRoundTripsEveryTableRow(t *testing.T) {
	for _, domain := range enums.Domains() {
		for _, row := range enums.Table(domain) {
			code, ok := enums.Code(domain, enums.Label(domain, row.Code))
			if !ok || code != row.Code {
				t.Fatalf("%s: round trip of %d gave %d (ok=%v)", domain, row.Code, code, ok)
			}
		}
	}
}

func TestCodeUnknownPlaceholderRoundTrips(t *testing.T) {
	code, ok := enums.Code(enums.FlavorStatus, enums.Label(enums.FlavorStatus, 77))
	if !ok || code != 77 {
		t.Fatalf("expected 77, got %d (ok=%v)", code, ok)
	}
	if _, ok := enums.Code(enums.FlavorStatus, "NOT_A_STATUS"); ok {
		t.Fatal("expected unknown label to be rejected")
	}
	if code, ok := enums.Code(enums.FlavorStatus, "ready"); !ok || code != 2 {
		t.Fatalf("expected case-insensitive lookup, got %d %v", code, ok)
	}
}

func TestTablesHaveUniqueCodesAndLabels(t *testing.T) {
	for _, domain := range enums.Domains() {
		codes := map[int]bool{}
		labels := map[string]bool{}
		for _, row := range enums.Table(domain) {
			if codes[row.Code] {
				t.Fatalf("%s: duplicate code %d", domain, row.Code)
			}
			if labels[row.Label] {
				t.Fatalf("%s: duplicate label %s", domain, row.Label)
			}
			codes[row.Code] = true
			labels[row.Label] = true
		}
	}
}

func TestParseDomain(t *testing.T) {
	if d, ok := enums.ParseDomain(" Flavor_Status "); !ok || d != enums.FlavorStatus {
		t.Fatalf("unexpected parse result %q %v", d, ok)
	}
	if _, ok := enums.ParseDomain("colors"); ok {
		t.Fatal("expected unknown domain to fail")
	}
	if len(enums.Domains()) != 6 {
		t.Fatalf("expected 6 domains, got %d", len(enums.Domains()))
	}
}

func TestDisplay(t *testing.T) {
	tests := map[string]string{
		"NOT_APPLICABLE":   "Not Applicable",
		"READY":            "Ready",
		"WAIT_FOR_CONVERT": "Wait For Convert",
		"UNKNOWN(12)":      "UNKNOWN(12)",
		"":                 "",
	}
	for in, want := range tests {
		if got := enums.Display(in); got != want {
			t.Fatalf("Display(%q) = %q, want %q", in, got, want)
		}
	}
}
