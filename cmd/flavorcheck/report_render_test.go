package main

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/ladder"
	"flavorcheck/internal/profile"
	"flavorcheck/internal/report"
)

func minimalReport() *report.Report {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	flavors := []flavor.Classified{
		{AssetID: "0_src", ParamID: 0, Label: "READY", StatusCode: 2, Category: flavor.CategorySource, Bitrate: 3000, Width: 1920, Height: 1080, SizeKB: 2048, DownloadURL: "https://cdn.test/0_src.mp4"},
		{AssetID: "0_low", ParamID: 11, Label: "READY", StatusCode: 2, Category: flavor.CategoryReady, Bitrate: 400, Width: 640, Height: 360, DownloadURL: "https://cdn.test/0_low.mp4"},
	}
	analysis := profile.Analysis{
		MissingParamIDs:     []int{},
		NotSeenParamIDs:     []int{11},
		NearDuplicateGroups: []profile.DuplicateGroup{},
		Unconfigured:        true,
		Threshold:           0.1,
	}
	return &report.Report{
		RunID:       "run-1",
		GeneratedAt: created,
		Entry: report.EntrySummary{
			ID:         "0_entry",
			Name:       "Demo",
			PartnerID:  99,
			Type:       report.Enum{Label: "MEDIA_CLIP", Code: "1"},
			Status:     report.Enum{Label: "READY", Code: "2"},
			SourceType: report.Enum{Label: "FILE", Code: "1"},
			CreatedAt:  &created,
		},
		Flavors:  flavors,
		Analysis: analysis,
		Ladder:   ladder.Build(flavors, analysis, ladder.Options{BarWidth: 20}),
		Skipped:  []report.SkippedGroup{},
		Issues:   report.BuildIssues(flavors, analysis),
		Warnings: []profile.Warning{{Code: report.WarnNoProfile, Message: "Entry has no conversion profile"}},
	}
}

func TestRenderReportWithoutProfile(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2024, 1, 9, 3, 4, 5, 0, time.UTC)
	if err := renderReport(&buf, minimalReport(), renderOptions{Now: now}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	requireContains(t, out, "entry has no conversion profile")
	requireContains(t, out, "2024-01-02 03:04:05 UTC (1 week ago)")
	requireContains(t, out, fmt.Sprintf("%-*s unknown", fieldLabelWidth, "Duration:"))
	requireContains(t, out, "READY but not enabled in profile: 11")
	requireContains(t, out, "no_conversion_profile")
	requireContains(t, out, "2.1 MB")
	requireContains(t, out, strings.Repeat(barGlyph, 20))
	requireNotContains(t, out, "== Skipped")
	requireNotContains(t, out, "https://cdn.test/")
	requireNotContains(t, out, "\x1b[")
}

func TestRenderReportIncludesURLsAndColor(t *testing.T) {
	var buf bytes.Buffer
	if err := renderReport(&buf, minimalReport(), renderOptions{Colorize: true, IncludeURLs: true}); err != nil {
		t.Fatalf("render: %v", err)
	}
	out := buf.String()
	requireContains(t, out, "https://cdn.test/0_low.mp4")
	requireContains(t, out, "\x1b[")
}

func TestRenderReportEmptyLadder(t *testing.T) {
	rep := minimalReport()
	rep.Flavors = nil
	rep.Ladder = ladder.Build(nil, rep.Analysis, ladder.DefaultOptions())
	var buf bytes.Buffer
	if err := renderReport(&buf, rep, renderOptions{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	requireContains(t, buf.String(), "No playable rungs found.")
	requireContains(t, buf.String(), "No flavor assets.")
}

func TestShouldColorize(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var buf bytes.Buffer
	if !shouldColorize("always", &buf) {
		t.Fatal("always should colorize")
	}
	if shouldColorize("never", &buf) {
		t.Fatal("never should not colorize")
	}
	if shouldColorize("auto", &buf) {
		t.Fatal("auto should not colorize a buffer")
	}
}

func TestRenderStatusLinePlain(t *testing.T) {
	got := renderStatusLine("Missing params", statusWarn, "1, 2", newPalette(false))
	want := "  Missing params:          [WARN] 1, 2"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFetchProgressNilIsNoop(t *testing.T) {
	var p *fetchProgress
	p.flavorPage(1, 10, 20)
	p.params(0, 3)
	p.finish()
	if newFetchProgress(&bytes.Buffer{}, false, false) != nil {
		t.Fatal("disabled progress should be nil")
	}
}
