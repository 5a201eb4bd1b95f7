package quality_test

import (
	"testing"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/normalize"
	"flavorcheck/internal/quality"
)

func TestExpectedKbps(t *testing.T) {
	tests := []struct {
		codec  string
		height int
		want   int
	}{
		{"hvc1", 360, 700},
		{"hvc1", 720, 2100},
		{"hevc", 2160, 4200},
		{"av01", 480, 1000},
		{"av01", 1080, 2800},
		{"avc1", 540, 1800},
		{"avc1", 1080, 4000},
		{"vp09", 1440, 5000},
		{"", 240, 1000},
	}
	for _, tt := range tests {
		if got := quality.ExpectedKbps(tt.codec, tt.height); got != tt.want {
			t.Fatalf("ExpectedKbps(%q, %d) = %d, want %d", tt.codec, tt.height, got, tt.want)
		}
	}
}

func TestBaselineLabel(t *testing.T) {
	for codec, want := range map[string]string{
		"hvc1": "HEVC baseline",
		"av01": "AV1 baseline",
		"vp09": "VP9 baseline",
		"vp8":  "VP8 baseline",
		"avc1": "H.264 baseline",
		"":     "H.264 baseline",
	} {
		if got := quality.BaselineLabel(codec); got != want {
			t.Fatalf("BaselineLabel(%q) = %q, want %q", codec, got, want)
		}
	}
}

func TestLowHigh(t *testing.T) {
	// 1280x720 @ 30fps: 2000 kbps is ~0.072 bpp.
	if low, high := quality.LowHigh("avc1", 2000, 1280, 720, 30); !low || high {
		t.Fatalf("expected low for H.264 at 0.072 bpp, got low=%v high=%v", low, high)
	}
	if low, high := quality.LowHigh("hvc1", 2000, 1280, 720, 30); low || high {
		t.Fatalf("expected HEVC at 0.072 bpp to be fine, got low=%v high=%v", low, high)
	}
	if _, high := quality.LowHigh("avc1", 12000, 1280, 720, 30); !high {
		t.Fatal("expected 12 Mbps at 720p30 to be flagged high")
	}
	if low, high := quality.LowHigh("avc1", 2000, 1280, 720, 0); low || high {
		t.Fatal("unknown frame rate must not flag")
	}
}

func TestDimensionFlags(t *testing.T) {
	if flags := quality.DimensionFlags(1920, 1080); len(flags) != 1 || flags[0] != quality.FlagNonMod16 {
		t.Fatalf("1080 is not a multiple of 16, got %v", flags)
	}
	if flags := quality.DimensionFlags(1280, 720); len(flags) != 0 {
		t.Fatalf("expected no flags for 1280x720, got %v", flags)
	}
	if flags := quality.DimensionFlags(1280, 400); len(flags) != 1 || flags[0] != quality.FlagOddAspect {
		t.Fatalf("expected odd aspect for 1280x400, got %v", flags)
	}
	if flags := quality.DimensionFlags(0, 720); flags != nil {
		t.Fatalf("unknown width must not flag, got %v", flags)
	}
}

func classified(paramID, status, bitrate, w, h int, fps float64, tags string) flavor.Classified {
	return flavor.Classify(flavor.Record{
		ID:             "0_x",
		FlavorParamsID: normalize.Of(paramID),
		Status:         normalize.Of(status),
		Bitrate:        normalize.Of(bitrate),
		Width:          normalize.Of(w),
		Height:         normalize.Of(h),
		FrameRate:      normalize.Of(fps),
		Tags:           normalize.Of(tags),
	}, true)
}

func TestAssess(t *testing.T) {
	a := quality.Assess(classified(7, 2, 2000, 1280, 720, 30, "web,h264"), 480)
	if a.ExpectedKbps != 2500 || a.DeltaPercent == nil || *a.DeltaPercent != -20 {
		t.Fatalf("unexpected expectation %+v", a)
	}
	if a.BitsPerPixel == nil || *a.BitsPerPixel != 0.072 {
		t.Fatalf("unexpected bpp %v", a.BitsPerPixel)
	}
	if !a.HasFlag(quality.FlagTooLow) || !a.HasFlag(quality.FlagAboveSourceHt) {
		t.Fatalf("unexpected flags %v", a.Flags)
	}
	if len(a.Explanations) == 0 {
		t.Fatal("expected an explanation for above-source height")
	}

	unknown := quality.Assess(classified(8, 2, 900, 0, 0, 0, ""), 0)
	if unknown.ExpectedKbps != 0 || unknown.DeltaPercent != nil || unknown.BitsPerPixel != nil {
		t.Fatalf("expected no expectation without dimensions, got %+v", unknown)
	}
	if len(unknown.Flags) != 0 {
		t.Fatalf("expected no flags, got %v", unknown.Flags)
	}
}

func TestIssues(t *testing.T) {
	errRec := flavor.Record{
		ID:             "0_err",
		FlavorParamsID: normalize.Of(3),
		Status:         normalize.Of(-1),
		ErrorCode:      normalize.Of("4001"),
	}
	flavors := []flavor.Classified{
		flavor.Classify(errRec, true),
		classified(7, 2, 2000, 1280, 720, 30, "h264"),
		classified(9, 2, 2000, 1280, 720, 30, "h265"),
	}
	issues := quality.Issues(flavors)
	if len(issues) != 2 {
		t.Fatalf("expected two issues, got %+v", issues)
	}
	if issues[0].Kind != quality.IssueError || issues[0].AssetID != "0_err" {
		t.Fatalf("unexpected first issue %+v", issues[0])
	}
	if issues[1].Kind != quality.IssueLowBPP || issues[1].ParamID != 7 {
		t.Fatalf("unexpected second issue %+v", issues[1])
	}
}
