package flavor_test

import (
	"testing"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/normalize"
)

func TestDeriveVideoCodec(t *testing.T) {
	tests := map[string]string{
		"":                 "",
		"mobile,web,mbr":   "",
		"web,mbr,h265":     flavor.CodecHEVC,
		"HEVC,dash":        flavor.CodecHEVC,
		"ipad,iphone,h264": flavor.CodecH264,
		"avc1":             flavor.CodecH264,
		"web,av1":          flavor.CodecAV1,
		"vp9,webm":         flavor.CodecVP9,
		"vp8":              flavor.CodecVP8,
	}
	for tags, want := range tests {
		if got := flavor.DeriveVideoCodec(tags); got != want {
			t.Fatalf("DeriveVideoCodec(%q) = %q, want %q", tags, got, want)
		}
	}
}

func TestClassifyPrefersReportedCodec(t *testing.T) {
	rec := record("0_a", 4, 2, 900)
	rec.Tags = normalize.Of("h264,web")
	rec.VideoCodecID = normalize.Of("HEVC")
	if got := flavor.Classify(rec, true); got.VideoCodec != flavor.CodecHEVC {
		t.Fatalf("video codec = %q, want %q", got.VideoCodec, flavor.CodecHEVC)
	}
	rec.VideoCodecID = normalize.Field{}
	if got := flavor.Classify(rec, true); got.VideoCodec != flavor.CodecH264 {
		t.Fatalf("video codec = %q, want %q", got.VideoCodec, flavor.CodecH264)
	}
	if got := flavor.NormalizeCodec(" mpeg2 "); got != "mpeg2" {
		t.Fatalf("unexpected passthrough %q", got)
	}
}
