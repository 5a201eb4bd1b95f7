package report

import (
	"testing"

	"flavorcheck/internal/kaltura"
	"flavorcheck/internal/normalize"
)

func TestDurationMillis(t *testing.T) {
	absent := normalize.Field{}
	tests := []struct {
		name      string
		ms, dur   normalize.Field
		media     bool
		want      int64
		wantBasis string
		wantOK    bool
	}{
		{"ms field wins", normalize.Of(4500), normalize.Of(9999), true, 4500, DurationFromMsField, true},
		{"large raw is millis", absent, normalize.Of(125000), false, 125000, DurationAsMillis, true},
		{"small raw with media is seconds", absent, normalize.Of("95"), true, 95000, DurationAsSeconds, true},
		{"small raw without media passes through", absent, normalize.Of(95), false, 95, DurationRaw, true},
		{"zero ms falls back to duration", normalize.Of(0), normalize.Of(12), true, 12000, DurationAsSeconds, true},
		{"missing", absent, absent, true, 0, "", false},
		{"malformed", absent, normalize.Of("n/a"), true, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, basis, ok := DurationMillis(tt.ms, tt.dur, tt.media)
			if got != tt.want || basis != tt.wantBasis || ok != tt.wantOK {
				t.Fatalf("DurationMillis = (%d, %q, %v), want (%d, %q, %v)", got, basis, ok, tt.want, tt.wantBasis, tt.wantOK)
			}
		})
	}
}

func TestSummarizeEntryEnums(t *testing.T) {
	entry := &kaltura.Entry{
		ID:         "0_x",
		PartnerID:  normalize.Of("99"),
		Type:       normalize.Of("externalMedia.externalMedia"),
		Status:     normalize.Of(42),
		SourceType: normalize.Field{},
	}
	s := summarizeEntry(entry, nil, 1)
	if s.PartnerID != 99 {
		t.Fatalf("partner = %d", s.PartnerID)
	}
	if s.Type.Label != "EXTERNAL_MEDIA" || s.Type.Code != "externalMedia.externalMedia" {
		t.Fatalf("type = %+v", s.Type)
	}
	if s.Status.Label != "UNKNOWN(42)" {
		t.Fatalf("status = %+v", s.Status)
	}
	if s.SourceType.Label != "UNKNOWN(none)" || s.SourceType.String() != "UNKNOWN(none)" {
		t.Fatalf("source type = %+v", s.SourceType)
	}
	want := "https://cdnapisec.kaltura.com/p/99/sp/9900/playManifest/entryId/0_x/format/download/protocol/https/flavorParamIds/0"
	if s.SourceDownloadURL != want {
		t.Fatalf("source url = %s", s.SourceDownloadURL)
	}
	if s.CreatedAt != nil || s.DurationMS != nil {
		t.Fatalf("absent fields should stay nil: %+v", s)
	}
}
