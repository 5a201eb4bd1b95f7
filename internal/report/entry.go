package report

import (
	"time"

	"flavorcheck/internal/enums"
	"flavorcheck/internal/flavor"
	"flavorcheck/internal/kaltura"
	"flavorcheck/internal/normalize"
	"flavorcheck/internal/textutil"
)

// Duration bases record which heuristic produced DurationMS.
const (
	DurationFromMsField = "ms_duration"
	DurationAsMillis    = "duration_ms"
	DurationAsSeconds   = "duration_seconds"
	DurationRaw         = "duration_raw"
)

// Raw durations at or above this value are already milliseconds.
const millisThreshold = 10000

// EntrySummary is the overview block of a report.
type EntrySummary struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	PartnerID           int        `json:"partner_id"`
	UserID              string     `json:"user_id,omitempty"`
	Type                Enum       `json:"type"`
	Status              Enum       `json:"status"`
	SourceType          Enum       `json:"source_type"`
	DurationMS          *int64     `json:"duration_ms"`
	DurationBasis       string     `json:"duration_basis,omitempty"`
	CreatedAt           *time.Time `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at"`
	Width               int        `json:"width"`
	Height              int        `json:"height"`
	ConversionProfileID int        `json:"conversion_profile_id"`
	Tags                string     `json:"tags,omitempty"`
	SourceDownloadURL   string     `json:"source_download_url"`
}

// Duration returns the entry duration, false when unknown.
func (e EntrySummary) Duration() (time.Duration, bool) {
	if e.DurationMS == nil {
		return 0, false
	}
	return time.Duration(*e.DurationMS) * time.Millisecond, true
}

func summarizeEntry(entry *kaltura.Entry, records []flavor.Record, fallbackPartner int) EntrySummary {
	s := EntrySummary{
		ID:          entry.ID,
		Name:        textutil.CleanText(entry.Name),
		Description: textutil.Truncate(textutil.CleanText(entry.Description), 200),
		UserID:      entry.UserID,
		Type:        enumOf(enums.EntryType, entry.Type),
		Status:      enumOf(enums.EntryStatus, entry.Status),
		SourceType:  enumOf(enums.SourceType, entry.SourceType),
		CreatedAt:   unixTime(entry.CreatedAt),
		UpdatedAt:   unixTime(entry.UpdatedAt),
		Tags:        entry.Tags,
	}
	s.PartnerID, _ = normalize.NonNegativeInt(entry.PartnerID, 0)
	if s.PartnerID == 0 {
		s.PartnerID = fallbackPartner
	}
	s.Width, _ = normalize.NonNegativeInt(entry.Width, 0)
	s.Height, _ = normalize.NonNegativeInt(entry.Height, 0)
	s.ConversionProfileID, _ = normalize.NonNegativeInt(entry.ConversionProfileID, 0)
	if ms, basis, ok := DurationMillis(entry.MsDuration, entry.Duration, hasMedia(records)); ok {
		s.DurationMS = &ms
		s.DurationBasis = basis
	}
	s.SourceDownloadURL = kaltura.SourceDownloadURL(s.PartnerID, entry.ID)
	return s
}

// DurationMillis resolves an entry duration in milliseconds. The platform
// reports duration in seconds or milliseconds depending on context: a
// positive msDuration wins, raw values of 10000 or more are milliseconds,
// smaller values are seconds when the entry has real media tracks and are
// otherwise passed through unchanged.
func DurationMillis(msDuration, duration normalize.Field, media bool) (int64, string, bool) {
	if ms, outcome := normalize.NonNegativeInt(msDuration, 0); outcome == normalize.Parsed && ms > 0 {
		return int64(ms), DurationFromMsField, true
	}
	raw, outcome := normalize.NonNegativeInt(duration, 0)
	if outcome != normalize.Parsed {
		return 0, "", false
	}
	switch {
	case raw >= millisThreshold:
		return int64(raw), DurationAsMillis, true
	case media:
		return int64(raw) * 1000, DurationAsSeconds, true
	default:
		return int64(raw), DurationRaw, true
	}
}

func hasMedia(records []flavor.Record) bool {
	for _, rec := range records {
		if fps, ok, _ := normalize.OptionalFloat(rec.FrameRate); ok && fps > 0 {
			return true
		}
	}
	return false
}

func enumOf(domain enums.Domain, f normalize.Field) Enum {
	raw := normalize.Text(f)
	if raw == "" {
		return Enum{Label: enums.LabelRaw(domain, "none")}
	}
	if code, outcome := normalize.Int(f); outcome == normalize.Parsed {
		return Enum{Label: enums.Label(domain, code), Code: raw}
	}
	return Enum{Label: enums.LabelRaw(domain, raw), Code: raw}
}

func unixTime(f normalize.Field) *time.Time {
	sec, outcome := normalize.NonNegativeInt(f, 0)
	if outcome != normalize.Parsed || sec == 0 {
		return nil
	}
	t := time.Unix(int64(sec), 0).UTC()
	return &t
}
