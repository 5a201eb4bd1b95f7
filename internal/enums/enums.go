package enums

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Domain names one closed platform enumeration.
type Domain string

const (
	EntryStatus   Domain = "entry_status"
	EntryType     Domain = "entry_type"
	SourceType    Domain = "source_type"
	ProfileType   Domain = "profile_type"
	ProfileStatus Domain = "profile_status"
	FlavorStatus  Domain = "flavor_status"
)

// Flavor asset status codes referenced by the classifier.
const (
	FlavorStatusError          = -1
	FlavorStatusQueued         = 0
	FlavorStatusConverting     = 1
	FlavorStatusReady          = 2
	FlavorStatusDeleted        = 3
	FlavorStatusNotApplicable  = 4
	FlavorStatusTemp           = 5
	FlavorStatusWaitForConvert = 6
	FlavorStatusImporting      = 7
	FlavorStatusValidating     = 8
	FlavorStatusExporting      = 9
)

// Entry is one row of a domain table.
type Entry struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
}

var tables = map[Domain][]Entry{
	EntryStatus: {
		{-2, "ERROR_IMPORTING"},
		{-1, "ERROR_CONVERTING"},
		{0, "IMPORT"},
		{1, "PRECONVERT"},
		{2, "READY"},
		{3, "DELETED"},
		{4, "PENDING"},
		{5, "MODERATE"},
		{6, "BLOCKED"},
		{7, "NO_CONTENT"},
	},
	EntryType: {
		{-1, "AUTOMATIC"},
		{1, "MEDIA_CLIP"},
		{2, "MIX"},
		{5, "PLAYLIST"},
		{6, "DATA"},
		{7, "LIVE_STREAM"},
		{8, "LIVE_CHANNEL"},
		{10, "DOCUMENT"},
	},
	SourceType: {
		{1, "FILE"},
		{2, "WEBCAM"},
		{5, "URL"},
		{6, "SEARCH_PROVIDER"},
		{29, "AKAMAI_LIVE"},
		{30, "MANUAL_LIVE_STREAM"},
		{31, "AKAMAI_UNIVERSAL_LIVE"},
		{32, "LIVE_STREAM"},
		{33, "LIVE_CHANNEL"},
		{34, "RECORDED_LIVE"},
		{35, "CLIP"},
		{36, "KALTURA_RECORDED_LIVE"},
		{37, "LECTURE_CAPTURE"},
		{42, "LIVE_STREAM_ONTEXTDATA_CAPTIONS"},
	},
	ProfileType: {
		{1, "MEDIA"},
		{2, "LIVE_STREAM"},
	},
	ProfileStatus: {
		{1, "DISABLED"},
		{2, "ENABLED"},
		{3, "DELETED"},
	},
	FlavorStatus: {
		{FlavorStatusError, "ERROR"},
		{FlavorStatusQueued, "QUEUED"},
		{FlavorStatusConverting, "CONVERTING"},
		{FlavorStatusReady, "READY"},
		{FlavorStatusDeleted, "DELETED"},
		{FlavorStatusNotApplicable, "NOT_APPLICABLE"},
		{FlavorStatusTemp, "TEMP"},
		{FlavorStatusWaitForConvert, "WAIT_FOR_CONVERT"},
		{FlavorStatusImporting, "IMPORTING"},
		{FlavorStatusValidating, "VALIDATING"},
		{FlavorStatusExporting, "EXPORTING"},
	},
}

// Plugin-provided values arrive as dotted strings instead of integers.
var aliases = map[Domain]map[string]string{
	EntryStatus: {
		"virusScan.ScanFailure": "SCAN_FAILURE",
		"virusScan.Infected":    "INFECTED",
	},
	EntryType: {
		"conference.CONFERENCE_ENTRY_SERVER": "CONFERENCE_ENTRY_SERVER",
		"externalMedia.externalMedia":        "EXTERNAL_MEDIA",
		"sip.SIP_ENTRY_SERVER":               "SIP_ENTRY_SERVER",
	},
	SourceType: {
		"limeLight.LIVE_STREAM": "LIMELIGHT_LIVE",
		"velocix.VELOCIX_LIVE":  "VELOCIX_LIVE",
	},
}

const unknownPrefix = "UNKNOWN("

// Domains lists every known domain in a stable order.
func Domains() []Domain {
	out := make([]Domain, 0, len(tables))
	for d := range tables {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseDomain resolves a user-supplied domain name.
func ParseDomain(name string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(name)))
	_, ok := tables[d]
	return d, ok
}

// Table returns a copy of the domain's code table ordered by code.
func Table(domain Domain) []Entry {
	rows := tables[domain]
	out := make([]Entry, len(rows))
	copy(out, rows)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Label maps a code to its label. Codes outside the table resolve to
// "UNKNOWN(<code>)" so newer platform values never abort a run.
func Label(domain Domain, code int) string {
	for _, e := range tables[domain] {
		if e.Code == code {
			return e.Label
		}
	}
	return unknownLabel(strconv.Itoa(code))
}

// LabelRaw maps a code as it appears on the wire, either a decimal string or
// a plugin alias such as "virusScan.Infected".
func LabelRaw(domain Domain, raw string) string {
	raw = strings.TrimSpace(raw)
	if code, err := strconv.Atoi(raw); err == nil {
		return Label(domain, code)
	}
	if label, ok := aliases[domain][raw]; ok {
		return label
	}
	return unknownLabel(raw)
}

// Code maps a label back to its code. Labels produced by Label for unknown
// codes round-trip to the original code.
func Code(domain Domain, label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	for _, e := range tables[domain] {
		if e.Label == label {
			return e.Code, true
		}
	}
	if inner, ok := strings.CutPrefix(label, unknownPrefix); ok {
		if code, err := strconv.Atoi(strings.TrimSuffix(inner, ")")); err == nil {
			return code, true
		}
	}
	return 0, false
}

// Known reports whether code is part of the domain's table.
func Known(domain Domain, code int) bool {
	for _, e := range tables[domain] {
		if e.Code == code {
			return true
		}
	}
	return false
}

// IsUnknown reports whether label is an UNKNOWN(<code>) placeholder.
func IsUnknown(label string) bool {
	return strings.HasPrefix(label, unknownPrefix)
}

// Display renders a label for humans: "NOT_APPLICABLE" becomes "Not Applicable".
// Unknown placeholders are returned unchanged.
func Display(label string) string {
	if label == "" || IsUnknown(label) {
		return label
	}
	return cases.Title(language.Und).String(strings.ToLower(strings.ReplaceAll(label, "_", " ")))
}

func unknownLabel(code string) string {
	return fmt.Sprintf("%s%s)", unknownPrefix, code)
}
