package profile

import (
	"flavorcheck/internal/flavor"
)

// DefaultNearDuplicateThreshold is the relative bitrate gap below which two
// adjacent ladder rungs are reported as near duplicates.
const DefaultNearDuplicateThreshold = 0.10

// Profile is a conversion profile as fetched for one entry.
type Profile struct {
	ID              int                   `json:"id"`
	Name            string                `json:"name"`
	Description     string                `json:"description,omitempty"`
	Type            string                `json:"type,omitempty"`
	Status          string                `json:"status,omitempty"`
	IsDefault       bool                  `json:"is_default"`
	EnabledParamIDs []int                 `json:"enabled_param_ids"`
	Targets         map[int]flavor.Target `json:"-"`
	// SourceWidth and SourceHeight are the entry dimensions, used when the
	// source flavor does not report its own.
	SourceWidth  int `json:"-"`
	SourceHeight int `json:"-"`
}

// Options tunes the analysis.
type Options struct {
	NearDuplicateThreshold float64
}

// DefaultOptions returns the analysis defaults.
func DefaultOptions() Options {
	return Options{NearDuplicateThreshold: DefaultNearDuplicateThreshold}
}

func (o Options) threshold() float64 {
	if o.NearDuplicateThreshold <= 0 || o.NearDuplicateThreshold >= 1 {
		return DefaultNearDuplicateThreshold
	}
	return o.NearDuplicateThreshold
}

// Warning codes reported alongside an Analysis.
const (
	WarnUnconfigured     = "profile_unconfigured"
	WarnNoSource         = "no_source_flavor"
	WarnMissingParams    = "missing_enabled_params"
	WarnSourceBitrate    = "source_bitrate_unknown"
	WarnAboveSource      = "above_source_bitrate"
	WarnAboveSourceSize  = "above_source_resolution"
	WarnNearDuplicates   = "near_duplicate_bitrates"
	WarnNotSeen          = "ready_flavors_outside_profile"
	WarnParamsUnresolved = "flavor_params_unresolved"
)

const (
	reasonNoSource         = "not evaluable: no source flavor present"
	reasonNoSourceBitrate  = "not evaluable: source bitrate unknown"
	reasonNoSourceSize     = "not evaluable: source dimensions unknown"
	reasonNoTargetMetadata = "not evaluable: no flavor params metadata"
)

// Warning is a configuration anomaly surfaced in the report without failing
// the run.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BitrateCheck is the outcome of comparing READY bitrates against the source.
// Evaluable is false when the source bitrate is unknown; ParamIDs is then
// empty and Reason says why.
type BitrateCheck struct {
	Evaluable     bool   `json:"evaluable"`
	SourceBitrate int    `json:"source_bitrate_kbps"`
	ParamIDs      []int  `json:"param_ids"`
	Reason        string `json:"reason,omitempty"`
}

// DimensionCheck compares enabled flavor params targets against the source
// resolution.
type DimensionCheck struct {
	Evaluable    bool   `json:"evaluable"`
	SourceWidth  int    `json:"source_width"`
	SourceHeight int    `json:"source_height"`
	ParamIDs     []int  `json:"param_ids"`
	Reason       string `json:"reason,omitempty"`
}

// DuplicateGroup is a run of adjacent READY rungs whose bitrates are too
// close together to be useful for adaptive switching.
type DuplicateGroup struct {
	ParamIDs       []int   `json:"param_ids"`
	Bitrates       []int   `json:"bitrates_kbps"`
	MinBitrate     int     `json:"min_bitrate_kbps"`
	MaxBitrate     int     `json:"max_bitrate_kbps"`
	Spread         int     `json:"spread_kbps"`
	RelativeSpread float64 `json:"relative_spread"`
}

// Analysis is the cross-reference of a profile against the classified
// flavors of one entry.
type Analysis struct {
	ProfileID             int              `json:"profile_id"`
	ProfileName           string           `json:"profile_name,omitempty"`
	Threshold             float64          `json:"near_duplicate_threshold"`
	EnabledParamIDs       []int            `json:"enabled_param_ids"`
	MissingParamIDs       []int            `json:"missing_param_ids"`
	NotSeenParamIDs       []int            `json:"not_seen_param_ids"`
	AboveSource           BitrateCheck     `json:"above_source"`
	AboveSourceDimensions DimensionCheck   `json:"above_source_dimensions"`
	NearDuplicateGroups   []DuplicateGroup `json:"near_duplicate_groups"`
	Unconfigured          bool             `json:"unconfigured"`
	Warnings              []Warning        `json:"warnings,omitempty"`
}

// IssueCount totals the ladder problems found: each missing, orphaned or
// above-source param counts once, each duplicate group counts once, and an
// unconfigured profile counts once.
func (a Analysis) IssueCount() int {
	n := len(a.MissingParamIDs) + len(a.NotSeenParamIDs) + len(a.AboveSource.ParamIDs) +
		len(a.AboveSourceDimensions.ParamIDs) + len(a.NearDuplicateGroups)
	if a.Unconfigured {
		n++
	}
	return n
}

// HasWarning reports whether a warning with code was raised.
func (a Analysis) HasWarning(code string) bool {
	for _, w := range a.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}
