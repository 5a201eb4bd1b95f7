package report

import (
	"time"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/ladder"
	"flavorcheck/internal/profile"
	"flavorcheck/internal/quality"
)

// Report is the complete result of inspecting one entry.
type Report struct {
	RunID       string               `json:"run_id"`
	GeneratedAt time.Time            `json:"generated_at"`
	Entry       EntrySummary         `json:"entry"`
	Profile     *ProfileSummary      `json:"conversion_profile"`
	Flavors     []flavor.Classified  `json:"flavors"`
	Analysis    profile.Analysis     `json:"analysis"`
	Ladder      ladder.Ladder        `json:"ladder"`
	Quality     []quality.Assessment `json:"quality"`
	Skipped     []SkippedGroup       `json:"skipped"`
	Issues      []Issue              `json:"issues"`
	Warnings    []profile.Warning    `json:"warnings"`
}

// Enum pairs a resolved label with the raw code it came from.
type Enum struct {
	Label string `json:"label"`
	Code  string `json:"code"`
}

// String renders "LABEL (code)".
func (e Enum) String() string {
	if e.Code == "" {
		return e.Label
	}
	return e.Label + " (" + e.Code + ")"
}

// ProfileSummary describes the conversion profile of the entry together with
// the targets of its enabled flavor params.
type ProfileSummary struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Type            Enum            `json:"type"`
	Status          Enum            `json:"status"`
	IsDefault       bool            `json:"is_default"`
	EnabledParamIDs []int           `json:"enabled_param_ids"`
	Targets         []flavor.Target `json:"targets"`
}

// Flavor returns the classified flavor carrying assetID.
func (r *Report) Flavor(assetID string) (flavor.Classified, bool) {
	for _, f := range r.Flavors {
		if f.AssetID == assetID {
			return f, true
		}
	}
	return flavor.Classified{}, false
}

// Source returns the uploaded source flavor, when present.
func (r *Report) Source() (flavor.Classified, bool) {
	for _, f := range r.Flavors {
		if f.Category == flavor.CategorySource {
			return f, true
		}
	}
	return flavor.Classified{}, false
}

// Target looks up the flavor params target for paramID.
func (p *ProfileSummary) Target(paramID int) (flavor.Target, bool) {
	if p == nil {
		return flavor.Target{}, false
	}
	for _, t := range p.Targets {
		if t.ParamID == paramID {
			return t, true
		}
	}
	return flavor.Target{}, false
}
