package report

import (
	"fmt"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/profile"
	"flavorcheck/internal/quality"
	"flavorcheck/internal/textutil"
)

// Issue kinds raised from the profile analysis. Flavor-level kinds come from
// the quality package.
const (
	IssueMissingParams  = "missing_params"
	IssueNotInProfile   = "not_in_profile"
	IssueAboveSource    = "above_source_bitrate"
	IssueAboveSourceRes = "above_source_resolution"
	IssueNearDuplicate  = "near_duplicate"
	IssueUnconfigured   = "profile_unconfigured"
)

// Issue is one line of the issues section.
type Issue struct {
	Kind     string `json:"kind"`
	AssetID  string `json:"asset_id,omitempty"`
	ParamIDs []int  `json:"param_ids,omitempty"`
	Message  string `json:"message"`
}

// BuildIssues lists flavor errors and bitrate heuristics first, in flavor
// order, followed by the profile findings.
func BuildIssues(flavors []flavor.Classified, a profile.Analysis) []Issue {
	issues := []Issue{}
	for _, qi := range quality.Issues(flavors) {
		issues = append(issues, Issue{
			Kind:     qi.Kind,
			AssetID:  qi.AssetID,
			ParamIDs: []int{qi.ParamID},
			Message:  qi.Message,
		})
	}
	if a.Unconfigured {
		issues = append(issues, Issue{
			Kind:    IssueUnconfigured,
			Message: "Conversion profile has no enabled flavor params",
		})
	}
	if len(a.MissingParamIDs) > 0 {
		issues = append(issues, Issue{
			Kind:     IssueMissingParams,
			ParamIDs: a.MissingParamIDs,
			Message:  "Enabled in profile but no flavor produced: " + textutil.JoinInts(a.MissingParamIDs, ", "),
		})
	}
	if len(a.NotSeenParamIDs) > 0 {
		issues = append(issues, Issue{
			Kind:     IssueNotInProfile,
			ParamIDs: a.NotSeenParamIDs,
			Message:  "READY but not enabled in profile: " + textutil.JoinInts(a.NotSeenParamIDs, ", "),
		})
	}
	if len(a.AboveSource.ParamIDs) > 0 {
		issues = append(issues, Issue{
			Kind:     IssueAboveSource,
			ParamIDs: a.AboveSource.ParamIDs,
			Message: fmt.Sprintf("Bitrate above source (%d kbps): %s",
				a.AboveSource.SourceBitrate, textutil.JoinInts(a.AboveSource.ParamIDs, ", ")),
		})
	}
	if len(a.AboveSourceDimensions.ParamIDs) > 0 {
		issues = append(issues, Issue{
			Kind:     IssueAboveSourceRes,
			ParamIDs: a.AboveSourceDimensions.ParamIDs,
			Message: fmt.Sprintf("Target resolution above source %dx%d: %s",
				a.AboveSourceDimensions.SourceWidth, a.AboveSourceDimensions.SourceHeight,
				textutil.JoinInts(a.AboveSourceDimensions.ParamIDs, ", ")),
		})
	}
	for _, g := range a.NearDuplicateGroups {
		issues = append(issues, Issue{
			Kind:     IssueNearDuplicate,
			ParamIDs: g.ParamIDs,
			Message: fmt.Sprintf("Near-duplicate bitrates %s (%d-%d kbps, %.1f%% apart)",
				textutil.JoinInts(g.ParamIDs, ", "), g.MinBitrate, g.MaxBitrate, g.RelativeSpread*100),
		})
	}
	return issues
}
