package report

import "flavorcheck/internal/flavor"

// SkippedGroup collects NOT_APPLICABLE flavors sharing one skip reason.
type SkippedGroup struct {
	Reason   string   `json:"reason"`
	ParamIDs []int    `json:"param_ids"`
	AssetIDs []string `json:"asset_ids"`
}

// GroupSkipped groups NOT_APPLICABLE flavors by reason in first-seen order.
// The grouping key ignores per-record normalization notes.
func GroupSkipped(flavors []flavor.Classified) []SkippedGroup {
	groups := []SkippedGroup{}
	index := map[string]int{}
	for _, f := range flavors {
		if f.Category != flavor.CategoryNotApplicable {
			continue
		}
		reason := f.BaseReason()
		i, ok := index[reason]
		if !ok {
			i = len(groups)
			index[reason] = i
			groups = append(groups, SkippedGroup{Reason: reason})
		}
		groups[i].ParamIDs = append(groups[i].ParamIDs, f.ParamID)
		groups[i].AssetIDs = append(groups[i].AssetIDs, f.AssetID)
	}
	return groups
}
