package profile

import (
	"fmt"
	"slices"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/textutil"
)

// Rung is one READY bitrate considered for near-duplicate grouping.
type Rung struct {
	ParamID int
	Bitrate int
}

// Analyze cross-references p against flavors. It never fails: an empty
// profile produces empty sets and the Unconfigured flag.
func Analyze(p Profile, flavors []flavor.Classified, opts Options) Analysis {
	a := Analysis{
		ProfileID:       p.ID,
		ProfileName:     p.Name,
		Threshold:       opts.threshold(),
		EnabledParamIDs: dedupe(p.EnabledParamIDs),
		MissingParamIDs: []int{},
		NotSeenParamIDs: []int{},
	}

	seen := make(map[int]struct{}, len(flavors))
	for _, f := range flavors {
		if f.ParamID != flavor.UnknownParamID {
			seen[f.ParamID] = struct{}{}
		}
	}
	enabled := make(map[int]struct{}, len(a.EnabledParamIDs))
	for _, id := range a.EnabledParamIDs {
		enabled[id] = struct{}{}
		if _, ok := seen[id]; !ok {
			a.MissingParamIDs = append(a.MissingParamIDs, id)
		}
	}

	var rungs []Rung
	for _, f := range flavors {
		if f.Category != flavor.CategoryReady {
			continue
		}
		rungs = append(rungs, Rung{ParamID: f.ParamID, Bitrate: f.Bitrate})
		if _, ok := enabled[f.ParamID]; !ok && !slices.Contains(a.NotSeenParamIDs, f.ParamID) {
			a.NotSeenParamIDs = append(a.NotSeenParamIDs, f.ParamID)
		}
	}
	slices.Sort(a.NotSeenParamIDs)

	source, hasSource := findSource(flavors)
	a.AboveSource = checkBitrate(source, hasSource, flavors)
	a.AboveSourceDimensions = checkDimensions(source, hasSource, p, a.EnabledParamIDs)
	a.NearDuplicateGroups = NearDuplicateGroups(rungs, a.Threshold)
	if a.NearDuplicateGroups == nil {
		a.NearDuplicateGroups = []DuplicateGroup{}
	}

	if len(a.EnabledParamIDs) == 0 {
		a.Unconfigured = true
		a.warn(WarnUnconfigured, fmt.Sprintf("Conversion profile %d has no enabled flavor params; it appears unconfigured", p.ID))
	}
	if !hasSource {
		a.warn(WarnNoSource, "No source flavor (params id 0) present on this entry")
	} else if !a.AboveSource.Evaluable {
		a.warn(WarnSourceBitrate, "Source flavor does not report a bitrate; above-source check skipped")
	}
	if len(a.MissingParamIDs) > 0 {
		a.warn(WarnMissingParams, fmt.Sprintf("Enabled params never produced a flavor: %s", textutil.JoinInts(a.MissingParamIDs, ", ")))
	}
	if len(a.NotSeenParamIDs) > 0 {
		a.warn(WarnNotSeen, fmt.Sprintf("READY flavors not enabled in the profile: %s", textutil.JoinInts(a.NotSeenParamIDs, ", ")))
	}
	if len(a.AboveSource.ParamIDs) > 0 {
		a.warn(WarnAboveSource, fmt.Sprintf("Flavors above source bitrate (%d kbps): %s", a.AboveSource.SourceBitrate, textutil.JoinInts(a.AboveSource.ParamIDs, ", ")))
	}
	if len(a.AboveSourceDimensions.ParamIDs) > 0 {
		a.warn(WarnAboveSourceSize, fmt.Sprintf("Enabled targets larger than source %dx%d: %s",
			a.AboveSourceDimensions.SourceWidth, a.AboveSourceDimensions.SourceHeight, textutil.JoinInts(a.AboveSourceDimensions.ParamIDs, ", ")))
	}
	for _, g := range a.NearDuplicateGroups {
		a.warn(WarnNearDuplicates, fmt.Sprintf("Near-duplicate rungs %s (%d-%d kbps, %.1f%% apart)",
			textutil.JoinInts(g.ParamIDs, ", "), g.MinBitrate, g.MaxBitrate, g.RelativeSpread*100))
	}
	return a
}

// NearDuplicateGroups sorts rungs by bitrate (then params id) and groups
// adjacent rungs whose relative gap (b-a)/b is below threshold. Rungs with an
// unknown (zero) bitrate never group. Only groups of two or more are returned.
func NearDuplicateGroups(rungs []Rung, threshold float64) []DuplicateGroup {
	sorted := make([]Rung, 0, len(rungs))
	for _, r := range rungs {
		if r.Bitrate > 0 {
			sorted = append(sorted, r)
		}
	}
	slices.SortFunc(sorted, func(x, y Rung) int {
		if x.Bitrate != y.Bitrate {
			return x.Bitrate - y.Bitrate
		}
		return x.ParamID - y.ParamID
	})

	var groups []DuplicateGroup
	var current []Rung
	flush := func() {
		if len(current) >= 2 {
			groups = append(groups, newGroup(current))
		}
		current = nil
	}
	for i, r := range sorted {
		if i > 0 && closeEnough(sorted[i-1].Bitrate, r.Bitrate, threshold) {
			current = append(current, r)
			continue
		}
		flush()
		current = []Rung{r}
	}
	flush()
	return groups
}

func closeEnough(lower, upper int, threshold float64) bool {
	if upper <= 0 {
		return false
	}
	return float64(upper-lower)/float64(upper) < threshold
}

func newGroup(rungs []Rung) DuplicateGroup {
	g := DuplicateGroup{
		ParamIDs:   make([]int, len(rungs)),
		Bitrates:   make([]int, len(rungs)),
		MinBitrate: rungs[0].Bitrate,
		MaxBitrate: rungs[len(rungs)-1].Bitrate,
	}
	for i, r := range rungs {
		g.ParamIDs[i] = r.ParamID
		g.Bitrates[i] = r.Bitrate
	}
	g.Spread = g.MaxBitrate - g.MinBitrate
	g.RelativeSpread = float64(g.Spread) / float64(g.MaxBitrate)
	return g
}

func findSource(flavors []flavor.Classified) (flavor.Classified, bool) {
	for _, f := range flavors {
		if f.Category == flavor.CategorySource {
			return f, true
		}
	}
	return flavor.Classified{}, false
}

func checkBitrate(source flavor.Classified, hasSource bool, flavors []flavor.Classified) BitrateCheck {
	check := BitrateCheck{ParamIDs: []int{}}
	switch {
	case !hasSource:
		check.Reason = reasonNoSource
		return check
	case source.Bitrate <= 0:
		check.Reason = reasonNoSourceBitrate
		return check
	}
	check.Evaluable = true
	check.SourceBitrate = source.Bitrate
	for _, f := range flavors {
		if f.Category == flavor.CategoryReady && f.Bitrate > source.Bitrate {
			check.ParamIDs = append(check.ParamIDs, f.ParamID)
		}
	}
	slices.Sort(check.ParamIDs)
	return check
}

// checkDimensions prefers the source flavor's resolution and falls back to
// the entry dimensions carried on p.
func checkDimensions(source flavor.Classified, hasSource bool, p Profile, enabled []int) DimensionCheck {
	check := DimensionCheck{ParamIDs: []int{}}
	width, height := p.SourceWidth, p.SourceHeight
	if hasSource && source.HasDimensions() {
		width, height = source.Width, source.Height
	}
	switch {
	case width <= 0 || height <= 0:
		check.Reason = reasonNoSourceSize
		if !hasSource {
			check.Reason = reasonNoSource
		}
		return check
	case len(p.Targets) == 0:
		check.Reason = reasonNoTargetMetadata
		return check
	}
	check.Evaluable = true
	check.SourceWidth = width
	check.SourceHeight = height
	for _, id := range enabled {
		t, ok := p.Targets[id]
		if !ok {
			continue
		}
		if t.Width > width || t.Height > height {
			check.ParamIDs = append(check.ParamIDs, id)
		}
	}
	slices.Sort(check.ParamIDs)
	return check
}

func (a *Analysis) warn(code, message string) {
	a.Warnings = append(a.Warnings, Warning{Code: code, Message: message})
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
