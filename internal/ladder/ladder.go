package ladder

import (
	"fmt"
	"math"
	"slices"

	"flavorcheck/internal/flavor"
	"flavorcheck/internal/profile"
)

// Display and switching defaults.
const (
	DefaultBarWidth       = 54
	DefaultMinBarWidth    = 1
	DefaultTinyStepRatio  = 1.2
	DefaultLargeStepRatio = 2.5
)

// Options controls bar scaling and switching-step heuristics.
type Options struct {
	BarWidth       int
	MinBarWidth    int
	TinyStepRatio  float64
	LargeStepRatio float64
}

// DefaultOptions returns the display defaults.
func DefaultOptions() Options {
	return Options{
		BarWidth:       DefaultBarWidth,
		MinBarWidth:    DefaultMinBarWidth,
		TinyStepRatio:  DefaultTinyStepRatio,
		LargeStepRatio: DefaultLargeStepRatio,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.BarWidth <= 0 {
		o.BarWidth = d.BarWidth
	}
	if o.MinBarWidth <= 0 {
		o.MinBarWidth = d.MinBarWidth
	}
	if o.MinBarWidth > o.BarWidth {
		o.MinBarWidth = o.BarWidth
	}
	if o.TinyStepRatio <= 1 {
		o.TinyStepRatio = d.TinyStepRatio
	}
	if o.LargeStepRatio <= o.TinyStepRatio {
		o.LargeStepRatio = math.Max(d.LargeStepRatio, o.TinyStepRatio)
	}
	return o
}

// Entry is one rung of the playable ladder.
type Entry struct {
	ParamID   int             `json:"param_id"`
	AssetID   string          `json:"asset_id"`
	Bitrate   int             `json:"bitrate_kbps"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	BarWidth  int             `json:"bar_width"`
	Label     string          `json:"label"`
	Category  flavor.Category `json:"category"`
	StepRatio float64         `json:"step_ratio,omitempty"`
}

// Summary aggregates the classified flavors of one entry.
type Summary struct {
	Total             int                     `json:"total"`
	Counts            map[flavor.Category]int `json:"counts"`
	ReadyBitrateKnown bool                    `json:"ready_bitrate_known"`
	ReadyMinBitrate   int                     `json:"ready_min_bitrate_kbps"`
	ReadyMaxBitrate   int                     `json:"ready_max_bitrate_kbps"`
	TotalSizeKB       int                     `json:"total_size_kb"`
	IssueCount        int                     `json:"issue_count"`
}

// Count returns the number of flavors in category c.
func (s Summary) Count(c flavor.Category) int {
	return s.Counts[c]
}

// SwitchingNote flags an awkward gap between two adjacent READY rungs.
type SwitchingNote struct {
	Kind        string  `json:"kind"`
	FromParamID int     `json:"from_param_id"`
	ToParamID   int     `json:"to_param_id"`
	Ratio       float64 `json:"ratio"`
	Message     string  `json:"message"`
}

// Switching note kinds.
const (
	StepTiny  = "tiny_step"
	StepLarge = "large_step"
)

// Ladder is the builder's output consumed by renderers.
type Ladder struct {
	Summary        Summary         `json:"summary"`
	Entries        []Entry         `json:"entries"`
	SwitchingNotes []SwitchingNote `json:"switching_notes"`
}

// Build aggregates flavors into summary counts and the ordered SOURCE+READY
// ladder. Entries ascend by bitrate, ties broken by params id.
func Build(flavors []flavor.Classified, analysis profile.Analysis, opts Options) Ladder {
	opts = opts.normalized()
	out := Ladder{
		Summary:        summarize(flavors),
		Entries:        []Entry{},
		SwitchingNotes: []SwitchingNote{},
	}
	out.Summary.IssueCount = analysis.IssueCount()

	for _, f := range flavors {
		if !f.Category.InLadder() {
			continue
		}
		out.Entries = append(out.Entries, Entry{
			ParamID:  f.ParamID,
			AssetID:  f.AssetID,
			Bitrate:  f.Bitrate,
			Width:    f.Width,
			Height:   f.Height,
			Label:    rungLabel(f),
			Category: f.Category,
		})
	}
	slices.SortStableFunc(out.Entries, func(a, b Entry) int {
		if a.Bitrate != b.Bitrate {
			return a.Bitrate - b.Bitrate
		}
		return a.ParamID - b.ParamID
	})

	maxBitrate := 0
	for _, e := range out.Entries {
		maxBitrate = max(maxBitrate, e.Bitrate)
	}
	for i := range out.Entries {
		out.Entries[i].BarWidth = barWidth(out.Entries[i].Bitrate, maxBitrate, opts)
	}
	out.SwitchingNotes = switchingNotes(out.Entries, opts)
	return out
}

func summarize(flavors []flavor.Classified) Summary {
	s := Summary{Total: len(flavors), Counts: make(map[flavor.Category]int, 6)}
	for _, c := range flavor.Categories() {
		s.Counts[c] = 0
	}
	for _, f := range flavors {
		s.Counts[f.Category]++
		s.TotalSizeKB += f.SizeKB
		if f.Category != flavor.CategoryReady || f.Bitrate <= 0 {
			continue
		}
		if !s.ReadyBitrateKnown {
			s.ReadyBitrateKnown = true
			s.ReadyMinBitrate, s.ReadyMaxBitrate = f.Bitrate, f.Bitrate
			continue
		}
		s.ReadyMinBitrate = min(s.ReadyMinBitrate, f.Bitrate)
		s.ReadyMaxBitrate = max(s.ReadyMaxBitrate, f.Bitrate)
	}
	return s
}

// barWidth scales bitrate against the widest rung. Unknown bitrates still
// get the minimum width so the rung stays visible.
func barWidth(bitrate, maxBitrate int, opts Options) int {
	if bitrate <= 0 || maxBitrate <= 0 {
		return opts.MinBarWidth
	}
	w := int(math.Round(float64(bitrate) / float64(maxBitrate) * float64(opts.BarWidth)))
	return min(max(w, opts.MinBarWidth), opts.BarWidth)
}

// switchingNotes walks the READY rungs with a known bitrate, records each
// rung's StepRatio to the previous one and flags tiny and large steps. The
// source is not a switching target and never takes part.
func switchingNotes(entries []Entry, opts Options) []SwitchingNote {
	notes := []SwitchingNote{}
	var prev *Entry
	for i := range entries {
		e := &entries[i]
		if e.Category != flavor.CategoryReady || e.Bitrate <= 0 {
			continue
		}
		if prev != nil {
			ratio := roundRatio(float64(e.Bitrate) / float64(prev.Bitrate))
			e.StepRatio = ratio
			switch {
			case ratio < opts.TinyStepRatio:
				notes = append(notes, SwitchingNote{
					Kind: StepTiny, FromParamID: prev.ParamID, ToParamID: e.ParamID, Ratio: ratio,
					Message: fmt.Sprintf("Tiny step %s -> %s (x%.2f); players gain little by switching", prev.Label, e.Label, ratio),
				})
			case ratio > opts.LargeStepRatio:
				notes = append(notes, SwitchingNote{
					Kind: StepLarge, FromParamID: prev.ParamID, ToParamID: e.ParamID, Ratio: ratio,
					Message: fmt.Sprintf("Large step %s -> %s (x%.2f); consider an intermediate rung", prev.Label, e.Label, ratio),
				})
			}
		}
		prev = e
	}
	return notes
}

func rungLabel(f flavor.Classified) string {
	name := fmt.Sprintf("#%d", f.ParamID)
	if f.Category == flavor.CategorySource {
		name = "source"
	}
	if f.Height > 0 {
		return fmt.Sprintf("%s %dp", name, f.Height)
	}
	return name
}

func roundRatio(r float64) float64 {
	return math.Round(r*100) / 100
}
