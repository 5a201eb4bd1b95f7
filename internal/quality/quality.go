package quality

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"flavorcheck/internal/flavor"
)

// Flags attached to ladder rows.
const (
	FlagNonMod16      = "non_mod16"
	FlagOddAspect     = "odd_aspect"
	FlagTooLow        = "too_low_bitrate_for_res"
	FlagTooHigh       = "too_high_bitrate_for_res"
	FlagAboveSourceHt = "above_source_height"
)

// AspectTolerance is the allowed deviation from a common display aspect.
const AspectTolerance = 0.05

var commonAspects = []float64{1, 4.0 / 3.0, 16.0 / 9.0, 21.0 / 9.0}

type family int

const (
	familyH264 family = iota
	familyHEVC
	familyAV1
	familyVP9
	familyVP8
)

func familyOf(codec string) family {
	c := strings.ToLower(codec)
	switch {
	case strings.Contains(c, "hvc"), strings.Contains(c, "hev"), strings.Contains(c, "265"):
		return familyHEVC
	case strings.Contains(c, "av01"), strings.Contains(c, "av1"):
		return familyAV1
	case strings.Contains(c, "vp09"), strings.Contains(c, "vp9"):
		return familyVP9
	case strings.Contains(c, "vp8"):
		return familyVP8
	default:
		return familyH264
	}
}

// BaselineLabel names the reference table used for codec. Unknown codecs
// are judged against H.264.
func BaselineLabel(codec string) string {
	switch familyOf(codec) {
	case familyHEVC:
		return "HEVC baseline"
	case familyAV1:
		return "AV1 baseline"
	case familyVP9:
		return "VP9 baseline"
	case familyVP8:
		return "VP8 baseline"
	default:
		return "H.264 baseline"
	}
}

// height ceilings shared by every expected-bitrate table.
var heightSteps = []int{360, 480, 560, 800, 1100}

var expectedTables = map[family][]int{
	familyHEVC: {700, 1200, 1500, 2100, 3200, 4200},
	familyAV1:  {600, 1000, 1200, 1800, 2800, 3800},
	familyH264: {1000, 1800, 1800, 2500, 4000, 5000},
}

// ExpectedKbps is a rough target bitrate for a rung of the given height.
func ExpectedKbps(codec string, height int) int {
	table, ok := expectedTables[familyOf(codec)]
	if !ok {
		table = expectedTables[familyH264]
	}
	for i, ceiling := range heightSteps {
		if height <= ceiling {
			return table[i]
		}
	}
	return table[len(table)-1]
}

type bppRange struct{ low, high float64 }

var bppThresholds = map[family]bppRange{
	familyHEVC: {0.055, 0.32},
	familyAV1:  {0.045, 0.28},
	familyVP8:  {0.085, 0.45},
	familyH264: {0.075, 0.40},
}

// BitsPerPixel returns kbps*1000 / (width*height*fps). ok is false when any
// input is unknown.
func BitsPerPixel(kbps, width, height int, fps float64) (float64, bool) {
	if kbps <= 0 || width <= 0 || height <= 0 || fps <= 0 {
		return 0, false
	}
	return float64(kbps) * 1000 / (float64(width) * float64(height) * fps), true
}

// LowHigh reports whether kbps is likely too low or too high for the
// resolution and frame rate.
func LowHigh(codec string, kbps, width, height int, fps float64) (low, high bool) {
	bpp, ok := BitsPerPixel(kbps, width, height, fps)
	if !ok {
		return false, false
	}
	r, found := bppThresholds[familyOf(codec)]
	if !found {
		r = bppThresholds[familyH264]
	}
	return bpp < r.low, bpp > r.high
}

// DimensionFlags checks macroblock alignment and aspect ratio.
func DimensionFlags(width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	var flags []string
	if width%16 != 0 || height%16 != 0 {
		flags = append(flags, FlagNonMod16)
	}
	ar := float64(width) / float64(height)
	closest := math.Inf(1)
	for _, target := range commonAspects {
		closest = math.Min(closest, math.Abs(ar-target))
	}
	if closest > AspectTolerance {
		flags = append(flags, FlagOddAspect)
	}
	return flags
}

// Assessment is the heuristic quality view of one flavor.
type Assessment struct {
	AssetID      string          `json:"asset_id"`
	ParamID      int             `json:"param_id"`
	Category     flavor.Category `json:"category"`
	Codec        string          `json:"video_codec,omitempty"`
	Baseline     string          `json:"baseline"`
	ExpectedKbps int             `json:"expected_kbps"`
	DeltaPercent *float64        `json:"delta_percent,omitempty"`
	BitsPerPixel *float64        `json:"bits_per_pixel,omitempty"`
	Flags        []string        `json:"flags"`
	Explanations []string        `json:"explanations,omitempty"`
}

// HasFlag reports whether flag was raised.
func (a Assessment) HasFlag(flag string) bool {
	return slices.Contains(a.Flags, flag)
}

// Assess evaluates f against the codec tables. sourceHeight of 0 disables the
// above-source height check.
func Assess(f flavor.Classified, sourceHeight int) Assessment {
	a := Assessment{
		AssetID:  f.AssetID,
		ParamID:  f.ParamID,
		Category: f.Category,
		Codec:    f.VideoCodec,
		Baseline: BaselineLabel(f.VideoCodec),
		Flags:    []string{},
	}
	if f.HasDimensions() {
		a.ExpectedKbps = ExpectedKbps(f.VideoCodec, f.Height)
	}
	if a.ExpectedKbps > 0 {
		delta := math.Round(float64(f.Bitrate-a.ExpectedKbps) / float64(a.ExpectedKbps) * 100)
		a.DeltaPercent = &delta
	}
	if bpp, ok := BitsPerPixel(f.Bitrate, f.Width, f.Height, f.FPS()); ok {
		bpp = math.Round(bpp*1000) / 1000
		a.BitsPerPixel = &bpp
	}

	a.Flags = append(a.Flags, DimensionFlags(f.Width, f.Height)...)
	low, high := LowHigh(f.VideoCodec, f.Bitrate, f.Width, f.Height, f.FPS())
	if low {
		a.Flags = append(a.Flags, FlagTooLow)
	}
	if high {
		a.Flags = append(a.Flags, FlagTooHigh)
	}
	if sourceHeight > 0 && f.Height > sourceHeight {
		a.Flags = append(a.Flags, FlagAboveSourceHt)
	}

	for _, flag := range a.Flags {
		switch flag {
		case FlagNonMod16:
			a.Explanations = append(a.Explanations, "Dimensions not aligned to 16-pixel macroblocks; slightly less codec and hardware friendly")
		case FlagOddAspect:
			a.Explanations = append(a.Explanations, "Unusual aspect ratio; verify intended display geometry")
		case FlagAboveSourceHt:
			a.Explanations = append(a.Explanations, "Target height exceeds source; the platform may mark it NOT_APPLICABLE")
		}
	}
	switch f.Category {
	case flavor.CategorySource:
		a.Explanations = append(a.Explanations, "Uploaded source (flavorParamsId=0; not transcoded)")
	case flavor.CategoryPending:
		a.Explanations = append(a.Explanations, fmt.Sprintf("In pipeline: %s (%d)", f.Label, f.StatusCode))
	}
	return a
}

// AssessAll assesses every flavor in input order.
func AssessAll(flavors []flavor.Classified, sourceHeight int) []Assessment {
	out := make([]Assessment, 0, len(flavors))
	for _, f := range flavors {
		out = append(out, Assess(f, sourceHeight))
	}
	return out
}

// Issue is one line of the issues section.
type Issue struct {
	AssetID string `json:"asset_id"`
	ParamID int    `json:"param_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Issue kinds.
const (
	IssueError   = "error"
	IssueLowBPP  = "bitrate_low"
	IssueHighBPP = "bitrate_high"
)

// Issues lists transcoding errors and bitrates that look wrong for their
// resolution.
func Issues(flavors []flavor.Classified) []Issue {
	issues := []Issue{}
	for _, f := range flavors {
		if f.Category == flavor.CategoryError {
			detail := f.Reason
			if detail == "" {
				detail = "no details"
			}
			issues = append(issues, Issue{
				AssetID: f.AssetID, ParamID: f.ParamID, Kind: IssueError,
				Message: fmt.Sprintf("Status: %s (%d): %s", f.Label, f.StatusCode, detail),
			})
			continue
		}
		low, high := LowHigh(f.VideoCodec, f.Bitrate, f.Width, f.Height, f.FPS())
		label := BaselineLabel(f.VideoCodec)
		if low {
			issues = append(issues, Issue{
				AssetID: f.AssetID, ParamID: f.ParamID, Kind: IssueLowBPP,
				Message: fmt.Sprintf("Bitrate may be low for resolution (%s)", label),
			})
		}
		if high {
			issues = append(issues, Issue{
				AssetID: f.AssetID, ParamID: f.ParamID, Kind: IssueHighBPP,
				Message: fmt.Sprintf("Bitrate may be higher than needed for resolution (%s)", label),
			})
		}
	}
	return issues
}
