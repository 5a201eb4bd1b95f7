package flavor

import (
	"fmt"
	"strings"

	"flavorcheck/internal/enums"
	"flavorcheck/internal/normalize"
	"flavorcheck/internal/textutil"
)

// Reason texts shared with the report renderer.
const (
	ReasonSource           = "Uploaded source"
	ReasonReady            = "Transcoded flavor ready"
	ReasonGenericSkip      = "Flavor not applicable for this source"
	ReasonUnspecifiedError = "Unspecified transcoding error"
)

// Classifier assigns categories and reasons to flavor records. The source
// dimensions and targets only enrich skip reasons; a zero Classifier is valid.
type Classifier struct {
	SourceWidth   int
	SourceHeight  int
	SourceBitrate int
	Targets       map[int]Target
}

// NewClassifier derives source hints from the paramId 0 record in records.
// Fallback dimensions, typically the entry's own width and height, are used
// when the source record does not report them.
func NewClassifier(records []Record, fallbackWidth, fallbackHeight int, targets map[int]Target) Classifier {
	c := Classifier{SourceWidth: fallbackWidth, SourceHeight: fallbackHeight, Targets: targets}
	for _, rec := range records {
		id, outcome := normalize.Int(rec.FlavorParamsID)
		if outcome != normalize.Parsed || id != 0 {
			continue
		}
		if w, _ := normalize.NonNegativeInt(rec.Width, 0); w > 0 {
			c.SourceWidth = w
		}
		if h, _ := normalize.NonNegativeInt(rec.Height, 0); h > 0 {
			c.SourceHeight = h
		}
		c.SourceBitrate, _ = normalize.NonNegativeInt(rec.Bitrate, 0)
		break
	}
	return c
}

// Classify classifies rec with a zero Classifier.
func Classify(rec Record, enabledInProfile bool) Classified {
	return Classifier{}.Classify(rec, enabledInProfile)
}

// Classify produces exactly one Classified for rec. It never fails; missing
// or malformed fields degrade to defaults and are explained in Notes.
func (c Classifier) Classify(rec Record, enabledInProfile bool) Classified {
	return c.classify(rec, enabledInProfile, nil)
}

// ClassifyAll classifies every record, in input order. A record is enabled
// when its params id appears in enabledIDs.
func (c Classifier) ClassifyAll(records []Record, enabledIDs []int) []Classified {
	enabled := make(map[int]struct{}, len(enabledIDs))
	for _, id := range enabledIDs {
		enabled[id] = struct{}{}
	}
	seen := make(map[int]string, len(records))
	out := make([]Classified, 0, len(records))
	for _, rec := range records {
		var extra []string
		id, outcome := normalize.Int(rec.FlavorParamsID)
		_, on := enabled[id]
		on = on && outcome == normalize.Parsed
		if outcome == normalize.Parsed {
			if prev, dup := seen[id]; dup {
				extra = append(extra, fmt.Sprintf("duplicate flavorParamsId %d (also on asset %s)", id, prev))
			} else {
				seen[id] = rec.ID
			}
		}
		out = append(out, c.classify(rec, on, extra))
	}
	return out
}

func (c Classifier) classify(rec Record, enabledInProfile bool, extra []string) Classified {
	out := Classified{
		AssetID:          strings.TrimSpace(rec.ID),
		EnabledInProfile: enabledInProfile,
		Tags:             normalize.Text(rec.Tags),
		IsOriginal:       normalize.Flag(rec.IsOriginal),
		AudioCodec:       normalize.Text(rec.AudioCodecID),
	}
	var notes []string
	note := func(s string) {
		if s != "" {
			notes = append(notes, s)
		}
	}

	paramID, paramOutcome := normalize.Int(rec.FlavorParamsID)
	paramKnown := paramOutcome == normalize.Parsed && paramID >= 0
	if paramKnown {
		out.ParamID = paramID
	} else {
		out.ParamID = UnknownParamID
		switch {
		case !rec.FlavorParamsID.Present():
			note("flavorParamsId: missing")
		case paramOutcome == normalize.Parsed:
			note(fmt.Sprintf("flavorParamsId: negative value %d treated as unknown", paramID))
		default:
			note(normalize.Note("flavorParamsId", rec.FlavorParamsID, paramOutcome, UnknownParamID))
		}
	}

	var outcome normalize.Outcome
	out.Bitrate, outcome = normalize.NonNegativeInt(rec.Bitrate, 0)
	note(normalize.Note("bitrate", rec.Bitrate, outcome, out.Bitrate))
	out.Width, outcome = normalize.NonNegativeInt(rec.Width, 0)
	note(normalize.Note("width", rec.Width, outcome, out.Width))
	out.Height, outcome = normalize.NonNegativeInt(rec.Height, 0)
	note(normalize.Note("height", rec.Height, outcome, out.Height))
	out.SizeKB, outcome = normalize.NonNegativeInt(rec.Size, 0)
	note(normalize.Note("size", rec.Size, outcome, out.SizeKB))
	if fps, ok, fpsOutcome := normalize.OptionalFloat(rec.FrameRate); ok {
		out.FrameRate = &fps
	} else {
		note(normalize.Note("frameRate", rec.FrameRate, fpsOutcome, "unknown"))
	}

	out.VideoCodec = NormalizeCodec(normalize.Text(rec.VideoCodecID))
	if out.VideoCodec == "" {
		out.VideoCodec = DeriveVideoCodec(out.Tags)
	}

	if out.IsOriginal && paramKnown && paramID != 0 {
		note(fmt.Sprintf("isOriginal flag set on non-source params id %d", paramID))
	}

	statusCode, statusOutcome := normalize.Int(rec.Status)
	statusKnown := statusOutcome == normalize.Parsed
	out.StatusCode = statusCode
	if statusKnown {
		out.Label = enums.Label(enums.FlavorStatus, statusCode)
	} else {
		raw := normalize.Text(rec.Status)
		if raw == "" {
			raw = "none"
		}
		out.Label = enums.LabelRaw(enums.FlavorStatus, raw)
	}

	switch {
	case paramKnown && paramID == 0:
		out.Category = CategorySource
		out.Reason = ReasonSource
	case !statusKnown:
		out.Category = CategoryOther
		out.Reason = fmt.Sprintf("Status missing or malformed (raw value %s)", statusRaw(rec.Status))
	case !paramKnown:
		out.Category = CategoryOther
		out.Reason = fmt.Sprintf("Flavor params id unknown; status %s (code %d)", out.Label, statusCode)
	default:
		out.Category, out.Reason = c.byStatus(rec, statusCode, out.Label, paramID)
	}

	notes = append(notes, extra...)
	if len(notes) > 0 {
		out.Notes = notes
		out.Reason = out.Reason + "; " + strings.Join(notes, "; ")
	}
	return out
}

func (c Classifier) byStatus(rec Record, code int, label string, paramID int) (Category, string) {
	switch code {
	case enums.FlavorStatusReady:
		return CategoryReady, ReasonReady
	case enums.FlavorStatusError:
		return CategoryError, ErrorReason(normalize.Text(rec.Description), normalize.Text(rec.ErrorCode))
	case enums.FlavorStatusNotApplicable:
		return CategoryNotApplicable, c.skipReason(normalize.Text(rec.Description), paramID)
	}
	if IsPendingStatus(code) {
		return CategoryPending, fmt.Sprintf("In pipeline: %s (%d)", label, code)
	}
	return CategoryOther, fmt.Sprintf("Status %s (code %d) is not part of the playable ladder", label, code)
}

// IsPendingStatus reports whether code is a non-terminal pipeline status.
func IsPendingStatus(code int) bool {
	switch code {
	case enums.FlavorStatusQueued,
		enums.FlavorStatusConverting,
		enums.FlavorStatusWaitForConvert,
		enums.FlavorStatusImporting,
		enums.FlavorStatusValidating,
		enums.FlavorStatusExporting:
		return true
	}
	return false
}

// ErrorReason combines the platform's error description with its raw code.
func ErrorReason(description, code string) string {
	description = textutil.CleanText(description)
	code = strings.TrimSpace(code)
	switch {
	case description != "" && code != "":
		return fmt.Sprintf("%s (code %s)", description, code)
	case description != "":
		return description
	case code != "":
		return fmt.Sprintf("%s (code %s)", ReasonUnspecifiedError, code)
	default:
		return ReasonUnspecifiedError
	}
}

func (c Classifier) skipReason(description string, paramID int) string {
	if description = textutil.CleanText(description); description != "" {
		return description
	}
	t, ok := c.Targets[paramID]
	if !ok {
		return ReasonGenericSkip
	}
	widthShort := t.Width > 0 && c.SourceWidth > 0 && t.Width > c.SourceWidth
	heightShort := t.Height > 0 && c.SourceHeight > 0 && t.Height > c.SourceHeight
	if widthShort || heightShort {
		return fmt.Sprintf("Source resolution insufficient for this target (source %dx%d, target %dx%d)",
			c.SourceWidth, c.SourceHeight, t.Width, t.Height)
	}
	if t.VideoBitrate > 0 && c.SourceBitrate > 0 && t.VideoBitrate > c.SourceBitrate {
		return fmt.Sprintf("Source bitrate %d kbps below target bitrate %d kbps", c.SourceBitrate, t.VideoBitrate)
	}
	return ReasonGenericSkip
}

func statusRaw(f normalize.Field) string {
	if !f.Present() {
		return "none"
	}
	if s := normalize.Text(f); s != "" {
		return fmt.Sprintf("%q", s)
	}
	return `""`
}
