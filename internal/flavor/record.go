package flavor

import (
	"strings"

	"flavorcheck/internal/normalize"
)

// UnknownParamID marks a flavor whose params id was missing or malformed.
const UnknownParamID = -1

// Record is a raw flavor asset as returned by flavorAsset.list. Every numeric
// or optional field keeps its wire value until classification.
type Record struct {
	ID             string          `json:"id"`
	EntryID        string          `json:"entryId,omitempty"`
	FlavorParamsID normalize.Field `json:"flavorParamsId"`
	Status         normalize.Field `json:"status"`
	Bitrate        normalize.Field `json:"bitrate"`
	Width          normalize.Field `json:"width"`
	Height         normalize.Field `json:"height"`
	FrameRate      normalize.Field `json:"frameRate"`
	Size           normalize.Field `json:"size"`
	IsOriginal     normalize.Field `json:"isOriginal"`
	Description    normalize.Field `json:"description"`
	ErrorCode      normalize.Field `json:"errorCode"`
	Tags           normalize.Field `json:"tags"`
	VideoCodecID   normalize.Field `json:"videoCodecId"`
	AudioCodecID   normalize.Field `json:"audioCodecId"`
}

// Target is the subset of a flavor params definition used to explain skips
// and to compare targets against the source.
type Target struct {
	ParamID      int    `json:"param_id"`
	Name         string `json:"name,omitempty"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	VideoBitrate int    `json:"video_bitrate_kbps"`
	VideoCodec   string `json:"video_codec,omitempty"`
	Tags         string `json:"tags,omitempty"`
}

// Classified is the immutable result of classifying one Record.
type Classified struct {
	AssetID          string   `json:"asset_id"`
	ParamID          int      `json:"param_id"`
	Label            string   `json:"label"`
	StatusCode       int      `json:"status_code"`
	Category         Category `json:"category"`
	Reason           string   `json:"reason"`
	Notes            []string `json:"notes,omitempty"`
	Bitrate          int      `json:"bitrate_kbps"`
	Width            int      `json:"width"`
	Height           int      `json:"height"`
	FrameRate        *float64 `json:"frame_rate,omitempty"`
	SizeKB           int      `json:"size_kb"`
	VideoCodec       string   `json:"video_codec,omitempty"`
	AudioCodec       string   `json:"audio_codec,omitempty"`
	Tags             string   `json:"tags,omitempty"`
	IsOriginal       bool     `json:"is_original"`
	EnabledInProfile bool     `json:"enabled_in_profile"`
	DownloadURL      string   `json:"download_url,omitempty"`
}

// HasDimensions reports whether both width and height are known.
func (c Classified) HasDimensions() bool {
	return c.Width > 0 && c.Height > 0
}

// FPS returns the frame rate or 0 when unknown.
func (c Classified) FPS() float64 {
	if c.FrameRate == nil {
		return 0
	}
	return *c.FrameRate
}

// BaseReason returns Reason without the normalization notes appended to it.
func (c Classified) BaseReason() string {
	if len(c.Notes) == 0 {
		return c.Reason
	}
	return strings.TrimSuffix(c.Reason, "; "+strings.Join(c.Notes, "; "))
}

// WithDownloadURL returns a copy carrying url. Classification results are
// values, so attaching a URL after the fact never mutates the original.
func (c Classified) WithDownloadURL(url string) Classified {
	c.DownloadURL = url
	if c.Notes != nil {
		c.Notes = append([]string(nil), c.Notes...)
	}
	return c
}
