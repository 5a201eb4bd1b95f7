package testsupport

import (
	"flavorcheck/internal/flavor"
	"flavorcheck/internal/normalize"
)

// RecordOption customizes a fixture flavor record.
type RecordOption func(*flavor.Record)

// FlavorRecord builds a raw flavor record with the given params id, status
// code and bitrate. Dimensions default to 1280x720 at 25 fps.
func FlavorRecord(assetID string, paramID, status, bitrate int, opts ...RecordOption) flavor.Record {
	rec := flavor.Record{
		ID:             assetID,
		EntryID:        TestEntryID,
		FlavorParamsID: normalize.Of(paramID),
		Status:         normalize.Of(status),
		Bitrate:        normalize.Of(bitrate),
		Width:          normalize.Of(1280),
		Height:         normalize.Of(720),
		FrameRate:      normalize.Of(25.0),
		Size:           normalize.Of(bitrate * 60 / 8),
		VideoCodecID:   normalize.Of("avc1"),
	}
	for _, opt := range opts {
		opt(&rec)
	}
	return rec
}

// WithDimensions sets width and height.
func WithDimensions(width, height int) RecordOption {
	return func(r *flavor.Record) {
		r.Width = normalize.Of(width)
		r.Height = normalize.Of(height)
	}
}

// WithRaw replaces one field with an arbitrary wire value such as "" or nil.
func WithRaw(field string, value any) RecordOption {
	return func(r *flavor.Record) {
		f := normalize.Of(value)
		switch field {
		case "flavorParamsId":
			r.FlavorParamsID = f
		case "status":
			r.Status = f
		case "bitrate":
			r.Bitrate = f
		case "width":
			r.Width = f
		case "height":
			r.Height = f
		case "frameRate":
			r.FrameRate = f
		case "description":
			r.Description = f
		case "errorCode":
			r.ErrorCode = f
		case "tags":
			r.Tags = f
		case "videoCodecId":
			r.VideoCodecID = f
		case "isOriginal":
			r.IsOriginal = f
		}
	}
}
