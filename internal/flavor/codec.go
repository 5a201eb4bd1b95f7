package flavor

import "strings"

// Normalized four-character codec identifiers.
const (
	CodecHEVC = "hvc1"
	CodecH264 = "avc1"
	CodecAV1  = "av01"
	CodecVP9  = "vp09"
	CodecVP8  = "vp8"
)

var codecTagHints = []struct {
	codec string
	hints []string
}{
	{CodecHEVC, []string{"h265", "hevc", "hvc1", "hev1"}},
	{CodecH264, []string{"h264", "avc1", "avc"}},
	{CodecAV1, []string{"av01", "av1"}},
	{CodecVP9, []string{"vp09", "vp9"}},
	{CodecVP8, []string{"vp8"}},
}

// DeriveVideoCodec guesses a codec from comma-separated flavor tags. It
// returns "" when no tag hints at one.
func DeriveVideoCodec(tags string) string {
	tags = strings.ToLower(tags)
	if tags == "" {
		return ""
	}
	for _, entry := range codecTagHints {
		for _, hint := range entry.hints {
			if strings.Contains(tags, hint) {
				return entry.codec
			}
		}
	}
	return ""
}

// NormalizeCodec maps a platform codec id ("h264", "hevc", "AV1") onto the
// identifiers used by DeriveVideoCodec. Unrecognized ids are lowercased.
func NormalizeCodec(codec string) string {
	codec = strings.ToLower(strings.TrimSpace(codec))
	if codec == "" {
		return ""
	}
	if derived := DeriveVideoCodec(codec); derived != "" {
		return derived
	}
	return codec
}
