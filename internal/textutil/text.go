package textutil

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// CleanText normalizes platform-provided free text (error descriptions,
// entry names) for single-line display. Carriage returns are dropped and any
// run of whitespace collapses to one space.
func CleanText(value string) string {
	value = strings.ReplaceAll(value, "\r", "")
	return strings.Join(strings.Fields(value), " ")
}

// Truncate shortens value to at most limit runes, marking the cut with an
// ellipsis. A limit <= 0 disables truncation.
func Truncate(value string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(value) <= limit {
		return value
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(value)
	return strings.TrimSpace(string(runes[:limit-1])) + "…"
}

// JoinInts renders integer identifiers separated by sep. An empty slice
// yields an empty string.
func JoinInts(values []int, sep string) string {
	if len(values) == 0 {
		return ""
	}
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, sep)
}
