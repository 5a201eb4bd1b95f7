package textutil

import "testing"

func TestCleanText(t *testing.T) {
	tests := map[string]string{
		"":                                  "",
		"  plain  ":                         "plain",
		"line one\r\nline two":              "line one line two",
		"Conversion failed:\r\n\t exit 1  ": "Conversion failed: exit 1",
	}
	for in, want := range tests {
		if got := CleanText(in); got != want {
			t.Fatalf("CleanText(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("a long description", 7); got != "a long…" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("héllo wörld", 6); got != "héllo…" {
		t.Fatalf("unexpected %q", got)
	}
	if got := Truncate("anything", 0); got != "anything" {
		t.Fatalf("expected no truncation, got %q", got)
	}
}

func TestJoinInts(t *testing.T) {
	if got := JoinInts([]int{0, 3, 12}, ","); got != "0,3,12" {
		t.Fatalf("unexpected %q", got)
	}
	if got := JoinInts(nil, ","); got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}
