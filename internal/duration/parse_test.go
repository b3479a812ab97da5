package duration

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	cases := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"0", 0, true},
		{"45s", 45 * time.Second, true},
		{"500ms", 500 * time.Millisecond, true},
		{"1h30m", time.Hour + 30*time.Minute, true},
		{"2d", 48 * time.Hour, true},
		{"3w", 3 * 7 * 24 * time.Hour, true},
		{"1.5d", 36 * time.Hour, true},
		{"2D", 48 * time.Hour, true},
		{"1w2d3h", 9*24*time.Hour + 3*time.Hour, true},
		{"1d 12h", 36 * time.Hour, true},
		{"-6d", -6 * 24 * time.Hour, true},
		{"", 0, false},
		{"   ", 0, false},
		{"d", 0, false},
		{"1x", 0, false},
		{"1d2", 0, false},
		{"1.2.3s", 0, false},
		{"1h-30m", 0, false},
	}

	for _, tc := range cases {
		got, ok := Parse(tc.input)
		if ok != tc.ok {
			t.Fatalf("Parse(%q) ok = %v, want %v", tc.input, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("Parse(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
