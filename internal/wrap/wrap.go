// Package wrap hard-wraps styled text for the response pane. Escape
// sequences carry zero width and stay attached to the text they style; SGR
// state active at a break is re-applied on the continuation line so colors
// survive wrapping.
package wrap

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Visible returns the display width of s with escape sequences removed.
func Visible(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.StringWidth(ansi.Strip(s))
}

// Truncate shortens s to width cells, appending tail when anything was cut.
// Escape sequences count for nothing and are never cut through.
func Truncate(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	if Visible(s) <= width {
		return s
	}
	if !strings.Contains(s, "\x1b") {
		return runewidth.Truncate(s, width, tail)
	}
	return ansi.Truncate(s, width, tail)
}

// ToWidth wraps every line of content to at most width cells, breaking at
// grapheme boundaries. Zero or negative widths return content unchanged.
func ToWidth(content string, width int) string {
	if width <= 0 || content == "" {
		return content
	}

	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		out = append(out, breakLine(line, width)...)
	}
	return strings.Join(out, "\n")
}

func breakLine(line string, width int) []string {
	if line == "" || Visible(line) <= width {
		return []string{line}
	}

	var (
		segs  []string
		cur   strings.Builder
		curW  int
		style sgrState
	)

	flush := func() {
		segs = append(segs, strings.TrimRight(cur.String(), " "))
		cur.Reset()
		curW = 0
		if prefix := style.prefix(); prefix != "" {
			cur.WriteString(prefix)
		}
	}

	i := 0
	for i < len(line) {
		if n := scanEscape(line[i:]); n > 0 {
			seq := line[i : i+n]
			cur.WriteString(seq)
			style.observe(seq)
			i += n
			continue
		}

		cluster, _, w, _ := uniseg.FirstGraphemeClusterInString(line[i:], -1)
		if cluster == "" {
			cur.WriteString(line[i:])
			break
		}
		if w < 0 {
			w = 0
		}

		if curW+w > width && curW > 0 {
			flush()
		}
		cur.WriteString(cluster)
		curW += w
		i += len(cluster)
	}

	if cur.Len() > 0 || len(segs) == 0 {
		segs = append(segs, strings.TrimRight(cur.String(), " "))
	}
	return segs
}

// sgrState tracks the SGR sequences in effect. A plain reset (ESC[m or
// ESC[0m) clears it; anything else accumulates, so a continuation prefix
// may repeat styles that are already active.
type sgrState struct {
	active []string
}

func (s *sgrState) observe(seq string) {
	if len(seq) < 3 || seq[1] != '[' || seq[len(seq)-1] != 'm' {
		return
	}
	if isReset(seq) {
		s.active = s.active[:0]
		return
	}
	s.active = append(s.active, seq)
}

func (s *sgrState) prefix() string {
	return strings.Join(s.active, "")
}

// Only bare resets clear the state: compound sequences like ESC[0;31m have a
// net styling effect and must be carried whole.
func isReset(seq string) bool {
	params := seq[2 : len(seq)-1]
	return params == "" || params == "0"
}

// scanEscape returns the byte length of the escape sequence at the start of
// s, or zero. CSI and OSC forms are recognized; that covers everything the
// styling stack emits.
func scanEscape(s string) int {
	if len(s) < 2 || s[0] != 0x1b {
		return 0
	}
	switch s[1] {
	case '[':
		j := 2
		for j < len(s) {
			c := s[j]
			if (c >= '0' && c <= '9') || c == ';' || c == '?' {
				j++
				continue
			}
			break
		}
		if j < len(s) && s[j] >= '@' && s[j] <= '~' {
			return j + 1
		}
	case ']':
		for j := 2; j < len(s); j++ {
			if s[j] == 0x07 {
				return j + 1
			}
			if s[j] == 0x1b && j+1 < len(s) && s[j+1] == '\\' {
				return j + 2
			}
		}
	}
	return 0
}
