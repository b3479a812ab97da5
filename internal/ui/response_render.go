package ui

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	udiff "github.com/aymanbagabas/go-udiff"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restpad/internal/failure"
	"github.com/unkn0wn-root/restpad/internal/format"
	"github.com/unkn0wn-root/restpad/internal/httpclient"
	"github.com/unkn0wn-root/restpad/internal/nettrace"
	"github.com/unkn0wn-root/restpad/internal/theme"
	"github.com/unkn0wn-root/restpad/internal/wrap"
)

// responseSnapshot holds the display-ready views for every response tab,
// wrapped to one width. The plain variants feed the clipboard.
type responseSnapshot struct {
	ok    bool
	width int

	body    string
	headers string
	timing  string
	diff    string

	plainBody    string
	plainHeaders string
	plainTiming  string
	plainDiff    string
}

func (s *responseSnapshot) view(tab responseTab) string {
	switch tab {
	case responseTabBody:
		return s.body
	case responseTabHeaders:
		return s.headers
	case responseTabTiming:
		return s.timing
	case responseTabDiff:
		return s.diff
	}
	return ""
}

func (s *responseSnapshot) plain(tab responseTab) string {
	switch tab {
	case responseTabBody:
		return s.plainBody
	case responseTabHeaders:
		return s.plainHeaders
	case responseTabTiming:
		return s.plainTiming
	case responseTabDiff:
		return s.plainDiff
	}
	return ""
}

// renderSeq distinguishes render generations. Highlighting and diffing can
// lag behind a fast resend, so each render carries a token and stale results
// are dropped on arrival.
var renderSeq uint64

func nextRenderToken() string {
	return strconv.FormatUint(atomic.AddUint64(&renderSeq, 1), 10)
}

func (m *Model) renderResponseCmd(resp *httpclient.Response) tea.Cmd {
	token := nextRenderToken()
	m.renderToken = token
	width := m.contentWidth()
	th := m.theme
	prev, hasPrev := m.previousBody, m.previousSet
	return func() tea.Msg {
		return responseRenderedMsg{
			token:    token,
			snapshot: buildResponseSnapshot(resp, prev, hasPrev, width, th),
		}
	}
}

func (m *Model) renderFailureCmd(res *failure.Result, partial *httpclient.Response) tea.Cmd {
	token := nextRenderToken()
	m.renderToken = token
	width := m.contentWidth()
	th := m.theme
	return func() tea.Msg {
		return responseRenderedMsg{
			token:    token,
			snapshot: buildFailureSnapshot(res, partial, width, th),
		}
	}
}

func (m *Model) contentWidth() int {
	if m.viewport.Width > 0 {
		return m.viewport.Width
	}
	return 80
}

func buildResponseSnapshot(resp *httpclient.Response, prevBody string, hasPrev bool, width int, th theme.Theme) *responseSnapshot {
	content := format.Body(resp.Body, resp.Headers.Get("Content-Type"))

	body := content.Text
	if body == "" {
		body = th.Placeholder.Render("<empty body>")
	} else if content.Lexer != "" {
		if highlighted, ok := format.Highlight(body, content.Lexer); ok {
			body = highlighted
		}
	}
	if content.Note != "" {
		body = th.Placeholder.Render(content.Note) + "\n\n" + body
	}

	headerRows := format.Flatten(resp.Headers)
	headerLines := make([]string, 0, len(headerRows))
	for _, row := range headerRows {
		headerLines = append(headerLines, th.HeaderName.Render(row.Name+":")+" "+th.HeaderValue.Render(row.Value))
	}
	headers := strings.Join(headerLines, "\n")
	if headers == "" {
		headers = th.Placeholder.Render("<no headers>")
	}

	timing, plainTiming := buildTimingViews(resp.Timeline, resp.ElapsedMS(), th)
	diff, plainDiff := buildDiffViews(prevBody, content.Text, hasPrev, th)

	return &responseSnapshot{
		ok:    true,
		width: width,

		body:    wrap.ToWidth(body, width),
		headers: wrap.ToWidth(headers, width),
		timing:  wrap.ToWidth(timing, width),
		diff:    wrap.ToWidth(diff, width),

		plainBody:    content.Text,
		plainHeaders: format.HeaderText(resp.Headers),
		plainTiming:  plainTiming,
		plainDiff:    plainDiff,
	}
}

func buildFailureSnapshot(res *failure.Result, partial *httpclient.Response, width int, th theme.Theme) *responseSnapshot {
	var styled, plain strings.Builder
	styled.WriteString(th.Error.Render("Request failed"))
	styled.WriteString("\n\n")
	styled.WriteString(res.Message)
	plain.WriteString("Request failed\n\n")
	plain.WriteString(res.Message)
	if res.CORSSuspected {
		styled.WriteString("\n\n")
		styled.WriteString(th.FormLabelFocus.Render("Things to check"))
		plain.WriteString("\n\nThings to check")
		for _, item := range failure.Checklist() {
			styled.WriteString("\n")
			styled.WriteString(th.Checklist.Render("  - " + item))
			plain.WriteString("\n  - " + item)
		}
	}

	var timeline *nettrace.Timeline
	if partial != nil {
		timeline = partial.Timeline
	}
	elapsed := res.Elapsed.Round(time.Millisecond).Milliseconds()
	timing, plainTiming := buildTimingViews(timeline, elapsed, th)

	noDiff := "Request failed; nothing to compare"

	return &responseSnapshot{
		ok:    false,
		width: width,

		body:    wrap.ToWidth(styled.String(), width),
		headers: th.Placeholder.Render("<no response headers>"),
		timing:  wrap.ToWidth(timing, width),
		diff:    th.Placeholder.Render(noDiff),

		plainBody:    plain.String(),
		plainHeaders: "",
		plainTiming:  plainTiming,
		plainDiff:    noDiff,
	}
}

// buildTimingViews renders the phase table plus the total line. Phases come
// from the timeline in wall order; the total is the headline duration shown
// next to the status badge.
func buildTimingViews(timeline *nettrace.Timeline, totalMS int64, th theme.Theme) (styled, plain string) {
	rows := timeline.Rows()
	if len(rows) == 0 && totalMS == 0 {
		placeholder := "<no timing data>"
		return th.Placeholder.Render(placeholder), placeholder
	}

	widest := len("Total")
	for _, row := range rows {
		if len(row.Label) > widest {
			widest = len(row.Label)
		}
	}

	var styledLines, plainLines []string
	for _, row := range rows {
		label := fmt.Sprintf("%-*s", widest, row.Label)
		span := fmt.Sprintf("%9s", formatSpan(row.Span))
		line := th.TimingLabel.Render(label) + span
		plainLine := label + span
		if row.Detail != "" {
			line += "  " + th.TimingDetail.Render(row.Detail)
			plainLine += "  " + row.Detail
		}
		styledLines = append(styledLines, line)
		plainLines = append(plainLines, plainLine)
	}

	totalLabel := fmt.Sprintf("%-*s", widest, "Total")
	totalSpan := fmt.Sprintf("%6d ms", totalMS)
	styledLines = append(styledLines, th.TimingLabel.Render(totalLabel)+th.TimingValue.Render(totalSpan))
	plainLines = append(plainLines, totalLabel+totalSpan)

	return strings.Join(styledLines, "\n"), strings.Join(plainLines, "\n")
}

func formatSpan(d time.Duration) string {
	if d > 0 && d < time.Millisecond {
		return fmt.Sprintf("%.2f ms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%d ms", d.Round(time.Millisecond).Milliseconds())
}

func buildDiffViews(prev, current string, hasPrev bool, th theme.Theme) (styled, plain string) {
	if !hasPrev {
		text := "No previous response to compare"
		return th.Placeholder.Render(text), text
	}

	unified := udiff.Unified("previous", "current",
		ensureTrailingNewline(prev), ensureTrailingNewline(current))
	if unified == "" {
		text := "Responses are identical"
		return th.Placeholder.Render(text), text
	}
	return colorizeDiff(unified, th), unified
}

func colorizeDiff(unified string, th theme.Theme) string {
	lines := strings.Split(unified, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			lines[i] = th.DiffMeta.Render(line)
		case strings.HasPrefix(line, "@@"):
			lines[i] = th.DiffMeta.Render(line)
		case strings.HasPrefix(line, "+"):
			lines[i] = th.DiffAdded.Render(line)
		case strings.HasPrefix(line, "-"):
			lines[i] = th.DiffRemoved.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

// ensureTrailingNewline keeps the diff engine from flagging a missing final
// newline as a change.
func ensureTrailingNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}
