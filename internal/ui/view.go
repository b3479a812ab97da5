package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/unkn0wn-root/restpad/internal/runstate"
	"github.com/unkn0wn-root/restpad/internal/status"
	"github.com/unkn0wn-root/restpad/internal/wrap"
)

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	statusBar := m.renderStatusBar()
	if m.showImport {
		statusBar = m.renderImportPrompt()
	}

	return strings.Join([]string{
		m.renderTitle(),
		m.renderForm(),
		m.renderResponsePane(),
		statusBar,
	}, "\n")
}

func (m Model) renderTitle() string {
	left := m.theme.Title.Render("restpad")
	if m.cfg.Version != "" {
		left += " " + m.theme.TitleHint.Render(m.cfg.Version)
	}

	relay := m.theme.RelayOff.Render("relay off")
	if m.useRelay {
		relay = m.theme.RelayOn.Render("relay on")
	}

	gap := m.width - wrap.Visible(left) - wrap.Visible(relay)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + relay
}

func (m Model) formFocused() bool {
	return m.focus != focusResponse
}

func (m Model) fieldLabel(text string, field focusField) string {
	if m.focus == field {
		return m.theme.FormLabelFocus.Render(text)
	}
	return m.theme.FormLabel.Render(text)
}

func (m Model) renderForm() string {
	method := m.theme.MethodStyle(m.method()).Render(m.method())
	if m.focus == focusMethod {
		method = m.theme.FormLabelFocus.Render("< ") + method + m.theme.FormLabelFocus.Render(" >")
	} else {
		method = "  " + method + "  "
	}

	rows := []string{
		lipgloss.JoinHorizontal(lipgloss.Top, method, " ", m.urlInput.View()),
		m.fieldLabel("Headers (JSON object)", focusHeaders),
		m.headersArea.View(),
	}
	if m.bodyVisible() {
		rows = append(rows,
			m.fieldLabel("Body", focusBody),
			m.bodyArea.View(),
		)
	}

	border := m.theme.PaneBorderBlur
	if m.formFocused() {
		border = m.theme.PaneBorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.width - 2).
		Render(strings.Join(rows, "\n"))
}

func (m Model) renderResponsePane() string {
	content := strings.Join([]string{
		m.renderResponseSummary(),
		m.renderTabs(),
		m.viewport.View(),
	}, "\n")

	border := m.theme.PaneBorderBlur
	if m.focus == focusResponse {
		border = m.theme.PaneBorderFocus
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(m.width - 2).
		Render(content)
}

func (m Model) renderResponseSummary() string {
	line := ""
	switch m.run.Kind() {
	case runstate.KindEmpty:
		line = m.theme.Placeholder.Render("No response yet. Press Ctrl+S to send.")
	case runstate.KindPending:
		line = m.spin.View() + " " + m.theme.Pending.Render("Waiting for response")
	case runstate.KindSucceeded:
		resp := m.run.Response()
		parts := []string{
			m.theme.TierStyle(status.Classify(resp.StatusCode)).Render(resp.Status),
			m.theme.Elapsed.Render(fmt.Sprintf("%d ms", resp.ElapsedMS())),
		}
		if resp.Proto != "" {
			parts = append(parts, m.theme.TitleHint.Render(resp.Proto))
		}
		if resp.EffectiveURL != "" && resp.EffectiveURL != resp.Plan.URL {
			parts = append(parts, m.theme.TitleHint.Render(resp.EffectiveURL))
		}
		line = strings.Join(parts, "  ")
	case runstate.KindFailed:
		res := m.run.Failure()
		line = m.theme.Error.Render("Failed")
		if res != nil && res.Elapsed > 0 {
			line += "  " + m.theme.Elapsed.Render(fmt.Sprintf("%d ms", res.Elapsed.Milliseconds()))
		}
	}
	return wrap.Truncate(line, m.contentWidth(), "…")
}

func (m Model) renderTabs() string {
	cells := make([]string, 0, len(responseTabs))
	for _, tab := range responseTabs {
		style := m.theme.TabInactive
		if tab == m.tab {
			style = m.theme.TabActive
		}
		cells = append(cells, style.Render(tab.title()))
	}
	return strings.Join(cells, " ")
}

func (m Model) renderStatusBar() string {
	if m.statusMessage.text != "" {
		style := m.theme.Notification
		switch m.statusMessage.level {
		case statusError:
			style = m.theme.Error
		case statusSuccess:
			style = m.theme.Success
		case statusWarn:
			style = m.theme.Pending
		}
		return wrap.Truncate(m.theme.StatusBar.Render(style.Render(m.statusMessage.text)), m.width, "…")
	}

	hints := make([]string, 0, 4)
	for _, binding := range []struct{ key, desc string }{
		{"Tab", "fields"},
		{"Ctrl+S", "send"},
		{"Ctrl+R", "relay"},
		{"F1", "help"},
	} {
		hints = append(hints, m.theme.StatusBarKey.Render(binding.key)+" "+m.theme.StatusBarValue.Render(binding.desc))
	}
	return wrap.Truncate(m.theme.StatusBar.Render(strings.Join(hints, "  ")), m.width, "…")
}

func (m Model) renderImportPrompt() string {
	tail := m.theme.TitleHint.Render("Enter imports, Esc cancels")
	if m.importError != "" {
		tail = m.theme.Error.Render(m.importError)
	}
	line := m.theme.FormLabelFocus.Render("Import curl:") + " " + m.importInput.View() + " " + tail
	return wrap.Truncate(line, m.width, "…")
}

func (m Model) renderHelp() string {
	lines := []string{m.theme.Title.Render("Keys"), ""}
	for _, binding := range m.keys.helpEntries() {
		help := binding.Help()
		lines = append(lines,
			m.theme.StatusBarKey.Render(fmt.Sprintf("%-11s", help.Key))+
				m.theme.StatusBarValue.Render(help.Desc))
	}
	lines = append(lines, "", m.theme.TitleHint.Render("Press F1 or Esc to close"))

	box := m.theme.AppFrame.Padding(1, 3).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
