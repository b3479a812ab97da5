package ui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restpad/internal/runstate"
)

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.applyLayout()
		return m, m.rerenderCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case statusPulseMsg:
		return m.handleStatusPulse()

	case statusExpireMsg:
		if msg.id == m.statusID {
			m.statusMessage = statusMsg{}
		}
		return m, nil

	case responseMsg:
		return m.handleResponseMessage(msg)

	case responseRenderedMsg:
		return m.handleRendered(msg)

	case spinner.TickMsg:
		if !m.run.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// Modal surfaces swallow everything below them.
	if m.showImport {
		return m.handleImportKey(msg)
	}
	if m.showHelp {
		switch msg.String() {
		case "esc", "q":
			m.showHelp = false
		default:
			if key.Matches(msg, m.keys.Help) {
				m.showHelp = false
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.Send):
		return m.submit()
	case key.Matches(msg, m.keys.Relay):
		m.useRelay = !m.useRelay
		if m.useRelay {
			return m.setStatus("Relay enabled: requests go through "+m.relayBase, statusInfo)
		}
		return m.setStatus("Relay disabled: requests go direct", statusInfo)
	case key.Matches(msg, m.keys.Import):
		return m.openImport()
	case key.Matches(msg, m.keys.Copy):
		return m.copyActiveTab()
	case key.Matches(msg, m.keys.NextField):
		m.cycleFocus(1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		m.cycleFocus(-1)
		return m, nil
	}

	switch m.focus {
	case focusMethod:
		return m.handleMethodKey(msg)
	case focusURL:
		return m.handleURLKey(msg)
	case focusHeaders:
		if msg.String() == "esc" {
			m.setFocus(focusResponse)
			return m, nil
		}
		var cmd tea.Cmd
		m.headersArea, cmd = m.headersArea.Update(msg)
		return m, cmd
	case focusBody:
		if msg.String() == "esc" {
			m.setFocus(focusResponse)
			return m, nil
		}
		var cmd tea.Cmd
		m.bodyArea, cmd = m.bodyArea.Update(msg)
		return m, cmd
	case focusResponse:
		return m.handleResponseKey(msg)
	}

	return m, nil
}

func (m Model) handleMethodKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "up", "h", "k":
		m.cycleMethod(-1)
	case "right", "down", "l", "j", " ", "enter":
		m.cycleMethod(1)
	case "esc":
		m.setFocus(focusResponse)
	}
	return m, nil
}

func (m Model) handleURLKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submit()
	case "esc":
		m.setFocus(focusResponse)
		return m, nil
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

func (m Model) handleResponseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.setFocus(focusURL)
		return m, nil
	case "left", "h", "[":
		m.cycleTab(-1)
		return m, nil
	case "right", "l", "]":
		m.cycleTab(1)
		return m, nil
	case "1", "2", "3", "4":
		m.tab = responseTabs[int(msg.String()[0]-'1')]
		m.syncViewport()
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) handleRendered(msg responseRenderedMsg) (tea.Model, tea.Cmd) {
	if msg.token != m.renderToken {
		return m, nil
	}
	m.snapshot = msg.snapshot
	m.syncViewport()
	return m, nil
}

// rerenderCmd rebuilds the display views for the stored outcome, typically
// after a resize changed the wrap width.
func (m *Model) rerenderCmd() tea.Cmd {
	switch m.run.Kind() {
	case runstate.KindSucceeded:
		return m.renderResponseCmd(m.run.Response())
	case runstate.KindFailed:
		return m.renderFailureCmd(m.run.Failure(), m.failResponse)
	}
	return nil
}
