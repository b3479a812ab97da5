package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restpad/internal/curlimport"
	"github.com/unkn0wn-root/restpad/internal/request"
)

// openImport shows the curl prompt. When the clipboard already holds a
// parseable curl command it is offered as the initial value.
func (m Model) openImport() (tea.Model, tea.Cmd) {
	m.showImport = true
	m.importError = ""
	m.importInput.SetValue("")
	if text, err := clipboard.ReadAll(); err == nil {
		if _, parseErr := curlimport.Parse(text); parseErr == nil {
			m.importInput.SetValue(strings.TrimSpace(text))
		}
	}
	m.importInput.CursorEnd()
	m.importInput.Focus()
	return m, textinput.Blink
}

func (m Model) handleImportKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.showImport = false
		m.importError = ""
		m.importInput.Blur()
		return m, nil
	case "enter":
		return m.runImport()
	}
	var cmd tea.Cmd
	m.importInput, cmd = m.importInput.Update(msg)
	return m, cmd
}

// runImport parses the prompt's command and loads the result into the form.
// Parse errors keep the prompt open so the command can be fixed in place.
func (m Model) runImport() (tea.Model, tea.Cmd) {
	draft, err := curlimport.Parse(m.importInput.Value())
	if err != nil {
		m.importError = err.Error()
		return m, nil
	}
	m.showImport = false
	m.importError = ""
	m.importInput.Blur()
	m.applyDraft(draft)
	return m.setStatus(fmt.Sprintf("Imported %s %s", draft.Method, draft.URL), statusSuccess)
}

// applyDraft replaces the form fields. The relay toggle is left alone; curl
// commands carry no equivalent.
func (m *Model) applyDraft(d request.Draft) {
	m.methodIndex = request.MethodIndex(d.Method)
	m.urlInput.SetValue(d.URL)
	m.headersArea.SetValue(d.HeadersText)
	m.bodyArea.SetValue(d.BodyText)
	if m.focus == focusBody && !m.bodyVisible() {
		m.setFocus(focusHeaders)
	}
	m.applyLayout()
}
