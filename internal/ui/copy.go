package ui

import (
	"log"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/unkn0wn-root/restpad/internal/errdef"
)

// copyActiveTab puts the active tab's unstyled text on the system clipboard.
func (m Model) copyActiveTab() (tea.Model, tea.Cmd) {
	if m.snapshot == nil {
		return m.setStatus("Nothing to copy yet", statusWarn)
	}
	text := m.snapshot.plain(m.tab)
	if text == "" {
		return m.setStatus("The "+m.tab.title()+" tab is empty", statusWarn)
	}
	if err := clipboard.WriteAll(text); err != nil {
		log.Printf("%v", errdef.Wrap(errdef.CodeClipboard, err, "copy %s tab", m.tab.title()))
		return m.setStatus("Clipboard unavailable: "+err.Error(), statusWarn)
	}
	return m.setStatus("Copied "+m.tab.title()+" to clipboard", statusSuccess)
}
