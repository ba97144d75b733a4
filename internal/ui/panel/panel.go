// Package panel defines the content contract for tab panels.
package panel

import tea "github.com/charmbracelet/bubbletea"

// Panel is implemented by tab content. Panels stay resident while hidden:
// the shell keeps delivering messages to every panel and only asks the
// active one for its view, so panel state survives tab switches.
type Panel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View(width, height int) string
}
