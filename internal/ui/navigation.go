package ui

import (
	"fmt"

	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/atomicstack/agent-console/internal/ui/notfound"
	"github.com/atomicstack/agent-console/internal/ui/route"
	tea "github.com/charmbracelet/bubbletea"
)

// navigateMsg asks the root model to show the page at path.
type navigateMsg struct {
	path string
}

// NavigateTo implements notfound.Navigator. The route change lands on the
// next update cycle.
func (m *Model) NavigateTo(path string) tea.Cmd {
	return func() tea.Msg {
		return navigateMsg{path: path}
	}
}

func (m *Model) handleNavigateMsg(msg tea.Msg) tea.Cmd {
	nav, ok := msg.(navigateMsg)
	if !ok {
		return nil
	}
	m.applyRoute(nav.path)
	return nil
}

// applyRoute resolves a route like "agents" or "agents:monitoring". Unknown
// pages land on the not-found view; the shell and its panels stay resident
// underneath so their state survives the detour.
func (m *Model) applyRoute(path string) {
	events.Nav.Route(path)
	page, panelID := route.Split(path)
	if page == "" {
		page = route.Agents
	}
	if page != route.Agents {
		m.showNotFound(path)
		return
	}
	m.notFound = nil
	m.errMsg = ""
	if panelID != "" && !m.shell.SelectID(panelID) {
		m.errMsg = fmt.Sprintf("unknown panel %q", panelID)
	}
}

func (m *Model) showNotFound(path string) {
	events.Nav.NotFound(path)
	m.notFound = notfound.New(m, path)
}
