package ui

import (
	"fmt"

	"github.com/atomicstack/agent-console/internal/backend"
	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/atomicstack/agent-console/internal/ui/dashboard"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	cmd := m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		waitCmd := waitForBackendEvent(m.backend)
		if cmd != nil {
			return tea.Batch(cmd, waitCmd)
		}
		return waitCmd
	}
	return cmd
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) applyBackendEvent(evt backend.Event) tea.Cmd {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		events.Data.Error(evt.Err)
		return nil
	}

	res := m.dispatcher.Handle(evt)
	var cmd tea.Cmd
	if res.DeploymentsUpdated {
		rows := m.deployments.Entries()
		// The shell relays data to every panel, hidden ones included.
		cmd = m.shell.Update(dashboard.DataMsg{
			Rows:     rows,
			SyncedAt: m.deployments.LastSync(),
		})
		if m.verbose {
			m.statusInfo = fmt.Sprintf("synced %d deployments", len(rows))
			events.Action.Success(m.statusInfo)
		}
	}
	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
	return cmd
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
