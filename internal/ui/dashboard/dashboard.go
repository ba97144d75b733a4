// Package dashboard implements the deployment dashboard panel: a filterable
// table of the agent deployments known to the registry.
package dashboard

import (
	"fmt"
	"time"
	"unicode"

	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/atomicstack/agent-console/internal/registry"
	"github.com/atomicstack/agent-console/internal/theme"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

const componentID = "deployments"

var styles = theme.Default()

// timeNow is swappable so tests can pin relative timestamps.
var timeNow = time.Now

// DataMsg carries a fresh registry snapshot into the dashboard. The shell
// delivers it to the panel whether or not it is visible.
type DataMsg struct {
	Rows     []registry.Deployment
	SyncedAt time.Time
}

// RefreshRequested asks the application to poll the registry immediately.
type RefreshRequested struct{}

// Model is the deployment dashboard panel.
type Model struct {
	list              *List
	filterCursor      cursor.Model
	filterCursorDirty bool
	infoMsg           string
	synced            time.Time
	loaded            bool
	visible           int
}

func New() *Model {
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	return &Model{list: NewList(), filterCursor: c}
}

func (m *Model) Init() tea.Cmd {
	return m.filterCursor.Focus()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := m.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case DataMsg:
		m.applyData(msg)
	}
	return m.finishUpdate(cmds)
}

func (m *Model) applyData(msg DataMsg) {
	m.list.UpdateRows(msg.Rows)
	m.synced = msg.SyncedAt
	m.loaded = true
	m.syncViewport()
	events.Data.Deployments(len(msg.Rows))
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.handleCursorKeys(msg) {
		return nil
	}
	if handled, cmd := m.handleTextInput(msg); handled {
		return cmd
	}
	switch msg.String() {
	case "ctrl+r":
		return func() tea.Msg { return RefreshRequested{} }
	case "enter":
		if row, ok := m.list.Selected(); ok {
			m.infoMsg = fmt.Sprintf("%s ⋅ %s", row.Name, row.Endpoint)
		}
	}
	return nil
}

func (m *Model) handleCursorKeys(msg tea.KeyMsg) bool {
	moved := false
	switch msg.String() {
	case "up", "ctrl+p":
		moved = m.list.MoveCursorUp()
	case "down", "ctrl+n":
		moved = m.list.MoveCursorDown()
	case "pgup":
		moved = m.list.MoveCursorPageUp(m.visible)
	case "pgdown":
		moved = m.list.MoveCursorPageDown(m.visible)
	case "home":
		moved = m.list.MoveCursorHome()
	case "end":
		moved = m.list.MoveCursorEnd()
	default:
		return false
	}
	if moved {
		m.infoMsg = ""
		m.syncViewport()
		events.UI.Cursor(componentID, m.list.Cursor)
	}
	return true
}

func (m *Model) handleTextInput(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "ctrl+u":
		if m.list.Filter == "" {
			return false, nil
		}
		before := m.list.FilterCursorPos()
		m.list.SetFilter("", 0)
		m.noteFilterCursorChange(before)
		m.infoMsg = ""
		events.Filter.Cleared(componentID)
		m.syncViewport()
		return true, nil
	case "ctrl+w":
		before := m.list.FilterCursorPos()
		if !m.list.DeleteFilterWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		m.infoMsg = ""
		events.Filter.WordBackspace(componentID, m.list.Filter)
		m.syncViewport()
		return true, nil
	case "ctrl+a":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorStart() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(componentID, m.list.FilterCursor)
		return true, nil
	case "ctrl+e":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorEnd() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(componentID, m.list.FilterCursor)
		return true, nil
	case "alt+b":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorWordBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(componentID, m.list.FilterCursor)
		return true, nil
	case "alt+f":
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorWordForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.CursorWord(componentID, m.list.FilterCursor)
		return true, nil
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune(), nil
	case tea.KeyRunes:
		if msg.Alt {
			return false, nil
		}
		if len(msg.Runes) == 0 {
			return false, nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false, nil
			}
			if unicode.IsSpace(r) {
				// the dedicated space handler manages spaces
				return false, nil
			}
		}
		return m.appendToFilter(string(msg.Runes)), nil
	case tea.KeySpace:
		return m.appendToFilter(" "), nil
	case tea.KeyLeft:
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorRuneBackward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(componentID, m.list.FilterCursor)
		return true, nil
	case tea.KeyRight:
		before := m.list.FilterCursorPos()
		if !m.list.MoveFilterCursorRuneForward() {
			return false, nil
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(componentID, m.list.FilterCursor)
		return true, nil
	}
	return false, nil
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	before := m.list.FilterCursorPos()
	if !m.list.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.infoMsg = ""
	events.Filter.Append(componentID, m.list.Filter)
	m.syncViewport()
	return true
}

func (m *Model) removeFilterRune() bool {
	before := m.list.FilterCursorPos()
	if !m.list.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.infoMsg = ""
	events.Filter.Backspace(componentID, m.list.Filter)
	m.syncViewport()
	return true
}

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.list.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

func (m *Model) syncViewport() {
	m.list.EnsureCursorVisible(m.visible)
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		m.filterCursor.Blink = false
		if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
