// Package tabs implements the tabbed page shell of the console.
package tabs

import (
	"fmt"
	"strings"

	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/atomicstack/agent-console/internal/theme"
	"github.com/atomicstack/agent-console/internal/ui/panel"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const stripHeight = 2

var styles = theme.Default()

// PanelDescriptor pairs a panel with the metadata shown in the tab strip.
type PanelDescriptor struct {
	ID      string
	Label   string
	Icon    string
	Content panel.Panel
}

// Shell owns an ordered, fixed set of panels of which exactly one is active.
// Hidden panels stay resident: every message except key input reaches all of
// them, so their state is intact when they become active again.
type Shell struct {
	panels []PanelDescriptor
	active int
	width  int
	height int
}

// New creates a shell for the given panels. Panel IDs must be unique.
func New(panels ...PanelDescriptor) *Shell {
	seen := make(map[string]struct{}, len(panels))
	for _, p := range panels {
		if _, dup := seen[p.ID]; dup {
			panic(fmt.Sprintf("tabs: duplicate panel id %q", p.ID))
		}
		seen[p.ID] = struct{}{}
	}
	return &Shell{panels: panels}
}

// Init initialises every panel, hidden ones included.
func (s *Shell) Init() tea.Cmd {
	cmds := make([]tea.Cmd, len(s.panels))
	for i, p := range s.panels {
		cmds[i] = p.Content.Init()
	}
	return tea.Batch(cmds...)
}

// Index returns the position of the active panel.
func (s *Shell) Index() int {
	return s.active
}

// Len returns the number of panels.
func (s *Shell) Len() int {
	return len(s.panels)
}

// ActiveID returns the id of the active panel.
func (s *Shell) ActiveID() string {
	if len(s.panels) == 0 {
		return ""
	}
	return s.panels[s.active].ID
}

// ActiveLabel returns the label of the active panel.
func (s *Shell) ActiveLabel() string {
	if len(s.panels) == 0 {
		return ""
	}
	return s.panels[s.active].Label
}

// Select makes panel i active. Indexes outside the panel list are ignored,
// as is selecting the already active panel.
func (s *Shell) Select(i int) {
	if i < 0 || i >= len(s.panels) || i == s.active {
		return
	}
	s.active = i
	events.UI.TabSelect(i, s.panels[i].ID)
}

// Next cycles to the following panel, wrapping past the end.
func (s *Shell) Next() {
	if len(s.panels) == 0 {
		return
	}
	s.Select((s.active + 1) % len(s.panels))
}

// Prev cycles to the preceding panel, wrapping past the start.
func (s *Shell) Prev() {
	if len(s.panels) == 0 {
		return
	}
	s.Select((s.active - 1 + len(s.panels)) % len(s.panels))
}

// SelectID activates the panel with the given id and reports whether it
// exists.
func (s *Shell) SelectID(id string) bool {
	for i, p := range s.panels {
		if p.ID == id {
			s.Select(i)
			return true
		}
	}
	return false
}

// SetSize records the area available to the shell, strip included.
func (s *Shell) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Update routes messages. Key input goes to the active panel only; every
// other message is relayed to all panels.
func (s *Shell) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab":
			s.Next()
			return nil
		case "shift+tab":
			s.Prev()
			return nil
		}
		if len(s.panels) == 0 {
			return nil
		}
		return s.panels[s.active].Content.Update(msg)
	case tea.WindowSizeMsg:
		s.SetSize(msg.Width, msg.Height)
		return s.relay(msg)
	default:
		return s.relay(msg)
	}
}

func (s *Shell) relay(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s.panels))
	for _, p := range s.panels {
		if cmd := p.Content.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// View renders the tab strip above the active panel's content. Hidden panels
// contribute nothing to the output.
func (s *Shell) View() string {
	var (
		headers []string
		used    int
	)
	for i, p := range s.panels {
		style := styles.TabInactive
		rule := "─"
		if i == s.active {
			style = styles.TabActive
			rule = "━"
		}
		label := p.Label
		if p.Icon != "" {
			label = p.Icon + " " + p.Label
		}
		heading := style.Padding(0, 1).Render(label)
		underline := style.Render(strings.Repeat(rule, lipgloss.Width(heading)))
		headers = append(headers, lipgloss.JoinVertical(lipgloss.Top, heading, underline))
		used += lipgloss.Width(heading)
	}
	if filler := s.width - used; filler > 0 {
		headers = append(headers, styles.TabInactive.Render(strings.Repeat("─", filler)))
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Bottom, headers...)

	content := ""
	if len(s.panels) > 0 {
		content = s.panels[s.active].Content.View(s.contentWidth(), s.contentHeight())
	}
	return lipgloss.JoinVertical(lipgloss.Top, strip, content)
}

func (s *Shell) contentWidth() int {
	return s.width
}

func (s *Shell) contentHeight() int {
	height := s.height - stripHeight
	if height < 0 {
		height = 0
	}
	return height
}
