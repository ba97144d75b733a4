package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const footerText = "tab/shift+tab switch  ↑/↓ move  type to filter  enter details  ctrl+r refresh  esc quit"

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]string, 0, 8)
	lines = append(lines, m.headerLine())
	if m.notFound != nil {
		lines = append(lines, m.notFound.View(m.width, m.bodyHeight()))
	} else {
		lines = append(lines, m.shell.View())
	}
	lines = append(lines, m.statusLine())
	if m.showFooter {
		lines = append(lines, "")
		lines = append(lines, renderWith(styles.Footer, footerText))
	}
	if m.width > 0 {
		for i, line := range lines {
			if lipgloss.Width(line) > m.width {
				lines[i] = clipLine(line, m.width)
			}
		}
	}
	return strings.Join(lines, "\n")
}

// clipLine trims one rendered row to width columns. Multi-row segments are
// clipped row by row so embedded newlines survive.
func clipLine(line string, width int) string {
	rows := strings.Split(line, "\n")
	for i, row := range rows {
		if lipgloss.Width(row) > width {
			rows[i] = truncate.StringWithTail(row, uint(width-1), "…")
		}
	}
	return strings.Join(rows, "\n")
}

func (m *Model) headerLine() string {
	segments := []string{rootTitle}
	if m.notFound != nil {
		segments = append(segments, "404")
	} else if label := m.shell.ActiveLabel(); label != "" {
		segments = append(segments, strings.ToLower(label))
	}
	return renderWith(styles.Header, strings.Join(segments, headerSeparator))
}

func (m *Model) statusLine() string {
	if m.errMsg != "" {
		return renderWith(styles.Error, fmt.Sprintf("Error: %s", m.errMsg))
	}
	if warn, msg := m.hasBackendIssue(); warn {
		return renderWith(styles.Error, fmt.Sprintf("Error: %s", msg))
	}
	if m.statusInfo != "" {
		return renderWith(styles.Info, m.statusInfo)
	}
	return ""
}

// bodyHeight is the vertical room left for the shell after the header,
// status line, and optional footer.
func (m *Model) bodyHeight() int {
	used := 2
	if m.showFooter {
		used += 2
	}
	h := m.height - used
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return m.shell.Update(tea.WindowSizeMsg{Width: m.width, Height: m.bodyHeight()})
}

func renderWith(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
