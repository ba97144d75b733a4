package dashboard

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/agent-console/internal/format"
	"github.com/atomicstack/agent-console/internal/format/table"
	"github.com/atomicstack/agent-console/internal/registry"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const statusColumn = 3

var columns = []table.Column{
	{Title: "NAME"},
	{Title: "AGENT"},
	{Title: "ENV"},
	{Title: "STATUS"},
	{Title: "REPLICAS", Align: table.AlignRight},
	{Title: "UPDATED"},
}

// View renders the dashboard into the given content box. The last two lines
// are the summary and the filter prompt; everything above is the table.
func (m *Model) View(width, height int) string {
	if !m.loaded {
		return renderLine(styles.Loading, "Loading deployments...")
	}

	visible := height - 3
	if visible < 1 {
		visible = 1
	}
	m.visible = visible
	m.list.EnsureCursorVisible(visible)

	lines := make([]string, 0, visible+3)
	header, cells := table.Pad(columns, m.rowCells())
	lines = append(lines, renderLine(styles.TableHeader, "  "+strings.Join(header, "  ")))

	if len(m.list.Rows) == 0 {
		lines = append(lines, m.emptyLine())
	} else {
		start := m.list.ViewportOffset
		if start < 0 {
			start = 0
		}
		end := start + visible
		if end > len(cells) {
			end = len(cells)
		}
		if start > end {
			start = end
		}
		for i := start; i < end; i++ {
			lines = append(lines, m.renderRow(cells[i], m.list.Rows[i], i == m.list.Cursor))
		}
	}

	lines = append(lines, m.summaryLine())
	lines = append(lines, m.filterPrompt())

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if width > 0 {
			line = truncate.String(line, uint(width))
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func (m *Model) rowCells() [][]string {
	now := timeNow()
	rows := make([][]string, 0, len(m.list.Rows))
	for _, d := range m.list.Rows {
		rows = append(rows, []string{
			d.Name,
			d.Agent,
			d.Env,
			string(d.Status),
			strconv.Itoa(d.Replicas),
			format.Ago(d.UpdatedAt, now),
		})
	}
	return rows
}

func (m *Model) renderRow(cells []string, row registry.Deployment, selected bool) string {
	if selected {
		return renderLine(styles.SelectedItem, "▸ "+strings.Join(cells, "  "))
	}
	styled := make([]string, len(cells))
	for i, cell := range cells {
		if i == statusColumn {
			styled[i] = renderLine(statusStyle(row.Status), cell)
		} else {
			styled[i] = cell
		}
	}
	return "  " + strings.Join(styled, "  ")
}

func (m *Model) emptyLine() string {
	if q := strings.TrimSpace(m.list.Filter); q != "" {
		return renderLine(styles.Info, fmt.Sprintf("no deployments match %q", q))
	}
	return renderLine(styles.Info, "no deployments registered")
}

func (m *Model) summaryLine() string {
	if m.infoMsg != "" {
		return renderLine(styles.Info, m.infoMsg)
	}
	synced := format.Ago(m.synced, timeNow())
	total := len(m.list.Full)
	if strings.TrimSpace(m.list.Filter) != "" {
		return renderLine(styles.Subtle, fmt.Sprintf("%d/%d deployments ⋅ synced %s", len(m.list.Rows), total, synced))
	}
	return renderLine(styles.Subtle, fmt.Sprintf("%d deployments ⋅ synced %s", total, synced))
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.list.Filter
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		var caretRune string
		var rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := m.list.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	var caretRune string
	if pos < len(runes) {
		caretRune = string(runes[pos])
	} else {
		caretRune = " "
	}
	caret := m.renderFilterCursor(caretRune)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}

func statusStyle(s registry.Status) *lipgloss.Style {
	switch s {
	case registry.StatusRunning:
		return styles.StatusRunning
	case registry.StatusDegraded:
		return styles.StatusDegraded
	case registry.StatusFailed:
		return styles.StatusFailed
	case registry.StatusScaling:
		return styles.StatusScaling
	case registry.StatusStopped:
		return styles.StatusStopped
	}
	return nil
}

func renderLine(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}
