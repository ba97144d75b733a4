package panel

import (
	"fmt"
	"strings"

	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/atomicstack/agent-console/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
)

var styles = theme.Default()

// Static renders fixed informational content with simple scrolling. It backs
// the panels that show prepared summaries rather than live data.
type Static struct {
	id     string
	title  string
	lines  []string
	offset int
	height int
}

func NewStatic(id, title string, lines []string) *Static {
	return &Static{id: id, title: title, lines: lines}
}

func (s *Static) Init() tea.Cmd { return nil }

func (s *Static) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	before := s.offset
	switch key.String() {
	case "up", "k":
		s.offset--
	case "down", "j":
		s.offset++
	case "pgup":
		s.offset -= s.page()
	case "pgdown":
		s.offset += s.page()
	case "home", "g":
		s.offset = 0
	case "end", "G":
		s.offset = len(s.lines)
	default:
		return nil
	}
	s.clamp()
	if s.offset != before {
		events.UI.Scroll(s.id, s.offset)
	}
	return nil
}

func (s *Static) View(width, height int) string {
	body := height - 2
	if body < 1 {
		body = 1
	}
	overflow := len(s.lines) > body
	if overflow && body > 1 {
		body--
	}
	s.height = body
	s.clamp()

	end := s.offset + body
	if end > len(s.lines) {
		end = len(s.lines)
	}
	out := make([]string, 0, body+3)
	out = append(out, styles.Title.Render(truncateLine(s.title, width)))
	out = append(out, "")
	for _, line := range s.lines[s.offset:end] {
		out = append(out, truncateLine(line, width))
	}
	if overflow {
		out = append(out, styles.Subtle.Render(fmt.Sprintf("%d-%d of %d", s.offset+1, end, len(s.lines))))
	}
	return strings.Join(out, "\n")
}

func (s *Static) page() int {
	if s.height > 0 {
		return s.height
	}
	return 10
}

func (s *Static) clamp() {
	limit := len(s.lines) - s.page()
	if limit < 0 {
		limit = 0
	}
	if s.offset > limit {
		s.offset = limit
	}
	if s.offset < 0 {
		s.offset = 0
	}
}

func truncateLine(text string, width int) string {
	if width <= 0 {
		return text
	}
	return truncate.StringWithTail(text, uint(width), "…")
}
