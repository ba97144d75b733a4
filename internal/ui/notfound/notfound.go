// Package notfound renders the console's catch-all page for unknown routes.
package notfound

import (
	"fmt"
	"strings"

	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/atomicstack/agent-console/internal/theme"
	"github.com/atomicstack/agent-console/internal/ui/route"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"
)

var styles = theme.Default()

// Navigator issues route changes on behalf of a page.
type Navigator interface {
	NavigateTo(path string) tea.Cmd
}

// View is the stateless not-found page. Its only interaction is going home.
type View struct {
	nav       Navigator
	requested string
}

// New creates the page for a route that did not resolve.
func New(nav Navigator, requested string) *View {
	return &View{nav: nav, requested: requested}
}

func (v *View) Init() tea.Cmd { return nil }

// Update reacts to the go-home keys. Each press issues exactly one
// navigation to the home route; everything else is ignored.
func (v *View) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "enter", "h":
		events.Nav.Home(v.requested)
		return v.nav.NavigateTo(route.Home)
	}
	return nil
}

func (v *View) View(width, height int) string {
	message := "The page you are looking for does not exist."
	if v.requested != "" {
		message = fmt.Sprintf("No page matches %q.", v.requested)
	}
	if width > 0 {
		message = wordwrap.String(message, width)
	}
	lines := []string{
		styles.Error.Render("404"),
		"",
		styles.Title.Render("Page not found"),
		"",
		message,
		"",
		styles.Subtle.Render("press enter to go home"),
	}
	return strings.Join(lines, "\n")
}
