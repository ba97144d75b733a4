// Package route names the pages the console can show.
package route

import "strings"

const (
	// Agents is the deployment console page.
	Agents = "agents"
	// Home is where home navigation lands, e.g. from the not-found page.
	Home = Agents
)

// Split breaks a route like "agents:monitoring" into its page and panel
// parts. Routes without a colon have an empty panel.
func Split(path string) (page, panel string) {
	page, panel, _ = strings.Cut(path, ":")
	return page, panel
}
