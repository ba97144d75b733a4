package events

import "github.com/atomicstack/agent-console/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Route(path string) {
	logging.Trace("nav.route", map[string]interface{}{"path": path})
}

func (NavTracer) NotFound(path string) {
	logging.Trace("nav.not-found", map[string]interface{}{"path": path})
}

func (NavTracer) Home(from string) {
	logging.Trace("nav.home", map[string]interface{}{"from": from})
}
