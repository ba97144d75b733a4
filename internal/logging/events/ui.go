package events

import "github.com/atomicstack/agent-console/internal/logging"

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) TabSelect(index int, panelID string) {
	logging.Trace("tabs.select", map[string]interface{}{"index": index, "panel": panelID})
}

func (UITracer) Cursor(component string, cursor int) {
	logging.Trace("ui.cursor", map[string]interface{}{"component": component, "cursor": cursor})
}

func (UITracer) Scroll(component string, offset int) {
	logging.Trace("ui.scroll", map[string]interface{}{"component": component, "offset": offset})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (FilterTracer) Cleared(component string) {
	logging.Trace("filter.clear", map[string]interface{}{"component": component})
}

func (FilterTracer) WordBackspace(component, filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"component": component, "filter": filter})
}

func (FilterTracer) Cursor(component string, pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"component": component, "cursor": pos})
}

func (FilterTracer) CursorWord(component string, pos int) {
	logging.Trace("filter.cursor-word", map[string]interface{}{"component": component, "cursor": pos})
}

func (FilterTracer) Append(component, filter string) {
	logging.Trace("filter.append", map[string]interface{}{"component": component, "filter": filter})
}

func (FilterTracer) Backspace(component, filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"component": component, "filter": filter})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) NoOp(id, label string) {
	logging.Trace("command.noop", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}
