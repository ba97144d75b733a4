package events

import "github.com/atomicstack/agent-console/internal/logging"

type DataTracer struct{}

var Data = DataTracer{}

func (DataTracer) Deployments(count int) {
	logging.Trace("data.deployments", map[string]interface{}{"count": count})
}

func (DataTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("data.error", map[string]interface{}{"error": err.Error()})
}
