package dispatcher

import (
	"github.com/atomicstack/agent-console/internal/backend"
	"github.com/atomicstack/agent-console/internal/registry"
	"github.com/atomicstack/agent-console/internal/state"
)

type Result struct {
	DeploymentsUpdated bool
}

// Dispatcher routes backend events into the UI-facing stores.
type Dispatcher struct {
	deployments state.DeploymentStore
}

func New(deployments state.DeploymentStore) *Dispatcher {
	return &Dispatcher{deployments: deployments}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindDeployments:
		if snapshot, ok := evt.Data.(registry.Snapshot); ok {
			d.deployments.SetEntries(snapshot.Deployments)
			d.deployments.SetLastSync(snapshot.FetchedAt)
			res.DeploymentsUpdated = true
		}
	}
	return res
}
