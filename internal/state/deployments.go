package state

import (
	"time"

	"github.com/atomicstack/agent-console/internal/registry"
)

// DeploymentStore holds the most recent registry snapshot for the UI.
// Entries are cloned on the way in and out so callers cannot mutate the
// stored slice.
type DeploymentStore interface {
	Entries() []registry.Deployment
	SetEntries([]registry.Deployment)
	LastSync() time.Time
	SetLastSync(time.Time)
}

type deploymentStore struct {
	entries  []registry.Deployment
	lastSync time.Time
}

func NewDeploymentStore() DeploymentStore {
	return &deploymentStore{}
}

func (s *deploymentStore) Entries() []registry.Deployment {
	return cloneDeployments(s.entries)
}

func (s *deploymentStore) SetEntries(entries []registry.Deployment) {
	s.entries = cloneDeployments(entries)
}

func (s *deploymentStore) LastSync() time.Time {
	return s.lastSync
}

func (s *deploymentStore) SetLastSync(at time.Time) {
	s.lastSync = at
}

func cloneDeployments(entries []registry.Deployment) []registry.Deployment {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]registry.Deployment, len(entries))
	copy(dup, entries)
	return dup
}
