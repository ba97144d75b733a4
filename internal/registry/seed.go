package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Seed populates an empty registry with sample deployments so the console has
// something to show in demo mode. A registry that already holds rows is left
// untouched.
func (r *Registry) Seed(ctx context.Context) error {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM deployments`).Scan(&count); err != nil {
		return fmt.Errorf("count deployments: %w", err)
	}
	if count > 0 {
		return nil
	}
	now := time.Now()
	samples := []Deployment{
		{Name: "chat-gateway", Agent: "concierge", Env: "prod", Status: StatusRunning, Replicas: 6, Endpoint: "grpc://chat-gateway.prod:7443", UpdatedAt: now.Add(-3 * time.Minute)},
		{Name: "chat-gateway", Agent: "concierge", Env: "staging", Status: StatusScaling, Replicas: 2, Endpoint: "grpc://chat-gateway.staging:7443", UpdatedAt: now.Add(-40 * time.Second)},
		{Name: "codegen-worker", Agent: "scribe", Env: "prod", Status: StatusRunning, Replicas: 4, Endpoint: "grpc://codegen-worker.prod:7443", UpdatedAt: now.Add(-2 * time.Hour)},
		{Name: "eval-runner", Agent: "sentinel", Env: "dev", Status: StatusStopped, Replicas: 0, Endpoint: "grpc://eval-runner.dev:7443", UpdatedAt: now.Add(-26 * time.Hour)},
		{Name: "rag-indexer", Agent: "harvest", Env: "prod", Status: StatusDegraded, Replicas: 3, Endpoint: "grpc://rag-indexer.prod:7443", UpdatedAt: now.Add(-12 * time.Minute)},
		{Name: "sentiment-api", Agent: "atlas", Env: "prod", Status: StatusRunning, Replicas: 8, Endpoint: "grpc://sentiment-api.prod:7443", UpdatedAt: now.Add(-55 * time.Minute)},
		{Name: "summarizer", Agent: "scribe", Env: "staging", Status: StatusFailed, Replicas: 1, Endpoint: "grpc://summarizer.staging:7443", UpdatedAt: now.Add(-90 * time.Second)},
		{Name: "ticket-triage", Agent: "concierge", Env: "prod", Status: StatusRunning, Replicas: 2, Endpoint: "grpc://ticket-triage.prod:7443", UpdatedAt: now.Add(-7 * time.Minute)},
	}
	for _, d := range samples {
		d.ID = uuid.NewString()
		if err := r.Upsert(ctx, d); err != nil {
			return err
		}
	}
	return nil
}
