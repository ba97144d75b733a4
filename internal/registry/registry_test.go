package registry

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.db")
	reg, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = reg.Close() })
	return reg
}

func TestOpenCreatesSchema(t *testing.T) {
	reg := openTestRegistry(t)

	snap, err := reg.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap.Deployments)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestUpsertRoundTrip(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	updated := time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)
	want := Deployment{
		ID:        "dep-1",
		Name:      "sentiment-api",
		Agent:     "atlas",
		Env:       "prod",
		Status:    StatusRunning,
		Replicas:  8,
		Endpoint:  "grpc://sentiment-api.prod:7443",
		UpdatedAt: updated,
	}
	require.NoError(t, reg.Upsert(ctx, want))

	snap, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Deployments, 1)
	assert.Equal(t, want, snap.Deployments[0])
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	d := Deployment{ID: "dep-1", Name: "ranker", Agent: "atlas", Env: "prod", Status: StatusScaling, Replicas: 2, UpdatedAt: time.Unix(1700000000, 0)}
	require.NoError(t, reg.Upsert(ctx, d))

	d.Status = StatusRunning
	d.Replicas = 5
	require.NoError(t, reg.Upsert(ctx, d))

	snap, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Deployments, 1)
	assert.Equal(t, StatusRunning, snap.Deployments[0].Status)
	assert.Equal(t, 5, snap.Deployments[0].Replicas)
}

func TestListOrdersByNameThenEnv(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	now := time.Unix(1700000000, 0)
	for _, d := range []Deployment{
		{ID: "c", Name: "summarizer", Agent: "scribe", Env: "prod", Status: StatusRunning, UpdatedAt: now},
		{ID: "a", Name: "chat-gateway", Agent: "concierge", Env: "staging", Status: StatusRunning, UpdatedAt: now},
		{ID: "b", Name: "chat-gateway", Agent: "concierge", Env: "prod", Status: StatusRunning, UpdatedAt: now},
	} {
		require.NoError(t, reg.Upsert(ctx, d))
	}

	snap, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Deployments, 3)
	assert.Equal(t, "b", snap.Deployments[0].ID)
	assert.Equal(t, "a", snap.Deployments[1].ID)
	assert.Equal(t, "c", snap.Deployments[2].ID)
}

func TestSeedPopulatesEmptyRegistryOnce(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.Seed(ctx))
	snap, err := reg.List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, snap.Deployments)
	for _, d := range snap.Deployments {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Name)
		assert.NotEmpty(t, d.Agent)
	}

	// A second seed must not duplicate rows.
	require.NoError(t, reg.Seed(ctx))
	again, err := reg.List(ctx)
	require.NoError(t, err)
	assert.Len(t, again.Deployments, len(snap.Deployments))
}

func TestSeedLeavesExistingRowsAlone(t *testing.T) {
	reg := openTestRegistry(t)
	ctx := context.Background()

	d := Deployment{ID: "keep", Name: "keeper", Agent: "atlas", Env: "prod", Status: StatusRunning, UpdatedAt: time.Unix(1700000000, 0)}
	require.NoError(t, reg.Upsert(ctx, d))
	require.NoError(t, reg.Seed(ctx))

	snap, err := reg.List(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Deployments, 1)
	assert.Equal(t, "keep", snap.Deployments[0].ID)
}

func TestPathHidesMemoryRegistries(t *testing.T) {
	reg, err := Open(":memory:")
	require.NoError(t, err)
	defer reg.Close()
	assert.Empty(t, reg.Path())
}

func TestResolvePathPrefersExplicit(t *testing.T) {
	dir := t.TempDir()
	explicit := filepath.Join(dir, "nested", "registry.db")
	got, err := ResolvePath(explicit)
	require.NoError(t, err)
	assert.Equal(t, explicit, got)
	assert.DirExists(t, filepath.Dir(got))
}

func TestResolvePathDefaultsToDataDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := ResolvePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "agent-console", "registry.db"), got)
	assert.DirExists(t, filepath.Dir(got))
}
