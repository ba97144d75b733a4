// Package registry reads agent deployment records out of the local
// deployment registry, a SQLite database maintained by the control plane.
package registry

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Status is the lifecycle state reported for a deployment.
type Status string

const (
	StatusRunning  Status = "running"
	StatusDegraded Status = "degraded"
	StatusFailed   Status = "failed"
	StatusScaling  Status = "scaling"
	StatusStopped  Status = "stopped"
)

// Deployment is a single agent deployment row.
type Deployment struct {
	ID        string
	Name      string
	Agent     string
	Env       string
	Status    Status
	Replicas  int
	Endpoint  string
	UpdatedAt time.Time
}

// Snapshot carries the result of a registry read.
type Snapshot struct {
	Deployments []Deployment
	FetchedAt   time.Time
}

// Registry wraps the SQLite database holding deployment records.
type Registry struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	agent TEXT NOT NULL,
	env TEXT NOT NULL,
	status TEXT NOT NULL,
	replicas INTEGER NOT NULL DEFAULT 0,
	endpoint TEXT NOT NULL DEFAULT '',
	updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS deployments_name ON deployments (name);
`

// Open opens the registry database at path, creating the file and schema on
// first use. Use ":memory:" for an in-memory registry.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping registry %s: %w", path, err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure registry: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialise registry schema: %w", err)
	}
	return &Registry{db: db, path: path}, nil
}

// Close releases the underlying database handle.
func (r *Registry) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Path returns the filesystem path of the database file. It is empty for
// in-memory registries.
func (r *Registry) Path() string {
	if r.path == ":memory:" {
		return ""
	}
	return r.path
}

// List returns every deployment ordered by name.
func (r *Registry) List(ctx context.Context) (Snapshot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, agent, env, status, replicas, endpoint, updated_at
		 FROM deployments ORDER BY name, env`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list deployments: %w", err)
	}
	defer rows.Close()

	var deployments []Deployment
	for rows.Next() {
		var d Deployment
		var status string
		var updated int64
		if err := rows.Scan(&d.ID, &d.Name, &d.Agent, &d.Env, &status, &d.Replicas, &d.Endpoint, &updated); err != nil {
			return Snapshot{}, fmt.Errorf("scan deployment: %w", err)
		}
		d.Status = Status(status)
		d.UpdatedAt = time.Unix(updated, 0).UTC()
		deployments = append(deployments, d)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("list deployments: %w", err)
	}
	return Snapshot{Deployments: deployments, FetchedAt: time.Now()}, nil
}

// Upsert inserts the deployment or replaces the existing row with the same id.
func (r *Registry) Upsert(ctx context.Context, d Deployment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO deployments (id, name, agent, env, status, replicas, endpoint, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			agent = excluded.agent,
			env = excluded.env,
			status = excluded.status,
			replicas = excluded.replicas,
			endpoint = excluded.endpoint,
			updated_at = excluded.updated_at`,
		d.ID, d.Name, d.Agent, d.Env, string(d.Status), d.Replicas, d.Endpoint, d.UpdatedAt.Unix())
	if err != nil {
		return fmt.Errorf("upsert deployment %s: %w", d.Name, err)
	}
	return nil
}

// ResolvePath picks the database location: the explicit path when given,
// otherwise a file under the user data directory, creating parent
// directories as needed.
func ResolvePath(explicit string) (string, error) {
	if explicit != "" {
		if dir := filepath.Dir(explicit); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return "", fmt.Errorf("create registry directory: %w", err)
			}
		}
		return explicit, nil
	}
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, "agent-console")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create registry directory: %w", err)
	}
	return filepath.Join(dir, "registry.db"), nil
}
