package dashboard

import (
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/agent-console/internal/registry"
	tea "github.com/charmbracelet/bubbletea"
)

func pinTime(t *testing.T) time.Time {
	t.Helper()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = orig })
	return now
}

func testRows(now time.Time) []registry.Deployment {
	return []registry.Deployment{
		{
			ID:        "dep-1",
			Name:      "chat-gateway",
			Agent:     "concierge",
			Env:       "prod",
			Status:    registry.StatusRunning,
			Replicas:  3,
			Endpoint:  "grpc://chat-gateway.prod:7443",
			UpdatedAt: now.Add(-30 * time.Second),
		},
		{
			ID:        "dep-2",
			Name:      "eval-runner",
			Agent:     "sentinel",
			Env:       "staging",
			Status:    registry.StatusDegraded,
			Replicas:  1,
			Endpoint:  "grpc://eval-runner.staging:7443",
			UpdatedAt: now.Add(-3 * time.Minute),
		},
	}
}

func loadedModel(t *testing.T) (*Model, time.Time) {
	t.Helper()
	now := pinTime(t)
	m := New()
	m.Update(DataMsg{Rows: testRows(now), SyncedAt: now.Add(-10 * time.Second)})
	return m, now
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(kt tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: kt}
}

func TestInitFocusesFilterCursor(t *testing.T) {
	m := New()
	if m.Init() == nil {
		t.Fatal("expected init command for cursor focus")
	}
}

func TestViewShowsLoadingBeforeFirstSnapshot(t *testing.T) {
	m := New()
	view := m.View(80, 20)
	if !strings.Contains(view, "Loading deployments") {
		t.Fatalf("expected loading placeholder, got %q", view)
	}
}

func TestSnapshotPopulatesTable(t *testing.T) {
	m, _ := loadedModel(t)
	view := m.View(80, 20)
	for _, want := range []string{"NAME", "AGENT", "STATUS", "chat-gateway", "eval-runner", "concierge", "30s ago"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected view to contain %q, got:\n%s", want, view)
		}
	}
	if !strings.Contains(view, "2 deployments ⋅ synced 10s ago") {
		t.Fatalf("expected summary line, got:\n%s", view)
	}
}

func TestTypingFiltersRows(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(keyRunes("gate"))
	view := m.View(80, 20)
	if !strings.Contains(view, "chat-gateway") {
		t.Fatalf("expected matching row, got:\n%s", view)
	}
	if strings.Contains(view, "eval-runner") {
		t.Fatalf("expected non-matching row hidden, got:\n%s", view)
	}
	if !strings.Contains(view, "1/2 deployments") {
		t.Fatalf("expected filtered summary, got:\n%s", view)
	}
	if !strings.Contains(view, "» gate") {
		t.Fatalf("expected filter prompt to echo query, got:\n%s", view)
	}
}

func TestCtrlUClearsFilter(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(keyRunes("gate"))
	m.Update(keyType(tea.KeyCtrlU))
	view := m.View(80, 20)
	if !strings.Contains(view, "eval-runner") {
		t.Fatalf("expected all rows back after clear, got:\n%s", view)
	}
	if !strings.Contains(view, "type to search") {
		t.Fatalf("expected placeholder after clear, got:\n%s", view)
	}
}

func TestBackspaceEditsFilter(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(keyRunes("gatex"))
	m.Update(keyType(tea.KeyBackspace))
	if m.list.Filter != "gate" {
		t.Fatalf("expected filter %q, got %q", "gate", m.list.Filter)
	}
}

func TestCursorKeysMoveSelection(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(keyType(tea.KeyDown))
	view := m.View(80, 20)
	if !strings.Contains(view, "▸ eval-runner") {
		t.Fatalf("expected second row selected, got:\n%s", view)
	}
	m.Update(keyType(tea.KeyUp))
	view = m.View(80, 20)
	if !strings.Contains(view, "▸ chat-gateway") {
		t.Fatalf("expected first row selected, got:\n%s", view)
	}
}

func TestEnterShowsEndpoint(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(keyType(tea.KeyEnter))
	view := m.View(100, 20)
	if !strings.Contains(view, "grpc://chat-gateway.prod:7443") {
		t.Fatalf("expected endpoint info line, got:\n%s", view)
	}
	m.Update(keyType(tea.KeyDown))
	view = m.View(100, 20)
	if strings.Contains(view, "grpc://chat-gateway.prod:7443") {
		t.Fatalf("expected info line cleared after cursor move, got:\n%s", view)
	}
}

func TestRefreshKeyEmitsRequest(t *testing.T) {
	m, _ := loadedModel(t)
	cmd := m.Update(keyType(tea.KeyCtrlR))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if _, ok := cmd().(RefreshRequested); !ok {
		t.Fatalf("expected RefreshRequested, got %T", cmd())
	}
}

func TestSnapshotKeepsFilterApplied(t *testing.T) {
	m, now := loadedModel(t)
	m.Update(keyRunes("eval"))

	rows := append(testRows(now), registry.Deployment{
		ID:        "dep-3",
		Name:      "rag-indexer",
		Agent:     "harvest",
		Env:       "prod",
		Status:    registry.StatusRunning,
		Replicas:  2,
		UpdatedAt: now.Add(-time.Minute),
	})
	m.Update(DataMsg{Rows: rows, SyncedAt: now})

	view := m.View(80, 20)
	if !strings.Contains(view, "eval-runner") {
		t.Fatalf("expected filter survivor, got:\n%s", view)
	}
	if strings.Contains(view, "rag-indexer") {
		t.Fatalf("expected filter still applied after refresh, got:\n%s", view)
	}
	if !strings.Contains(view, "1/3 deployments") {
		t.Fatalf("expected refreshed totals, got:\n%s", view)
	}
}

func TestEmptyRegistryMessage(t *testing.T) {
	now := pinTime(t)
	m := New()
	m.Update(DataMsg{Rows: nil, SyncedAt: now})
	view := m.View(80, 20)
	if !strings.Contains(view, "no deployments registered") {
		t.Fatalf("expected empty message, got:\n%s", view)
	}
}

func TestNoMatchesMessage(t *testing.T) {
	m, _ := loadedModel(t)
	m.Update(keyRunes("zzzzzz"))
	view := m.View(80, 20)
	if !strings.Contains(view, `no deployments match "zzzzzz"`) {
		t.Fatalf("expected no-match message, got:\n%s", view)
	}
}
