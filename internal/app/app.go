package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atomicstack/agent-console/internal/backend"
	"github.com/atomicstack/agent-console/internal/registry"
	"github.com/atomicstack/agent-console/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// Config describes user-provided application options.
type Config struct {
	DBPath     string
	Page       string
	Width      int
	Height     int
	ShowFooter bool
	Verbose    bool
	Refresh    time.Duration
	Demo       bool
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	dbPath, err := registry.ResolvePath(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("resolve registry path: %w", err)
	}
	reg, err := registry.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open registry: %w", err)
	}
	defer reg.Close()
	if cfg.Demo {
		if err := reg.Seed(context.Background()); err != nil {
			return fmt.Errorf("seed registry: %w", err)
		}
	}

	refresh := cfg.Refresh
	if refresh <= 0 {
		refresh = 2 * time.Second
	}
	watcher := backend.NewWatcher(reg, refresh)
	defer watcher.Stop()

	model := ui.NewModel(reg, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, watcher, cfg.Page)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
