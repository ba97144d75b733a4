package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func loadConfig(t *testing.T, args, environ []string) (Config, error) {
	t.Helper()
	fs := pflag.NewFlagSet("agent-console", pflag.ContinueOnError)
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	return FromFlags(fs, args, environ)
}

func TestFromFlagsDefaults(t *testing.T) {
	cfg, err := loadConfig(t, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DBPath != "" {
		t.Fatalf("expected empty db path, got %q", cfg.App.DBPath)
	}
	if cfg.App.Page != "" {
		t.Fatalf("expected empty page, got %q", cfg.App.Page)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero dimensions, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("expected footer disabled by default")
	}
	if cfg.App.Refresh != defaultRefresh {
		t.Fatalf("expected refresh %s, got %s", defaultRefresh, cfg.App.Refresh)
	}
	if cfg.App.Demo {
		t.Fatalf("expected demo disabled by default")
	}
	if cfg.Logging.Trace {
		t.Fatalf("expected trace disabled by default")
	}
}

func TestFromFlagsReadsFlags(t *testing.T) {
	args := []string{
		"--db", "/tmp/registry.db",
		"--page", "agents:monitoring",
		"--width", "120",
		"--height", "40",
		"--footer",
		"--refresh", "5s",
		"--demo",
		"--verbose",
		"--log-file", "/tmp/console.log",
		"--trace",
	}
	cfg, err := loadConfig(t, args, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DBPath != "/tmp/registry.db" {
		t.Fatalf("unexpected db path %q", cfg.App.DBPath)
	}
	if cfg.App.Page != "agents:monitoring" {
		t.Fatalf("unexpected page %q", cfg.App.Page)
	}
	if cfg.App.Width != 120 || cfg.App.Height != 40 {
		t.Fatalf("unexpected dimensions %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled")
	}
	if cfg.App.Refresh != 5*time.Second {
		t.Fatalf("unexpected refresh %s", cfg.App.Refresh)
	}
	if !cfg.App.Demo {
		t.Fatalf("expected demo enabled")
	}
	if !cfg.Features.Verbose {
		t.Fatalf("expected verbose enabled")
	}
	if cfg.Logging.FilePath != "/tmp/console.log" {
		t.Fatalf("unexpected log file %q", cfg.Logging.FilePath)
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace enabled")
	}
}

func TestFromFlagsEnvironmentFallback(t *testing.T) {
	environ := []string{
		"AGENT_CONSOLE_DB=/var/lib/agent-console/registry.db",
		"AGENT_CONSOLE_PAGE=agents",
		"AGENT_CONSOLE_WIDTH=80",
		"AGENT_CONSOLE_HEIGHT=24",
		"AGENT_CONSOLE_FOOTER=true",
		"AGENT_CONSOLE_REFRESH=10s",
		"AGENT_CONSOLE_DEMO=1",
		"AGENT_CONSOLE_TRACE=true",
	}
	cfg, err := loadConfig(t, nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.DBPath != "/var/lib/agent-console/registry.db" {
		t.Fatalf("unexpected db path %q", cfg.App.DBPath)
	}
	if cfg.App.Page != "agents" {
		t.Fatalf("unexpected page %q", cfg.App.Page)
	}
	if cfg.App.Width != 80 || cfg.App.Height != 24 {
		t.Fatalf("unexpected dimensions %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled via environment")
	}
	if cfg.App.Refresh != 10*time.Second {
		t.Fatalf("unexpected refresh %s", cfg.App.Refresh)
	}
	if !cfg.App.Demo {
		t.Fatalf("expected demo enabled via environment")
	}
	if !cfg.Logging.Trace {
		t.Fatalf("expected trace enabled via environment")
	}
}

func TestFromFlagsFlagsWinOverEnvironment(t *testing.T) {
	environ := []string{
		"AGENT_CONSOLE_PAGE=agents:models",
		"AGENT_CONSOLE_WIDTH=200",
	}
	cfg, err := loadConfig(t, []string{"--page", "agents", "--width", "100"}, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Page != "agents" {
		t.Fatalf("expected flag to win, got page %q", cfg.App.Page)
	}
	if cfg.App.Width != 100 {
		t.Fatalf("expected flag to win, got width %d", cfg.App.Width)
	}
}

func TestFromFlagsIgnoresMalformedEnvironment(t *testing.T) {
	environ := []string{
		"AGENT_CONSOLE_WIDTH=not-a-number",
		"AGENT_CONSOLE_FOOTER=definitely",
		"AGENT_CONSOLE_REFRESH=soon",
		"MALFORMED",
	}
	cfg, err := loadConfig(t, nil, environ)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.App.Width != 0 {
		t.Fatalf("expected width fallback, got %d", cfg.App.Width)
	}
	if cfg.App.ShowFooter {
		t.Fatalf("expected footer fallback")
	}
	if cfg.App.Refresh != defaultRefresh {
		t.Fatalf("expected refresh fallback, got %s", cfg.App.Refresh)
	}
}

func TestFromFlagsRejectsNegativeDimensions(t *testing.T) {
	if _, err := loadConfig(t, []string{"--width", "-1"}, nil); err == nil {
		t.Fatalf("expected error for negative width")
	}
	if _, err := loadConfig(t, []string{"--height", "-5"}, nil); err == nil {
		t.Fatalf("expected error for negative height")
	}
}

func TestFromFlagsRejectsNonPositiveRefresh(t *testing.T) {
	if _, err := loadConfig(t, []string{"--refresh", "0s"}, nil); err == nil {
		t.Fatalf("expected error for zero refresh interval")
	}
}

func TestFromFlagsRecordsFlagsForTrace(t *testing.T) {
	cfg, err := loadConfig(t, []string{"--page", "agents", "--demo"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Flags["page"] != "agents" {
		t.Fatalf("expected page flag recorded, got %q", cfg.Flags["page"])
	}
	if cfg.Flags["demo"] != "true" {
		t.Fatalf("expected demo flag recorded, got %q", cfg.Flags["demo"])
	}
	if len(cfg.Args) == 0 {
		t.Fatalf("expected raw args recorded")
	}
}
