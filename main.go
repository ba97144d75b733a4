package main

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/atomicstack/agent-console/internal/app"
	"github.com/atomicstack/agent-console/internal/config"
	"github.com/atomicstack/agent-console/internal/logging"
	"github.com/atomicstack/agent-console/internal/logging/events"
	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is overridden at build time via -ldflags.
var version = "0.1.0"

//go:embed docs/performance.md
var performanceReport string

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "agent-console",
		Short: "Terminal console for the agent deployment fleet",
		Long: `agent-console is a terminal dashboard for the agent platform.

It shows the deployment inventory kept in the local registry database,
split across deployment, analytics, monitoring and model panels. The
registry is polled in the background so the view stays current while
the console is open.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromFlags(cmd.Flags(), os.Args[1:], os.Environ())
			if err != nil {
				return err
			}
			logging.Configure(cfg.Logging.FilePath)
			logging.SetTraceEnabled(cfg.Logging.Trace)
			defer logging.Sync()

			traceStartup(cfg)

			if err := app.Run(cfg.App); err != nil {
				logging.Error(err)
				return err
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	config.RegisterFlags(root.Flags())

	root.AddCommand(newReportCommand())
	root.AddCommand(newVersionCommand())

	return root
}

// newReportCommand renders the performance analysis shipped with the binary.
func newReportCommand() *cobra.Command {
	var raw bool
	var wrap int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the console performance report",
		Long: `Render the performance analysis shipped with the console.

The report summarises frame assembly, tab switching and registry poll
costs as measured by the release test suite. Use --raw to print the
plain markdown instead of the styled rendition.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if raw {
				fmt.Fprint(cmd.OutOrStdout(), performanceReport)
				return nil
			}
			renderer, err := glamour.NewTermRenderer(
				glamour.WithAutoStyle(),
				glamour.WithWordWrap(wrap),
			)
			if err != nil {
				return fmt.Errorf("markdown renderer: %w", err)
			}
			styled, err := renderer.Render(performanceReport)
			if err != nil {
				return fmt.Errorf("render report: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), styled)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the raw markdown without terminal styling")
	cmd.Flags().IntVar(&wrap, "wrap", 80, "word-wrap width for styled output")

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "agent-console v%s\n", version)
		},
	}
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = collectTTYDetails()
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// collectTTYDetails inspects standard descriptors for terminal support and dimensions.
func collectTTYDetails() ttyDetails {
	probes := []struct {
		name string
		fd   uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
		{"stderr", os.Stderr.Fd()},
	}
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		fd := int(probe.fd)
		if fd >= 0 && term.IsTerminal(fd) {
			entry.IsTerminal = true
			if width, height, err := term.GetSize(fd); err == nil {
				entry.Width = width
				entry.Height = height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		} else {
			entry.IsTerminal = false
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
