package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/agent-console/internal/app"
	"github.com/spf13/pflag"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envDBPath     = "AGENT_CONSOLE_DB"
	envPage       = "AGENT_CONSOLE_PAGE"
	envWidth      = "AGENT_CONSOLE_WIDTH"
	envHeight     = "AGENT_CONSOLE_HEIGHT"
	envShowFooter = "AGENT_CONSOLE_FOOTER"
	envRefresh    = "AGENT_CONSOLE_REFRESH"
	envDemo       = "AGENT_CONSOLE_DEMO"
	envVerbose    = "AGENT_CONSOLE_VERBOSE"
	envTrace      = "AGENT_CONSOLE_TRACE"
	envLogFile    = "AGENT_CONSOLE_LOG_FILE"
)

const defaultRefresh = 2 * time.Second

// RegisterFlags declares the application flags on the provided flag set.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("db", "", "path to the deployment registry database (defaults to the user data dir)")
	fs.String("page", "", "initial page to open (page id, optionally page:panel)")
	fs.Int("width", 0, "render width in cells (0 uses terminal width)")
	fs.Int("height", 0, "render height in rows (0 uses terminal height)")
	fs.Bool("footer", false, "enable footer hint row (disabled by default)")
	fs.Duration("refresh", defaultRefresh, "registry poll interval")
	fs.Bool("demo", false, "seed the registry with sample deployments")
	fs.Bool("verbose", false, "print success messages for actions")
	fs.String("log-file", "", "path to the log file")
	fs.Bool("trace", false, "enable verbose JSON trace logging")
}

// FromFlags resolves configuration from parsed flags and the environment.
// Environment variables apply only when the matching flag was not set
// explicitly, so flags always win. args is the raw argument list, recorded
// for the startup trace.
func FromFlags(fs *pflag.FlagSet, args, environ []string) (Config, error) {
	env := parseEnv(environ)

	db := stringValue(fs, "db", envOrDefault(env, envDBPath, ""))
	page := stringValue(fs, "page", envOrDefault(env, envPage, ""))
	width := intValue(fs, "width", envOrInt(env, envWidth, 0))
	height := intValue(fs, "height", envOrInt(env, envHeight, 0))
	footer := boolValue(fs, "footer", envOrBool(env, envShowFooter, false))
	refresh := durationValue(fs, "refresh", envOrDuration(env, envRefresh, defaultRefresh))
	demo := boolValue(fs, "demo", envOrBool(env, envDemo, false))
	verbose := boolValue(fs, "verbose", envOrBool(env, envVerbose, false))
	logFile := stringValue(fs, "log-file", envOrDefault(env, envLogFile, ""))
	trace := boolValue(fs, "trace", envOrBool(env, envTrace, false))

	if width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", width)
	}
	if height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", height)
	}
	if refresh <= 0 {
		return Config{}, fmt.Errorf("refresh must be positive (got %s)", refresh)
	}

	cfg := Config{
		App: app.Config{
			DBPath:     db,
			Page:       page,
			Width:      width,
			Height:     height,
			ShowFooter: footer,
			Verbose:    verbose,
			Refresh:    refresh,
			Demo:       demo,
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    trace,
		},
		Features: Features{
			Verbose: verbose,
		},
		Flags: map[string]string{
			"db":      db,
			"page":    page,
			"width":   strconv.Itoa(width),
			"height":  strconv.Itoa(height),
			"footer":  strconv.FormatBool(footer),
			"refresh": refresh.String(),
			"demo":    strconv.FormatBool(demo),
			"verbose": strconv.FormatBool(verbose),
			"logFile": logFile,
		},
		Args: args,
	}

	return cfg, nil
}

func stringValue(fs *pflag.FlagSet, name, fallback string) string {
	if fs.Changed(name) {
		v, err := fs.GetString(name)
		if err == nil {
			return v
		}
	}
	return fallback
}

func intValue(fs *pflag.FlagSet, name string, fallback int) int {
	if fs.Changed(name) {
		v, err := fs.GetInt(name)
		if err == nil {
			return v
		}
	}
	return fallback
}

func boolValue(fs *pflag.FlagSet, name string, fallback bool) bool {
	if fs.Changed(name) {
		v, err := fs.GetBool(name)
		if err == nil {
			return v
		}
	}
	return fallback
}

func durationValue(fs *pflag.FlagSet, name string, fallback time.Duration) time.Duration {
	if fs.Changed(name) {
		v, err := fs.GetDuration(name)
		if err == nil {
			return v
		}
	}
	return fallback
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return parsed
}
