package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config captures runtime configuration for the application.
type Config struct {
	Menu    Menu
	Logging Logging
	Flags   map[string]string
	Args    []string
}

// Menu holds the options consumed by menu loading and default synthesis.
type Menu struct {
	// File overrides the candidate path list with a single menu file.
	File string
	// Merge selects all-found-merged loading instead of first-found-wins.
	Merge bool
	// Workspaces controls whether the workspaces submenu is synthesized.
	Workspaces int
	// Width/Height bound the monitor layout; 0 uses the terminal size.
	Width  int
	Height int
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envMenuFile   = "SHELLMENU_MENU_FILE"
	envMerge      = "SHELLMENU_MERGE_CONFIG"
	envWorkspaces = "SHELLMENU_WORKSPACES"
	envWidth      = "SHELLMENU_WIDTH"
	envHeight     = "SHELLMENU_HEIGHT"
	envTrace      = "SHELLMENU_TRACE"
	envLogFile    = "SHELLMENU_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("shellmenu", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	menuFile := fs.String("menu-file", envOrDefault(env, envMenuFile, ""), "path to a menu file (overrides the candidate path list)")
	merge := fs.Bool("merge", envOrBool(env, envMerge, false), "merge all found menu files instead of using the first")
	workspaces := fs.Int("workspaces", envOrInt(env, envWorkspaces, 1), "number of workspaces the shell exposes")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "layout width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "layout height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *workspaces < 1 {
		return Config{}, fmt.Errorf("workspaces must be >= 1 (got %d)", *workspaces)
	}
	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		Menu: Menu{
			File:       *menuFile,
			Merge:      *merge,
			Workspaces: *workspaces,
			Width:      *width,
			Height:     *height,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"menuFile":   *menuFile,
			"merge":      strconv.FormatBool(*merge),
			"workspaces": strconv.Itoa(*workspaces),
			"width":      strconv.Itoa(*width),
			"height":     strconv.Itoa(*height),
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
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

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}
