// pyhtmx-gui-client is a terminal front end for the pyhtmx voice
// assistant GUI server.
//
// It opens a session against the server, consumes the fragment update
// stream, and renders the home screen carousel, status bar, and dialog
// surfaces on a cell grid, with smooth scrolling and mouse support.
//
// Usage:
//
//	pyhtmx-gui-client [flags]
//
// Flags:
//
//	-config string   Path to configuration file (default: ~/.config/pyhtmx-gui-client/config.toml)
//	-server string   Server base URL (overrides config)
//	-theme string    Theme name (overrides config)
//	-no-mouse        Disable mouse support
//	-verbose         Enable verbose logging
//	-version         Print version and exit
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/femelo/pyhtmx-gui-client/pkg/app"
	"github.com/femelo/pyhtmx-gui-client/pkg/config"
	"github.com/femelo/pyhtmx-gui-client/pkg/stream"
	"github.com/femelo/pyhtmx-gui-client/pkg/theme"
)

var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		serverURL   = flag.String("server", "", "Server base URL (overrides config)")
		themeName   = flag.String("theme", "", "Theme name (overrides config)")
		noMouse     = flag.Bool("no-mouse", false, "Disable mouse support")
		verbose     = flag.Bool("verbose", false, "Enable verbose logging")
		showVersion = flag.Bool("version", false, "Print version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("pyhtmx-gui-client %s (%s) built %s\n", version, commit, date)
		os.Exit(0)
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "pyhtmx-gui-client requires an interactive terminal")
		os.Exit(1)
	}
	if termenv.EnvColorProfile() == termenv.Ascii {
		fmt.Fprintln(os.Stderr, "warning: terminal reports no color support")
	}

	// Load configuration
	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFromFile(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.Server.URL = *serverURL
	}
	if *themeName != "" {
		cfg.UI.Theme = *themeName
	}

	// Logging goes to a file only; stderr belongs to the TUI.
	logLevel := parseLogLevel(cfg.Log.Level)
	if *verbose {
		logLevel = slog.LevelDebug
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
		os.Exit(1)
	}
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// User themes extend the builtins.
	if cfg.UI.ThemeDir != "" {
		loadUserThemes(cfg.UI.ThemeDir, logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := stream.New(cfg.Server.URL, cfg.Server.PingPeriod.Or(5*time.Second), logger)
	go func() {
		if err := client.Run(ctx); err != nil && err != context.Canceled {
			logger.Error("stream terminated", "error", err)
		}
	}()

	logger.Info("starting pyhtmx-gui-client",
		"server", cfg.Server.URL,
		"theme", cfg.UI.Theme,
		"version", version,
	)

	model := app.New(cfg, client.Updates(), logger)
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !*noMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadUserThemes registers every theme TOML found in dir. Broken files
// are skipped with a log line, never fatal.
func loadUserThemes(dir string, logger *slog.Logger) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("theme directory not readable", "dir", dir, "error", err)
		return
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".toml" {
			continue
		}
		if _, err := theme.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			logger.Warn("theme not loaded", "file", e.Name(), "error", err)
		}
	}
}

// parseLogLevel maps the configured level name to slog, defaulting to info.
func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
