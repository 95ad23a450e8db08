package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"petmate/internal/client"
	"petmate/internal/domain/feed"
	"petmate/internal/platform/httpclient"
	"petmate/internal/platform/logger"
	"petmate/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		server     string
		fixture    bool
	)

	cmd := &cobra.Command{
		Use:           "petmate",
		Short:         "Cliente de terminal de PetMate",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadClientConfig(configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if server != "" {
				cfg.Server = server
			}
			if cmd.Flags().Changed("fixture") {
				cfg.Fixture = fixture
			}
			return runTUI(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "config file (default is $HOME/.config/petmate/config.yml)")
	cmd.Flags().StringVar(&server, "server", "", "API base url")
	cmd.Flags().BoolVar(&fixture, "fixture", false, "usar perfiles fijos en el feed")
	return cmd
}

func runTUI(ctx context.Context, cfg clientConfig) error {
	log, closeLog, err := openLog(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	hc, err := httpclient.New(cfg.Server, cfg.Timeout)
	if err != nil {
		return err
	}
	hc.Lang = cfg.Lang

	app := tui.New(client.New(hc), tui.Options{
		Fixture:      cfg.Fixture,
		FixtureDelay: cfg.FixtureDelay,
		Sink:         feed.AsyncOptions{QueueSize: cfg.QueueSize},
		Log:          log,
	})

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))
	_, runErr := p.Run()

	if err := app.Shutdown(context.WithoutCancel(ctx)); err != nil {
		log.Warn("pending decisions not delivered", map[string]any{"err": err})
	}

	if runErr != nil {
		if strings.Contains(runErr.Error(), "TTY") || strings.Contains(runErr.Error(), "/dev/tty") {
			return fmt.Errorf("TUI requires a real terminal")
		}
		return fmt.Errorf("error running TUI: %w", runErr)
	}
	return nil
}

// openLog: la TUI ocupa stdout, así que el log va a archivo.
func openLog(cfg clientConfig) (logger.Logger, func(), error) {
	if cfg.LogFile == "" {
		return logger.NewNop(), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.FormatJSON,
		App:    "petmate-tui",
		Output: f,
	})
	return log, func() {
		_ = log.Sync()
		_ = f.Close()
	}, nil
}
