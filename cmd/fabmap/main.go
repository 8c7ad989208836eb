package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"fabmap/internal/adapters/browser"
	"fabmap/internal/adapters/editor"
	"fabmap/internal/adapters/tui"
	"fabmap/internal/bootstrap"
	"fabmap/internal/config"
	"fabmap/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// The alt screen owns stdout and stderr, so logs go to a file or nowhere
	log := logger.SetupWriter(io.Discard)
	if cfg.LogFile != "" {
		f, err := tea.LogToFile(cfg.LogFile, "fabmap")
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		log = logger.SetupWriter(f)
	}
	slog.SetDefault(log)

	sess := bootstrap.Session(cfg)
	userID, err := bootstrap.RequireUser(sess)
	if err != nil {
		return err
	}

	ctx := context.Background()
	repo, err := bootstrap.OpenRepository(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer repo.Close()

	geocoder, closeGeocoder := bootstrap.Geocoder(cfg, log)
	defer closeGeocoder()

	links, err := browser.NewOpener(cfg.MapURL)
	if err != nil {
		return err
	}

	eng := bootstrap.Engine(cfg, repo, sess, log)
	app := tui.NewApp(eng, geocoder, sess, editor.NewOpener(), links, log)

	log.Info("tui_started", "user_id", userID, "backend", cfg.Backend)
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
