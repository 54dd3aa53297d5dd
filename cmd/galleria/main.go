package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/pixelfall/galleria/internal/auth"
	"github.com/pixelfall/galleria/internal/config"
	"github.com/pixelfall/galleria/internal/log"
	"github.com/pixelfall/galleria/internal/pixabay"
	"github.com/pixelfall/galleria/internal/service"
	"github.com/pixelfall/galleria/internal/store"
	"github.com/pixelfall/galleria/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("galleria %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("galleria needs an interactive terminal")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting galleria", "version", Version)

	st, err := store.Open(config.GetDataPath(), logger)
	if err != nil {
		logger.Warn("state database unavailable, running without persistence", "error", err)
		st, _ = store.Open("", logger)
	}
	defer st.Close()

	client := pixabay.NewClient(cfg.API.BaseURL, cfg.API.Key, logger)

	favoritesSvc := service.NewFavoritesService(st, logger)
	profileSvc := service.NewProfileService(st, logger)
	downloadsSvc := service.NewDownloadsService(st, client, cfg.Downloads.Dir, logger)
	gallerySvc := service.NewGalleryService(client, favoritesSvc, profileSvc, logger)
	filterSvc := service.NewFilterService(logger)

	// Optional hosted-identity session; the gallery runs identically
	// without it.
	if cfg.Auth.URL != "" {
		authClient := auth.NewClient(cfg.Auth.URL, cfg.Auth.AnonKey, logger)
		unsubscribe := authClient.Subscribe(func(state auth.State) {
			if state.Authenticated {
				logger.Info("auth state changed", "user", state.User.Email)
			} else {
				logger.Info("auth state changed", "user", "anonymous")
			}
		})
		defer unsubscribe()
	}

	model := tui.NewModel(gallerySvc, downloadsSvc, profileSvc, filterSvc, cfg.UI.GridColumns)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}
