package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/mcquiz/internal/app"
	"github.com/abhisek/mcquiz/internal/config"
	"github.com/abhisek/mcquiz/internal/docfile"
	"github.com/abhisek/mcquiz/internal/flagged"
	"github.com/abhisek/mcquiz/internal/logging"
	"github.com/abhisek/mcquiz/internal/questions"
	"github.com/abhisek/mcquiz/internal/stats"
	"github.com/abhisek/mcquiz/internal/store"
)

// runApp loads the configuration, opens the data files, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogPath(), slog.LevelInfo)
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
		logger, closer = logging.Nop(), io.NopCloser(nil)
	}
	defer closer.Close()
	logger.Info("starting", "version", version, "questions", cfg.QuestionsPath, "stats", cfg.StatsPath)

	tracker := openTracker(cfg, logger)

	opts := app.Options{
		Config:  cfg,
		Bank:    questions.NewBank(cfg.QuestionsPath),
		Tracker: tracker,
		Flags:   flagged.NewFileRepo(cfg.FlaggedPath),
		Logger:  logger,
	}

	// History is optional: without the database the app runs as usual.
	st, err := openStore(cfg)
	if err != nil {
		logger.Warn("session history unavailable", "path", cfg.DBPath, logging.Err(err))
	} else {
		defer st.Close()
		opts.Events = st.EventRepo()
	}

	return app.Run(opts)
}

// openTracker loads the statistics, falling back to an empty store when
// the file is unreadable.
func openTracker(cfg config.Config, logger *slog.Logger) *stats.Tracker {
	tracker, err := stats.Open(stats.NewFileRepo(cfg.StatsPath))
	var loadErr *stats.LoadError
	if errors.As(err, &loadErr) {
		logger.Warn("statistics reset", "path", loadErr.Path, "moved_to", loadErr.MovedTo, logging.Err(loadErr.Err))
		fmt.Fprintln(os.Stderr, "warning:", err)
	}
	return tracker
}

func openStore(cfg config.Config) (*store.Store, error) {
	if err := docfile.EnsureDir(cfg.DBPath); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}
