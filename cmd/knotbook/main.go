package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/knotbook/internal/config"
	"github.com/ajitpratap0/knotbook/internal/model"
	"github.com/ajitpratap0/knotbook/internal/storage"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := &cobra.Command{
		Use:   "knotbook",
		Short: "knotbook - wedding-planner contact manager",
		Long:  "knotbook tracks people and weddings, links people to weddings through shared tag names, and keeps filtered views of both for display.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		personCmd(),
		weddingCmd(),
		statsCmd(),
		serveCmd(),
		mcpCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil && cfg.Logging.Level == "debug" {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newStorage(logger *slog.Logger) *storage.JSONStorage {
	return storage.NewJSONStorage(
		cfg.Data.AddressBookPath,
		cfg.Data.WeddingBookPath,
		cfg.Data.UserPrefsPath,
		logger,
	)
}

// loadModel reads the persisted snapshots and builds the model.
func loadModel(store storage.Storage, logger *slog.Logger) (*model.Manager, error) {
	persons, err := store.ReadAddressBook()
	if err != nil {
		return nil, err
	}
	weddings, err := store.ReadWeddingBook()
	if err != nil {
		return nil, err
	}
	prefs, err := store.ReadUserPrefs()
	if err != nil {
		return nil, err
	}
	return model.NewManager(persons, weddings, prefs, logger)
}

// saveModel flushes both books back through the storage collaborator.
func saveModel(store storage.Storage, mgr *model.Manager) error {
	if err := store.SaveAddressBook(mgr.AddressBook()); err != nil {
		return err
	}
	return store.SaveWeddingBook(mgr.WeddingBook())
}
