package main

import (
	"context"
	"fmt"
	"os"

	"github.com/tutorbook/tutorbook/config"
	"github.com/tutorbook/tutorbook/internal/application/model"
	"github.com/tutorbook/tutorbook/internal/infrastructure/persistence"
	"github.com/tutorbook/tutorbook/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// APPLICATION
// ══════════════════════════════════════════════════════════════════════════════

// flags holds the persistent command-line overrides.
type flags struct {
	backend  string
	dataPath string
	logLevel string
}

// app wires configuration, storage and the model together. It is opened once
// and shared by every command run in a shell session.
type app struct {
	flags flags

	cfg     *config.Config
	log     *logger.Logger
	store   persistence.Backend
	manager *model.Manager
}

func (a *app) isOpen() bool {
	return a.manager != nil
}

// open loads configuration, connects to storage and reads the address book.
func (a *app) open(ctx context.Context) error {
	if a.isOpen() {
		return nil
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.New(logger.Options{
		Output: os.Stderr,
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.Format(cfg.Log.Format),
	}).With(logger.String("env", string(cfg.Environment)))

	prefs, err := config.LoadUserPrefs(cfg.Storage.PrefsPath)
	if err != nil {
		return err
	}
	if prefs.DataFilePath != "" && a.flags.dataPath == "" && os.Getenv(config.EnvPrefix+"_STORAGE_DATA_PATH") == "" {
		cfg.Storage.DataPath = prefs.DataFilePath
	}

	opCtx, cancel := context.WithTimeout(ctx, cfg.Storage.OpTimeout)
	defer cancel()

	store, err := persistence.Open(opCtx, cfg, a.log)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}

	manager, err := model.Load(opCtx, store,
		model.WithHistoryCapacity(cfg.Storage.HistoryCapacity),
		model.WithUserPrefs(prefs),
		model.WithLogger(a.log))
	if err != nil {
		_ = store.Close()
		return err
	}

	a.store = store
	a.manager = manager
	a.log.Debug("address book loaded",
		logger.StoreLocation(store.Location()),
		logger.Int("persons", manager.AddressBook().PersonCount()))
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if a.flags.backend != "" {
		cfg.Storage.Backend = a.flags.backend
	}
	if a.flags.dataPath != "" {
		switch cfg.Storage.Backend {
		case config.BackendSQLite:
			cfg.Storage.SQLitePath = a.flags.dataPath
		default:
			cfg.Storage.DataPath = a.flags.dataPath
		}
	}
	if a.flags.logLevel != "" {
		cfg.Log.Level = a.flags.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// save writes the live book back to storage.
func (a *app) save(ctx context.Context) error {
	opCtx, cancel := context.WithTimeout(ctx, a.cfg.Storage.OpTimeout)
	defer cancel()
	return a.manager.Save(opCtx, a.store)
}

// close saves preferences and releases storage.
func (a *app) close() error {
	if !a.isOpen() {
		return nil
	}
	var firstErr error
	if err := config.SaveUserPrefs(a.cfg.Storage.PrefsPath, a.manager.UserPrefs()); err != nil {
		a.log.Warn("failed to save preferences", logger.Err(err))
		firstErr = err
	}
	if err := a.store.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	a.manager = nil
	return firstErr
}
