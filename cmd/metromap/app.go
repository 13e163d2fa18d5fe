package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/config"
	"github.com/Bukisoo/d3-force-tree-app/internal/data"
	"github.com/Bukisoo/d3-force-tree-app/internal/log"
	"github.com/Bukisoo/d3-force-tree-app/internal/places"
	"github.com/Bukisoo/d3-force-tree-app/internal/storage"
	"github.com/Bukisoo/d3-force-tree-app/internal/ui"

	"github.com/fatih/color"
)

// app holds what every command needs: settings, logs, terminal and store.
type app struct {
	cfg    *config.Config
	logger *log.Logger
	ui     *ui.UI
	db     *storage.SQLiteDatabase
	store  storage.Store
	user   string
}

func newApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if backend != "" {
		cfg.Storage.Backend = backend
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	logger, err := log.NewLogger(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return &app{
		cfg:    cfg,
		logger: logger,
		ui:     ui.NewUI(os.Stdout, !color.NoColor),
	}, nil
}

func (a *app) openDatabase(ctx context.Context) (*storage.SQLiteDatabase, error) {
	if a.db != nil {
		return a.db, nil
	}
	path := filepath.Join(a.cfg.Storage.DatabaseDir, a.cfg.Storage.DatabaseFile)
	db, err := storage.OpenSQLite(ctx, path, a.logger)
	if err != nil {
		return nil, err
	}
	a.db = db
	return db, nil
}

// openStore builds the configured backend. The account backend logs in
// as username, prompting for the password.
func (a *app) openStore(ctx context.Context, username string) error {
	switch a.cfg.Storage.Backend {
	case config.BackendMemory:
		a.store = storage.NewMemoryStore()
	case config.BackendSQLite:
		db, err := a.openDatabase(ctx)
		if err != nil {
			return err
		}
		a.store = storage.NewSQLiteStore(db)
	case config.BackendAccount:
		if username == "" {
			return fmt.Errorf("the account backend needs --user")
		}
		db, err := a.openDatabase(ctx)
		if err != nil {
			return err
		}
		password, err := a.ui.ReadPassword(fmt.Sprintf("Password for %s: ", username))
		if err != nil {
			return err
		}
		gate := storage.NewGate(storage.NewAccountStore(db, 0), storage.NewSQLiteStore(db))
		if err := gate.Login(ctx, username, password); err != nil {
			return err
		}
		a.store = gate
		a.user = username
	}
	return nil
}

func (a *app) newManager(ctx context.Context) (*data.Manager, error) {
	pc := a.cfg.Places
	m, err := data.NewManager(data.Options{
		Store:   a.store,
		Config:  a.cfg,
		Logger:  a.logger,
		Locator: places.FixedLocator{Latitude: pc.Latitude, Longitude: pc.Longitude},
		Lookup:  places.NewOverpass(pc.Endpoint, pc.RadiusM, pc.MaxWords, pc.Timeout()),
		Rand:    rand.New(rand.NewSource(time.Now().UnixNano())),
	})
	if err != nil {
		return nil, err
	}
	if err := m.Load(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

func (a *app) historyFile() string {
	return filepath.Join(a.cfg.Log.Folder, a.cfg.Log.HistoryFile)
}

func (a *app) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error(context.Background(), "Failed to close database", log.Fields{"error": err})
		}
	}
	a.logger.Close()
}
