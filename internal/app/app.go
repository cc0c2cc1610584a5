// Package app wires configuration, storage, and services into a single
// application core shared by the server and watch binaries.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"treasuryd/internal/common"
	"treasuryd/internal/interfaces"
	"treasuryd/internal/models"
	"treasuryd/internal/services/assets"
	"treasuryd/internal/services/holdings"
	"treasuryd/internal/storage/pg"
	"treasuryd/internal/storage/surrealdb"
)

// App holds all initialized services and storage.
//
// Storage is nil when the document store is unconfigured or failed to
// connect; StorageErr carries the connection error in the latter case.
// The holdings service degrades to empty snapshots rather than failing,
// so the App always starts.
type App struct {
	Config          *common.Config
	Logger          *common.Logger
	Storage         interfaces.StorageManager
	StorageErr      error
	Relational      *pg.DB
	LiveFeed        interfaces.LiveFeed
	HoldingsService interfaces.HoldingsService
	AssetService    interfaces.AssetService
	StartupTime     time.Time

	liveCancel context.CancelFunc
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, storage, and services.
// configPath may be empty, in which case the default resolution logic is used.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	binDir := getBinaryDir()

	// Load configuration - check provided path, TREASURY_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("TREASURY_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "treasuryd.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/treasuryd.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	a := &App{
		Config:      config,
		Logger:      logger,
		StartupTime: startupStart,
	}

	// Document store. Connection failures are not fatal: the dashboard
	// serves empty snapshots with diagnostics until the store is back.
	if config.Document.Configured() {
		storageManager, err := surrealdb.NewManager(logger, config)
		if err != nil {
			logger.Warn().Err(err).Msg("Document store unavailable, serving degraded dashboard")
			a.StorageErr = err
		} else {
			a.Storage = storageManager
		}
	} else {
		logger.Warn().Msg("Document store not configured, serving degraded dashboard")
	}

	// Relational store for live asset prices. Also optional.
	if config.Relational.Configured() {
		db, err := pg.Connect(context.Background(), config.Relational.URL)
		if err != nil {
			logger.Warn().Err(err).Msg("Relational store unavailable, live prices disabled")
		} else if err := pg.RunMigrations(context.Background(), db); err != nil {
			db.Close()
			logger.Warn().Err(err).Msg("Relational migrations failed, live prices disabled")
		} else {
			a.Relational = db
			a.LiveFeed = pg.NewLiveFeed(db, logger)
		}
	}

	var treasuryStore interfaces.TreasuryStore
	if a.Storage != nil {
		treasuryStore = a.Storage.TreasuryStore()
	}
	a.HoldingsService = holdings.NewService(treasuryStore, a.StorageErr, logger)

	var assetStore interfaces.AssetPriceStore
	if a.Relational != nil {
		assetStore = pg.NewAssetPriceStore(a.Relational)
	}
	a.AssetService = assets.NewService(assetStore, logger)

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// StartLiveFeed launches the asset price change listener, delivering
// each event to handler. No-op when the relational store is absent.
func (a *App) StartLiveFeed(handler func(models.PriceEvent)) {
	if a.LiveFeed == nil {
		a.Logger.Info().Msg("Live feed disabled, no relational store")
		return
	}
	liveCtx, liveCancel := context.WithCancel(context.Background())
	a.liveCancel = liveCancel
	go a.LiveFeed.Run(liveCtx, handler)
}

// Close releases all resources held by the App.
// Shutdown order: stop the live feed, close relational, close storage.
func (a *App) Close() {
	if a.liveCancel != nil {
		a.liveCancel()
		a.liveCancel = nil
	}
	if a.Relational != nil {
		a.Relational.Close()
		a.Relational = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}
