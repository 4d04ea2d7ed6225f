package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"vfs-go/internal/config"
	"vfs-go/internal/content"
	"vfs-go/internal/database"
	"vfs-go/internal/encryption"
	"vfs-go/internal/vfs"
)

// App is the application layer between the CLI and the metadata service.
// It constructs all dependencies from config, exposes the wired service,
// and manages the DB lifecycle on Close.
type App struct {
	db      vfs.Database
	store   content.Store
	service *vfs.Service
	logFile *os.File
}

// NewApp creates a fully wired App from the given config.
// The caller must call Close when done.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := database.NewDatabaseFromConfig(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("creating database: %w", err)
	}

	if err := db.CheckMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database schema out of date: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating encryptor: %w", err)
	}

	store, err := content.NewStoreFromConfig(ctx, cfg.Content, enc)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating content store: %w", err)
	}

	registry := content.NewRegistry()
	registry.Register(content.TypeBlob)

	sessionID := time.Now().UTC().Format("20060102T150405Z")
	logger, logFile, err := newLogger(cfg.LogDir, sessionID)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	svc := vfs.NewService(db, registry, &slogAdapter{l: logger}, vfs.RealClock{}, vfs.UUIDGenerator{})

	return &App{
		db:      db,
		store:   store,
		service: svc,
		logFile: logFile,
	}, nil
}

// Service returns the wired metadata service.
func (a *App) Service() *vfs.Service {
	return a.service
}

// Store returns the configured content store.
func (a *App) Store() content.Store {
	return a.store
}

// Unlock prepares an encrypted content store for reads. It is a no-op
// when the configured store is not encrypted.
func (a *App) Unlock(passphrase string) error {
	es, ok := a.store.(*content.EncryptedStore)
	if !ok {
		return nil
	}
	return es.Unlock(passphrase)
}

// MigrateUp applies pending schema migrations.
func (a *App) MigrateUp() error {
	return a.db.MigrateUp()
}

// Close closes the database and the log file.
func (a *App) Close() error {
	var firstErr error

	if err := a.db.Close(); err != nil {
		firstErr = fmt.Errorf("closing database: %w", err)
	}

	if a.logFile != nil {
		a.logFile.Close()
	}

	return firstErr
}
