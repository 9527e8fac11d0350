package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/spoorthi/outreach-ai/internal/adapters/store"
	"github.com/spoorthi/outreach-ai/internal/config"
	"github.com/spoorthi/outreach-ai/internal/core"
)

// StoreFactory creates run stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateRunStore creates a run store based on the configuration
func (f *StoreFactory) CreateRunStore() (core.RunStore, error) {
	storeConfig := f.cfg.GetStore()

	switch storeConfig.Type {
	case "filesystem":
		return store.NewFilesystemStore(f.cfg.GetString("pipeline.results_dir"), f.logger)
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storeConfig.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeConfig.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeConfig.MySQLDSN, f.logger)
	case "memory":
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeConfig.Type)
	}
}
