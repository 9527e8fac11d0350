package factory

import (
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/spoorthi/outreach-ai/internal/adapters/apollo"
	"github.com/spoorthi/outreach-ai/internal/adapters/hunter"
	"github.com/spoorthi/outreach-ai/internal/config"
	"github.com/spoorthi/outreach-ai/internal/core"
)

// SourcesFactory creates the directory source chain
type SourcesFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewSourcesFactory creates a new directory sources factory
func NewSourcesFactory(cfg *config.Config, logger *zap.Logger) *SourcesFactory {
	return &SourcesFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDirectorySources creates the ordered source chain. A single rate
// limiter is shared across sources to pace all upstream directory calls.
func (f *SourcesFactory) CreateDirectorySources() []core.DirectorySource {
	limiter := rate.NewLimiter(rate.Limit(f.cfg.GetFloat64("directory.requests_per_second")), 1)

	hunterConfig := f.cfg.GetHunter()
	apolloConfig := f.cfg.GetApollo()
	return []core.DirectorySource{
		hunter.NewSource(hunterConfig.APIKey, hunterConfig.BaseURL, limiter, f.logger),
		apollo.NewSource(apolloConfig.APIKey, apolloConfig.BaseURL, limiter, f.logger),
	}
}
