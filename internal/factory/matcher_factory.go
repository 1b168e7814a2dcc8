package factory

import (
	"context"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/adapters/openai"
	"github.com/mikey/phishguard/internal/brand"
	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/utils"
)

// MatcherFactory creates brand matchers
type MatcherFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewMatcherFactory creates a new matcher factory
func NewMatcherFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *MatcherFactory {
	return &MatcherFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateMatcher creates a brand matcher based on the configuration. When
// an embedding encoder is available the cosine strategy is used; otherwise
// the token overlap strategy. Embedding setup failure also falls back to
// tokens rather than aborting startup.
func (f *MatcherFactory) CreateMatcher(ctx context.Context) core.BrandMatcher {
	brands := f.cfg.GetStringSlice("brand.reference_domains")
	if len(brands) == 0 {
		brands = brand.DefaultReferenceDomains
	}

	encoder := openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateEmbedder()
	if encoder == nil {
		f.logger.Info("using token overlap brand matcher",
			zap.Int("brands", len(brands)))
		return brand.NewTokenMatcher(brands)
	}

	matcher, err := brand.NewEmbeddingMatcher(ctx, encoder, brands, f.logger)
	if err != nil {
		f.logger.Warn("embedding matcher unavailable, using token overlap",
			zap.Error(err))
		return brand.NewTokenMatcher(brands)
	}

	f.logger.Info("using embedding brand matcher",
		zap.Int("brands", len(brands)))
	return matcher
}
