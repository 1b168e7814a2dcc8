package factory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/adapters/bedrock"
	"github.com/mikey/phishguard/internal/adapters/gemini"
	"github.com/mikey/phishguard/internal/adapters/mock"
	"github.com/mikey/phishguard/internal/adapters/openai"
	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/utils"
)

// AnalystFactory creates semantic analysts
type AnalystFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewAnalystFactory creates a new analyst factory
func NewAnalystFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *AnalystFactory {
	return &AnalystFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateAnalyst creates a semantic analyst based on the configuration.
// Real providers are wrapped so that any provider failure degrades to the
// deterministic mock assessment instead of failing the request.
func (f *AnalystFactory) CreateAnalyst() (core.SemanticAnalyst, error) {
	llmConfig := f.cfg.GetLLM()

	var provider core.ProviderAnalyst
	var err error

	switch llmConfig.Provider {
	case "mock":
		return mock.NewAnalyst(), nil
	case "bedrock":
		provider, err = bedrock.NewFactory(f.cfg, f.logger, f.textProcessor).CreateAnalyst()
	case "gemini":
		provider, err = gemini.NewFactory(f.cfg, f.logger, f.textProcessor).CreateAnalyst()
	case "openai":
		provider, err = openai.NewFactory(f.cfg, f.logger, f.textProcessor).CreateAnalyst()
	default:
		return nil, fmt.Errorf("unsupported analyst provider: %s", llmConfig.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewFallbackAnalyst(provider, mock.NewAnalyst(), f.logger), nil
}

// FallbackAnalyst wraps a fallible provider analyst and substitutes the
// mock assessment whenever the provider fails, so the pipeline always has
// a semantic signal to fuse.
type FallbackAnalyst struct {
	provider core.ProviderAnalyst
	fallback core.SemanticAnalyst
	logger   *zap.Logger
}

// NewFallbackAnalyst creates a new fallback analyst
func NewFallbackAnalyst(provider core.ProviderAnalyst, fallback core.SemanticAnalyst, logger *zap.Logger) *FallbackAnalyst {
	return &FallbackAnalyst{
		provider: provider,
		fallback: fallback,
		logger:   logger,
	}
}

// Close releases the wrapped provider's resources when it has any
func (a *FallbackAnalyst) Close() error {
	if closer, ok := a.provider.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// AnalyzeMessage assesses a message feature record
func (a *FallbackAnalyst) AnalyzeMessage(ctx context.Context, feats *core.MessageFeatures) core.SemanticAssessment {
	assessment, err := a.provider.AnalyzeMessage(ctx, feats)
	if err != nil {
		a.logger.Warn("provider analyst failed for message, using heuristic assessment",
			zap.Error(err))
		return a.fallback.AnalyzeMessage(ctx, feats)
	}
	return assessment
}

// AnalyzeURL assesses a URL feature record
func (a *FallbackAnalyst) AnalyzeURL(ctx context.Context, feats *core.URLFeatures) core.SemanticAssessment {
	assessment, err := a.provider.AnalyzeURL(ctx, feats)
	if err != nil {
		a.logger.Warn("provider analyst failed for URL, using heuristic assessment",
			zap.Error(err))
		return a.fallback.AnalyzeURL(ctx, feats)
	}
	return assessment
}
