package openai

import (
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/utils"
)

// Factory creates OpenAI-backed analysts and embedders.
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for OpenAI clients.
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateAnalyst creates a new OpenAI analyst.
func (f *Factory) CreateAnalyst() (core.ProviderAnalyst, error) {
	openaiCfg := f.cfg.GetOpenAI()
	client := openai.NewClient(openaiCfg.APIKey)

	return NewOpenAIAnalyst(
		client,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		float32(openaiCfg.Temperature),
		float32(openaiCfg.TopP),
		openaiCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	), nil
}

// CreateEmbedder creates a new embedding encoder, or nil when no API key
// is configured so the caller can select the token fallback strategy.
func (f *Factory) CreateEmbedder() core.BrandEncoder {
	openaiCfg := f.cfg.GetOpenAI()
	if openaiCfg.APIKey == "" {
		return nil
	}
	client := openai.NewClient(openaiCfg.APIKey)
	return NewEmbedder(client, openaiCfg.EmbeddingModel, f.logger)
}
