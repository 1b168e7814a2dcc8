package gemini

import (
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/config"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/utils"
)

// Factory creates Gemini-backed analysts.
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for Gemini analysts.
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateAnalyst creates a new Gemini analyst.
func (f *Factory) CreateAnalyst() (core.ProviderAnalyst, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewGeminiAnalyst(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		float32(geminiCfg.Temperature),
		float32(geminiCfg.TopP),
		geminiCfg.MaxBodySize,
		f.logger,
		f.textProcessor,
	)
}
