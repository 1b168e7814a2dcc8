package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/mikey/phishguard/internal/adapters/llmjson"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/utils"
)

// GeminiAnalyst implements the ProviderAnalyst contract using Google Gemini.
type GeminiAnalyst struct {
	client        *genai.Client
	model         *genai.GenerativeModel
	modelName     string
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiAnalyst creates a new Gemini analyst.
func NewGeminiAnalyst(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiAnalyst, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &GeminiAnalyst{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// Close closes the Gemini client.
func (c *GeminiAnalyst) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// AnalyzeMessage assesses a message feature record.
func (c *GeminiAnalyst) AnalyzeMessage(ctx context.Context, feats *core.MessageFeatures) (core.SemanticAssessment, error) {
	bounded := *feats
	bounded.Message = c.textProcessor.ProcessText(feats.Message, c.maxBodySize)
	return c.generate(ctx, llmjson.MessageInstruction, llmjson.MessagePayload(&bounded))
}

// AnalyzeURL assesses a URL feature record.
func (c *GeminiAnalyst) AnalyzeURL(ctx context.Context, feats *core.URLFeatures) (core.SemanticAssessment, error) {
	return c.generate(ctx, llmjson.URLInstruction, llmjson.URLPayload(feats))
}

func (c *GeminiAnalyst) generate(ctx context.Context, instruction, payload string) (core.SemanticAssessment, error) {
	prompt := instruction + "\n\nInput:\n" + payload

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return core.SemanticAssessment{}, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return core.SemanticAssessment{}, fmt.Errorf("empty response from Gemini")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return core.SemanticAssessment{}, fmt.Errorf("unexpected response part type from Gemini")
	}

	assessment, err := llmjson.ParseAssessment(string(text))
	if err != nil {
		return core.SemanticAssessment{}, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	c.logger.Debug("Gemini assessment parsed",
		zap.String("model", c.modelName),
		zap.String("risk", string(assessment.RiskLevel)))
	return assessment, nil
}
