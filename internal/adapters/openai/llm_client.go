package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/mikey/phishguard/internal/adapters/llmjson"
	"github.com/mikey/phishguard/internal/core"
	"github.com/mikey/phishguard/internal/utils"
)

// OpenAIAnalyst implements the ProviderAnalyst contract using OpenAI.
type OpenAIAnalyst struct {
	client        *openai.Client
	modelName     string
	maxTokens     int
	temperature   float32
	topP          float32
	maxBodySize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIAnalyst creates a new OpenAI analyst.
func NewOpenAIAnalyst(
	client *openai.Client,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIAnalyst {
	return &OpenAIAnalyst{
		client:        client,
		modelName:     modelName,
		maxTokens:     maxTokens,
		temperature:   temperature,
		topP:          topP,
		maxBodySize:   maxBodySize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// AnalyzeMessage assesses a message feature record via chat completion.
func (c *OpenAIAnalyst) AnalyzeMessage(ctx context.Context, feats *core.MessageFeatures) (core.SemanticAssessment, error) {
	bounded := *feats
	bounded.Message = c.textProcessor.ProcessText(feats.Message, c.maxBodySize)
	return c.complete(ctx, llmjson.MessageInstruction, llmjson.MessagePayload(&bounded))
}

// AnalyzeURL assesses a URL feature record via chat completion.
func (c *OpenAIAnalyst) AnalyzeURL(ctx context.Context, feats *core.URLFeatures) (core.SemanticAssessment, error) {
	return c.complete(ctx, llmjson.URLInstruction, llmjson.URLPayload(feats))
}

func (c *OpenAIAnalyst) complete(ctx context.Context, instruction, payload string) (core.SemanticAssessment, error) {
	req := openai.ChatCompletionRequest{
		Model: c.modelName,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: instruction,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: payload,
			},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		TopP:        c.topP,
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return core.SemanticAssessment{}, fmt.Errorf("failed to create chat completion with OpenAI: %w", err)
	}
	if len(resp.Choices) == 0 {
		return core.SemanticAssessment{}, fmt.Errorf("empty response from OpenAI")
	}

	assessment, err := llmjson.ParseAssessment(resp.Choices[0].Message.Content)
	if err != nil {
		return core.SemanticAssessment{}, fmt.Errorf("failed to parse OpenAI response: %w", err)
	}

	c.logger.Debug("OpenAI assessment parsed",
		zap.String("model", c.modelName),
		zap.String("risk", string(assessment.RiskLevel)))
	return assessment, nil
}
