package openai

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Embedder encodes strings with the OpenAI embeddings API. It backs the
// embedding strategy of the brand similarity matcher.
type Embedder struct {
	client *openai.Client
	model  openai.EmbeddingModel
	logger *zap.Logger
}

// NewEmbedder creates a new embedding encoder.
func NewEmbedder(client *openai.Client, model string, logger *zap.Logger) *Embedder {
	return &Embedder{
		client: client,
		model:  openai.EmbeddingModel(model),
		logger: logger,
	}
}

// Encode returns the embedding vector for a string.
func (e *Embedder) Encode(ctx context.Context, text string) ([]float64, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: e.model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response")
	}

	vec := make([]float64, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		vec[i] = float64(v)
	}
	return vec, nil
}
