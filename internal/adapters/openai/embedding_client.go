package openai

import (
	"context"
	"fmt"

	"github.com/orgflow/constraint-analyzer/internal/utils"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIClient extracts text embeddings using the OpenAI embeddings API
type OpenAIClient struct {
	client        *openai.Client
	modelName     string
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewOpenAIClient creates a new OpenAI embedding client
func NewOpenAIClient(
	client *openai.Client,
	modelName string,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *OpenAIClient {
	return &OpenAIClient{
		client:        client,
		modelName:     modelName,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ExtractEmbedding returns the embedding vector for the given text
func (c *OpenAIClient) ExtractEmbedding(ctx context.Context, text string) ([]float32, error) {
	prepared := c.textProcessor.PrepareForEmbedding(text, c.maxTextSize)

	req := openai.EmbeddingRequest{
		Input: []string{prepared},
		Model: openai.EmbeddingModel(c.modelName),
	}

	resp, err := c.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings with OpenAI: %w", err)
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("empty embedding response from OpenAI")
	}

	c.logger.Debug("Extracted embedding",
		zap.String("model", c.modelName),
		zap.Int("dimensions", len(resp.Data[0].Embedding)))

	return resp.Data[0].Embedding, nil
}
