package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/orgflow/constraint-analyzer/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiClient extracts text embeddings using Google Gemini embedding models
type GeminiClient struct {
	client        *genai.Client
	model         *genai.EmbeddingModel
	modelName     string
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewGeminiClient creates a new Gemini embedding client
func NewGeminiClient(
	apiKey string,
	modelName string,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) (*GeminiClient, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(modelName)

	return &GeminiClient{
		client:        client,
		model:         model,
		modelName:     modelName,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}, nil
}

// ExtractEmbedding returns the embedding vector for the given text
func (c *GeminiClient) ExtractEmbedding(ctx context.Context, text string) ([]float32, error) {
	prepared := c.textProcessor.PrepareForEmbedding(text, c.maxTextSize)

	res, err := c.model.EmbedContent(ctx, genai.Text(prepared))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content with Gemini: %w", err)
	}

	if res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, fmt.Errorf("empty embedding response from Gemini")
	}

	c.logger.Debug("Extracted embedding",
		zap.String("model", c.modelName),
		zap.Int("dimensions", len(res.Embedding.Values)))

	return res.Embedding.Values, nil
}

// Close releases the underlying API client
func (c *GeminiClient) Close() error {
	return c.client.Close()
}
