package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/orgflow/constraint-analyzer/internal/utils"
	"go.uber.org/zap"
)

// BedrockClient extracts text embeddings using Amazon Titan embedding models
type BedrockClient struct {
	client        *bedrockruntime.Client
	modelID       string
	maxTextSize   int
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// titanEmbeddingRequest is the request payload for Titan embedding models
type titanEmbeddingRequest struct {
	InputText string `json:"inputText"`
}

// titanEmbeddingResponse is the response payload from Titan embedding models
type titanEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}

// NewBedrockClient creates a new Bedrock embedding client
func NewBedrockClient(
	client *bedrockruntime.Client,
	modelID string,
	maxTextSize int,
	logger *zap.Logger,
	textProcessor *utils.TextProcessor,
) *BedrockClient {
	return &BedrockClient{
		client:        client,
		modelID:       modelID,
		maxTextSize:   maxTextSize,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// ExtractEmbedding returns the embedding vector for the given text
func (c *BedrockClient) ExtractEmbedding(ctx context.Context, text string) ([]float32, error) {
	prepared := c.textProcessor.PrepareForEmbedding(text, c.maxTextSize)

	body, err := json.Marshal(titanEmbeddingRequest{InputText: prepared})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding request: %w", err)
	}

	output, err := c.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(c.modelID),
		ContentType: aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke Bedrock model: %w", err)
	}

	var resp titanEmbeddingResponse
	if err := json.Unmarshal(output.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse Bedrock embedding response: %w", err)
	}

	if len(resp.Embedding) == 0 {
		return nil, fmt.Errorf("empty embedding response from Bedrock")
	}

	c.logger.Debug("Extracted embedding",
		zap.String("model_id", c.modelID),
		zap.Int("dimensions", len(resp.Embedding)))

	return resp.Embedding, nil
}
