package gemini

import (
	"github.com/orgflow/constraint-analyzer/internal/config"
	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/utils"
	"go.uber.org/zap"
)

// Factory creates new instances of GeminiClient
type Factory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewFactory creates a new factory for GeminiClient instances
func NewFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *Factory {
	return &Factory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEmbeddingClient creates a new GeminiClient
func (f *Factory) CreateEmbeddingClient() (core.EmbeddingClient, error) {
	geminiCfg := f.cfg.GetGemini()

	return NewGeminiClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTextSize,
		f.logger,
		f.textProcessor,
	)
}
