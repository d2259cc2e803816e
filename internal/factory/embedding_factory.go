package factory

import (
	"fmt"

	"github.com/orgflow/constraint-analyzer/internal/adapters/bedrock"
	"github.com/orgflow/constraint-analyzer/internal/adapters/gemini"
	"github.com/orgflow/constraint-analyzer/internal/adapters/openai"
	"github.com/orgflow/constraint-analyzer/internal/config"
	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/utils"
	"go.uber.org/zap"
)

// EmbeddingFactory creates embedding clients
type EmbeddingFactory struct {
	cfg           *config.Config
	logger        *zap.Logger
	textProcessor *utils.TextProcessor
}

// NewEmbeddingFactory creates a new embedding factory
func NewEmbeddingFactory(cfg *config.Config, logger *zap.Logger, textProcessor *utils.TextProcessor) *EmbeddingFactory {
	return &EmbeddingFactory{
		cfg:           cfg,
		logger:        logger,
		textProcessor: textProcessor,
	}
}

// CreateEmbeddingClient creates a new embedding client based on the configuration.
// Provider "none" returns a nil client, which keeps scoring on keywords only.
func (f *EmbeddingFactory) CreateEmbeddingClient() (core.EmbeddingClient, error) {
	embeddingCfg := f.cfg.GetEmbedding()

	switch embeddingCfg.Provider {
	case "none", "":
		return nil, nil
	case "bedrock":
		factory := bedrock.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateEmbeddingClient()
	case "gemini":
		factory := gemini.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateEmbeddingClient()
	case "openai":
		factory := openai.NewFactory(f.cfg, f.logger, f.textProcessor)
		return factory.CreateEmbeddingClient()
	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", embeddingCfg.Provider)
	}
}
