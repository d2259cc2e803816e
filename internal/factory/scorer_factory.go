package factory

import (
	"fmt"

	"github.com/orgflow/constraint-analyzer/internal/analysis"
	"github.com/orgflow/constraint-analyzer/internal/config"
	"github.com/orgflow/constraint-analyzer/internal/core"
	"go.uber.org/zap"
)

// ScorerFactory creates constraint scorers based on configuration
type ScorerFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewScorerFactory creates a new scorer factory
func NewScorerFactory(cfg *config.Config, logger *zap.Logger) *ScorerFactory {
	return &ScorerFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateScorer creates a constraint scorer based on the configuration.
// The semantic scorer falls back to keyword scoring when no embedding
// client is available.
func (f *ScorerFactory) CreateScorer(embedder core.EmbeddingClient) (core.ConstraintScorer, error) {
	analysisCfg := f.cfg.GetAnalysis()
	keyword := analysis.NewKeywordScorer(f.logger)

	switch analysisCfg.Scorer {
	case "keyword", "":
		return keyword, nil
	case "semantic":
		return analysis.NewSemanticScorer(embedder, keyword, f.logger), nil
	default:
		return nil, fmt.Errorf("unsupported scorer type: %s", analysisCfg.Scorer)
	}
}
