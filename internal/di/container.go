package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/adapters/collector"
	"github.com/orgflow/constraint-analyzer/internal/analysis"
	"github.com/orgflow/constraint-analyzer/internal/config"
	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/dataset"
	"github.com/orgflow/constraint-analyzer/internal/factory"
	"github.com/orgflow/constraint-analyzer/internal/logging"
	"github.com/orgflow/constraint-analyzer/internal/recommend"
	"github.com/orgflow/constraint-analyzer/internal/utils"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register text processor
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewEmbeddingFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewScorerFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}

	// Register embedding client
	if err := container.Provide(func(f *factory.EmbeddingFactory) (core.EmbeddingClient, error) {
		return f.CreateEmbeddingClient()
	}); err != nil {
		return nil, err
	}

	// Register constraint scorer
	if err := container.Provide(func(f *factory.ScorerFactory, embedder core.EmbeddingClient) (core.ConstraintScorer, error) {
		return f.CreateScorer(embedder)
	}); err != nil {
		return nil, err
	}

	// Register report cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.ReportCache, error) {
		return f.CreateReportCache()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register pipeline stages
	if err := registerPipeline(container); err != nil {
		return nil, err
	}

	// Register dataset loader
	if err := container.Provide(dataset.NewLoader); err != nil {
		return nil, err
	}

	// Register corpus collector
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *collector.SMTPCollector {
		collectorCfg := cfg.GetCollector()
		return collector.NewSMTPCollector(
			collectorCfg.ListenAddress,
			collectorCfg.OutputPath,
			int64(collectorCfg.MaxMessageBytes),
			logger,
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// registerPipeline registers the analysis stages and the service itself
func registerPipeline(container *dig.Container) error {
	if err := container.Provide(func(logger *zap.Logger) core.ThreadReconstructor {
		return analysis.NewThreadAnalyzer(logger)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(logger *zap.Logger) core.DepartmentAggregator {
		return analysis.NewDepartmentAnalyzer(logger)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(logger *zap.Logger) core.EntityExtractor {
		return analysis.NewEntityExtractor(logger)
	}); err != nil {
		return err
	}
	if err := container.Provide(func(logger *zap.Logger) core.RecommendationGenerator {
		return recommend.NewGenerator(logger)
	}); err != nil {
		return err
	}
	return container.Provide(core.NewAnalysisService)
}
