package di

import (
	"flag"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/config"
	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/dataset"
	"github.com/orgflow/constraint-analyzer/internal/factory"
	"github.com/orgflow/constraint-analyzer/internal/logging"
	"github.com/orgflow/constraint-analyzer/internal/utils"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Input flags
	DatasetPath string
	Department  string
	User        string
	OutputFile  string

	// Scorer flags
	Scorer   string
	Provider string

	// Bedrock flags
	BedrockRegion  string
	BedrockModelID string

	// Gemini flags
	GeminiAPIKey    string
	GeminiModelName string

	// OpenAI flags
	OpenAIAPIKey    string
	OpenAIModelName string

	// Cache flags
	CacheType string

	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Input flags
	flag.StringVar(&flags.DatasetPath, "dataset", "", "Path to the email dataset (JSON file or directory)")
	flag.StringVar(&flags.Department, "department", "", "Restrict the analysis to emails sent by this department")
	flag.StringVar(&flags.User, "user", "", "Restrict the analysis to emails sent by this person (ID or name)")
	flag.StringVar(&flags.OutputFile, "output", "", "Write the JSON report to this file (stdout summary always printed)")

	// Scorer flags
	flag.StringVar(&flags.Scorer, "scorer", "keyword", "Constraint scorer (keyword, semantic)")
	flag.StringVar(&flags.Provider, "provider", "none", "Embedding provider for the semantic scorer (none, bedrock, gemini, openai)")

	// Bedrock flags
	flag.StringVar(&flags.BedrockRegion, "bedrock-region", "us-east-1", "AWS region for Bedrock")
	flag.StringVar(&flags.BedrockModelID, "bedrock-model", "amazon.titan-embed-text-v1", "Bedrock embedding model ID")

	// Gemini flags
	flag.StringVar(&flags.GeminiAPIKey, "gemini-api-key", "", "API key for Google Gemini")
	flag.StringVar(&flags.GeminiModelName, "gemini-model", "embedding-001", "Gemini embedding model name")

	// OpenAI flags
	flag.StringVar(&flags.OpenAIAPIKey, "openai-api-key", "", "API key for OpenAI")
	flag.StringVar(&flags.OpenAIModelName, "openai-model", "text-embedding-3-small", "OpenAI embedding model name")

	// Cache flags
	flag.StringVar(&flags.CacheType, "cache", "", "Report cache backend (memory, sqlite, mysql; empty disables caching)")

	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
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

	// Register report cache; a nil cache disables report reuse
	if err := container.Provide(func(f *factory.CacheFactory, logger *zap.Logger) (core.ReportCache, error) {
		if !f.IsCacheEnabled() {
			return nil, nil
		}
		return f.CreateReportCache()
	}); err != nil {
		return nil, err
	}

	// Register pipeline stages and service
	if err := registerPipeline(container); err != nil {
		return nil, err
	}

	// Register dataset loader
	if err := container.Provide(dataset.NewLoader); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	v.Set("analysis.scorer", flags.Scorer)
	v.Set("embedding.provider", flags.Provider)

	// Set provider-specific configuration
	switch flags.Provider {
	case "bedrock":
		v.Set("bedrock.region", flags.BedrockRegion)
		v.Set("bedrock.model_id", flags.BedrockModelID)
		v.Set("bedrock.max_text_size", 8192)
	case "gemini":
		v.Set("gemini.api_key", flags.GeminiAPIKey)
		v.Set("gemini.model_name", flags.GeminiModelName)
		v.Set("gemini.max_text_size", 8192)
	case "openai":
		v.Set("openai.api_key", flags.OpenAIAPIKey)
		v.Set("openai.model_name", flags.OpenAIModelName)
		v.Set("openai.max_text_size", 8192)
	}

	// Cache settings
	if flags.CacheType != "" {
		v.Set("cache.enabled", true)
		v.Set("cache.type", flags.CacheType)
		v.Set("cache.ttl", "24h")
		v.Set("cache.cleanup_frequency", "1h")
		v.Set("cache.sqlite_path", "./data/analysis_cache.db")
	} else {
		v.Set("cache.enabled", false)
	}

	return config.NewFromViper(v)
}
