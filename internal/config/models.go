package config

// AnalysisConfig represents the configuration for the analysis pipeline
type AnalysisConfig struct {
	Scorer     string
	OutputPath string
}

// EmbeddingConfig represents the configuration for the embedding provider
type EmbeddingConfig struct {
	Provider string
}

// BedrockConfig represents the configuration for Amazon Bedrock embeddings
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTextSize int
}

// GeminiConfig represents the configuration for Google Gemini embeddings
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTextSize int
}

// OpenAIConfig represents the configuration for OpenAI embeddings
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTextSize int
}

// CollectorConfig represents the configuration for the corpus collector
type CollectorConfig struct {
	ListenAddress   string
	OutputPath      string
	MaxMessageBytes int
}

// GetAnalysis returns the analysis configuration
func (c *Config) GetAnalysis() AnalysisConfig {
	return AnalysisConfig{
		Scorer:     c.GetString("analysis.scorer"),
		OutputPath: c.GetString("analysis.output_path"),
	}
}

// GetEmbedding returns the embedding provider configuration
func (c *Config) GetEmbedding() EmbeddingConfig {
	return EmbeddingConfig{
		Provider: c.GetString("embedding.provider"),
	}
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTextSize: c.GetInt("bedrock.max_text_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTextSize: c.GetInt("gemini.max_text_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTextSize: c.GetInt("openai.max_text_size"),
	}
}

// GetCollector returns the corpus collector configuration
func (c *Config) GetCollector() CollectorConfig {
	return CollectorConfig{
		ListenAddress:   c.GetString("collector.listen_address"),
		OutputPath:      c.GetString("collector.output_path"),
		MaxMessageBytes: c.GetInt("collector.max_message_bytes"),
	}
}
