package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	assert.Equal(t, "keyword", cfg.GetAnalysis().Scorer)
	assert.Equal(t, "none", cfg.GetEmbedding().Provider)
	assert.Equal(t, "memory", cfg.GetString("cache.type"))
	assert.True(t, cfg.GetBool("cache.enabled"))
	assert.Equal(t, "amazon.titan-embed-text-v1", cfg.GetBedrock().ModelID)
	assert.Equal(t, "embedding-001", cfg.GetGemini().ModelName)
	assert.Equal(t, "text-embedding-3-small", cfg.GetOpenAI().ModelName)
	assert.Equal(t, "0.0.0.0:10025", cfg.GetCollector().ListenAddress)
	assert.Equal(t, 10*1024*1024, cfg.GetCollector().MaxMessageBytes)
}

func TestGetDuration(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	ttl, err := cfg.GetDuration("cache.ttl")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, ttl)

	_, err = cfg.GetDuration("analysis.output_path")
	assert.Error(t, err)
}

func TestOverrides(t *testing.T) {
	v := NewEmptyViper()
	v.Set("analysis.scorer", "semantic")
	v.Set("embedding.provider", "openai")
	v.Set("openai.api_key", "sk-test")
	cfg := NewFromViper(v)

	assert.Equal(t, "semantic", cfg.GetAnalysis().Scorer)
	assert.Equal(t, "openai", cfg.GetEmbedding().Provider)
	assert.Equal(t, "sk-test", cfg.GetOpenAI().APIKey)
}
