package core

import (
	"context"
	"time"
)

// EmbeddingClient defines the interface for extracting text embeddings from
// an external provider. The capability is optional; keyword-based scoring
// never depends on it.
type EmbeddingClient interface {
	// ExtractEmbedding returns an embedding vector for the given text
	ExtractEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ConstraintScorer computes a constraint score vector over a set of emails.
// There is a single canonical keyword-based implementation; alternative
// strategies plug in here rather than forking the pipeline.
type ConstraintScorer interface {
	// Score computes per-category scores normalized by email count
	Score(ctx context.Context, emails []*Email) ConstraintScores
}

// RecommendationGenerator turns analysis outputs into ranked recommendations
// and a textual summary.
type RecommendationGenerator interface {
	// Generate produces prioritized recommendations and a summary
	Generate(
		scores ConstraintScores,
		threadMetrics map[string]*ThreadMetrics,
		keyPeople KeyPeople,
		keyProjects []string,
	) ([]*Recommendation, string)
}

// ReportCache defines the interface for caching analysis reports.
// The cache is owned by the host; the pipeline itself stays cache-agnostic.
type ReportCache interface {
	// Get retrieves a cached report for a key
	Get(ctx context.Context, key string) (*CacheEntry, error)

	// Set stores a report entry
	Set(ctx context.Context, entry *CacheEntry) error

	// Delete removes a cache entry
	Delete(ctx context.Context, key string) error

	// Cleanup removes expired entries
	Cleanup(ctx context.Context) error
}

// CacheKey composes a cache key from dataset identity and filter parameters
func CacheKey(dataset, department, user string) string {
	return dataset + "|" + department + "|" + user
}

// NewCacheEntry builds a cache entry for a report with the given TTL
func NewCacheEntry(key string, report *AnalysisReport, ttl time.Duration) *CacheEntry {
	now := time.Now()
	return &CacheEntry{
		Key:       key,
		Report:    report,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
