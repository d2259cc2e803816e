package analysis

import (
	"context"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

// SemanticScorer scores constraints by cosine similarity between email
// embeddings and per-category keyword prototypes. The embedding provider is
// a slow, possibly-unavailable external call, so any failure falls back
// wholesale to the keyword scorer; keyword correctness never depends on the
// embedding capability.
type SemanticScorer struct {
	embedder core.EmbeddingClient
	fallback core.ConstraintScorer
	logger   *zap.Logger

	once       sync.Once
	prototypes map[string][]float32
	protoErr   error
}

// NewSemanticScorer creates a semantic scorer wrapping the given fallback
func NewSemanticScorer(embedder core.EmbeddingClient, fallback core.ConstraintScorer, logger *zap.Logger) *SemanticScorer {
	return &SemanticScorer{
		embedder: embedder,
		fallback: fallback,
		logger:   logger,
	}
}

// Score computes similarity-based scores, or delegates to the keyword
// scorer when the embedding capability is missing or failing.
func (s *SemanticScorer) Score(ctx context.Context, emails []*core.Email) core.ConstraintScores {
	if s.embedder == nil {
		return s.fallback.Score(ctx, emails)
	}

	s.once.Do(func() { s.buildPrototypes(ctx) })
	if s.protoErr != nil {
		s.logger.Warn("Embedding prototypes unavailable, falling back to keyword scoring",
			zap.Error(s.protoErr))
		return s.fallback.Score(ctx, emails)
	}

	scores := core.NewConstraintScores()
	for _, email := range emails {
		vec, err := s.embedder.ExtractEmbedding(ctx, scoringText(email))
		if err != nil {
			s.logger.Warn("Embedding extraction failed, falling back to keyword scoring",
				zap.String("email", email.ID),
				zap.Error(err))
			return s.fallback.Score(ctx, emails)
		}
		for ct, proto := range s.prototypes {
			if sim := cosineSimilarity(vec, proto); sim > 0 {
				scores[ct] += sim
			}
		}
	}

	divisor := float64(len(emails))
	if divisor < 1 {
		divisor = 1
	}
	for ct := range scores {
		scores[ct] /= divisor
	}
	return scores
}

func (s *SemanticScorer) buildPrototypes(ctx context.Context) {
	prototypes := make(map[string][]float32, len(constraintKeywords))
	for ct, keywords := range constraintKeywords {
		vec, err := s.embedder.ExtractEmbedding(ctx, strings.Join(keywords, " "))
		if err != nil {
			s.protoErr = err
			return
		}
		prototypes[ct] = vec
	}
	s.prototypes = prototypes
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
