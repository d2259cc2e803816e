package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

// fakeEmbedder returns a fixed-direction vector leaning toward deadline
// vocabulary, and can be told to fail.
type fakeEmbedder struct {
	fail  bool
	calls int
}

func (f *fakeEmbedder) ExtractEmbedding(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.fail {
		return nil, errors.New("provider unavailable")
	}
	if strings.Contains(text, "deadline") {
		return []float32{1, 0}, nil
	}
	return []float32{0, 1}, nil
}

func TestSemanticScorer_NilEmbedderFallsBack(t *testing.T) {
	fallback := NewKeywordScorer(zap.NewNop())
	s := NewSemanticScorer(nil, fallback, zap.NewNop())

	emails := []*core.Email{scoringEmail("Deadline", "the deadline moved", "Unknown")}
	scores := s.Score(context.Background(), emails)
	assert.InDelta(t, 1.0, scores[core.ConstraintDeadlineIssues], 1e-9)
}

func TestSemanticScorer_EmbedderFailureFallsBack(t *testing.T) {
	fallback := NewKeywordScorer(zap.NewNop())
	s := NewSemanticScorer(&fakeEmbedder{fail: true}, fallback, zap.NewNop())

	emails := []*core.Email{scoringEmail("Deadline", "the deadline moved", "Unknown")}
	scores := s.Score(context.Background(), emails)

	// Prototype construction fails, so the whole run is keyword-scored
	assert.InDelta(t, 1.0, scores[core.ConstraintDeadlineIssues], 1e-9)
}

func TestSemanticScorer_SimilarityScores(t *testing.T) {
	embedder := &fakeEmbedder{}
	fallback := NewKeywordScorer(zap.NewNop())
	s := NewSemanticScorer(embedder, fallback, zap.NewNop())

	emails := []*core.Email{scoringEmail("Deadline", "the deadline moved", "Unknown")}
	scores := s.Score(context.Background(), emails)

	// The email vector aligns fully with the deadline prototype and is
	// orthogonal to every other category
	assert.InDelta(t, 1.0, scores[core.ConstraintDeadlineIssues], 1e-9)
	assert.InDelta(t, 0.0, scores[core.ConstraintSkillGaps], 1e-9)
}

func TestSemanticScorer_PrototypesBuiltOnce(t *testing.T) {
	embedder := &fakeEmbedder{}
	s := NewSemanticScorer(embedder, NewKeywordScorer(zap.NewNop()), zap.NewNop())

	emails := []*core.Email{scoringEmail("Deadline", "deadline", "Unknown")}
	s.Score(context.Background(), emails)
	after := embedder.calls
	s.Score(context.Background(), emails)

	// Second run adds one call per email, not another prototype build
	assert.Equal(t, after+1, embedder.calls)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float32{1, 0}, []float32{2, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, cosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity(nil, nil), 1e-9)
	assert.InDelta(t, 0.0, cosineSimilarity([]float32{1}, []float32{1, 2}), 1e-9)
}
