package analysis

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/dataset"
)

// KeywordScorer is the canonical keyword-presence constraint scorer. Each
// email contributes exactly 1 to a category when any category keyword
// appears in its text, plus fixed 0.5 increments from the sender
// department's overlay keywords.
type KeywordScorer struct {
	logger *zap.Logger
}

// NewKeywordScorer creates a new keyword scorer
func NewKeywordScorer(logger *zap.Logger) *KeywordScorer {
	return &KeywordScorer{logger: logger}
}

// Score computes the constraint score vector for a corpus, normalized by
// email count. Scores are not clamped; overlay increments can push a
// category above 1.0.
func (s *KeywordScorer) Score(_ context.Context, emails []*core.Email) core.ConstraintScores {
	scores := core.NewConstraintScores()
	for _, email := range emails {
		scoreEmail(email, scores)
	}
	divisor := float64(len(emails))
	if divisor < 1 {
		divisor = 1
	}
	for ct := range scores {
		scores[ct] /= divisor
	}
	s.logger.Debug("Scored constraints", zap.Int("emails", len(emails)))
	return scores
}

// scoreEmail adds one email's contribution to the score vector
func scoreEmail(email *core.Email, scores core.ConstraintScores) {
	text := scoringText(email)

	for ct, keywords := range constraintKeywords {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				scores[ct] += 1.0
				break
			}
		}
	}

	if email.Sender == nil {
		return
	}
	for _, kw := range departmentKeywords[email.Sender.Department] {
		if !strings.Contains(text, kw) {
			continue
		}
		if isResourceOverlay(kw) {
			scores[core.ConstraintResourceConstraints] += 0.5
		} else {
			scores[core.ConstraintProcessIssues] += 0.5
		}
	}
}

// scoringText builds the lowercased subject+body text an email is scored on
func scoringText(email *core.Email) string {
	subject := dataset.NormalizeText(email.Subject)
	return strings.ToLower(subject + " " + email.NormalizedBody)
}

func isResourceOverlay(keyword string) bool {
	kw := strings.ToLower(keyword)
	for _, marker := range resourceOverlayMarkers {
		if strings.Contains(kw, marker) {
			return true
		}
	}
	return false
}
