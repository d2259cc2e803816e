package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

func scoringEmail(subject, body, dept string) *core.Email {
	return &core.Email{
		Subject:        subject,
		Body:           body,
		NormalizedBody: body,
		Sender:         &core.Person{ID: "p1", Name: "P One", Department: dept},
	}
}

func TestScore_BinaryPresencePerEmail(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())

	// Multiple keywords of the same category in one email still count once
	emails := []*core.Email{
		scoringEmail("Deadline slipping", "we are late and behind schedule", "Unknown"),
	}
	scores := s.Score(context.Background(), emails)

	assert.InDelta(t, 1.0, scores[core.ConstraintDeadlineIssues], 1e-9)
	assert.InDelta(t, 0.0, scores[core.ConstraintApprovalBottlenecks], 1e-9)
}

func TestScore_NormalizedByEmailCount(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())
	emails := []*core.Email{
		scoringEmail("Deadline", "the deadline moved", "Unknown"),
		scoringEmail("Lunch", "pizza on friday", "Unknown"),
		scoringEmail("Status", "all good", "Unknown"),
		scoringEmail("Status", "all good", "Unknown"),
	}
	scores := s.Score(context.Background(), emails)
	assert.InDelta(t, 0.25, scores[core.ConstraintDeadlineIssues], 1e-9)
}

func TestScore_SubjectContributes(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())
	emails := []*core.Email{
		scoringEmail("Waiting for approval", "no matching words here at all", "Unknown"),
	}
	scores := s.Score(context.Background(), emails)
	assert.InDelta(t, 1.0, scores[core.ConstraintApprovalBottlenecks], 1e-9)
}

func TestScore_DepartmentOverlay(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())

	// "budget" triggers resource_constraints (1.0) plus the Finance overlay:
	// "budget" and "cost" route to resource_constraints (+0.5 each),
	// "approval" routes to process_issues (+0.5)
	emails := []*core.Email{
		scoringEmail("Budget", "budget approval cost concerns", "Finance"),
	}
	scores := s.Score(context.Background(), emails)

	assert.InDelta(t, 2.0, scores[core.ConstraintResourceConstraints], 1e-9)
	assert.InDelta(t, 0.5, scores[core.ConstraintProcessIssues], 1e-9)
	assert.InDelta(t, 1.0, scores[core.ConstraintApprovalBottlenecks], 1e-9)
}

func TestScore_OverlayCanExceedOne(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())
	emails := []*core.Email{
		scoringEmail("Roadmap", "feature requirement priority for the roadmap", "Product"),
	}
	scores := s.Score(context.Background(), emails)

	// Overlay: feature and requirement → resource (+1.0), roadmap and
	// priority → process (+1.0); no base category keyword matches "feature"
	assert.InDelta(t, 1.0, scores[core.ConstraintResourceConstraints], 1e-9)
	assert.InDelta(t, 1.0, scores[core.ConstraintProcessIssues], 1e-9)
}

func TestScore_ZeroEmails(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())
	scores := s.Score(context.Background(), nil)

	for _, ct := range core.ConstraintTypes {
		assert.InDelta(t, 0.0, scores[ct], 1e-9)
	}
}

func TestScore_NilSenderSkipsOverlay(t *testing.T) {
	s := NewKeywordScorer(zap.NewNop())
	e := &core.Email{Subject: "budget", Body: "budget", NormalizedBody: "budget"}
	scores := s.Score(context.Background(), []*core.Email{e})
	assert.InDelta(t, 1.0, scores[core.ConstraintResourceConstraints], 1e-9)
}
