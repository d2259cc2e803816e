package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/analysis"
	"github.com/orgflow/constraint-analyzer/internal/core"
)

func scoresWith(values map[string]float64) core.ConstraintScores {
	scores := core.NewConstraintScores()
	for ct, v := range values {
		scores[ct] = v
	}
	return scores
}

func TestGenerate_OrderedByScoreWithThreshold(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{
		core.ConstraintDeadlineIssues:      0.3,
		core.ConstraintResourceConstraints: 0.8,
		core.ConstraintSkillGaps:           0.05,
	})

	recs, _ := g.Generate(scores, nil, nil, nil)

	require.Len(t, recs, 2)
	assert.Equal(t, core.ConstraintResourceConstraints, recs[0].ConstraintType)
	assert.Equal(t, core.ConstraintDeadlineIssues, recs[1].ConstraintType)
}

func TestGenerate_Priorities(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{
		core.ConstraintDeadlineIssues:      0.75,
		core.ConstraintResourceConstraints: 0.5,
		core.ConstraintProcessIssues:       0.2,
	})

	recs, _ := g.Generate(scores, nil, nil, nil)
	require.Len(t, recs, 3)
	assert.Equal(t, "high", recs[0].Priority)
	assert.Equal(t, "medium", recs[1].Priority)
	assert.Equal(t, "low", recs[2].Priority)
}

func TestGenerate_ConfidenceEqualsScore(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{core.ConstraintDeadlineIssues: 0.42})

	recs, _ := g.Generate(scores, nil, nil, nil)
	require.Len(t, recs, 1)
	assert.InDelta(t, 0.42, recs[0].Confidence, 1e-9)
	assert.Equal(t, "Implement Deadline Management Process", recs[0].Title)
	assert.Len(t, recs[0].Actions, 3)
}

func TestGenerate_PersonalizedWithManagers(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{core.ConstraintResourceConstraints: 0.6})
	keyPeople := core.KeyPeople{
		analysis.RoleManagers:         {"Alice", "Bob", "Carol"},
		analysis.RoleResourceManagers: {"Rita"},
	}

	recs, _ := g.Generate(scores, nil, keyPeople, nil)
	require.Len(t, recs, 1)
	rec := recs[0]

	assert.Equal(t, "Work with Alice to Optimize Resource Allocation", rec.Title)
	assert.Contains(t, rec.Description, "Coordinate with Alice")

	// Only the first two managers are attached
	assert.Equal(t, []string{"Alice", "Bob"}, rec.RelevantPeople[analysis.RoleManagers])
	assert.Equal(t, []string{"Rita"}, rec.RelevantPeople[analysis.RoleResourceManagers])

	// Base three actions plus at most three personalized ones
	require.Len(t, rec.Actions, 6)
	assert.Equal(t, "Schedule a constraint review meeting with Alice", rec.Actions[3])
	assert.Equal(t, "Work with Alice to prioritize constraint resolution", rec.Actions[4])
	assert.Equal(t, "Request resource allocation review from Rita", rec.Actions[5])
}

func TestGenerate_ProjectWorkshopAction(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{core.ConstraintProcessIssues: 0.5})

	recs, _ := g.Generate(scores, nil, nil, []string{"Phoenix", "Atlas", "Borealis"})
	require.Len(t, recs, 1)
	rec := recs[0]

	assert.Equal(t, []string{"Phoenix", "Atlas"}, rec.RelevantProjects)
	assert.Contains(t, rec.Actions, "Perform a constraint analysis workshop for the Phoenix project")
}

func TestGenerate_ResponseTimeAugmentation(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{core.ConstraintDeadlineIssues: 0.5})
	metrics := map[string]*core.ThreadMetrics{
		"t1": {AvgResponseTime: 30.0},
	}

	recs, _ := g.Generate(scores, metrics, nil, nil)
	require.Len(t, recs, 2)
	last := recs[1]
	assert.Equal(t, "response_time", last.ConstraintType)
	assert.Equal(t, "high", last.Priority)
	assert.InDelta(t, 0.7, last.Confidence, 1e-9)
}

func TestGenerate_NoAugmentationWhenEnoughRecommendations(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{
		core.ConstraintDeadlineIssues:      0.5,
		core.ConstraintResourceConstraints: 0.5,
		core.ConstraintProcessIssues:       0.5,
	})
	metrics := map[string]*core.ThreadMetrics{"t1": {AvgResponseTime: 30.0}}

	recs, _ := g.Generate(scores, metrics, nil, nil)
	require.Len(t, recs, 3)
	for _, rec := range recs {
		assert.NotEqual(t, "response_time", rec.ConstraintType)
	}
}

func TestGenerate_NoAugmentationForFastThreads(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	metrics := map[string]*core.ThreadMetrics{"t1": {AvgResponseTime: 2.0}}

	recs, summary := g.Generate(core.NewConstraintScores(), metrics, nil, nil)
	assert.Empty(t, recs)
	assert.Equal(t, "No significant organizational constraints were identified in the analyzed communication.", summary)
}

func TestGenerate_CapsAtFive(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := core.NewConstraintScores()
	for _, ct := range core.ConstraintTypes {
		scores[ct] = 0.9
	}

	recs, _ := g.Generate(scores, nil, nil, nil)
	assert.Len(t, recs, 5)
}

func TestGenerate_SummaryNamesConstraints(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{
		core.ConstraintDeadlineIssues:        0.8,
		core.ConstraintCommunicationProblems: 0.3,
	})

	_, summary := g.Generate(scores, nil, nil, nil)
	assert.Contains(t, summary, "The analysis identified Deadline Issues as the primary organizational constraint.")
	assert.Contains(t, summary, "Additionally, Communication Problems is a secondary factor affecting efficiency.")
	assert.Contains(t, summary, "There are 2 recommended actions to address these constraints.")
}

func TestGenerate_SummarySkipsWeakSecondary(t *testing.T) {
	g := NewGenerator(zap.NewNop())
	scores := scoresWith(map[string]float64{
		core.ConstraintDeadlineIssues: 0.8,
		core.ConstraintSkillGaps:      0.15,
	})

	_, summary := g.Generate(scores, nil, nil, nil)
	assert.NotContains(t, summary, "secondary factor")
}
