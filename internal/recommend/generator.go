package recommend

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/orgflow/constraint-analyzer/internal/analysis"
	"github.com/orgflow/constraint-analyzer/internal/core"
)

const (
	maxRecommendations      = 5
	scoreThreshold          = 0.1
	maxPersonalizedActions  = 3
	maxRelevantProjects     = 2
	slowThreadHours         = 24.0
	augmentBelowRecommCount = 3
)

var titleCaser = cases.Title(language.English)

// Generator synthesizes ranked, personalized recommendations from the
// analysis outputs. It implements core.RecommendationGenerator.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a new recommendation generator
func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate produces up to five recommendations ordered by score descending,
// discarding categories below the significance threshold, plus a summary of
// the findings. Slow threads can append one fixed response-time
// recommendation that bypasses the threshold and personalization.
func (g *Generator) Generate(
	scores core.ConstraintScores,
	threadMetrics map[string]*core.ThreadMetrics,
	keyPeople core.KeyPeople,
	keyProjects []string,
) ([]*core.Recommendation, string) {
	recommendations := []*core.Recommendation{}

	for _, sc := range rankScores(scores) {
		if sc.score < scoreThreshold {
			continue
		}
		tmpl, ok := templates[sc.constraint]
		if !ok {
			continue
		}

		rec := &core.Recommendation{
			ConstraintType: sc.constraint,
			Confidence:     sc.score,
			Priority:       priorityFor(sc.score),
			Title:          tmpl.Title,
			Description:    tmpl.Description,
			Actions:        append([]string{}, tmpl.Actions...),
		}
		if len(keyPeople) > 0 || len(keyProjects) > 0 {
			g.personalize(rec, keyPeople, keyProjects)
		}

		recommendations = append(recommendations, rec)
		if len(recommendations) >= maxRecommendations {
			break
		}
	}

	if hasSlowThread(threadMetrics) && len(recommendations) < augmentBelowRecommCount {
		augmented := responseTimeRecommendation
		augmented.Actions = append([]string{}, responseTimeRecommendation.Actions...)
		recommendations = append(recommendations, &augmented)
	}

	summary := g.summarize(scores, recommendations)
	g.logger.Debug("Generated recommendations",
		zap.Int("count", len(recommendations)))
	return recommendations, summary
}

type scoredConstraint struct {
	constraint string
	score      float64
}

// rankScores orders categories by score descending; ties keep the canonical
// category order for determinism.
func rankScores(scores core.ConstraintScores) []scoredConstraint {
	ranked := make([]scoredConstraint, 0, len(core.ConstraintTypes))
	for _, ct := range core.ConstraintTypes {
		ranked = append(ranked, scoredConstraint{ct, scores[ct]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	return ranked
}

func priorityFor(score float64) string {
	switch {
	case score >= 0.7:
		return "high"
	case score >= 0.4:
		return "medium"
	default:
		return "low"
	}
}

// personalize attaches relevant people and projects to a recommendation and
// appends up to three personalized actions after the template's base three.
func (g *Generator) personalize(rec *core.Recommendation, keyPeople core.KeyPeople, keyProjects []string) {
	relevant := relevantPeopleFor(rec.ConstraintType, keyPeople)
	if len(relevant) > 0 {
		rec.RelevantPeople = relevant

		var actions []string
		if managers := relevant[analysis.RoleManagers]; len(managers) > 0 {
			manager := managers[0]
			actions = append(actions,
				fmt.Sprintf("Schedule a constraint review meeting with %s", manager),
				fmt.Sprintf("Work with %s to prioritize constraint resolution", manager))
			rec.Title = personalizedTitle(rec.ConstraintType, rec.Title, manager)
			rec.Description = personalizedDescription(rec.ConstraintType, rec.Description, manager)
		}
		actions = append(actions, roleActions(rec.ConstraintType, relevant)...)
		if len(actions) > maxPersonalizedActions {
			actions = actions[:maxPersonalizedActions]
		}
		rec.Actions = append(rec.Actions, actions...)
	}

	if len(keyProjects) > 0 {
		projects := keyProjects
		if len(projects) > maxRelevantProjects {
			projects = projects[:maxRelevantProjects]
		}
		rec.RelevantProjects = append([]string{}, projects...)
		rec.Actions = append(rec.Actions,
			fmt.Sprintf("Perform a constraint analysis workshop for the %s project", projects[0]))
	}
}

// relevantPeopleFor selects the roles that matter for a constraint type:
// managers always, plus the category-specific role.
func relevantPeopleFor(constraintType string, keyPeople core.KeyPeople) map[string][]string {
	relevant := make(map[string][]string)

	if managers := keyPeople[analysis.RoleManagers]; len(managers) > 0 {
		limited := managers
		if len(limited) > 2 {
			limited = limited[:2]
		}
		relevant[analysis.RoleManagers] = limited
	}

	role := ""
	switch constraintType {
	case core.ConstraintResourceConstraints:
		role = analysis.RoleResourceManagers
	case core.ConstraintApprovalBottlenecks:
		role = analysis.RoleApprovers
	case core.ConstraintSkillGaps, core.ConstraintCommunicationProblems:
		role = analysis.RoleTeamLeads
	case core.ConstraintProcessIssues:
		role = analysis.RoleProcessOwners
	}
	if role != "" {
		if people := keyPeople[role]; len(people) > 0 {
			relevant[role] = people
		}
	}

	return relevant
}

// roleActions builds category-specific actions naming the first person of
// the relevant role.
func roleActions(constraintType string, relevant map[string][]string) []string {
	first := func(role string) (string, bool) {
		if people := relevant[role]; len(people) > 0 {
			return people[0], true
		}
		return "", false
	}

	switch constraintType {
	case core.ConstraintResourceConstraints:
		if p, ok := first(analysis.RoleResourceManagers); ok {
			return []string{
				fmt.Sprintf("Request resource allocation review from %s", p),
				fmt.Sprintf("Develop resource proposal with %s's input", p),
			}
		}
	case core.ConstraintApprovalBottlenecks:
		if p, ok := first(analysis.RoleApprovers); ok {
			return []string{
				fmt.Sprintf("Discuss approval process improvements with %s", p),
				fmt.Sprintf("Request expedited approval channel from %s for urgent items", p),
			}
		}
	case core.ConstraintSkillGaps:
		if p, ok := first(analysis.RoleTeamLeads); ok {
			return []string{
				fmt.Sprintf("Work with %s to identify specific skill development needs", p),
				fmt.Sprintf("Schedule knowledge transfer sessions facilitated by %s", p),
			}
		}
	case core.ConstraintProcessIssues:
		if p, ok := first(analysis.RoleProcessOwners); ok {
			return []string{
				fmt.Sprintf("Schedule process review workshop with %s", p),
				fmt.Sprintf("Request process documentation update from %s", p),
			}
		}
	case core.ConstraintCommunicationProblems:
		if p, ok := first(analysis.RoleTeamLeads); ok {
			return []string{
				fmt.Sprintf("Establish regular sync meetings facilitated by %s", p),
				fmt.Sprintf("Create communication plan with %s's input", p),
			}
		}
	}
	return nil
}

func personalizedTitle(constraintType, baseTitle, manager string) string {
	switch constraintType {
	case core.ConstraintResourceConstraints:
		return fmt.Sprintf("Work with %s to %s", manager, baseTitle)
	case core.ConstraintApprovalBottlenecks:
		return fmt.Sprintf("Collaborate with %s to %s", manager, baseTitle)
	case core.ConstraintProcessIssues:
		return fmt.Sprintf("Partner with %s to %s", manager, baseTitle)
	default:
		return fmt.Sprintf("%s with %s's Team", baseTitle, manager)
	}
}

func personalizedDescription(constraintType, baseDescription, manager string) string {
	switch constraintType {
	case core.ConstraintResourceConstraints:
		return fmt.Sprintf("%s Coordinate with %s to identify specific resource bottlenecks and prioritize critical needs.", baseDescription, manager)
	case core.ConstraintApprovalBottlenecks:
		return fmt.Sprintf("%s %s's team has been identified as a key stakeholder in improving the approval workflow.", baseDescription, manager)
	case core.ConstraintSkillGaps:
		return fmt.Sprintf("%s %s's team has specialized knowledge that could be leveraged to address current skill gaps.", baseDescription, manager)
	case core.ConstraintProcessIssues:
		return fmt.Sprintf("%s %s can provide valuable insight into process optimization opportunities.", baseDescription, manager)
	case core.ConstraintCommunicationProblems:
		return fmt.Sprintf("%s Improving communication with %s's team will help reduce misalignment.", baseDescription, manager)
	default:
		return baseDescription
	}
}

func hasSlowThread(threadMetrics map[string]*core.ThreadMetrics) bool {
	for _, m := range threadMetrics {
		if m.AvgResponseTime > slowThreadHours {
			return true
		}
	}
	return false
}

// summarize names the primary constraint and, when strong enough, the
// secondary one, and counts the produced recommendations.
func (g *Generator) summarize(scores core.ConstraintScores, recommendations []*core.Recommendation) string {
	ranked := rankScores(scores)
	if len(ranked) == 0 || ranked[0].score < scoreThreshold {
		return "No significant organizational constraints were identified in the analyzed communication."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("The analysis identified %s as the primary organizational constraint. ",
		constraintDisplayName(ranked[0].constraint)))
	if len(ranked) > 1 && ranked[1].score > 0.2 {
		sb.WriteString(fmt.Sprintf("Additionally, %s is a secondary factor affecting efficiency. ",
			constraintDisplayName(ranked[1].constraint)))
	}
	sb.WriteString(fmt.Sprintf("There are %d recommended actions to address these constraints.",
		len(recommendations)))
	return sb.String()
}

func constraintDisplayName(constraintType string) string {
	return titleCaser.String(strings.ReplaceAll(constraintType, "_", " "))
}
