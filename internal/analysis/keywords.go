package analysis

import (
	"github.com/orgflow/constraint-analyzer/internal/core"
)

// constraintKeywords maps each constraint category to its indicator keywords.
// A category contributes when any keyword appears as a substring of the
// lowercased subject+body text.
var constraintKeywords = map[string][]string{
	core.ConstraintDeadlineIssues:        {"deadline", "late", "delay", "overdue", "behind", "schedule"},
	core.ConstraintApprovalBottlenecks:   {"approval", "sign-off", "permission", "authorize", "waiting"},
	core.ConstraintResourceConstraints:   {"resource", "budget", "fund", "shortage", "limited", "insufficient"},
	core.ConstraintSkillGaps:             {"training", "expertise", "knowledge", "skill", "learn", "understand"},
	core.ConstraintProcessIssues:         {"process", "workflow", "procedure", "inefficient", "bureaucracy"},
	core.ConstraintCommunicationProblems: {"misunderstanding", "unclear", "confusion", "miscommunication"},
}

// departmentKeywords is the per-department overlay: matches add a fixed 0.5
// to resource_constraints or process_issues depending on the keyword.
var departmentKeywords = map[string][]string{
	"Engineering": {"technical debt", "bug", "test", "integration", "compatibility"},
	"Marketing":   {"campaign", "messaging", "audience", "content", "channels"},
	"Sales":       {"pipeline", "leads", "conversion", "prospect", "client"},
	"Product":     {"feature", "roadmap", "priority", "specification", "requirement"},
	"Finance":     {"budget", "forecast", "expense", "approval", "cost"},
	"HR":          {"hiring", "recruitment", "onboarding", "training", "retention"},
}

// resourceOverlayMarkers route an overlay keyword match to the
// resource_constraints category instead of process_issues.
var resourceOverlayMarkers = []string{"budget", "cost", "feature", "requirement"}
