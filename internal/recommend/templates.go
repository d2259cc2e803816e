package recommend

import (
	"github.com/orgflow/constraint-analyzer/internal/core"
)

// template is the fixed recommendation skeleton for one constraint category
type template struct {
	Title       string
	Description string
	Actions     []string
}

var templates = map[string]template{
	core.ConstraintDeadlineIssues: {
		Title:       "Implement Deadline Management Process",
		Description: "Create a structured deadline management process with clear buffer times.",
		Actions: []string{
			"Document all project deadlines in a shared calendar",
			"Implement a 20% buffer time policy for all deadlines",
			"Create a weekly deadline review process",
		},
	},
	core.ConstraintApprovalBottlenecks: {
		Title:       "Streamline Approval Processes",
		Description: "Reduce the complexity and time required for approvals.",
		Actions: []string{
			"Create approval thresholds to eliminate unnecessary approvals",
			"Implement parallel approval workflows",
			"Delegate approval authority to appropriate levels",
		},
	},
	core.ConstraintResourceConstraints: {
		Title:       "Optimize Resource Allocation",
		Description: "Improve how resources are allocated across projects and teams.",
		Actions: []string{
			"Conduct a resource capacity analysis",
			"Create a prioritization framework for resource allocation",
			"Implement a resource request process with lead time requirements",
		},
	},
	core.ConstraintSkillGaps: {
		Title:       "Address Skill Development Needs",
		Description: "Build critical skills that are currently constraining progress.",
		Actions: []string{
			"Create a skills inventory across teams",
			"Develop targeted training programs for high-priority skills",
			"Implement knowledge-sharing sessions for critical competencies",
		},
	},
	core.ConstraintProcessIssues: {
		Title:       "Streamline Inefficient Processes",
		Description: "Identify and improve processes that are creating constraints.",
		Actions: []string{
			"Map key processes to identify bottlenecks",
			"Eliminate unnecessary steps in critical workflows",
			"Create process documentation for consistency",
		},
	},
	core.ConstraintCommunicationProblems: {
		Title:       "Enhance Communication Channels",
		Description: "Improve how information flows across the organization.",
		Actions: []string{
			"Define communication protocols for different types of information",
			"Implement regular cross-functional meetings",
			"Create a central knowledge repository",
		},
	},
}

// responseTimeRecommendation is the fixed thread-latency augmentation,
// appended when slow threads are found and few recommendations exist.
var responseTimeRecommendation = core.Recommendation{
	ConstraintType: "response_time",
	Confidence:     0.7,
	Priority:       "high",
	Title:          "Improve Team Response Time",
	Description:    "Long email response times are creating bottlenecks in key projects",
	Actions: []string{
		"Set up response time SLAs for critical emails",
		"Create dedicated time blocks for email processing",
		"Use chat for urgent items instead of email",
	},
}
