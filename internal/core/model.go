package core

import (
	"time"
)

// Constraint categories identified by the analyzer
const (
	ConstraintDeadlineIssues        = "deadline_issues"
	ConstraintApprovalBottlenecks   = "approval_bottlenecks"
	ConstraintResourceConstraints   = "resource_constraints"
	ConstraintSkillGaps             = "skill_gaps"
	ConstraintProcessIssues         = "process_issues"
	ConstraintCommunicationProblems = "communication_problems"
)

// ConstraintTypes lists all constraint categories in canonical order
var ConstraintTypes = []string{
	ConstraintDeadlineIssues,
	ConstraintApprovalBottlenecks,
	ConstraintResourceConstraints,
	ConstraintSkillGaps,
	ConstraintProcessIssues,
	ConstraintCommunicationProblems,
}

// Person represents a sender or recipient resolved against the company directory
type Person struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Role       string `json:"role"`
}

// Email represents a single email record in canonical form
type Email struct {
	ID             string                 `json:"id"`
	ThreadID       string                 `json:"thread_id"`
	Subject        string                 `json:"subject"`
	Body           string                 `json:"body"`
	NormalizedBody string                 `json:"normalized_body"`
	Sender         *Person                `json:"sender"`
	Recipients     []*Person              `json:"recipients"`
	Timestamp      string                 `json:"timestamp"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// ThreadRecord is an explicit thread entry from the dataset file
type ThreadRecord struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants,omitempty"`
}

// DirectoryPerson is a company directory entry
type DirectoryPerson struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Title      string `json:"title"`
}

// CompanyDirectory holds the organizational structure shipped with a dataset
type CompanyDirectory struct {
	Name        string            `json:"name"`
	Departments []string          `json:"departments,omitempty"`
	Persons     []DirectoryPerson `json:"persons"`
}

// Dataset is a fully loaded and normalized email corpus
type Dataset struct {
	Name            string
	Path            string
	Emails          []*Email
	ExplicitThreads []ThreadRecord
	Company         *CompanyDirectory
}

// Thread is a reconstructed conversation ordered by timestamp
type Thread struct {
	ID           string
	Emails       []*Email
	Participants []string
	Metrics      ThreadMetrics
}

// ThreadMetrics captures temporal and behavioral signals for a thread
type ThreadMetrics struct {
	ThreadLength    int       `json:"thread_length"`
	Participants    []string  `json:"participants"`
	ResponseTimes   []float64 `json:"response_times"`
	AvgResponseTime float64   `json:"avg_response_time"`
	SenderChanges   int       `json:"sender_changes"`
	TopicDrift      int       `json:"topic_drift"`
}

// ConstraintScores maps constraint categories to relative weights.
// Scores are normalized by email count but deliberately not clamped;
// department overlay increments can push a category above 1.0.
type ConstraintScores map[string]float64

// NewConstraintScores returns a zeroed score vector over all categories
func NewConstraintScores() ConstraintScores {
	scores := make(ConstraintScores, len(ConstraintTypes))
	for _, ct := range ConstraintTypes {
		scores[ct] = 0.0
	}
	return scores
}

// DepartmentInsight summarizes one department's communication patterns
type DepartmentInsight struct {
	EmailCount            int              `json:"email_count"`
	InternalCommunication int              `json:"internal_communication"`
	ExternalCommunication int              `json:"external_communication"`
	Constraints           ConstraintScores `json:"constraints"`
}

// KeyPeople maps organizational roles to ranked person names.
// Roles with no members are omitted.
type KeyPeople map[string][]string

// Recommendation is a single remediation suggestion
type Recommendation struct {
	ConstraintType   string              `json:"constraint_type"`
	Confidence       float64             `json:"confidence"`
	Priority         string              `json:"priority"`
	Title            string              `json:"title"`
	Description      string              `json:"description"`
	Actions          []string            `json:"actions"`
	RelevantPeople   map[string][]string `json:"relevant_people,omitempty"`
	RelevantProjects []string            `json:"relevant_projects,omitempty"`
}

// AnalysisReport is the full output of one analysis run
type AnalysisReport struct {
	AnalysisID         string                        `json:"analysis_id"`
	Dataset            string                        `json:"dataset"`
	EmailCount         int                           `json:"email_count"`
	ThreadCount        int                           `json:"thread_count"`
	Constraints        ConstraintScores              `json:"constraints"`
	DepartmentInsights map[string]*DepartmentInsight `json:"department_insights"`
	ThreadMetrics      map[string]*ThreadMetrics     `json:"thread_metrics"`
	KeyPeople          KeyPeople                     `json:"key_people"`
	KeyProjects        []string                      `json:"key_projects"`
	Recommendations    []*Recommendation             `json:"recommendations"`
	Summary            string                        `json:"summary"`
	AnalyzedAt         time.Time                     `json:"analyzed_at"`
}

// CacheEntry is a cached analysis report with its expiry
type CacheEntry struct {
	Key       string
	Report    *AnalysisReport
	CreatedAt time.Time
	ExpiresAt time.Time
}
