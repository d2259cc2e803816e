package analysis

import (
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
	"github.com/orgflow/constraint-analyzer/internal/dataset"
)

// DepartmentAnalyzer computes per-department communication counts and
// constraint sub-vectors.
type DepartmentAnalyzer struct {
	logger *zap.Logger
}

// NewDepartmentAnalyzer creates a new department analyzer
func NewDepartmentAnalyzer(logger *zap.Logger) *DepartmentAnalyzer {
	return &DepartmentAnalyzer{logger: logger}
}

// Aggregate builds an insight per department appearing as sender or
// recipient, excluding the Unknown sentinel. An email is internal when
// every recipient with a known department shares the sender's department.
// Constraint sub-vectors use the corpus scoring rule restricted to the
// department's sent emails, normalized by its own email count.
func (a *DepartmentAnalyzer) Aggregate(emails []*core.Email) map[string]*core.DepartmentInsight {
	insights := make(map[string]*core.DepartmentInsight)
	ensure := func(dept string) {
		if dept == "" || dept == dataset.UnknownDepartment {
			return
		}
		if _, ok := insights[dept]; !ok {
			insights[dept] = &core.DepartmentInsight{Constraints: core.NewConstraintScores()}
		}
	}

	for _, email := range emails {
		if email.Sender != nil {
			ensure(email.Sender.Department)
		}
		for _, r := range email.Recipients {
			ensure(r.Department)
		}
	}

	for _, email := range emails {
		if email.Sender == nil {
			continue
		}
		dept := email.Sender.Department
		insight, ok := insights[dept]
		if !ok {
			continue
		}
		insight.EmailCount++
		if isInternal(email, dept) {
			insight.InternalCommunication++
		} else {
			insight.ExternalCommunication++
		}
		scoreEmail(email, insight.Constraints)
	}

	for dept, insight := range insights {
		divisor := float64(insight.EmailCount)
		if divisor < 1 {
			divisor = 1
		}
		for ct := range insight.Constraints {
			insight.Constraints[ct] /= divisor
		}
		a.logger.Debug("Aggregated department",
			zap.String("department", dept),
			zap.Int("emails", insight.EmailCount))
	}

	return insights
}

func isInternal(email *core.Email, senderDept string) bool {
	for _, r := range email.Recipients {
		if r.Department == "" || r.Department == dataset.UnknownDepartment {
			continue
		}
		if r.Department != senderDept {
			return false
		}
	}
	return true
}
