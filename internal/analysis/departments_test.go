package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

func deptEmail(senderDept string, body string, recipientDepts ...string) *core.Email {
	e := &core.Email{
		Body:           body,
		NormalizedBody: body,
		Sender:         &core.Person{ID: "s-" + senderDept, Name: senderDept, Department: senderDept},
	}
	for i, d := range recipientDepts {
		e.Recipients = append(e.Recipients, &core.Person{
			ID:         "r" + string(rune('0'+i)),
			Department: d,
		})
	}
	return e
}

func TestAggregate_CountsAndCommunication(t *testing.T) {
	a := NewDepartmentAnalyzer(zap.NewNop())
	emails := []*core.Email{
		deptEmail("Engineering", "all fine", "Engineering"),
		deptEmail("Engineering", "all fine", "Sales"),
		deptEmail("Sales", "all fine", "Sales", "Sales"),
	}

	insights := a.Aggregate(emails)
	require.Contains(t, insights, "Engineering")
	require.Contains(t, insights, "Sales")

	eng := insights["Engineering"]
	assert.Equal(t, 2, eng.EmailCount)
	assert.Equal(t, 1, eng.InternalCommunication)
	assert.Equal(t, 1, eng.ExternalCommunication)

	sales := insights["Sales"]
	assert.Equal(t, 1, sales.EmailCount)
	assert.Equal(t, 1, sales.InternalCommunication)
}

func TestAggregate_UnknownRecipientsNeutral(t *testing.T) {
	a := NewDepartmentAnalyzer(zap.NewNop())

	// Recipients without a known department never make an email external
	emails := []*core.Email{
		deptEmail("Engineering", "x", "Unknown", ""),
	}
	insights := a.Aggregate(emails)
	assert.Equal(t, 1, insights["Engineering"].InternalCommunication)
	assert.NotContains(t, insights, "Unknown")
	assert.NotContains(t, insights, "")
}

func TestAggregate_RecipientOnlyDepartment(t *testing.T) {
	a := NewDepartmentAnalyzer(zap.NewNop())
	emails := []*core.Email{
		deptEmail("Engineering", "x", "Finance"),
	}
	insights := a.Aggregate(emails)

	require.Contains(t, insights, "Finance")
	fin := insights["Finance"]
	assert.Equal(t, 0, fin.EmailCount)
	assert.Equal(t, 0, fin.InternalCommunication)
	assert.Equal(t, 0, fin.ExternalCommunication)
	for _, ct := range core.ConstraintTypes {
		assert.InDelta(t, 0.0, fin.Constraints[ct], 1e-9)
	}
}

func TestAggregate_ConstraintSubVectors(t *testing.T) {
	a := NewDepartmentAnalyzer(zap.NewNop())
	emails := []*core.Email{
		deptEmail("Engineering", "the deadline slipped"),
		deptEmail("Engineering", "nothing to see"),
		deptEmail("Sales", "waiting for approval"),
	}
	insights := a.Aggregate(emails)

	assert.InDelta(t, 0.5, insights["Engineering"].Constraints[core.ConstraintDeadlineIssues], 1e-9)
	assert.InDelta(t, 1.0, insights["Sales"].Constraints[core.ConstraintApprovalBottlenecks], 1e-9)
}

func TestAggregate_Empty(t *testing.T) {
	a := NewDepartmentAnalyzer(zap.NewNop())
	insights := a.Aggregate(nil)
	assert.Empty(t, insights)
}
