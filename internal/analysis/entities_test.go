package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

func namedPerson(id, name, dept string) *core.Person {
	return &core.Person{ID: id, Name: name, Department: dept}
}

func replyTo(recipients ...*core.Person) *core.Email {
	return &core.Email{
		Subject:    "Re: Weekly status",
		Sender:     namedPerson("sender", "Sender", "Engineering"),
		Recipients: recipients,
	}
}

func TestExtractKeyPeople_ManagersAndTeamLeads(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	people := make([]*core.Person, 7)
	for i := range people {
		people[i] = namedPerson(fmt.Sprintf("p%d", i), fmt.Sprintf("Person %d", i), "Engineering")
	}

	// Reply counts: p0 gets 4, p1 gets 3, p2 gets 2, p3..p6 get 1
	var emails []*core.Email
	counts := []int{4, 3, 2, 1, 1, 1, 1}
	for i, n := range counts {
		for j := 0; j < n; j++ {
			emails = append(emails, replyTo(people[i]))
		}
	}

	keyPeople := e.ExtractKeyPeople(emails)

	assert.Equal(t, []string{"Person 0", "Person 1", "Person 2"}, keyPeople[RoleManagers])
	assert.Equal(t, []string{"Person 3", "Person 4", "Person 5"}, keyPeople[RoleTeamLeads])
}

func TestExtractKeyPeople_ApproversExcludeManagers(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	alice := namedPerson("a", "Alice", "Engineering")
	bob := namedPerson("b", "Bob", "Engineering")
	carol := namedPerson("c", "Carol", "Engineering")
	dave := namedPerson("d", "Dave", "Engineering")

	emails := []*core.Email{
		// Alice dominates replies, so she becomes a manager
		replyTo(alice), replyTo(alice), replyTo(alice),
		// Bob, Carol and Dave only receive non-reply email
		{Subject: "Weekly status", Sender: namedPerson("s", "S", "Sales"), Recipients: []*core.Person{bob, bob, carol, carol, dave}},
	}

	keyPeople := e.ExtractKeyPeople(emails)

	assert.Equal(t, []string{"Alice"}, keyPeople[RoleManagers])
	// Top received are Alice (3), Bob (2), Carol (2); Alice is filtered out
	assert.Equal(t, []string{"Bob", "Carol"}, keyPeople[RoleApprovers])
	assert.NotContains(t, keyPeople, RoleTeamLeads)
}

func TestExtractKeyPeople_DepartmentRoles(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	emails := []*core.Email{
		{Subject: "s", Sender: namedPerson("rm", "Rita", "Resource Management")},
		{Subject: "s", Sender: namedPerson("po", "Omar", "Operations")},
		{Subject: "s", Sender: namedPerson("rm", "Rita", "Resource Management")},
	}

	keyPeople := e.ExtractKeyPeople(emails)
	assert.Equal(t, []string{"Rita"}, keyPeople[RoleResourceManagers])
	assert.Equal(t, []string{"Omar"}, keyPeople[RoleProcessOwners])
}

func TestExtractKeyPeople_EmptyRolesOmitted(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())
	keyPeople := e.ExtractKeyPeople(nil)
	assert.Empty(t, keyPeople)
}

func TestExtractKeyPeople_ReplyMarkerIsCaseSensitive(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())
	alice := namedPerson("a", "Alice", "Engineering")

	emails := []*core.Email{
		{Subject: "RE: shouting", Sender: namedPerson("s", "S", "Sales"), Recipients: []*core.Person{alice}},
	}
	keyPeople := e.ExtractKeyPeople(emails)
	assert.NotContains(t, keyPeople, RoleManagers)
}

func TestExtractKeyProjects_PrefixCapturesSingleToken(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	emails := []*core.Email{
		{Subject: "Project Phoenix kickoff", NormalizedBody: "agenda attached"},
	}
	projects := e.ExtractKeyProjects(emails)
	assert.Equal(t, []string{"Phoenix"}, projects)
}

func TestExtractKeyProjects_ColonWithoutSpace(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	emails := []*core.Email{
		{Subject: "Project:Phoenix budget review", NormalizedBody: "see numbers"},
	}
	projects := e.ExtractKeyProjects(emails)
	assert.Equal(t, []string{"Phoenix"}, projects)
}

func TestExtractKeyProjects_RankedByWeight(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	emails := []*core.Email{
		{Subject: "Project Alpha status", NormalizedBody: "notes"},
		{Subject: "standup notes", NormalizedBody: "we discussed project Beta today"},
		{Subject: "[Gamma] release", NormalizedBody: "project Beta again"},
	}
	projects := e.ExtractKeyProjects(emails)

	// All three end at weight 2 (Alpha subject, Beta body 1+1, Gamma
	// subject), so first-seen order breaks the tie
	require.Len(t, projects, 3)
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma"}, projects)
}

func TestExtractKeyProjects_LengthBounds(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	emails := []*core.Email{
		{Subject: "Project Ab kickoff"},
		{Subject: "Project Abcdefghijklmnopqrstuvwxyzabcdefgh review"},
	}
	projects := e.ExtractKeyProjects(emails)
	assert.Empty(t, projects)
}

func TestExtractKeyProjects_CapsAtFive(t *testing.T) {
	e := NewEntityExtractor(zap.NewNop())

	var emails []*core.Email
	for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta", "Epsilon", "Zeta"} {
		emails = append(emails, &core.Email{Subject: "Project " + name})
	}
	projects := e.ExtractKeyProjects(emails)
	assert.Len(t, projects, 5)
}
