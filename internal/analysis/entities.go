package analysis

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

// Role names used in the KeyPeople mapping
const (
	RoleManagers         = "managers"
	RoleTeamLeads        = "team_leads"
	RoleApprovers        = "approvers"
	RoleResourceManagers = "resource_managers"
	RoleProcessOwners    = "process_owners"
)

const (
	maxKeyProjects       = 5
	minProjectNameLength = 3
	maxProjectNameLength = 30
)

var (
	// projectPrefixRe captures the single token after "Project"/"PROJ".
	// The capture stops at whitespace so "Project Phoenix kickoff" yields
	// "Phoenix" rather than the rest of the subject line. The separator is
	// optional so "Project:Phoenix" also matches.
	projectPrefixRe = regexp.MustCompile(`(?i)\b(?:project|proj):?\s*([A-Za-z][A-Za-z0-9_\-]*)`)

	// projectBracketRe captures bracketed tags, spaces allowed
	projectBracketRe = regexp.MustCompile(`\[([A-Za-z][A-Za-z0-9_\- ]+)\]`)
)

// EntityExtractor ranks people into organizational roles and extracts
// candidate project names, both purely from communication-frequency
// heuristics.
type EntityExtractor struct {
	logger *zap.Logger
}

// NewEntityExtractor creates a new entity extractor
func NewEntityExtractor(logger *zap.Logger) *EntityExtractor {
	return &EntityExtractor{logger: logger}
}

// personCounter accumulates per-person counts in first-seen order
type personCounter struct {
	counts map[string]int
	names  map[string]string
	order  []string
}

func newPersonCounter() *personCounter {
	return &personCounter{
		counts: make(map[string]int),
		names:  make(map[string]string),
	}
}

func (c *personCounter) add(p *core.Person) {
	if p == nil || p.ID == "" {
		return
	}
	if _, ok := c.counts[p.ID]; !ok {
		c.order = append(c.order, p.ID)
		c.names[p.ID] = p.Name
	}
	c.counts[p.ID]++
}

// ranked returns person ids by count descending, ties in first-seen order
func (c *personCounter) ranked() []string {
	ids := make([]string, len(c.order))
	copy(ids, c.order)
	sort.SliceStable(ids, func(i, j int) bool {
		return c.counts[ids[i]] > c.counts[ids[j]]
	})
	return ids
}

// ExtractKeyPeople ranks recipients into organizational roles. Reply volume
// drives the managers and team_leads rankings, total received volume drives
// approvers, and the Resource Management and Operations departments map to
// resource_managers and process_owners. Roles with no members are omitted.
func (e *EntityExtractor) ExtractKeyPeople(emails []*core.Email) core.KeyPeople {
	replies := newPersonCounter()
	received := newPersonCounter()
	deptOrder := []string{}
	deptOf := make(map[string]string)
	nameOf := make(map[string]string)

	for _, email := range emails {
		isReply := strings.Contains(email.Subject, "Re:")
		for _, r := range email.Recipients {
			received.add(r)
			if isReply {
				replies.add(r)
			}
		}
		if s := email.Sender; s != nil && s.ID != "" {
			if _, ok := deptOf[s.ID]; !ok {
				deptOf[s.ID] = s.Department
				nameOf[s.ID] = s.Name
				deptOrder = append(deptOrder, s.ID)
			}
		}
	}

	result := core.KeyPeople{}
	addRole := func(role string, ids []string, names map[string]string) {
		for _, id := range ids {
			result[role] = append(result[role], names[id])
		}
	}

	rankedReplies := replies.ranked()
	managers := make(map[string]bool)
	if len(rankedReplies) > 0 {
		top := rankedReplies
		if len(top) > 3 {
			top = top[:3]
		}
		addRole(RoleManagers, top, replies.names)
		for _, id := range top {
			managers[id] = true
		}
	}
	if len(rankedReplies) > 3 {
		leads := rankedReplies[3:]
		if len(leads) > 3 {
			leads = leads[:3]
		}
		addRole(RoleTeamLeads, leads, replies.names)
	}

	rankedReceived := received.ranked()
	if len(rankedReceived) > 3 {
		rankedReceived = rankedReceived[:3]
	}
	for _, id := range rankedReceived {
		if !managers[id] {
			result[RoleApprovers] = append(result[RoleApprovers], received.names[id])
		}
	}

	for _, id := range deptOrder {
		switch deptOf[id] {
		case "Resource Management":
			result[RoleResourceManagers] = append(result[RoleResourceManagers], nameOf[id])
		case "Operations":
			result[RoleProcessOwners] = append(result[RoleProcessOwners], nameOf[id])
		}
	}

	e.logger.Debug("Extracted key people", zap.Int("roles", len(result)))
	return result
}

// ExtractKeyProjects scans subjects and bodies for project name patterns and
// returns the top candidates by mention weight. Subject mentions weigh 2,
// body mentions 1; ties keep first-seen order.
func (e *EntityExtractor) ExtractKeyProjects(emails []*core.Email) []string {
	weights := make(map[string]float64)
	var order []string

	accumulate := func(text string, weight float64) {
		for _, re := range []*regexp.Regexp{projectPrefixRe, projectBracketRe} {
			for _, m := range re.FindAllStringSubmatch(text, -1) {
				name := strings.TrimSpace(m[1])
				if len(name) < minProjectNameLength || len(name) > maxProjectNameLength {
					continue
				}
				if _, ok := weights[name]; !ok {
					order = append(order, name)
				}
				weights[name] += weight
			}
		}
	}

	for _, email := range emails {
		accumulate(email.Subject, 2)
		accumulate(email.NormalizedBody, 1)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})
	if len(order) > maxKeyProjects {
		order = order[:maxKeyProjects]
	}
	return order
}
