package dataset

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

// UnknownDepartment is the sentinel department for people the company
// directory cannot place.
const UnknownDepartment = "Unknown"

var titleCaser = cases.Title(language.English)

// personResolver maps raw sender/recipient references (directory ids or
// email addresses) to canonical Person records.
type personResolver struct {
	byID    map[string]*core.DirectoryPerson
	byEmail map[string]*core.DirectoryPerson
	byName  map[string]*core.DirectoryPerson
}

func newPersonResolver(dir *core.CompanyDirectory) *personResolver {
	r := &personResolver{
		byID:    make(map[string]*core.DirectoryPerson),
		byEmail: make(map[string]*core.DirectoryPerson),
		byName:  make(map[string]*core.DirectoryPerson),
	}
	if dir == nil {
		return r
	}
	for i := range dir.Persons {
		p := &dir.Persons[i]
		if p.ID != "" {
			r.byID[p.ID] = p
		}
		if p.Email != "" {
			r.byEmail[strings.ToLower(p.Email)] = p
		}
		if p.Name != "" {
			r.byName[strings.ToLower(p.Name)] = p
		}
	}
	return r
}

// Resolve maps a reference to a Person. Resolution order: directory id,
// directory email address, local part matched against a directory name,
// then a synthesized minimal Person.
func (r *personResolver) Resolve(ref string) *core.Person {
	if ref == "" {
		return &core.Person{Name: "Unknown", Department: UnknownDepartment, Role: "Employee"}
	}
	if p, ok := r.byID[ref]; ok {
		return directoryPerson(p)
	}
	lower := strings.ToLower(ref)
	if p, ok := r.byEmail[lower]; ok {
		return directoryPerson(p)
	}
	local, _ := splitAddress(ref)
	if p, ok := r.byName[strings.ToLower(humanizeLocalPart(local))]; ok {
		return directoryPerson(p)
	}
	return synthesizePerson(ref)
}

func directoryPerson(p *core.DirectoryPerson) *core.Person {
	dept := p.Department
	if dept == "" {
		dept = UnknownDepartment
	}
	role := p.Title
	if role == "" {
		role = "Employee"
	}
	id := p.ID
	if id == "" {
		id = p.Email
	}
	return &core.Person{ID: id, Name: p.Name, Department: dept, Role: role}
}

// synthesizePerson builds a minimal Person from an unresolvable reference:
// the name comes from the address local part, the department is Unknown and
// the role names the sending domain ("Employee at Acme").
func synthesizePerson(ref string) *core.Person {
	local, domain := splitAddress(ref)
	role := "Employee"
	if domain != "" {
		role = "Employee at " + companyFromDomain(domain)
	}
	return &core.Person{
		ID:         ref,
		Name:       humanizeLocalPart(local),
		Department: UnknownDepartment,
		Role:       role,
	}
}

func splitAddress(ref string) (local, domain string) {
	if at := strings.IndexByte(ref, '@'); at >= 0 {
		return ref[:at], ref[at+1:]
	}
	return ref, ""
}

// humanizeLocalPart turns "jane.doe" into "Jane Doe"
func humanizeLocalPart(local string) string {
	name := strings.NewReplacer(".", " ", "_", " ", "-", " ").Replace(local)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Unknown"
	}
	return titleCaser.String(name)
}

// companyFromDomain turns "acme.com" into "Acme"
func companyFromDomain(domain string) string {
	label := domain
	if dot := strings.IndexByte(domain, '.'); dot > 0 {
		label = domain[:dot]
	}
	return titleCaser.String(label)
}
