package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

// LoadError is returned when a dataset cannot be parsed or yields no emails.
// It is the only fatal condition in the pipeline.
type LoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to load dataset %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to load dataset %s: %s", e.Path, e.Reason)
}

func (e *LoadError) Unwrap() error { return e.Err }

// rawEmail is the on-disk email shape before canonical conversion
type rawEmail struct {
	ID        string                 `json:"id"`
	ThreadID  string                 `json:"thread_id"`
	Subject   string                 `json:"subject"`
	Body      string                 `json:"body"`
	From      string                 `json:"from"`
	To        []string               `json:"to"`
	CC        []string               `json:"cc"`
	Timestamp string                 `json:"timestamp"`
	Metadata  map[string]interface{} `json:"metadata"`
}

// flexibleName accepts either "Engineering" or {"name": "Engineering"}
type flexibleName struct {
	value string
}

func (f *flexibleName) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.value = s
		return nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	f.value = obj.Name
	return nil
}

// rawCompany tolerates the directory variants seen across dataset revisions
type rawCompany struct {
	Name        string                 `json:"name"`
	Departments []flexibleName         `json:"departments"`
	Persons     []core.DirectoryPerson `json:"persons"`
}

func (c *rawCompany) toDirectory() *core.CompanyDirectory {
	dir := &core.CompanyDirectory{Name: c.Name, Persons: c.Persons}
	for _, d := range c.Departments {
		if d.value != "" {
			dir.Departments = append(dir.Departments, d.value)
		}
	}
	return dir
}

func (c *rawCompany) empty() bool {
	return c == nil || (c.Name == "" && len(c.Persons) == 0 && len(c.Departments) == 0)
}

type payload struct {
	Emails  []rawEmail          `json:"emails"`
	Threads []core.ThreadRecord `json:"threads"`
	Company *rawCompany         `json:"company"`
}

// Loader parses email datasets into canonical in-memory form
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new dataset loader
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads and normalizes a dataset from a file or directory path.
// Three JSON shapes are accepted: an object with a "raw" wrapper, a flat
// object with top-level emails/threads/company, and a bare email list.
// Directory paths resolve to an emails.json inside them. A sibling
// metadata.json supplies the company directory when the dataset carries none.
func (l *Loader) Load(path string) (*core.Dataset, error) {
	resolved := path
	info, err := os.Stat(path)
	if err != nil {
		return nil, &LoadError{Path: path, Reason: "dataset not readable", Err: err}
	}
	if info.IsDir() {
		resolved = filepath.Join(path, "emails.json")
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &LoadError{Path: resolved, Reason: "dataset not readable", Err: err}
	}

	rawEmails, threads, company, bare, err := l.parse(resolved, data)
	if err != nil {
		return nil, err
	}

	if company.empty() {
		company = l.siblingDirectory(resolved)
	}

	var directory *core.CompanyDirectory
	if company.empty() {
		l.logger.Warn("No company directory found, synthesizing all persons",
			zap.String("dataset", resolved))
	} else {
		directory = company.toDirectory()
	}

	if len(rawEmails) == 0 {
		return nil, &LoadError{Path: resolved, Reason: "dataset contains zero emails"}
	}

	resolver := newPersonResolver(directory)
	emails := make([]*core.Email, 0, len(rawEmails))
	for _, re := range rawEmails {
		email := &core.Email{
			ID:             re.ID,
			ThreadID:       re.ThreadID,
			Subject:        re.Subject,
			Body:           re.Body,
			NormalizedBody: NormalizeText(re.Body),
			Sender:         resolver.Resolve(re.From),
			Timestamp:      re.Timestamp,
			Metadata:       re.Metadata,
		}
		for _, ref := range re.To {
			email.Recipients = append(email.Recipients, resolver.Resolve(ref))
		}
		for _, ref := range re.CC {
			email.Recipients = append(email.Recipients, resolver.Resolve(ref))
		}
		emails = append(emails, email)
	}

	if bare {
		threads = synthesizeThreads(emails)
	}

	l.logger.Info("Loaded dataset",
		zap.String("dataset", resolved),
		zap.Int("emails", len(emails)),
		zap.Int("threads", len(threads)))

	return &core.Dataset{
		Name:            filepath.Base(strings.TrimRight(path, "/")),
		Path:            resolved,
		Emails:          emails,
		ExplicitThreads: threads,
		Company:         directory,
	}, nil
}

// parse tries the accepted dataset shapes in order: raw wrapper, flat
// object, bare email list.
func (l *Loader) parse(path string, data []byte) ([]rawEmail, []core.ThreadRecord, *rawCompany, bool, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var emails []rawEmail
		if err := json.Unmarshal(trimmed, &emails); err != nil {
			return nil, nil, nil, false, &LoadError{Path: path, Reason: "malformed JSON", Err: err}
		}
		return emails, nil, nil, true, nil
	}

	var doc struct {
		Raw *payload `json:"raw"`
		payload
	}
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, nil, nil, false, &LoadError{Path: path, Reason: "malformed JSON", Err: err}
	}
	if doc.Raw != nil {
		return doc.Raw.Emails, doc.Raw.Threads, doc.Raw.Company, false, nil
	}
	return doc.Emails, doc.Threads, doc.Company, false, nil
}

// siblingDirectory looks for a metadata.json next to the dataset file. A
// "company" key inside it wins; otherwise the whole file is treated as the
// directory.
func (l *Loader) siblingDirectory(resolved string) *rawCompany {
	metaPath := filepath.Join(filepath.Dir(resolved), "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil
	}

	var keyed struct {
		Company *rawCompany `json:"company"`
	}
	if err := json.Unmarshal(data, &keyed); err == nil && !keyed.Company.empty() {
		l.logger.Info("Using company directory from metadata.json",
			zap.String("path", metaPath))
		return keyed.Company
	}

	var whole rawCompany
	if err := json.Unmarshal(data, &whole); err != nil || whole.empty() {
		return nil
	}
	l.logger.Info("Using metadata.json as company directory",
		zap.String("path", metaPath))
	return &whole
}

// synthesizeThreads builds thread records for a bare email list, grouping
// by thread_id when present and by the email's own id otherwise.
// Participants are collected in first-seen order.
func synthesizeThreads(emails []*core.Email) []core.ThreadRecord {
	var order []string
	groups := make(map[string]*core.ThreadRecord)

	for _, email := range emails {
		key := email.ThreadID
		if key == "" {
			key = email.ID
			email.ThreadID = key
		}
		rec, ok := groups[key]
		if !ok {
			rec = &core.ThreadRecord{ID: key}
			groups[key] = rec
			order = append(order, key)
		}
		seen := make(map[string]bool, len(rec.Participants))
		for _, p := range rec.Participants {
			seen[p] = true
		}
		if email.Sender != nil && email.Sender.ID != "" && !seen[email.Sender.ID] {
			rec.Participants = append(rec.Participants, email.Sender.ID)
			seen[email.Sender.ID] = true
		}
		for _, r := range email.Recipients {
			if r.ID != "" && !seen[r.ID] {
				rec.Participants = append(rec.Participants, r.ID)
				seen[r.ID] = true
			}
		}
	}

	records := make([]core.ThreadRecord, 0, len(order))
	for _, key := range order {
		records = append(records, *groups[key])
	}
	return records
}
