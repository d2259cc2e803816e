package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orgflow/constraint-analyzer/internal/core"
)

// topicDriftThreshold is the word-overlap ratio below which two consecutive
// emails are considered to have drifted in topic.
const topicDriftThreshold = 0.3

var replyMarkerRe = regexp.MustCompile(`(?i)^(?:(?:re|fwd|fw):\s*)+`)

// timestampLayouts are tried in order before the flexible fallback
var timestampLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
}

// fallbackLayouts is the best-effort tail of timestamp parsing
var fallbackLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
}

// ParseTimestamp parses an email timestamp, trying the known layouts in
// order. The boolean reports whether any layout matched; a failed parse is
// non-fatal and only excludes the email from timing metrics.
func ParseTimestamp(ts string) (time.Time, bool) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, ts); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ThreadAnalyzer reconstructs conversations and computes their temporal and
// behavioral metrics.
type ThreadAnalyzer struct {
	logger *zap.Logger
}

// NewThreadAnalyzer creates a new thread analyzer
func NewThreadAnalyzer(logger *zap.Logger) *ThreadAnalyzer {
	return &ThreadAnalyzer{logger: logger}
}

// Reconstruct groups emails into ordered threads and computes per-thread
// metrics. When explicit thread records exist, grouping follows the emails'
// thread_id field; otherwise threads are inferred from canonical subjects.
// Threads with a single email are excluded from the returned map but count
// toward the returned total, as do explicit records no email references.
func (a *ThreadAnalyzer) Reconstruct(emails []*core.Email, explicit []core.ThreadRecord) (map[string]*core.Thread, int) {
	var order []string
	groups := make(map[string][]*core.Email)

	if len(explicit) > 0 {
		for _, rec := range explicit {
			if rec.ID == "" {
				continue
			}
			if _, ok := groups[rec.ID]; !ok {
				order = append(order, rec.ID)
				groups[rec.ID] = nil
			}
		}
		for _, email := range emails {
			key := email.ThreadID
			if key == "" {
				key = email.ID
			}
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], email)
		}
	} else {
		subjectThreads := make(map[string]string)
		nextID := 1
		for _, email := range emails {
			canonical := CanonicalSubject(email.Subject)
			key, ok := subjectThreads[canonical]
			if !ok {
				key = fmt.Sprintf("thread_%d", nextID)
				nextID++
				subjectThreads[canonical] = key
				order = append(order, key)
			}
			groups[key] = append(groups[key], email)
		}
	}

	threads := make(map[string]*core.Thread)
	for _, key := range order {
		group := groups[key]
		sortByTimestamp(group)
		if len(group) < 2 {
			continue
		}
		threads[key] = a.buildThread(key, group)
	}

	a.logger.Debug("Reconstructed threads",
		zap.Int("total", len(order)),
		zap.Int("multi_email", len(threads)))

	return threads, len(order)
}

// CanonicalSubject strips leading reply and forward markers from a subject
func CanonicalSubject(subject string) string {
	return strings.TrimSpace(replyMarkerRe.ReplaceAllString(subject, ""))
}

// sortByTimestamp orders emails by parsed timestamp ascending. Emails whose
// timestamps fail to parse carry the last parsed time forward as their sort
// key, so they keep their relative position instead of being reordered to
// the end or dropped. The sort is stable, so ties preserve input order.
func sortByTimestamp(emails []*core.Email) {
	keys := make([]time.Time, len(emails))
	var last time.Time
	for i, email := range emails {
		if t, ok := ParseTimestamp(email.Timestamp); ok {
			last = t
		}
		keys[i] = last
	}
	indexed := make([]int, len(emails))
	for i := range indexed {
		indexed[i] = i
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		return keys[indexed[i]].Before(keys[indexed[j]])
	})
	sorted := make([]*core.Email, len(emails))
	for i, idx := range indexed {
		sorted[i] = emails[idx]
	}
	copy(emails, sorted)
}

func (a *ThreadAnalyzer) buildThread(id string, emails []*core.Email) *core.Thread {
	thread := &core.Thread{ID: id, Emails: emails}

	seen := make(map[string]bool)
	addParticipant := func(p *core.Person) {
		if p == nil || p.ID == "" || seen[p.ID] {
			return
		}
		seen[p.ID] = true
		thread.Participants = append(thread.Participants, p.ID)
	}
	for _, email := range emails {
		addParticipant(email.Sender)
		for _, r := range email.Recipients {
			addParticipant(r)
		}
	}

	metrics := core.ThreadMetrics{
		ThreadLength: len(emails),
		Participants: thread.Participants,
	}

	prevTime, prevParsed := ParseTimestamp(emails[0].Timestamp)
	for i := 1; i < len(emails); i++ {
		currTime, currParsed := ParseTimestamp(emails[i].Timestamp)
		if prevParsed && currParsed {
			metrics.ResponseTimes = append(metrics.ResponseTimes,
				currTime.Sub(prevTime).Seconds()/3600.0)
		} else if !currParsed {
			a.logger.Debug("Unparsable timestamp, excluded from timing metrics",
				zap.String("thread", id),
				zap.String("timestamp", emails[i].Timestamp))
		}
		prevTime, prevParsed = currTime, currParsed

		if senderID(emails[i]) != senderID(emails[i-1]) {
			metrics.SenderChanges++
		}
		if wordOverlapBelow(emails[i-1].NormalizedBody, emails[i].NormalizedBody, topicDriftThreshold) {
			metrics.TopicDrift++
		}
	}

	if len(metrics.ResponseTimes) > 0 {
		var total float64
		for _, rt := range metrics.ResponseTimes {
			total += rt
		}
		metrics.AvgResponseTime = total / float64(len(metrics.ResponseTimes))
	}

	thread.Metrics = metrics
	return thread
}

func senderID(email *core.Email) string {
	if email.Sender == nil {
		return ""
	}
	return email.Sender.ID
}

// wordOverlapBelow reports whether the Jaccard ratio of the two texts'
// lowercase word sets is below the threshold. An empty union never counts
// as drift.
func wordOverlapBelow(prev, curr string, threshold float64) bool {
	prevWords := wordSet(prev)
	currWords := wordSet(curr)

	union := len(prevWords)
	overlap := 0
	for w := range currWords {
		if prevWords[w] {
			overlap++
		} else {
			union++
		}
	}
	if union == 0 {
		return false
	}
	return float64(overlap)/float64(union) < threshold
}

func wordSet(text string) map[string]bool {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
