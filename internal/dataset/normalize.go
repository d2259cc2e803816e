package dataset

import (
	"regexp"
	"strings"
)

var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	signatureRe = regexp.MustCompile(`(?m)^[ \t]*--[ \t]*$`)
	newlinesRe  = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText cleans email text for analysis: HTML-like tag spans are
// removed, everything from a signature delimiter line ("--", possibly
// indented) onward is cut, runs of three or more newlines collapse to two,
// and outer whitespace is trimmed. Tag removal happens before the signature
// cut and newline collapse, and the delimiter match tolerates surrounding
// blanks the final trim would remove, so the function is idempotent.
func NormalizeText(text string) string {
	text = tagRe.ReplaceAllString(text, "")
	if loc := signatureRe.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	text = newlinesRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
