package leads

import (
	"regexp"
	"strings"
)

// ---------- package-level compiled regexes ----------

var (
	emailRE = regexp.MustCompile(`(?i)[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}`)
	phoneRE = regexp.MustCompile(`(?:\+1[\s.-]?)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}`)

	// Name heuristics, tried in order. First: "my name is <name>". Second: a
	// line starting with the word "name" followed by the name itself.
	nameStatementRE = regexp.MustCompile(`(?i)my name is\s+([A-Za-z][A-Za-z \-']{1,40})`)
	nameLineRE      = regexp.MustCompile(`(?im)^\s*name\s+([A-Za-z][A-Za-z \-']{1,40})`)
)

// Extraction holds whatever contact fields were found in one utterance.
// Empty string means absent; absence is a normal outcome, not an error.
type Extraction struct {
	Email string
	Phone string
	Name  string
}

// Found reports whether the extraction produced any contact field worth
// forwarding (email or phone; a bare name is not deliverable on its own).
func (e Extraction) Found() bool {
	return e.Email != "" || e.Phone != ""
}

// Extract scans a raw utterance for an email address, a North-American
// phone number, and a stated name. First match wins for each field; under-
// capture is acceptable. Pure and deterministic, no side effects. Callers
// are expected to have length-capped the input already.
func Extract(text string) Extraction {
	var ext Extraction
	ext.Email = emailRE.FindString(text)
	ext.Phone = phoneRE.FindString(text)

	if m := nameStatementRE.FindStringSubmatch(text); m != nil {
		ext.Name = strings.TrimSpace(m[1])
	} else if m := nameLineRE.FindStringSubmatch(text); m != nil {
		ext.Name = strings.TrimSpace(m[1])
	}
	return ext
}
