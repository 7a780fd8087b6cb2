// Package corpus turns collected records into a clean, deduplicated document
// set ready for topic discovery and dataset construction.
package corpus

import (
	"regexp"
	"strings"
)

// Hyphens and periods survive cleaning so terms like "zero-day" and version
// strings stay intact.
var (
	nonWordRe    = regexp.MustCompile(`[^\w\s\-.]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
}

// cyberTerms is the fixed catalog of cybersecurity terms tagged per document
var cyberTerms = []string{
	"firewall", "intrusion detection", "patch", "vulnerability", "breach",
	"ransomware", "phishing", "malware", "encryption", "authentication",
	"incident response", "security controls", "threat intelligence",
}

// CleanText lowercases, replaces characters outside word/space/hyphen/period
// with spaces, collapses whitespace and drops the basic stop words.
func CleanText(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = strings.ToLower(text)
	text = nonWordRe.ReplaceAllString(text, " ")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))

	words := strings.Fields(text)
	kept := words[:0]
	for _, word := range words {
		if _, stop := stopWords[word]; !stop {
			kept = append(kept, word)
		}
	}
	return strings.Join(kept, " ")
}

// CyberTerms lists the catalog terms present in cleaned text, in catalog
// order. Presence is substring containment, so multi-word terms match across
// token boundaries.
func CyberTerms(clean string) []string {
	var found []string
	for _, term := range cyberTerms {
		if strings.Contains(clean, term) {
			found = append(found, term)
		}
	}
	return found
}
