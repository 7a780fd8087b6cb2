package absa

import (
	"regexp"
	"sort"
	"strings"
)

// AspectMatch is one aspect term occurrence: the lowercased surface form and
// its byte offsets in the source text.
type AspectMatch struct {
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// aspectPatterns is the fixed catalog of cybersecurity term patterns.
// Candidates are collected in catalog order; the stable sort in FindAspects
// keeps that order for identical start offsets.
var aspectPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(vulnerability|vulnerabilities)\b`),
	regexp.MustCompile(`(?i)\b(exploit|exploits|exploiting)\b`),
	regexp.MustCompile(`(?i)\b(malware|viruses|trojans|ransomware|spyware)\b`),
	regexp.MustCompile(`(?i)\b(phishing|phish)\b`),
	regexp.MustCompile(`(?i)\b(data breach|data leak|information leak)\b`),
	regexp.MustCompile(`(?i)\b(Ddos|DDoS|denial of service)\b`),
	regexp.MustCompile(`(?i)\b(firewall|firewalls)\b`),
	regexp.MustCompile(`(?i)\b(antivirus|anti-virus)\b`),
	regexp.MustCompile(`(?i)\b(encryption|encrypt)\b`),
	regexp.MustCompile(`(?i)\b(authentication|authenticating)\b`),
	regexp.MustCompile(`(?i)\b(authorization|authorizing)\b`),
	regexp.MustCompile(`(?i)\b(password|passwords)\b`),
	regexp.MustCompile(`(?i)\b(patch|patches|patching)\b`),
	regexp.MustCompile(`(?i)\b(update|updates|updating)\b`),
	regexp.MustCompile(`(?i)\b(backup|backups)\b`),
	regexp.MustCompile(`(?i)\b(network|networks)\b`),
	regexp.MustCompile(`(?i)\b(server|servers)\b`),
	regexp.MustCompile(`(?i)\b(database|databases)\b`),
	regexp.MustCompile(`(?i)\b(system|systems)\b`),
	regexp.MustCompile(`(?i)\b(security|secure)\b`),
	regexp.MustCompile(`(?i)\b(threat|threats)\b`),
	regexp.MustCompile(`(?i)\b(attack|attacks|attacking)\b`),
	regexp.MustCompile(`(?i)\b(defense|defenses|defending)\b`),
	regexp.MustCompile(`(?i)\b(protection|protecting)\b`),
	regexp.MustCompile(`(?i)\b(detection|detecting)\b`),
	regexp.MustCompile(`(?i)\b(prevention|preventing)\b`),
	regexp.MustCompile(`(?i)\b(response|responding)\b`),
	regexp.MustCompile(`(?i)\b(recovery|recovering)\b`),
	regexp.MustCompile(`(?i)\b(incident|incidents)\b`),
	regexp.MustCompile(`(?i)\b(breach|breaches)\b`),
	regexp.MustCompile(`(?i)\b(intrusion|intrusions)\b`),
	regexp.MustCompile(`(?i)\b(compromise|compromised)\b`),
	regexp.MustCompile(`(?i)\b(hacker|hackers|hacking)\b`),
	regexp.MustCompile(`(?i)\b(cyberattack|cyberattacks)\b`),
}

// FindAspects scans text for cybersecurity aspect terms and returns them
// sorted by start offset with overlaps resolved greedily left to right: a
// candidate is kept only when it starts at or after the end of the last
// kept one. A multi-word term found earlier therefore shadows the shorter
// terms it contains ("data breach" hides "breach").
func FindAspects(text string) []AspectMatch {
	if text == "" {
		return nil
	}

	var all []AspectMatch
	for _, re := range aspectPatterns {
		for _, m := range re.FindAllStringIndex(text, -1) {
			all = append(all, AspectMatch{
				Text:  strings.ToLower(text[m[0]:m[1]]),
				Start: m[0],
				End:   m[1],
			})
		}
	}
	if len(all) == 0 {
		return nil
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Start < all[j].Start })

	kept := make([]AspectMatch, 0, len(all))
	lastEnd := 0
	for _, m := range all {
		if m.Start >= lastEnd {
			kept = append(kept, m)
			lastEnd = m.End
		}
	}
	return kept
}
