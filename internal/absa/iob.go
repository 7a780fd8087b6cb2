package absa

import "strings"

// IOB tags used in the tagged dataset format.
const (
	TagOutside = "O"
	TagBegin   = "B-ASP"
	TagInside  = "I-ASP"
)

// LabeledSentence is one whitespace-tokenized sentence with parallel IOB
// tags and numeric sentiment labels. The three slices always have identical
// length; tokens outside any aspect span carry tag "O" and label "0".
type LabeledSentence struct {
	Tokens []string
	Tags   []string
	Labels []string
}

// BuildLabeled aligns each aspect match to a contiguous run of whitespace
// tokens and writes B-ASP/I-ASP tags plus the window-voted sentiment label
// over that run. Alignment looks for the first run whose space-joined,
// lowercased form equals the aspect surface; an aspect that does not line up
// with any run (punctuation glued to a token, for example) is skipped
// without error and its tokens stay Outside.
func BuildLabeled(text string, matches []AspectMatch, window int) LabeledSentence {
	tokens := strings.Fields(text)
	tags := make([]string, len(tokens))
	labels := make([]string, len(tokens))
	for i := range tokens {
		tags[i] = TagOutside
		labels[i] = Neutral.Label()
	}

	for _, m := range matches {
		parts := strings.Fields(m.Text)
		if len(parts) == 0 {
			continue
		}
		run := findTokenRun(tokens, parts)
		if run < 0 {
			continue
		}
		label := ClassifySentiment(text, m.Start, m.End, window).Label()
		tags[run] = TagBegin
		labels[run] = label
		for j := run + 1; j < run+len(parts); j++ {
			tags[j] = TagInside
			labels[j] = label
		}
	}

	return LabeledSentence{Tokens: tokens, Tags: tags, Labels: labels}
}

// findTokenRun returns the index of the first contiguous run of tokens whose
// space-joined, lowercased form equals the space-joined parts, or -1 when no
// run matches. Duplicate surfaces in one sentence all resolve to the first
// run.
func findTokenRun(tokens, parts []string) int {
	want := strings.ToLower(strings.Join(parts, " "))
	for i := 0; i+len(parts) <= len(tokens); i++ {
		if strings.ToLower(strings.Join(tokens[i:i+len(parts)], " ")) == want {
			return i
		}
	}
	return -1
}
