package absa

import "strings"

// DefaultWindow is the number of context tokens inspected on each side of an
// aspect span when voting on its sentiment.
const DefaultWindow = 20

// positiveKeywords and negativeKeywords drive the context-window vote.
// Matching is substring containment over the lowercased window, so each
// keyword contributes at most one vote no matter how often it occurs, and
// inflected forms count ("successfully" contains "successful").
var positiveKeywords = []string{
	"effective", "robust", "secure", "protected", "safe", "strong",
	"reliable", "successful", "improved", "enhanced", "fixed", "resolved",
	"prevented", "blocked", "detected", "mitigated", "restored",
}

var negativeKeywords = []string{
	"vulnerable", "compromised", "breached", "attacked", "failed",
	"weak", "exploited", "infected", "corrupted", "lost", "stolen",
	"unauthorized", "malicious", "dangerous", "risky", "insecure",
	"disrupted", "down", "unavailable", "crashed", "hacked", "encrypted",
	"inaccessible", "standstill", "disaster", "failure", "sabotaged",
}

// ClassifySentiment votes on the polarity of the aspect spanning bytes
// [start, end) of text. It counts keyword hits in a window of the given
// number of tokens on each side of the span: more positive hits win
// Positive, more negative win Negative, a tie (including zero hits) is
// Neutral. Pure function of its inputs and the fixed keyword lists.
func ClassifySentiment(text string, start, end, window int) Sentiment {
	tokens := strings.Fields(text)
	if len(tokens) == 0 {
		return Neutral
	}

	// Clamp offsets to the text bounds.
	if start < 0 {
		start = 0
	}
	if start > len(text) {
		start = len(text)
	}
	if end < start {
		end = start
	}
	if end > len(text) {
		end = len(text)
	}

	// Token index of the span: tokens before it plus tokens inside it.
	startTok := len(strings.Fields(text[:start]))
	endTok := startTok + len(strings.Fields(text[start:end]))

	lo := startTok - window
	if lo < 0 {
		lo = 0
	}
	hi := endTok + window
	if hi > len(tokens) {
		hi = len(tokens)
	}
	if lo > hi {
		lo = hi
	}
	context := strings.ToLower(strings.Join(tokens[lo:hi], " "))

	var pos, neg int
	for _, w := range positiveKeywords {
		if strings.Contains(context, w) {
			pos++
		}
	}
	for _, w := range negativeKeywords {
		if strings.Contains(context, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return Positive
	case neg > pos:
		return Negative
	default:
		return Neutral
	}
}
