// Package absa implements the deterministic labeling core of the pipeline:
// aspect term matching, context-window sentiment voting, and IOB tag
// sequence construction for the tagged dataset format.
package absa

import (
	"fmt"
	"strconv"
)

// Sentiment is the polarity assigned to an aspect term.
type Sentiment int

const (
	Negative Sentiment = -1
	Neutral  Sentiment = 0
	Positive Sentiment = 1
)

// String returns the human-readable polarity name.
func (s Sentiment) String() string {
	switch s {
	case Negative:
		return "Negative"
	case Neutral:
		return "Neutral"
	case Positive:
		return "Positive"
	}
	return fmt.Sprintf("Sentiment(%d)", int(s))
}

// Label returns the numeric label used in the tagged dataset format:
// "-1", "0", or "1".
func (s Sentiment) Label() string {
	return strconv.Itoa(int(s))
}

// NameForLabel maps a numeric sentiment label to its human-readable name.
// Unknown labels are returned unchanged so callers can surface whatever a
// model actually emitted.
func NameForLabel(label string) string {
	switch label {
	case "-1":
		return "Negative"
	case "0":
		return "Neutral"
	case "1":
		return "Positive"
	}
	return label
}
