// Package model defines the data structures shared across the pipeline.
package model

import "time"

// SourceTier ranks how authoritative a document source is.
type SourceTier int

const (
	TierUnknown    SourceTier = 0
	TierGovernment SourceTier = 1 // official advisories (CISA and similar)
	TierResearch   SourceTier = 2 // think tanks, research organizations
	TierMedia      SourceTier = 3 // press and everything else
)

// String returns the tier name.
func (t SourceTier) String() string {
	switch t {
	case TierGovernment:
		return "government"
	case TierResearch:
		return "research"
	case TierMedia:
		return "media"
	}
	return "unknown"
}

// RawRecord is one collected document before preprocessing. Failed fetches
// and extractions are recorded too, with ExtractionSuccess false and the
// error preserved, so collection statistics stay honest.
type RawRecord struct {
	Source            string     `json:"source"`
	URL               string     `json:"url,omitempty"`
	Title             string     `json:"title"`
	Text              string     `json:"content_text"`
	Author            string     `json:"author,omitempty"`
	Published         string     `json:"date,omitempty"`
	Description       string     `json:"description,omitempty"`
	SiteName          string     `json:"sitename,omitempty"`
	Tier              SourceTier `json:"tier"`
	CollectedAt       time.Time  `json:"date_collected"`
	ExtractionSuccess bool       `json:"extraction_success"`
	Error             string     `json:"error,omitempty"`
}

// Document is one preprocessed corpus entry ready for topic modeling and
// dataset construction. TopicID is -1 until topic discovery assigns one;
// BERTopic-style outliers keep -1.
type Document struct {
	Source    string     `json:"source"`
	URL       string     `json:"url,omitempty"`
	Title     string     `json:"title,omitempty"`
	CleanText string     `json:"clean_text"`
	Terms     []string   `json:"terms,omitempty"`
	TermCount int        `json:"term_count"`
	Tier      SourceTier `json:"tier"`
	TopicID   int        `json:"bertopic_id"`
	TopicProb float64    `json:"bertopic_probability"`
}
