package corpus

import "github.com/ppiankov/cyberabsa/internal/model"

// MergeStats reports what merging did to the combined document set
type MergeStats struct {
	Total             int
	DuplicatesRemoved int
	PerSource         map[string]int
	MeanTextLength    float64
	MeanTermsPerDoc   float64
}

// Merge concatenates per-source document sets in order and drops documents
// whose cleaned text already appeared. The first occurrence wins and input
// order is preserved.
func Merge(sets ...[]model.Document) ([]model.Document, MergeStats) {
	stats := MergeStats{PerSource: make(map[string]int)}

	var merged []model.Document
	seen := make(map[string]struct{})
	totalLength := 0
	totalTerms := 0

	for _, set := range sets {
		for _, doc := range set {
			if _, dup := seen[doc.CleanText]; dup {
				stats.DuplicatesRemoved++
				continue
			}
			seen[doc.CleanText] = struct{}{}

			merged = append(merged, doc)
			stats.PerSource[doc.Source]++
			totalLength += len(doc.CleanText)
			totalTerms += doc.TermCount
		}
	}

	stats.Total = len(merged)
	if stats.Total > 0 {
		stats.MeanTextLength = float64(totalLength) / float64(stats.Total)
		stats.MeanTermsPerDoc = float64(totalTerms) / float64(stats.Total)
	}

	return merged, stats
}
