package corpus

import (
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// minCleanLength is the cleaned-text length a record must exceed to survive
// preprocessing
const minCleanLength = 50

// recordText picks the text field to preprocess: the extracted article body
// when present, the source-provided description otherwise.
func recordText(r model.RawRecord) string {
	if strings.TrimSpace(r.Text) != "" {
		return r.Text
	}
	return r.Description
}

// Preprocess converts raw records from one source into corpus documents.
// Records whose cleaned text is too short are dropped and counted; failed
// fetches fall out the same way since they carry no text. Documents start
// with TopicID -1 (unassigned).
func Preprocess(records []model.RawRecord, source string) ([]model.Document, int) {
	docs := make([]model.Document, 0, len(records))
	dropped := 0

	for _, r := range records {
		clean := CleanText(recordText(r))
		if len(clean) <= minCleanLength {
			dropped++
			continue
		}

		recSource := r.Source
		if recSource == "" {
			recSource = source
		}

		terms := CyberTerms(clean)
		docs = append(docs, model.Document{
			Source:    recSource,
			URL:       r.URL,
			Title:     r.Title,
			CleanText: clean,
			Terms:     terms,
			TermCount: len(terms),
			Tier:      r.Tier,
			TopicID:   -1,
		})
	}

	return docs, dropped
}
