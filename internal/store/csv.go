package store

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// documentCSVHeader mirrors the document JSON field names so exports line up
// with the JSONL backend
var documentCSVHeader = []string{
	"source", "url", "title", "clean_text", "terms", "term_count",
	"tier", "bertopic_id", "bertopic_probability",
}

// ExportDocumentsCSV writes the document set as CSV for use outside the
// pipeline. Terms are joined with "; ".
func ExportDocumentsCSV(path string, docs []model.Document) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(documentCSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, doc := range docs {
		row := []string{
			doc.Source,
			doc.URL,
			doc.Title,
			doc.CleanText,
			strings.Join(doc.Terms, "; "),
			strconv.Itoa(doc.TermCount),
			doc.Tier.String(),
			strconv.Itoa(doc.TopicID),
			strconv.FormatFloat(doc.TopicProb, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}
