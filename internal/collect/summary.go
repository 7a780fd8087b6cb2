package collect

import (
	"fmt"
	"io"

	"github.com/ppiankov/cyberabsa/internal/model"
)

// Summary aggregates collection outcomes for one source.
type Summary struct {
	Source    string `json:"source"`
	Total     int    `json:"total"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
}

// SuccessRate returns the percentage of successfully extracted records.
func (s Summary) SuccessRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeded) / float64(s.Total) * 100
}

// Summarize counts successes and failures in one source's records.
func Summarize(source string, records []model.RawRecord) Summary {
	summary := Summary{Source: source, Total: len(records)}
	for _, record := range records {
		if record.ExtractionSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}
	return summary
}

// PrintSummary writes the per-source console summary: success rate, up
// to three sample titles and the full failure list.
func PrintSummary(w io.Writer, summary Summary, records []model.RawRecord) {
	fmt.Fprintf(w, "%s: %d/%d reports successfully collected (%.1f%% success rate)\n",
		summary.Source, summary.Succeeded, summary.Total, summary.SuccessRate())

	shown := 0
	for _, record := range records {
		if !record.ExtractionSuccess {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(w, "\nSample of collected reports:\n")
		}
		fmt.Fprintf(w, "  - Title: %s...\n", truncate(record.Title, 60))
		fmt.Fprintf(w, "    Author: %s\n", orNA(record.Author))
		fmt.Fprintf(w, "    Date: %s\n", orNA(record.Published))
		fmt.Fprintf(w, "    Text length: %d characters\n\n", len(record.Text))
		shown++
		if shown == 3 {
			break
		}
	}

	if summary.Failed > 0 {
		fmt.Fprintf(w, "\nFailed extractions: %d\n", summary.Failed)
		for _, record := range records {
			if record.ExtractionSuccess {
				continue
			}
			fmt.Fprintf(w, "  - %s: %s\n", record.URL, orUnknown(record.Error))
		}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown error"
	}
	return s
}
