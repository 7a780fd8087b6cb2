package eval

import (
	"fmt"
	"io"

	"github.com/ppiankov/cyberabsa/internal/dataset"
	"github.com/ppiankov/cyberabsa/internal/model"
)

// maxErrorExamples caps how many failing sentences an error report lists
const maxErrorExamples = 5

// ErrorExample pairs one failing record with its source sentence
type ErrorExample struct {
	Index    int
	Sentence string
	Error    string
}

// LengthStats summarizes word counts for one group of sentences
type LengthStats struct {
	Count   int
	Average float64
	Max     int
}

// ErrorReport compares the failing slice of an evaluation run against the
// successful one
type ErrorReport struct {
	TotalErrors int
	Examples    []ErrorExample
	Errors      LengthStats
	Successes   LengthStats
}

// AnalyzeErrors aligns evaluation records with the split's sentences by
// position and summarizes the failing group against the successful one.
// Records without a matching sentence (a truncated or edited split file)
// count as errors but contribute no example or length.
func AnalyzeErrors(records []model.EvalRecord, sentences []dataset.Sentence) ErrorReport {
	report := ErrorReport{}

	var errorLengths, successLengths []int
	for i, r := range records {
		if r.IsError() {
			report.TotalErrors++
			if report.TotalErrors <= maxErrorExamples && i < len(sentences) {
				report.Examples = append(report.Examples, ErrorExample{
					Index:    i,
					Sentence: sentences[i].Text(),
					Error:    r.Error,
				})
			}
		}

		if i >= len(sentences) {
			continue
		}
		words := len(sentences[i].Tokens)
		if r.IsError() {
			errorLengths = append(errorLengths, words)
		} else {
			successLengths = append(successLengths, words)
		}
	}

	report.Errors = summarizeLengths(errorLengths)
	report.Successes = summarizeLengths(successLengths)
	return report
}

func summarizeLengths(lengths []int) LengthStats {
	stats := LengthStats{Count: len(lengths)}
	if len(lengths) == 0 {
		return stats
	}

	total := 0
	for _, n := range lengths {
		total += n
		if n > stats.Max {
			stats.Max = n
		}
	}
	stats.Average = float64(total) / float64(len(lengths))
	return stats
}

// PrintErrorReport writes the error analysis in console form. Length lines
// for an empty group are omitted rather than printed as zero.
func PrintErrorReport(w io.Writer, report ErrorReport) {
	fmt.Fprintf(w, "Found %d examples with errors\n", report.TotalErrors)

	fmt.Fprintf(w, "\nError Examples:\n")
	for i, ex := range report.Examples {
		fmt.Fprintf(w, "\nError %d:\n", i+1)
		fmt.Fprintf(w, "Sentence: %s\n", ex.Sentence)
		fmt.Fprintf(w, "Error: %s\n", ex.Error)
	}

	fmt.Fprintf(w, "\nSentence Length Analysis:\n")
	if report.Errors.Count > 0 {
		fmt.Fprintf(w, "Average length of sentences with errors: %.1f words\n", report.Errors.Average)
	}
	if report.Successes.Count > 0 {
		fmt.Fprintf(w, "Average length of successful sentences: %.1f words\n", report.Successes.Average)
	}
	if report.Errors.Count > 0 {
		fmt.Fprintf(w, "Maximum length of sentences with errors: %d words\n", report.Errors.Max)
	}
	if report.Successes.Count > 0 {
		fmt.Fprintf(w, "Maximum length of successful sentences: %d words\n", report.Successes.Max)
	}
}
