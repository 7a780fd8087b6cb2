// Package eval runs a predictor over the sentences of an ATEPC dataset split
// and aggregates the outcomes into an evaluation report.
package eval

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/cyberabsa/internal/dataset"
	"github.com/ppiankov/cyberabsa/internal/model"
	"github.com/ppiankov/cyberabsa/internal/predict"
)

// DefaultBatchSize is the number of sentences sent to the predictor per call
const DefaultBatchSize = 32

// Options configure a single evaluation run
type Options struct {
	// BatchSize is the number of sentences per predictor call.
	// Zero or negative uses DefaultBatchSize.
	BatchSize int

	// Progress, when set, is called after each batch with the number of
	// completed batches and the total
	Progress func(done, total int)
}

// Run evaluates every sentence through the predictor in fixed-size batches.
// A failed batch never aborts the run: each sentence in it gets one error
// record and the next batch proceeds. Records keep input order, so callers
// can align them with the source sentences by position.
func Run(ctx context.Context, p predict.Predictor, sentences []dataset.Sentence, opts Options) []model.EvalRecord {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.Text()
	}

	totalBatches := 0
	if len(texts) > 0 {
		totalBatches = (len(texts)-1)/batchSize + 1
	}

	records := make([]model.EvalRecord, 0, len(texts))
	for i := 0; i < len(texts); i += batchSize {
		end := i + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[i:end]

		preds, err := p.Predict(ctx, batch)
		if err == nil && len(preds) != len(batch) {
			err = fmt.Errorf("predictor returned %d results for %d texts", len(preds), len(batch))
		}

		if err != nil {
			for range batch {
				records = append(records, model.EvalRecord{Error: err.Error()})
			}
		} else {
			for j, pred := range preds {
				records = append(records, model.EvalRecord{
					Sentence:    batch[j],
					Aspects:     pred.Aspects,
					Sentiments:  pred.Sentiments,
					Confidences: pred.Confidences,
				})
			}
		}

		if opts.Progress != nil {
			opts.Progress(i/batchSize+1, totalBatches)
		}
	}

	return records
}

// Summarize aggregates evaluation records into a report. The sentiment
// distribution only counts the known labels "-1", "0" and "1"; aspects with
// other labels still count toward the aspect total.
func Summarize(checkpoint string, apcF1 float64, records []model.EvalRecord) model.EvalSummary {
	distribution := map[string]int{"-1": 0, "0": 0, "1": 0}
	totalAspects := 0
	errorCount := 0

	for _, r := range records {
		if r.IsError() {
			errorCount++
			continue
		}

		totalAspects += len(r.Aspects)
		for _, s := range r.Sentiments {
			if _, ok := distribution[s]; ok {
				distribution[s]++
			}
		}
	}

	denominator := len(records) - errorCount
	if denominator < 1 {
		denominator = 1
	}

	return model.EvalSummary{
		Checkpoint:     checkpoint,
		APCF1:          apcF1,
		TotalExamples:  len(records),
		TotalAspects:   totalAspects,
		AverageAspects: float64(totalAspects) / float64(denominator),
		ErrorCount:     errorCount,
		Distribution:   distribution,
		Results:        records,
	}
}

// WriteReport writes the summary as indented JSON
func WriteReport(path string, summary model.EvalSummary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal evaluation report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write evaluation report: %w", err)
	}
	return nil
}

// ReadReport loads an evaluation report written by WriteReport
func ReadReport(path string) (model.EvalSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.EvalSummary{}, fmt.Errorf("read evaluation report: %w", err)
	}

	var summary model.EvalSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.EvalSummary{}, fmt.Errorf("parse evaluation report %s: %w", path, err)
	}
	return summary, nil
}

// PrintSummary writes the console evaluation block: totals, the sentiment
// distribution with percentages, and the first few example results. Missing
// sentiment or confidence positions print as "N/A".
func PrintSummary(w io.Writer, summary model.EvalSummary) {
	fmt.Fprintf(w, "\nEvaluation Results:\n")
	fmt.Fprintf(w, "Total examples processed: %d\n", summary.TotalExamples)
	fmt.Fprintf(w, "Total aspects extracted: %d\n", summary.TotalAspects)
	fmt.Fprintf(w, "Average aspects per example: %.2f\n", summary.AverageAspects)
	fmt.Fprintf(w, "Errors encountered: %d\n", summary.ErrorCount)

	divisor := summary.TotalAspects
	if divisor < 1 {
		divisor = 1
	}

	fmt.Fprintf(w, "\nSentiment Distribution:\n")
	fmt.Fprintf(w, "  Negative (-1): %d (%.1f%%)\n",
		summary.Distribution["-1"], float64(summary.Distribution["-1"])/float64(divisor)*100)
	fmt.Fprintf(w, "  Neutral (0): %d (%.1f%%)\n",
		summary.Distribution["0"], float64(summary.Distribution["0"])/float64(divisor)*100)
	fmt.Fprintf(w, "  Positive (1): %d (%.1f%%)\n",
		summary.Distribution["1"], float64(summary.Distribution["1"])/float64(divisor)*100)

	fmt.Fprintf(w, "\nExample Results:\n")
	shown := summary.Results
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for i, r := range shown {
		if r.IsError() {
			continue
		}

		fmt.Fprintf(w, "\nExample %d: %s\n", i+1, r.Sentence)
		for j, aspect := range r.Aspects {
			sentiment := "N/A"
			if j < len(r.Sentiments) {
				sentiment = r.Sentiments[j]
			}
			confidence := "N/A"
			if j < len(r.Confidences) {
				confidence = fmt.Sprintf("%v", r.Confidences[j])
			}
			fmt.Fprintf(w, "  - %s: %s (Confidence: %s)\n", aspect, sentiment, confidence)
		}
	}
}
