// Package report assembles the pipeline completion report: corpus
// statistics, discovered topics, dataset splits, and evaluation metrics
// rendered as Markdown and JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/cyberabsa/internal/dataset"
	"github.com/ppiankov/cyberabsa/internal/model"
	"github.com/ppiankov/cyberabsa/internal/topics"
)

// CorpusStats summarizes the processed corpus.
type CorpusStats struct {
	Records    int            `json:"records"`
	Sources    map[string]int `json:"sources"`
	Tiers      map[string]int `json:"tiers"`
	MeanLength float64        `json:"mean_length"`
	MeanTerms  float64        `json:"mean_terms_per_doc"`
}

// Report is the assembled pipeline report. Sections that have not run
// yet are nil and omitted from the rendered output.
type Report struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Corpus      CorpusStats        `json:"corpus"`
	Topics      []topics.TopicInfo `json:"topics,omitempty"`
	Dataset     *dataset.Result    `json:"dataset,omitempty"`
	Evaluation  *model.EvalSummary `json:"evaluation,omitempty"`
}

// BuildCorpusStats computes corpus statistics from processed documents.
func BuildCorpusStats(docs []model.Document) CorpusStats {
	stats := CorpusStats{
		Records: len(docs),
		Sources: make(map[string]int),
		Tiers:   make(map[string]int),
	}

	totalLength := 0
	totalTerms := 0
	for _, doc := range docs {
		stats.Sources[doc.Source]++
		stats.Tiers[doc.Tier.String()]++
		totalLength += len(doc.CleanText)
		totalTerms += doc.TermCount
	}
	if len(docs) > 0 {
		stats.MeanLength = float64(totalLength) / float64(len(docs))
		stats.MeanTerms = float64(totalTerms) / float64(len(docs))
	}

	return stats
}

// RenderJSON writes the report as indented JSON.
func RenderJSON(path string, report Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes the report as a Markdown document.
func RenderMarkdown(path string, report Report) error {
	if err := os.WriteFile(path, []byte(Markdown(report)), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// Markdown renders the report body.
func Markdown(report Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Cybersecurity ABSA Pipeline Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Corpus\n\n")
	fmt.Fprintf(&b, "- Records: %d\n", report.Corpus.Records)
	fmt.Fprintf(&b, "- Mean cleaned length: %.1f chars\n", report.Corpus.MeanLength)
	fmt.Fprintf(&b, "- Mean terms per document: %.2f\n\n", report.Corpus.MeanTerms)

	if len(report.Corpus.Sources) > 0 {
		fmt.Fprintf(&b, "| Source | Records |\n|---|---|\n")
		for _, name := range sortedKeys(report.Corpus.Sources) {
			fmt.Fprintf(&b, "| %s | %d |\n", name, report.Corpus.Sources[name])
		}
		b.WriteString("\n")
	}
	if len(report.Corpus.Tiers) > 0 {
		fmt.Fprintf(&b, "| Tier | Records |\n|---|---|\n")
		for _, name := range sortedKeys(report.Corpus.Tiers) {
			fmt.Fprintf(&b, "| %s | %d |\n", name, report.Corpus.Tiers[name])
		}
		b.WriteString("\n")
	}

	if len(report.Topics) > 0 {
		fmt.Fprintf(&b, "## Topics\n\n")
		fmt.Fprintf(&b, "| Topic | Size | Keywords |\n|---|---|---|\n")
		for _, topic := range report.Topics {
			fmt.Fprintf(&b, "| %d | %d | %s |\n", topic.ID, topic.Size, strings.Join(topic.Keywords, "; "))
		}
		b.WriteString("\n")
	}

	if report.Dataset != nil {
		fmt.Fprintf(&b, "## Dataset\n\n")
		fmt.Fprintf(&b, "- Total texts: %d\n\n", report.Dataset.Total)
		fmt.Fprintf(&b, "| Split | Size | Written | Skipped (short) | Skipped (no aspect) |\n|---|---|---|---|---|\n")
		for _, split := range report.Dataset.Splits {
			fmt.Fprintf(&b, "| %s | %d | %d | %d | %d |\n",
				split.Name, split.Size, split.Written, split.SkippedShort, split.SkippedNoAspect)
		}
		b.WriteString("\n")
	}

	if report.Evaluation != nil {
		eval := report.Evaluation
		fmt.Fprintf(&b, "## Evaluation\n\n")
		fmt.Fprintf(&b, "- Checkpoint: %s\n", eval.Checkpoint)
		fmt.Fprintf(&b, "- APC F1: %.2f\n", eval.APCF1)
		fmt.Fprintf(&b, "- Examples: %d (errors: %d)\n", eval.TotalExamples, eval.ErrorCount)
		fmt.Fprintf(&b, "- Aspects: %d (%.2f per example)\n\n", eval.TotalAspects, eval.AverageAspects)
		if len(eval.Distribution) > 0 {
			fmt.Fprintf(&b, "| Sentiment | Count |\n|---|---|\n")
			for _, label := range sortedKeys(eval.Distribution) {
				fmt.Fprintf(&b, "| %s | %d |\n", label, eval.Distribution[label])
			}
			b.WriteString("\n")
		}
	}

	return b.String()
}

// PrintSummary writes a short completion summary to w.
func PrintSummary(w io.Writer, report Report) {
	fmt.Fprintln(w, "Pipeline report")
	fmt.Fprintln(w, "===============")
	fmt.Fprintf(w, "Records processed: %d\n", report.Corpus.Records)
	if len(report.Topics) > 0 {
		fmt.Fprintf(w, "Topics identified: %d\n", countRealTopics(report.Topics))
	}
	if report.Dataset != nil {
		written := 0
		for _, split := range report.Dataset.Splits {
			written += split.Written
		}
		fmt.Fprintf(w, "Dataset sentences written: %d\n", written)
	}
	if report.Evaluation != nil {
		fmt.Fprintf(w, "Evaluation: %d examples, %d aspects, %d errors\n",
			report.Evaluation.TotalExamples, report.Evaluation.TotalAspects, report.Evaluation.ErrorCount)
	}
}

// countRealTopics counts topics excluding the outlier bucket.
func countRealTopics(infos []topics.TopicInfo) int {
	n := 0
	for _, topic := range infos {
		if topic.ID != topics.OutlierTopic {
			n++
		}
	}
	return n
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
