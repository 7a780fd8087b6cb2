package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/eval"
	"github.com/ppiankov/cyberabsa/internal/report"
	"github.com/ppiankov/cyberabsa/internal/topics"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble the pipeline report from completed stages",
	Long: `Assemble corpus statistics, the topic table, dataset split counts and
the evaluation summary into one Markdown and JSON report.

Stages that have not run yet are simply omitted, so the report can be
generated at any point in the pipeline.

Example:
  cyberabsa report`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return doReport(context.Background(), cfg)
}

func doReport(ctx context.Context, cfg config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	docs, err := st.LoadDocuments(ctx)
	if err != nil {
		return fmt.Errorf("load documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no preprocessed documents found (run preprocess first)")
	}

	rep := report.Report{
		GeneratedAt: time.Now().UTC(),
		Corpus:      report.BuildCorpusStats(docs),
	}

	for _, doc := range docs {
		if doc.TopicID != topics.OutlierTopic {
			rep.Topics = topics.Summaries(docs)
			break
		}
	}

	if res, err := readDatasetResult(cfg); err == nil {
		rep.Dataset = res
	}
	if summary, err := eval.ReadReport(filepath.Join(cfg.Paths.ReportsDir, "evaluation_results.json")); err == nil {
		rep.Evaluation = &summary
	}

	if err := os.MkdirAll(cfg.Paths.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	jsonPath := filepath.Join(cfg.Paths.ReportsDir, "pipeline_report.json")
	if err := report.RenderJSON(jsonPath, rep); err != nil {
		return err
	}
	mdPath := filepath.Join(cfg.Paths.ReportsDir, "pipeline_report.md")
	if err := report.RenderMarkdown(mdPath, rep); err != nil {
		return err
	}

	report.PrintSummary(os.Stdout, rep)
	fmt.Printf("\nReport written to %s and %s\n", jsonPath, mdPath)

	return nil
}
