package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/dataset"
	"github.com/ppiankov/cyberabsa/internal/eval"
)

var (
	evalTrained    bool
	evalShowErrors bool
	evalBatchSize  int
	evalNoProgress bool
)

// evaluateCmd represents the evaluate command
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Evaluate the sentiment model on the test split",
	Long: `Evaluate the configured sentiment model against the test split of the
tagged dataset.

The best checkpoint is selected by the score embedded in its directory
name. Sentences run through the predictor in fixed-size batches; a failed
batch yields error records rather than aborting the run. The summary and
per-sentence results are written to the reports directory.

Example:
  cyberabsa evaluate
  cyberabsa evaluate --trained --errors`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().BoolVar(&evalTrained, "trained", false, "select the best checkpoint regardless of prefix")
	evaluateCmd.Flags().BoolVar(&evalShowErrors, "errors", false, "analyze and print failing examples")
	evaluateCmd.Flags().IntVar(&evalBatchSize, "batch-size", 0, "sentences per predictor call (0 = configured default)")
	evaluateCmd.Flags().BoolVar(&evalNoProgress, "no-progress", false, "disable progress bars")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if evalBatchSize > 0 {
		cfg.Eval.BatchSize = evalBatchSize
	}
	return doEvaluate(context.Background(), cfg, evalTrained, !evalNoProgress, evalShowErrors)
}

func doEvaluate(ctx context.Context, cfg config.Config, trained, progress, showErrors bool) error {
	p, best, err := newPredictor(cfg, trained)
	if err != nil {
		return err
	}

	testPath := filepath.Join(cfg.Paths.DatasetDir, "test.dat.atepc")
	sentences, err := dataset.ReadTagged(testPath)
	if err != nil {
		return fmt.Errorf("read test split (run dataset first): %w", err)
	}
	if len(sentences) == 0 {
		return fmt.Errorf("test split %s is empty", testPath)
	}

	fmt.Printf("Evaluating checkpoint %s on %d sentences (%s backend)...\n",
		best.Name, len(sentences), p.Name())

	opts := eval.Options{BatchSize: cfg.Eval.BatchSize}
	if progress {
		var bar *uiprogress.Bar
		opts.Progress = func(done, total int) {
			if bar == nil {
				bar = uiprogress.AddBar(total)
				bar.AppendCompleted()
				bar.PrependElapsed()
			}
			bar.Incr()
		}
		uiprogress.Start()
	}

	records := eval.Run(ctx, p, sentences, opts)
	if progress {
		uiprogress.Stop()
	}

	summary := eval.Summarize(best.Name, best.Score, records)

	if err := os.MkdirAll(cfg.Paths.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	reportPath := filepath.Join(cfg.Paths.ReportsDir, "evaluation_results.json")
	if err := eval.WriteReport(reportPath, summary); err != nil {
		return err
	}

	eval.PrintSummary(os.Stdout, summary)
	fmt.Printf("\nResults saved to %s\n", reportPath)

	if showErrors {
		eval.PrintErrorReport(os.Stdout, eval.AnalyzeErrors(records, sentences))
	}
	return nil
}
