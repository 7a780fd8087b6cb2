package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runTrained    bool
	runNoProgress bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline end to end",
	Long: `Run every pipeline stage in order: collect, preprocess, topics,
dataset, evaluate, report. The run stops at the first failing stage.

Example:
  cyberabsa run
  cyberabsa run --no-progress`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&runTrained, "trained", false, "evaluate the best checkpoint regardless of prefix")
	runCmd.Flags().BoolVar(&runNoProgress, "no-progress", false, "disable progress bars")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	progress := !runNoProgress

	steps := []struct {
		name string
		fn   func() error
	}{
		{"collect", func() error { return doCollect(ctx, cfg, collectFlags{progress: progress}) }},
		{"preprocess", func() error { return doPreprocess(ctx, cfg) }},
		{"topics", func() error { return doTopics(ctx, cfg) }},
		{"dataset", func() error { return doDataset(ctx, cfg) }},
		{"evaluate", func() error { return doEvaluate(ctx, cfg, runTrained, progress, false) }},
		{"report", func() error { return doReport(ctx, cfg) }},
	}

	for i, step := range steps {
		fmt.Printf("\n[%d/%d] %s\n", i+1, len(steps), step.name)
		if err := step.fn(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	fmt.Println("\nPipeline completed.")
	return nil
}
