package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/dataset"
)

// datasetCmd represents the dataset command
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Build the tagged train/valid/test dataset from the corpus",
	Long: `Build the ATEPC dataset files from the preprocessed corpus.

Documents are normalized, filtered by length, down-sampled with a fixed
seed when the corpus is large, and split 70/15/15 into train, valid and
test files in token-per-line IOB format. Sentences without any matched
aspect term are skipped and counted.

Example:
  cyberabsa dataset`,
	RunE: runDataset,
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}

func runDataset(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return doDataset(context.Background(), cfg)
}

func doDataset(ctx context.Context, cfg config.Config) error {
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

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.CleanText
	}

	builder := dataset.NewBuilder(dataset.Config{
		OutputDir:    cfg.Paths.DatasetDir,
		MaxSamples:   cfg.Dataset.MaxSamples,
		Seed:         cfg.Dataset.Seed,
		Window:       cfg.Dataset.Window,
		MinLen:       cfg.Dataset.MinTextLen,
		CorpusMinLen: cfg.Dataset.CorpusMinLen,
	})
	res, err := builder.Build(texts)
	if err != nil {
		return err
	}

	for _, sp := range res.Splits {
		fmt.Printf("  %s: %d sentences written (%d short, %d without aspects)\n",
			sp.Name, sp.Written, sp.SkippedShort, sp.SkippedNoAspect)
	}
	fmt.Printf("Dataset written to %s (%d texts total)\n", cfg.Paths.DatasetDir, res.Total)

	// The report command rereads build stats instead of rebuilding.
	if err := writeDatasetResult(cfg, res); err != nil {
		return err
	}
	return nil
}

func datasetResultPath(cfg config.Config) string {
	return filepath.Join(cfg.Paths.ReportsDir, "dataset_build.json")
}

func writeDatasetResult(cfg config.Config, res *dataset.Result) error {
	if err := os.MkdirAll(cfg.Paths.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("encode dataset stats: %w", err)
	}
	if err := os.WriteFile(datasetResultPath(cfg), data, 0o644); err != nil {
		return fmt.Errorf("write dataset stats: %w", err)
	}
	return nil
}

func readDatasetResult(cfg config.Config) (*dataset.Result, error) {
	data, err := os.ReadFile(datasetResultPath(cfg))
	if err != nil {
		return nil, err
	}
	var res dataset.Result
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("parse dataset stats: %w", err)
	}
	return &res, nil
}
