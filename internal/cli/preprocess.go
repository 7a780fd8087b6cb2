package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/corpus"
	"github.com/ppiankov/cyberabsa/internal/model"
	"github.com/ppiankov/cyberabsa/internal/store"
)

// preprocessCmd represents the preprocess command
var preprocessCmd = &cobra.Command{
	Use:   "preprocess",
	Short: "Clean collected records into the merged document corpus",
	Long: `Clean and merge collected records into the document corpus the rest
of the pipeline works from.

Each record is lowercased, stripped of markup noise and stop words, and
tagged with the cybersecurity terms it mentions. Sources are merged with
exact-duplicate removal, then the corpus is saved to the store and
exported as CSV for use outside the pipeline.

When nothing has been collected yet, a small built-in sample corpus is
used instead so downstream steps stay runnable.

Example:
  cyberabsa preprocess`,
	RunE: runPreprocess,
}

func init() {
	rootCmd.AddCommand(preprocessCmd)
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return doPreprocess(context.Background(), cfg)
}

func doPreprocess(ctx context.Context, cfg config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	sources, err := st.Sources(ctx)
	if err != nil {
		return fmt.Errorf("list sources: %w", err)
	}

	var sets [][]model.Document
	if len(sources) == 0 {
		fmt.Println("No collected records found, using built-in sample corpus.")
		docs, _ := corpus.Preprocess(corpus.SampleRecords(), "sample")
		sets = append(sets, docs)
	}
	for _, source := range sources {
		records, err := st.LoadRecords(ctx, source)
		if err != nil {
			return fmt.Errorf("load %s records: %w", source, err)
		}
		docs, dropped := corpus.Preprocess(records, source)
		fmt.Printf("  %s: %d documents (%d dropped)\n", source, len(docs), dropped)
		sets = append(sets, docs)
	}

	merged, stats := corpus.Merge(sets...)
	if len(merged) == 0 {
		return fmt.Errorf("no documents survived preprocessing")
	}

	if err := st.SaveDocuments(ctx, merged); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	if err := os.MkdirAll(cfg.Paths.ProcessedDir, 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	csvPath := filepath.Join(cfg.Paths.ProcessedDir, "combined_dataset.csv")
	if err := store.ExportDocumentsCSV(csvPath, merged); err != nil {
		return err
	}

	fmt.Printf("Combined corpus: %d documents (%d duplicates removed)\n",
		stats.Total, stats.DuplicatesRemoved)
	fmt.Printf("Mean text length: %.1f chars, mean terms per document: %.2f\n",
		stats.MeanTextLength, stats.MeanTermsPerDoc)
	fmt.Printf("Exported %s\n", csvPath)

	return nil
}
