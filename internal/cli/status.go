package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/dataset"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show what the pipeline has produced so far",
	Long: `Show the corpus store contents, the dataset split files and the
generated reports, with record counts and file sizes.

Example:
  cyberabsa status`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return doStatus(context.Background(), cfg)
}

func doStatus(ctx context.Context, cfg config.Config) error {
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("read store stats: %w", err)
	}

	fmt.Println("Corpus store:")
	fmt.Printf("  Records: %d\n", stats.Records)
	sources := make([]string, 0, len(stats.RecordsBySource))
	for source := range stats.RecordsBySource {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	for _, source := range sources {
		fmt.Printf("    %s: %d\n", source, stats.RecordsBySource[source])
	}
	fmt.Printf("  Documents: %d\n", stats.Documents)

	fmt.Println("\nDataset splits:")
	for _, name := range []string{"train", "valid", "test"} {
		path := filepath.Join(cfg.Paths.DatasetDir, name+".dat.atepc")
		info, err := os.Stat(path)
		if err != nil {
			fmt.Printf("  %s: missing\n", name)
			continue
		}
		sentences, err := dataset.ReadSentences(path)
		if err != nil {
			fmt.Printf("  %s: unreadable (%v)\n", name, err)
			continue
		}
		fmt.Printf("  %s: %d sentences, %d bytes\n", name, len(sentences), info.Size())
	}

	fmt.Println("\nReports:")
	names := []string{
		"topic_info.csv",
		"dataset_build.json",
		"evaluation_results.json",
		"pipeline_report.json",
		"pipeline_report.md",
	}
	for _, name := range names {
		path := filepath.Join(cfg.Paths.ReportsDir, name)
		info, err := os.Stat(path)
		if err != nil {
			fmt.Printf("  %s: missing\n", name)
			continue
		}
		fmt.Printf("  %s: %d bytes\n", name, info.Size())
	}

	return nil
}
