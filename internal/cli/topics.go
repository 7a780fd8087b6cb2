package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/store"
	"github.com/ppiankov/cyberabsa/internal/topics"
)

var (
	topicsBackend string
	topicsK       int
)

// topicsCmd represents the topics command
var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Discover latent topics in the preprocessed corpus",
	Long: `Embed the preprocessed documents and cluster them into topics.

The local backend hashes tokens into deterministic vectors and needs no
credentials; the openai backend calls an embeddings API (OPENAI_API_KEY)
for higher-quality vectors. Clusters smaller than the configured minimum
fold into the outlier topic -1.

Topic assignments are written back to the corpus store, the document set
is exported as CSV, and a topic summary lands in the reports directory.

Example:
  cyberabsa topics
  cyberabsa topics --backend openai --k 8`,
	RunE: runTopics,
}

func init() {
	rootCmd.AddCommand(topicsCmd)

	topicsCmd.Flags().StringVar(&topicsBackend, "backend", "", "embedding backend (local, openai)")
	topicsCmd.Flags().IntVar(&topicsK, "k", 0, "number of clusters (0 = configured default)")
}

func runTopics(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if topicsBackend != "" {
		cfg.Topics.Backend = topicsBackend
	}
	if topicsK > 0 {
		cfg.Topics.K = topicsK
	}
	return doTopics(context.Background(), cfg)
}

func doTopics(ctx context.Context, cfg config.Config) error {
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

	topicCfg := topics.Config{
		Backend:      cfg.Topics.Backend,
		Model:        cfg.Topics.EmbedModel,
		BaseURL:      cfg.Topics.BaseURL,
		K:            cfg.Topics.K,
		MinTopicSize: cfg.Topics.MinTopicSize,
		BatchSize:    cfg.Topics.BatchSize,
	}
	embedder, err := topics.NewEmbedder(topicCfg)
	if err != nil {
		return err
	}

	fmt.Printf("Fitting topic model (%s backend, %d documents)...\n", embedder.Name(), len(docs))
	result, err := topics.Discover(ctx, embedder, docs, topicCfg)
	if err != nil {
		return err
	}
	topics.Apply(docs, result)

	if err := st.SaveDocuments(ctx, docs); err != nil {
		return fmt.Errorf("save documents: %w", err)
	}
	if err := os.MkdirAll(cfg.Paths.ProcessedDir, 0o755); err != nil {
		return fmt.Errorf("create processed dir: %w", err)
	}
	csvPath := filepath.Join(cfg.Paths.ProcessedDir, "dataset_with_bertopics.csv")
	if err := store.ExportDocumentsCSV(csvPath, docs); err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Paths.ReportsDir, 0o755); err != nil {
		return fmt.Errorf("create reports dir: %w", err)
	}
	infoPath := filepath.Join(cfg.Paths.ReportsDir, "topic_info.csv")
	if err := topics.WriteTopicInfoCSV(infoPath, result.Topics); err != nil {
		return err
	}

	topics.PrintTopics(os.Stdout, result.Topics)
	fmt.Printf("Topic modeling completed. Topics assigned to %d records.\n", len(docs))

	return nil
}
