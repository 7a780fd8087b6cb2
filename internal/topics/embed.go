// Package topics discovers latent themes in the corpus by embedding
// cleaned documents and clustering the vectors. Small clusters fold
// into an outlier topic and per-topic keywords come from class-based
// TF-IDF, so the outputs line up with what a BERTopic run produces.
package topics

import (
	"context"
	"fmt"
	"strings"
)

// Embedder turns document texts into dense vectors.
type Embedder interface {
	Name() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Config controls embedding and clustering.
type Config struct {
	Backend      string `mapstructure:"backend"`
	Model        string `mapstructure:"embed_model"`
	BaseURL      string `mapstructure:"base_url"`
	APIKey       string `mapstructure:"api_key"`
	K            int    `mapstructure:"k"`
	MinTopicSize int    `mapstructure:"min_topic_size"`
	BatchSize    int    `mapstructure:"batch_size"`
}

// DefaultConfig returns the default topic discovery configuration.
func DefaultConfig() Config {
	return Config{
		Backend:      "local",
		Model:        "text-embedding-3-small",
		K:            5,
		MinTopicSize: 10,
		BatchSize:    100,
	}
}

// NewEmbedder creates the configured embedding backend.
func NewEmbedder(config Config) (Embedder, error) {
	switch strings.ToLower(config.Backend) {
	case "local", "":
		return NewLocalEmbedder(0), nil
	case "openai":
		return NewOpenAIEmbedder(config)
	default:
		return nil, fmt.Errorf("unknown topics backend: %s (supported: local, openai)", config.Backend)
	}
}
