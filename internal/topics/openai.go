package topics

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder calls an OpenAI-compatible embeddings endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
	batch  int
}

// maxEmbedBatch caps how many texts go into a single API request.
const maxEmbedBatch = 100

// embedPauseFunc sleeps between batches. Variable for testing.
var embedPauseFunc = time.Sleep

// NewOpenAIEmbedder creates an embedder backed by the OpenAI API. The
// API key comes from the config or the OPENAI_API_KEY environment
// variable; BaseURL may point at any compatible endpoint.
func NewOpenAIEmbedder(config Config) (*OpenAIEmbedder, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	model := config.Model
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}

	batch := config.BatchSize
	if batch <= 0 || batch > maxEmbedBatch {
		batch = maxEmbedBatch
	}

	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(clientConfig),
		model:  model,
		batch:  batch,
	}, nil
}

// Name returns the backend name.
func (e *OpenAIEmbedder) Name() string {
	return "openai"
}

// Embed sends texts to the embeddings API in batches, pausing briefly
// between batches to stay under rate limits. Vectors come back in the
// same order as the input texts.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += e.batch {
		end := start + e.batch
		if end > len(texts) {
			end = len(texts)
		}
		batch := texts[start:end]

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: batch,
			Model: openai.EmbeddingModel(e.model),
		})
		if err != nil {
			return nil, fmt.Errorf("OpenAI API error: %w", err)
		}
		if len(resp.Data) != len(batch) {
			return nil, fmt.Errorf("embeddings API returned %d vectors for %d texts", len(resp.Data), len(batch))
		}
		for _, item := range resp.Data {
			if item.Index < 0 || item.Index >= len(batch) {
				return nil, fmt.Errorf("embeddings API returned out-of-range index %d", item.Index)
			}
			vectors[start+item.Index] = item.Embedding
		}

		if end < len(texts) {
			embedPauseFunc(200 * time.Millisecond)
		}
	}

	return vectors, nil
}
