package topics

import (
	"context"
	"hash/fnv"
	"strings"
)

// defaultLocalDims is the vector size for the hashing embedder.
const defaultLocalDims = 256

// LocalEmbedder produces deterministic embeddings offline by hashing
// tokens into a fixed number of buckets and L2-normalizing the counts.
// Quality is far below a hosted model, but documents sharing vocabulary
// land in shared buckets, so clustering stays meaningful and runs
// without an API key.
type LocalEmbedder struct {
	dims int
}

// NewLocalEmbedder creates a hashing embedder. A non-positive dims
// falls back to the default.
func NewLocalEmbedder(dims int) *LocalEmbedder {
	if dims <= 0 {
		dims = defaultLocalDims
	}
	return &LocalEmbedder{dims: dims}
}

// Name returns the backend name.
func (e *LocalEmbedder) Name() string {
	return "local"
}

// Embed hashes each text into a unit vector.
func (e *LocalEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vectors[i] = e.embedOne(text)
	}
	return vectors, nil
}

func (e *LocalEmbedder) embedOne(text string) []float32 {
	vec := make([]float32, e.dims)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[int(h.Sum32())%e.dims]++
	}
	normalize(vec)
	return vec
}
