package topics

import (
	"context"
	"math"
	"testing"
)

func TestLocalEmbedder_Deterministic(t *testing.T) {
	embedder := NewLocalEmbedder(0)

	first, err := embedder.Embed(context.Background(), []string{"ransomware hit the hospital network"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	second, err := embedder.Embed(context.Background(), []string{"ransomware hit the hospital network"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if !vectorsEqual(first[0], second[0]) {
		t.Error("Expected identical vectors for identical text")
	}
}

func TestLocalEmbedder_UnitNorm(t *testing.T) {
	embedder := NewLocalEmbedder(64)

	vectors, err := embedder.Embed(context.Background(), []string{"phishing campaign targets banks"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	norm := dot(vectors[0], vectors[0])
	if math.Abs(norm-1.0) > 1e-5 {
		t.Errorf("Expected unit norm, got %f", norm)
	}
}

func TestLocalEmbedder_SharedVocabularyCloser(t *testing.T) {
	embedder := NewLocalEmbedder(0)

	vectors, err := embedder.Embed(context.Background(), []string{
		"ransomware encrypts hospital records",
		"ransomware encrypts school records",
		"parliament debates trade policy",
	})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	similar := dot(vectors[0], vectors[1])
	dissimilar := dot(vectors[0], vectors[2])
	if similar <= dissimilar {
		t.Errorf("Expected shared-vocabulary texts to be closer: similar=%f dissimilar=%f", similar, dissimilar)
	}
}

func TestLocalEmbedder_CaseInsensitive(t *testing.T) {
	embedder := NewLocalEmbedder(0)

	vectors, err := embedder.Embed(context.Background(), []string{"Ransomware Attack", "ransomware attack"})
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}

	if !vectorsEqual(vectors[0], vectors[1]) {
		t.Error("Expected case-insensitive embeddings to match")
	}
}

func TestLocalEmbedder_ContextCancelled(t *testing.T) {
	embedder := NewLocalEmbedder(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := embedder.Embed(ctx, []string{"some text"})
	if err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}

func TestNewLocalEmbedder_DefaultDims(t *testing.T) {
	embedder := NewLocalEmbedder(0)
	if embedder.dims != defaultLocalDims {
		t.Errorf("Expected default dims %d, got %d", defaultLocalDims, embedder.dims)
	}
	if embedder.Name() != "local" {
		t.Errorf("Expected name local, got %s", embedder.Name())
	}
}
