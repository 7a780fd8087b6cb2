package predict

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestServerPredictor_Predict_Success(t *testing.T) {
	// Mock server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Verify request
		if r.URL.Path != "/predict" {
			t.Errorf("Expected path /predict, got %s", r.URL.Path)
		}

		var req serverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}
		if req.Checkpoint != "fast_lcf_atepc_custom_dataset_best" {
			t.Errorf("Unexpected checkpoint in request: %s", req.Checkpoint)
		}
		if len(req.Texts) != 2 {
			t.Errorf("Expected 2 texts in request, got %d", len(req.Texts))
		}

		// Mix singular and plural keys; sentiments as strings and numbers
		_, _ = w.Write([]byte(`{"results": [
			{"aspect": ["firewall"], "sentiment": ["1"], "confidence": [0.93]},
			{"aspects": ["breach", "passwords"], "sentiments": [-1, -1], "confidences": [0.88, 0.75]}
		]}`))
	}))
	defer server.Close()

	// Create predictor
	config := Config{
		BaseURL: server.URL,
		Timeout: 5,
	}
	p, err := NewServerPredictor(config, "fast_lcf_atepc_custom_dataset_best")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	preds, err := p.Predict(context.Background(), []string{"first text", "second text"})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(preds) != 2 {
		t.Fatalf("Expected 2 predictions, got %d", len(preds))
	}

	first := preds[0]
	if len(first.Aspects) != 1 || first.Aspects[0] != "firewall" {
		t.Errorf("Unexpected aspects: %v", first.Aspects)
	}
	if len(first.Sentiments) != 1 || first.Sentiments[0] != "1" {
		t.Errorf("Unexpected sentiments: %v", first.Sentiments)
	}
	if len(first.Confidences) != 1 || first.Confidences[0] != 0.93 {
		t.Errorf("Unexpected confidences: %v", first.Confidences)
	}

	second := preds[1]
	if len(second.Aspects) != 2 || second.Aspects[1] != "passwords" {
		t.Errorf("Unexpected aspects: %v", second.Aspects)
	}
	// Numeric labels normalize to strings
	if len(second.Sentiments) != 2 || second.Sentiments[0] != "-1" || second.Sentiments[1] != "-1" {
		t.Errorf("Unexpected sentiments: %v", second.Sentiments)
	}
}

func TestServerPredictor_Predict_MismatchedLengthsNotPadded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Two aspects but only one sentiment and no confidences
		_, _ = w.Write([]byte(`{"results": [
			{"aspect": ["breach", "malware"], "sentiment": ["-1"]}
		]}`))
	}))
	defer server.Close()

	config := Config{BaseURL: server.URL, Timeout: 5}
	p, err := NewServerPredictor(config, "")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	preds, err := p.Predict(context.Background(), []string{"text"})
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}

	pred := preds[0]
	if len(pred.Aspects) != 2 {
		t.Errorf("Expected 2 aspects, got %v", pred.Aspects)
	}
	if len(pred.Sentiments) != 1 {
		t.Errorf("Expected 1 sentiment, got %v", pred.Sentiments)
	}
	if len(pred.Confidences) != 0 {
		t.Errorf("Expected no confidences, got %v", pred.Confidences)
	}
}

func TestServerPredictor_Predict_CountMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{"aspect": ["breach"]}]}`))
	}))
	defer server.Close()

	config := Config{BaseURL: server.URL, Timeout: 5}
	p, err := NewServerPredictor(config, "")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	_, err = p.Predict(context.Background(), []string{"first", "second"})
	if err == nil {
		t.Fatal("Expected error for result count mismatch, got nil")
	}
	if !strings.Contains(err.Error(), "1 results for 2 texts") {
		t.Errorf("Expected count mismatch error, got %v", err)
	}
}

func TestServerPredictor_Predict_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "checkpoint not loaded"}`))
	}))
	defer server.Close()

	config := Config{BaseURL: server.URL, Timeout: 5}
	p, err := NewServerPredictor(config, "")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	_, err = p.Predict(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), "checkpoint not loaded") {
		t.Errorf("Expected error message to contain 'checkpoint not loaded', got %v", err)
	}
}

func TestServerPredictor_Predict_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{malformed json`))
	}))
	defer server.Close()

	config := Config{BaseURL: server.URL, Timeout: 5}
	p, err := NewServerPredictor(config, "")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	_, err = p.Predict(context.Background(), []string{"text"})
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
}

func TestServerPredictor_IsAvailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	config := Config{BaseURL: server.URL}
	p, err := NewServerPredictor(config, "")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	if !p.IsAvailable(context.Background()) {
		t.Error("Expected available to be true")
	}

	// Test failure
	server.Config.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if p.IsAvailable(context.Background()) {
		t.Error("Expected available to be false on error")
	}
}

func TestServerPredictor_Predict_EmptyInput(t *testing.T) {
	// No request should be made for an empty batch
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Unexpected request for empty input")
	}))
	defer server.Close()

	config := Config{BaseURL: server.URL, Timeout: 5}
	p, err := NewServerPredictor(config, "")
	if err != nil {
		t.Fatalf("Failed to create predictor: %v", err)
	}

	preds, err := p.Predict(context.Background(), nil)
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if len(preds) != 0 {
		t.Errorf("Expected no predictions, got %d", len(preds))
	}
}
