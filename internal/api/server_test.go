package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ppiankov/cyberabsa/internal/predict"
)

// failingPredictor errors on texts it has been told to fail.
type failingPredictor struct {
	failOn string
}

func (p *failingPredictor) Name() string { return "failing" }

func (p *failingPredictor) IsAvailable(ctx context.Context) bool { return true }

func (p *failingPredictor) Predict(ctx context.Context, texts []string) ([]predict.Prediction, error) {
	for _, text := range texts {
		if text == p.failOn {
			return nil, errors.New("model backend unavailable")
		}
	}
	preds := make([]predict.Prediction, len(texts))
	for i := range texts {
		preds[i] = predict.Prediction{
			Aspects:     []string{"firewall"},
			Sentiments:  []string{"1"},
			Confidences: []float64{0.9},
		}
	}
	return preds, nil
}

func newTestServer(t *testing.T, predictor predict.Predictor) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(predictor).Handler())
	t.Cleanup(server.Close)
	return server
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", bytes.NewBufferString(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

type analyzeResponse struct {
	Text    string `json:"text"`
	Aspects []struct {
		Aspect     string `json:"aspect"`
		Sentiment  string `json:"sentiment"`
		Confidence any    `json:"confidence"`
	} `json:"aspects"`
	Error string `json:"error"`
}

func TestServer_Analyze(t *testing.T) {
	server := newTestServer(t, predict.NewLexiconPredictor(0))

	resp := postJSON(t, server.URL+"/analyze", `{"text": "The firewall blocked the attack"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if result.Text != "The firewall blocked the attack" {
		t.Errorf("Unexpected text: %s", result.Text)
	}
	if len(result.Aspects) != 2 {
		t.Fatalf("Expected 2 aspects, got %d", len(result.Aspects))
	}
	if result.Aspects[0].Aspect != "firewall" {
		t.Errorf("Expected first aspect firewall, got %s", result.Aspects[0].Aspect)
	}
	if result.Aspects[0].Sentiment != "Positive" {
		t.Errorf("Expected Positive sentiment, got %s", result.Aspects[0].Sentiment)
	}
	if confidence, ok := result.Aspects[0].Confidence.(float64); !ok || confidence != 1.0 {
		t.Errorf("Expected confidence 1.0, got %v", result.Aspects[0].Confidence)
	}
}

func TestServer_Analyze_NoAspects(t *testing.T) {
	server := newTestServer(t, predict.NewLexiconPredictor(0))

	resp := postJSON(t, server.URL+"/analyze", `{"text": "The weather was lovely today"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Aspects == nil || len(result.Aspects) != 0 {
		t.Errorf("Expected empty aspects array, got %v", result.Aspects)
	}
}

func TestServer_Analyze_MissingText(t *testing.T) {
	server := newTestServer(t, predict.NewLexiconPredictor(0))

	cases := []string{`{}`, `{"text": ""}`, `not json`, ``}
	for _, body := range cases {
		resp := postJSON(t, server.URL+"/analyze", body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Body %q: expected status 400, got %d", body, resp.StatusCode)
		}

		var result map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("Body %q: failed to decode response: %v", body, err)
		}
		resp.Body.Close()
		if result["error"] != "No text provided" {
			t.Errorf("Body %q: unexpected error message: %s", body, result["error"])
		}
	}
}

func TestServer_Analyze_ModelFailureIsData(t *testing.T) {
	server := newTestServer(t, &failingPredictor{failOn: "bad text"})

	resp := postJSON(t, server.URL+"/analyze", `{"text": "bad text"}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200 for model failure, got %d", resp.StatusCode)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Error != "model backend unavailable" {
		t.Errorf("Expected error in body, got: %+v", result)
	}
	if result.Text != "bad text" {
		t.Errorf("Expected text echoed back, got %s", result.Text)
	}
}

func TestServer_BatchAnalyze(t *testing.T) {
	server := newTestServer(t, predict.NewLexiconPredictor(0))

	resp := postJSON(t, server.URL+"/batch_analyze",
		`{"texts": ["The firewall blocked the attack", "Ransomware encrypted the database"]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Results []analyzeResponse `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result.Results))
	}
	if result.Results[0].Text != "The firewall blocked the attack" {
		t.Errorf("Unexpected first result text: %s", result.Results[0].Text)
	}
	if len(result.Results[1].Aspects) == 0 {
		t.Error("Expected aspects for second text")
	}
}

func TestServer_BatchAnalyze_MissingTexts(t *testing.T) {
	server := newTestServer(t, predict.NewLexiconPredictor(0))

	for _, body := range []string{`{}`, `{"texts": []}`, `garbage`} {
		resp := postJSON(t, server.URL+"/batch_analyze", body)

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Body %q: expected status 400, got %d", body, resp.StatusCode)
		}
		var result map[string]string
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			t.Fatalf("Body %q: failed to decode response: %v", body, err)
		}
		resp.Body.Close()
		if result["error"] != "No texts provided" {
			t.Errorf("Body %q: unexpected error message: %s", body, result["error"])
		}
	}
}

func TestServer_BatchAnalyze_PartialFailure(t *testing.T) {
	server := newTestServer(t, &failingPredictor{failOn: "bad text"})

	resp := postJSON(t, server.URL+"/batch_analyze", `{"texts": ["good text", "bad text"]}`)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result struct {
		Results []analyzeResponse `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(result.Results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(result.Results))
	}
	if result.Results[0].Error != "" {
		t.Errorf("Expected first result to succeed, got error: %s", result.Results[0].Error)
	}
	if result.Results[1].Error != "model backend unavailable" {
		t.Errorf("Expected second result to carry the model error, got: %+v", result.Results[1])
	}
}

func TestServer_Health(t *testing.T) {
	server := newTestServer(t, predict.NewLexiconPredictor(0))

	resp, err := http.Get(server.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["status"] != "ok" {
		t.Errorf("Expected status ok, got %s", result["status"])
	}
	if result["model"] != "lexicon" {
		t.Errorf("Expected model lexicon, got %s", result["model"])
	}
}
