package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/cyberabsa/internal/util"
)

// ServerPredictor talks to a checkpoint inference server over HTTP. The
// server process loads a trained checkpoint and exposes POST /predict for
// batches of texts plus GET /health for liveness.
type ServerPredictor struct {
	baseURL    string
	checkpoint string
	httpClient *http.Client
	config     Config
}

// Inference server API structures
type serverRequest struct {
	Checkpoint string   `json:"checkpoint,omitempty"`
	Texts      []string `json:"texts"`
}

type serverResponse struct {
	Results []serverResult `json:"results"`
}

// serverResult tolerates the key variants inference servers have produced:
// singular or plural array names, sentiment labels as strings or numbers.
// Lengths are taken as-is; nothing is padded or truncated here.
type serverResult struct {
	Aspect      []string    `json:"aspect"`
	Aspects     []string    `json:"aspects"`
	Sentiment   []flexLabel `json:"sentiment"`
	Sentiments  []flexLabel `json:"sentiments"`
	Confidence  []float64   `json:"confidence"`
	Confidences []float64   `json:"confidences"`
}

type serverError struct {
	Error string `json:"error"`
}

// flexLabel decodes a sentiment label from either a JSON string or a number
type flexLabel string

func (l *flexLabel) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = flexLabel(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*l = flexLabel(n.String())
	return nil
}

// toPrediction normalizes one server result into the fixed Prediction shape.
// Singular keys win when both variants are present, matching the order the
// original result probing used.
func (r serverResult) toPrediction() Prediction {
	aspects := r.Aspect
	if len(aspects) == 0 && len(r.Aspects) > 0 {
		aspects = r.Aspects
	}

	sentiments := r.Sentiment
	if len(sentiments) == 0 && len(r.Sentiments) > 0 {
		sentiments = r.Sentiments
	}

	confidences := r.Confidence
	if len(confidences) == 0 && len(r.Confidences) > 0 {
		confidences = r.Confidences
	}

	labels := make([]string, len(sentiments))
	for i, s := range sentiments {
		labels[i] = string(s)
	}

	return Prediction{
		Aspects:     aspects,
		Sentiments:  labels,
		Confidences: confidences,
	}
}

// NewServerPredictor creates a predictor backed by an inference server. The
// checkpoint name is sent with each request so the server knows which trained
// model to use.
func NewServerPredictor(config Config, checkpoint string) (*ServerPredictor, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second // checkpoint inference can be slow on CPU
	}

	proxyFunc := util.NewProxyFunc(config.HTTPProxy, config.HTTPSProxy, config.NoProxy)

	return &ServerPredictor{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		checkpoint: checkpoint,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
		},
		config: config,
	}, nil
}

// Name returns the backend name
func (p *ServerPredictor) Name() string {
	return "server"
}

// IsAvailable checks if the inference server is reachable
func (p *ServerPredictor) IsAvailable(ctx context.Context) bool {
	url := fmt.Sprintf("%s/health", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inference server availability check failed (request creation): %v\n", err)
		return false
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inference server availability check failed (connection to %s): %v\n", p.baseURL, err)
		return false
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "Inference server availability check failed (HTTP %d from %s)\n", resp.StatusCode, p.baseURL)
		return false
	}

	return true
}

// Predict sends a batch of texts to the inference server and returns one
// prediction per text, in order.
func (p *ServerPredictor) Predict(ctx context.Context, texts []string) ([]Prediction, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	apiReq := serverRequest{
		Checkpoint: p.checkpoint,
		Texts:      texts,
	}

	resp, err := p.makeRequest(ctx, apiReq)
	if err != nil {
		return nil, fmt.Errorf("inference server error: %w", err)
	}

	if len(resp.Results) != len(texts) {
		return nil, fmt.Errorf("inference server returned %d results for %d texts", len(resp.Results), len(texts))
	}

	predictions := make([]Prediction, 0, len(resp.Results))
	for _, r := range resp.Results {
		predictions = append(predictions, r.toPrediction())
	}

	return predictions, nil
}

// makeRequest makes an HTTP request to the inference server
func (p *ServerPredictor) makeRequest(ctx context.Context, apiReq serverRequest) (*serverResponse, error) {
	body, err := json.Marshal(apiReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/predict", p.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		var apiErr serverError
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("API error (%d): %s", httpResp.StatusCode, string(respBody))
	}

	var resp serverResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	return &resp, nil
}
