// Package predict defines the model boundary for aspect extraction and
// sentiment classification. A Predictor takes raw texts and returns one
// Prediction per text; implementations cover the built-in lexicon baseline
// and an HTTP client for a trained-checkpoint inference server.
package predict

import (
	"context"

	"github.com/ppiankov/cyberabsa/internal/absa"
)

// Prediction holds the aspects extracted from one text along with the
// sentiment label and confidence for each aspect. The slices are parallel by
// aspect index but never padded: a backend that returns fewer sentiments or
// confidences than aspects yields short slices, and consumers fall back to
// "N/A" for missing positions.
type Prediction struct {
	Aspects     []string
	Sentiments  []string
	Confidences []float64
}

// Predictor extracts aspect terms and their sentiments from raw texts.
type Predictor interface {
	// Name returns the backend name
	Name() string

	// Predict runs inference on a batch of texts and returns one
	// Prediction per input text, in order
	Predict(ctx context.Context, texts []string) ([]Prediction, error)

	// IsAvailable checks if the backend is ready to serve predictions
	IsAvailable(ctx context.Context) bool
}

// Config holds predictor configuration
type Config struct {
	Backend string `mapstructure:"backend"`  // "lexicon" or "server"
	BaseURL string `mapstructure:"base_url"` // inference server base URL
	Timeout int    `mapstructure:"timeout"`  // request timeout in seconds
	Window  int    `mapstructure:"window"`   // context window for the lexicon backend

	// Proxy settings for the server backend
	HTTPProxy  string `mapstructure:"http_proxy"`
	HTTPSProxy string `mapstructure:"https_proxy"`
	NoProxy    string `mapstructure:"no_proxy"`
}

// DefaultConfig returns the default predictor configuration
func DefaultConfig() Config {
	return Config{
		Backend: "lexicon",
		BaseURL: "http://localhost:8000",
		Timeout: 60,
		Window:  absa.DefaultWindow,
	}
}
