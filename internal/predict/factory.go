package predict

import (
	"fmt"
	"strings"
)

// New creates a predictor based on configuration. The checkpoint name is
// forwarded to server backends so the inference server knows which trained
// model to use; the lexicon baseline ignores it.
func New(config Config, checkpoint string) (Predictor, error) {
	backend := strings.ToLower(config.Backend)

	switch backend {
	case "lexicon", "":
		// Built-in baseline - no external service needed
		return NewLexiconPredictor(config.Window), nil

	case "server":
		return NewServerPredictor(config, checkpoint)

	default:
		return nil, fmt.Errorf("unknown model backend: %s (supported: lexicon, server)", config.Backend)
	}
}
