package predict

import (
	"context"

	"github.com/ppiankov/cyberabsa/internal/absa"
)

// LexiconPredictor is the built-in deterministic baseline: aspect terms come
// from the pattern catalog and sentiments from the keyword-window classifier.
// It needs no external service, so confidence is always 1.0.
type LexiconPredictor struct {
	window int
}

// NewLexiconPredictor creates a lexicon predictor with the given context
// window (words on each side of an aspect). Zero or negative falls back to
// the default window.
func NewLexiconPredictor(window int) *LexiconPredictor {
	if window <= 0 {
		window = absa.DefaultWindow
	}
	return &LexiconPredictor{window: window}
}

// Name returns the backend name
func (p *LexiconPredictor) Name() string {
	return "lexicon"
}

// IsAvailable always reports true: the lexicon runs in-process
func (p *LexiconPredictor) IsAvailable(ctx context.Context) bool {
	return true
}

// Predict extracts aspects and classifies their sentiment for each text.
// The only error source is context cancellation between texts.
func (p *LexiconPredictor) Predict(ctx context.Context, texts []string) ([]Prediction, error) {
	predictions := make([]Prediction, 0, len(texts))

	for _, text := range texts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		matches := absa.FindAspects(text)

		pred := Prediction{
			Aspects:     make([]string, 0, len(matches)),
			Sentiments:  make([]string, 0, len(matches)),
			Confidences: make([]float64, 0, len(matches)),
		}
		for _, m := range matches {
			sentiment := absa.ClassifySentiment(text, m.Start, m.End, p.window)
			pred.Aspects = append(pred.Aspects, m.Text)
			pred.Sentiments = append(pred.Sentiments, sentiment.Label())
			pred.Confidences = append(pred.Confidences, 1.0)
		}
		predictions = append(predictions, pred)
	}

	return predictions, nil
}
