package predict

import (
	"context"

	"github.com/ppiankov/cyberabsa/internal/absa"
	"github.com/ppiankov/cyberabsa/internal/model"
)

// ToAnalysis converts one prediction into the presentation shape used by the
// HTTP service and reports. Sentiment labels become human-readable names and
// positions missing from short sentiment/confidence slices render as "N/A".
func ToAnalysis(text string, pred Prediction) model.Analysis {
	aspects := make([]model.AspectResult, 0, len(pred.Aspects))

	for i, aspect := range pred.Aspects {
		sentiment := "N/A"
		if i < len(pred.Sentiments) {
			sentiment = absa.NameForLabel(pred.Sentiments[i])
		}

		var confidence any = "N/A"
		if i < len(pred.Confidences) {
			confidence = pred.Confidences[i]
		}

		aspects = append(aspects, model.AspectResult{
			Aspect:     aspect,
			Sentiment:  sentiment,
			Confidence: confidence,
		})
	}

	return model.Analysis{Text: text, Aspects: aspects}
}

// Analyze runs the predictor on a single text. A backend failure becomes an
// error analysis rather than an error return: failures are data for the
// caller to report alongside successful texts.
func Analyze(ctx context.Context, p Predictor, text string) model.Analysis {
	preds, err := p.Predict(ctx, []string{text})
	if err != nil {
		return model.Analysis{Text: text, Error: err.Error()}
	}
	if len(preds) == 0 {
		return model.Analysis{Text: text, Aspects: []model.AspectResult{}}
	}

	return ToAnalysis(text, preds[0])
}
