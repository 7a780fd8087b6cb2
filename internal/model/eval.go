package model

import "encoding/json"

// EvalRecord is the outcome for one evaluated sentence: the model's parallel
// extraction lists, or an error marker when its batch failed.
type EvalRecord struct {
	Sentence    string    `json:"sentence"`
	Aspects     []string  `json:"aspect"`
	Sentiments  []string  `json:"sentiment"`
	Confidences []float64 `json:"confidence"`
	Error       string    `json:"error,omitempty"`
}

// IsError reports whether the record marks a failed prediction.
func (r EvalRecord) IsError() bool {
	return r.Error != ""
}

// MarshalJSON keeps the report format stable: error records carry only the
// error key; successful records carry the sentence plus the three lists,
// never null.
func (r EvalRecord) MarshalJSON() ([]byte, error) {
	if r.IsError() {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{r.Error})
	}
	aspects, sentiments, confidences := r.Aspects, r.Sentiments, r.Confidences
	if aspects == nil {
		aspects = []string{}
	}
	if sentiments == nil {
		sentiments = []string{}
	}
	if confidences == nil {
		confidences = []float64{}
	}
	return json.Marshal(struct {
		Sentence    string    `json:"sentence"`
		Aspects     []string  `json:"aspect"`
		Sentiments  []string  `json:"sentiment"`
		Confidences []float64 `json:"confidence"`
	}{r.Sentence, aspects, sentiments, confidences})
}

// UnmarshalJSON accepts both record shapes.
func (r *EvalRecord) UnmarshalJSON(data []byte) error {
	type alias EvalRecord
	var raw alias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = EvalRecord(raw)
	return nil
}

// EvalSummary aggregates one evaluation run over the test split. Field
// order matches the serialized report.
type EvalSummary struct {
	Checkpoint     string         `json:"checkpoint"`
	APCF1          float64        `json:"apc_f1"`
	TotalExamples  int            `json:"total_examples"`
	TotalAspects   int            `json:"total_aspects"`
	AverageAspects float64        `json:"average_aspects_per_example"`
	ErrorCount     int            `json:"error_count"`
	Distribution   map[string]int `json:"sentiment_distribution"`
	Results        []EvalRecord   `json:"results"`
}
