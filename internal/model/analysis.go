package model

import "encoding/json"

// AspectResult is one extracted aspect with its classified sentiment.
// Confidence is a float64 when the model reported one and the string "N/A"
// when it did not.
type AspectResult struct {
	Aspect     string `json:"aspect"`
	Sentiment  string `json:"sentiment"`
	Confidence any    `json:"confidence"`
}

// Analysis is the per-text outcome of aspect extraction: either the aspect
// list or an error marker. A failed text is data, not a transport failure.
type Analysis struct {
	Text    string
	Aspects []AspectResult
	Error   string
}

// MarshalJSON emits {"text", "aspects"} for successes (with an empty array
// when nothing was extracted) and {"text", "error"} for failures.
func (a Analysis) MarshalJSON() ([]byte, error) {
	if a.Error != "" {
		return json.Marshal(struct {
			Text  string `json:"text"`
			Error string `json:"error"`
		}{a.Text, a.Error})
	}
	aspects := a.Aspects
	if aspects == nil {
		aspects = []AspectResult{}
	}
	return json.Marshal(struct {
		Text    string         `json:"text"`
		Aspects []AspectResult `json:"aspects"`
	}{a.Text, aspects})
}

// UnmarshalJSON accepts both shapes produced by MarshalJSON.
func (a *Analysis) UnmarshalJSON(data []byte) error {
	var raw struct {
		Text    string         `json:"text"`
		Aspects []AspectResult `json:"aspects"`
		Error   string         `json:"error"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.Text = raw.Text
	a.Aspects = raw.Aspects
	a.Error = raw.Error
	return nil
}
