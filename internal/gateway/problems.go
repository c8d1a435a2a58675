package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
)

type problemDTO struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// problemText extracts the user-facing text of a "problems" field. The server sends
// null, a string, a single problem object or an array of problem objects. An empty
// result means the response carries no problem.
func problemText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	switch raw[0] {
	case '"':
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			return strings.TrimSpace(text)
		}
	case '[':
		var problems []problemDTO
		if err := json.Unmarshal(raw, &problems); err == nil {
			return joinProblems(problems)
		}
		var texts []string
		if err := json.Unmarshal(raw, &texts); err == nil {
			return joinTexts(texts)
		}
	case '{':
		var problem problemDTO
		if err := json.Unmarshal(raw, &problem); err == nil {
			return joinProblems([]problemDTO{problem})
		}
	}

	return strings.TrimSpace(string(raw))
}

func joinProblems(problems []problemDTO) string {
	texts := make([]string, 0, len(problems))
	for _, p := range problems {
		if p.Message != "" {
			texts = append(texts, p.Message)
		} else {
			texts = append(texts, p.Code)
		}
	}
	return joinTexts(texts)
}

func joinTexts(texts []string) string {
	parts := make([]string, 0, len(texts))
	for _, text := range texts {
		if text = strings.TrimSpace(text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "; ")
}
