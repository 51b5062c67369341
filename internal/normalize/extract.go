// Package normalize turns loosely-shaped LLM output into strict report
// records. Extraction failures are errors; field-level shape mismatches
// never are.
package normalize

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
)

// ErrNoJSON is returned when a model response carries no parseable JSON
// object even after fence stripping. Callers should log the raw text at
// debug; an empty normalized record must never stand in for a parse failure.
var ErrNoJSON = eris.New("normalize: no JSON object found in model response")

// ExtractJSON pulls a single JSON value out of model output that may wrap it
// in markdown code fences or surrounding prose. It tries a direct parse
// first, then the substring from the first '{' to the last '}'.
func ExtractJSON(text string) (any, error) {
	trimmed := strings.TrimSpace(text)

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		return v, nil
	}

	cleaned := stripFences(trimmed)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}

	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &v); err != nil {
		return nil, ErrNoJSON
	}
	return v, nil
}

// stripFences removes a leading ```json or ``` fence and its closing fence.
func stripFences(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}
	return strings.TrimSpace(text)
}
