package pipeline

import (
	"github.com/tundex/resume-parser/constants"
)

// BuildExtractionJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. Extraction output is validated against it before anything is
// persisted, so a malformed result fails the job instead of poisoning the
// candidates table.
func BuildExtractionJSONSchema() map[string]any {
	entityProps := map[string]any{}
	entityRequired := make([]string, 0, len(constants.AllCategories()))
	for _, c := range constants.AllCategories() {
		entityProps[string(c)] = stringArrayProp()
		entityRequired = append(entityRequired, string(c))
	}

	props := map[string]any{
		"name":       map[string]any{"type": "string", "minLength": 1},
		"email":      map[string]any{"type": "string", "minLength": 3},
		"phone":      map[string]any{"type": "string", "minLength": 8},
		"skills":     stringArrayProp(),
		"education":  stringArrayProp(),
		"experience": stringArrayProp(),
		"entities": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           entityProps,
			"required":             entityRequired,
		},
	}
	// Scalars are omitted when absent, never null.
	required := []string{"skills", "education", "experience", "entities"}

	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
	}
}

func stringArrayProp() map[string]any {
	return map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
}
