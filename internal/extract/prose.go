package extract

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"

	"github.com/tundex/resume-parser/internal/common"
)

// ProseTagger backs the Tagger interface with the pretrained prose NER
// model. The model data ships with the library and is process-wide
// read-only state; concurrent Entities calls over independent documents
// are safe.
type ProseTagger struct{}

// NewProseTagger loads the model once so a broken install surfaces as
// ErrModelUnavailable at startup instead of per request.
func NewProseTagger() (*ProseTagger, error) {
	if _, err := prose.NewDocument("startup check"); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrModelUnavailable, err)
	}
	return &ProseTagger{}, nil
}

// Entities runs the model over text and returns its labeled spans. Label
// names follow the model's tag set; ORGANIZATION is folded into ORG. Text
// the model cannot process yields no spans rather than an error.
func (t *ProseTagger) Entities(text string) []Span {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil
	}

	ents := doc.Entities()
	spans := make([]Span, 0, len(ents))
	for _, e := range ents {
		label := e.Label
		if label == "ORGANIZATION" {
			label = "ORG"
		}
		spans = append(spans, Span{Text: e.Text, Label: label})
	}
	return spans
}
