package extract

import (
	"github.com/tundex/resume-parser/constants"
)

// RawDocument is a resume byte stream plus its declared format. The caller
// is responsible for format detection (e.g. by file extension) before
// building one. It is consumed once by the reader and then discarded.
type RawDocument struct {
	Data   []byte
	Format constants.FileFormat
}

// EntityMap maps each entity category to the values found for it, in
// encountered order. Every category from the fixed set is always present;
// no matches means an empty slice, never a missing key.
type EntityMap map[constants.Category][]string

// NewEntityMap returns an EntityMap with all categories initialized to
// empty slices.
func NewEntityMap() EntityMap {
	cats := constants.AllCategories()
	m := make(EntityMap, len(cats))
	for _, c := range cats {
		m[c] = []string{}
	}
	return m
}

// First returns a pointer to the first value of category c, or nil when the
// category is empty. Scalar result fields are never fabricated from thin
// air; they are either the first match or absent.
func (m EntityMap) First(c constants.Category) *string {
	if vals := m[c]; len(vals) > 0 {
		v := vals[0]
		return &v
	}
	return nil
}

// StringMap converts the map to plain string keys for persistence.
func (m EntityMap) StringMap() map[string][]string {
	out := make(map[string][]string, len(m))
	for c, vals := range m {
		out[string(c)] = vals
	}
	return out
}

// Span is a labeled text span produced by the statistical model.
type Span struct {
	Text  string
	Label string
}

// Tagger is the narrow interface to the statistical NER backend. Keeping it
// this small lets the model implementation (or a rule-based stub in tests)
// be swapped without touching pipeline logic.
type Tagger interface {
	Entities(text string) []Span
}

// TaggerFunc adapts a plain function to the Tagger interface.
type TaggerFunc func(text string) []Span

func (f TaggerFunc) Entities(text string) []Span { return f(text) }

// ExtractionResult is the aggregate produced once per document. It is
// immutable after creation; the persistence layer owns its storage
// lifetime. Skills aliases Entities[SKILL]: the two are the same slice.
type ExtractionResult struct {
	Name       *string   `json:"name,omitempty"`
	Email      *string   `json:"email,omitempty"`
	Phone      *string   `json:"phone,omitempty"`
	Skills     []string  `json:"skills"`
	Education  []string  `json:"education"`
	Experience []string  `json:"experience"`
	Entities   EntityMap `json:"entities"`
}
