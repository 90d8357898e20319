package extract

import (
	"log/slog"
	"strings"

	"github.com/tundex/resume-parser/constants"
)

// Recognizer merges regex contact fields, statistical model spans and
// vocabulary skill hits into one entity map.
type Recognizer struct {
	tagger Tagger
	vocab  []string
	logger *slog.Logger
}

func NewRecognizer(tagger Tagger, vocab []string, logger *slog.Logger) *Recognizer {
	if logger == nil {
		logger = slog.Default()
	}
	if vocab == nil {
		vocab = constants.SkillVocabulary
	}
	return &Recognizer{tagger: tagger, vocab: vocab, logger: logger}
}

// Recognize builds the entity map for text.
//
// Regex results are authoritative for EMAIL and PHONE; model spans carrying
// those labels are discarded. PERSON/ORG/DATE values keep model-order
// duplicates intact to preserve the frequency signal for downstream
// consumers; callers needing dedup must do it themselves. SKILL holds one
// entry per vocabulary term present anywhere in the text, regardless of
// repeat mentions. Text the model cannot process (empty input) leaves
// PERSON/ORG/DATE empty; that is normal output, not an error.
func (r *Recognizer) Recognize(text string) EntityMap {
	em := NewEntityMap()

	matches := ExtractFields(text)
	em[constants.CategoryEmail] = append(em[constants.CategoryEmail], matches.Emails...)
	em[constants.CategoryPhone] = append(em[constants.CategoryPhone], matches.Phones...)

	if strings.TrimSpace(text) != "" {
		for _, span := range r.tagger.Entities(text) {
			switch c := constants.Category(span.Label); c {
			case constants.CategoryPerson, constants.CategoryOrg, constants.CategoryDate:
				em[c] = append(em[c], span.Text)
			}
		}
	}

	lower := strings.ToLower(text)
	for _, term := range r.vocab {
		if strings.Contains(lower, term) {
			em[constants.CategorySkill] = append(em[constants.CategorySkill], term)
		}
	}

	r.logger.Debug("recognize.ok",
		"emails", len(em[constants.CategoryEmail]),
		"phones", len(em[constants.CategoryPhone]),
		"persons", len(em[constants.CategoryPerson]),
		"skills", len(em[constants.CategorySkill]),
	)
	return em
}
