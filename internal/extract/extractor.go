package extract

import (
	"context"
	"log/slog"
	"sync"

	"github.com/tundex/resume-parser/constants"
)

// Extractor composes the document reader, entity recognizer and section
// segmenter into one extraction pass per document. It is the only surface
// the surrounding service consumes.
//
// The pipeline holds no shared mutable state across calls; callers wanting
// throughput run extractions for independent documents in parallel.
// Deadlines belong to the caller: wrap the context handed to Extract.
type Extractor struct {
	reader     *Reader
	recognizer *Recognizer
	segmenter  *Segmenter
	logger     *slog.Logger
}

func NewExtractor(reader *Reader, recognizer *Recognizer, segmenter *Segmenter, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		reader:     reader,
		recognizer: recognizer,
		segmenter:  segmenter,
		logger:     logger,
	}
}

// Extract runs the full pipeline for one document. A reader failure aborts
// the whole call with the error unchanged; past that point the recognizer
// and segmenter run concurrently over the same immutable text and degrade
// to empty output rather than failing. Scalar name/email/phone are the
// first PERSON/EMAIL/PHONE values when present, nil otherwise.
func (e *Extractor) Extract(ctx context.Context, doc RawDocument) (*ExtractionResult, error) {
	text, err := e.reader.Read(doc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		wg         sync.WaitGroup
		entities   EntityMap
		education  []string
		experience []string
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		entities = e.recognizer.Recognize(text)
	}()
	go func() {
		defer wg.Done()
		education = e.segmenter.FindEducation(text)
		experience = e.segmenter.FindExperience(text)
	}()
	wg.Wait()

	res := &ExtractionResult{
		Name:       entities.First(constants.CategoryPerson),
		Email:      entities.First(constants.CategoryEmail),
		Phone:      entities.First(constants.CategoryPhone),
		Skills:     entities[constants.CategorySkill],
		Education:  emptyIfNil(education),
		Experience: emptyIfNil(experience),
		Entities:   entities,
	}

	e.logger.Debug("extract.ok",
		"format", string(doc.Format),
		"text_bytes", len(text),
		"skills", len(res.Skills),
		"education_lines", len(res.Education),
		"experience_lines", len(res.Experience),
	)
	return res, nil
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
