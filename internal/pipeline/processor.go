package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"

	"github.com/tundex/resume-parser/constants"
	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/entity"
	"github.com/tundex/resume-parser/internal/extract"
	"github.com/tundex/resume-parser/internal/repository"
)

// DefaultConfidence is the fixed score attached to every successful
// extraction until a real scoring model exists.
const DefaultConfidence float32 = 0.85

// Processor coordinates one full extraction run per stored file: read the
// document, extract, validate the result, persist the candidate, and
// advance the job row through its lifecycle.
type Processor struct {
	logger     *slog.Logger
	extractor  *extract.Extractor
	filesRepo  repository.ResumeFileRepository
	jobsRepo   repository.ExtractJobRepository
	candidates repository.CandidateRepository
	confidence float32
}

func NewProcessor(
	logger *slog.Logger,
	extractor *extract.Extractor,
	filesRepo repository.ResumeFileRepository,
	jobsRepo repository.ExtractJobRepository,
	candidates repository.CandidateRepository,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:     logger,
		extractor:  extractor,
		filesRepo:  filesRepo,
		jobsRepo:   jobsRepo,
		candidates: candidates,
		confidence: DefaultConfidence,
	}
}

// ProcessFile runs extraction for a stored fileID. A job row is created in
// RUNNING before any work starts; every failure past that point marks the
// job FAILED with the cause, so the jobs table is the audit trail for the
// whole pipeline. Returns the job ID alongside the persisted candidate.
func (p *Processor) ProcessFile(ctx context.Context, fileID uuid.UUID) (uuid.UUID, *entity.Candidate, error) {
	row, err := p.filesRepo.GetByID(ctx, fileID)
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("get file: %w", err)
	}

	format := constants.MapExtToFormat(row.FileExt)
	if format == "" {
		return uuid.Nil, nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, row.FileExt)
	}

	job, err := p.jobsRepo.Start(ctx, row.ID, string(format))
	if err != nil {
		return uuid.Nil, nil, err
	}

	data, err := os.ReadFile(row.SourcePath)
	if err != nil {
		return p.fail(ctx, job.ID, fmt.Errorf("read source: %w", err))
	}

	res, err := p.extractor.Extract(ctx, extract.RawDocument{Data: data, Format: format})
	if err != nil {
		return p.fail(ctx, job.ID, err)
	}

	raw, err := json.Marshal(res)
	if err != nil {
		return p.fail(ctx, job.ID, fmt.Errorf("encode result: %w", err))
	}
	if err := ValidateJSONAgainstSchema(BuildExtractionJSONSchema(), raw); err != nil {
		return p.fail(ctx, job.ID, fmt.Errorf("validate result: %w", err))
	}

	cand, err := p.candidates.CreateFromExtraction(ctx, row.ID, res, p.confidence)
	if err != nil {
		return p.fail(ctx, job.ID, err)
	}

	if err := p.jobsRepo.FinishSuccess(ctx, job.ID, cand.ID, p.confidence, raw); err != nil {
		return job.ID, cand, err
	}

	p.logger.Info("processor.extract.ok",
		"file_id", fileID,
		"job_id", job.ID,
		"candidate_id", cand.ID,
		"format", string(format),
		"confidence", p.confidence,
	)
	return job.ID, cand, nil
}

func (p *Processor) fail(ctx context.Context, jobID uuid.UUID, cause error) (uuid.UUID, *entity.Candidate, error) {
	p.logger.Error("processor.extract.failed", "job_id", jobID, "error", cause)
	if err := p.jobsRepo.FinishFailure(ctx, jobID, cause.Error()); err != nil {
		p.logger.Error("processor.job.update_failed", "job_id", jobID, "error", err)
	}
	return jobID, nil, cause
}
