package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tundex/resume-parser/constants"
	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/entity"
)

type ExtractJobRepository interface {
	Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error)
	FinishSuccess(ctx context.Context, jobID, candidateID uuid.UUID, confidence float32, extracted json.RawMessage) error
	FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtractJob, error)
}

type extractJobRepo struct {
	db  *sql.DB
	log *slog.Logger
}

func NewExtractJobRepository(db *sql.DB, log *slog.Logger) ExtractJobRepository {
	return &extractJobRepo{db: db, log: log}
}

func (r *extractJobRepo) Start(ctx context.Context, fileID uuid.UUID, format string) (*entity.ExtractJob, error) {
	job := &entity.ExtractJob{
		ID:        uuid.New(),
		FileID:    fileID,
		Format:    format,
		Status:    string(constants.JobStatusRunning),
		StartedAt: time.Now().UTC(),
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO extract_jobs (id, file_id, format, status, started_at)
		VALUES ($1, $2, $3, $4, $5)`,
		job.ID.String(), job.FileID.String(), job.Format, job.Status, job.StartedAt)
	if err != nil {
		r.log.Error("extract_job start failed", "file_id", fileID, "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to start extract job", err)
	}
	r.log.Info("extract_job started", "job_id", job.ID, "file_id", fileID, "format", format)
	return job, nil
}

func (r *extractJobRepo) FinishSuccess(ctx context.Context, jobID, candidateID uuid.UUID, confidence float32, extracted json.RawMessage) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE extract_jobs
		SET candidate_id = $1, status = $2, finished_at = $3, confidence = $4, extracted_json = $5
		WHERE id = $6`,
		candidateID.String(), string(constants.JobStatusExtracted), time.Now().UTC(), confidence, string(extracted), jobID.String())
	if err != nil {
		r.log.Error("extract_job finish(EXTRACTED) failed", "job_id", jobID, "error", err)
		return common.NewAppError("DB_ERROR", "failed to finish extract job", err)
	}
	r.log.Info("extract_job finished (EXTRACTED)", "job_id", jobID, "candidate_id", candidateID)
	return nil
}

func (r *extractJobRepo) FinishFailure(ctx context.Context, jobID uuid.UUID, message string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE extract_jobs
		SET status = $1, finished_at = $2, error_message = $3
		WHERE id = $4`,
		string(constants.JobStatusFailed), time.Now().UTC(), message, jobID.String())
	if err != nil {
		r.log.Error("extract_job finish(FAILED) failed", "job_id", jobID, "error", err)
		return common.NewAppError("DB_ERROR", "failed to fail extract job", err)
	}
	r.log.Warn("extract_job finished (FAILED)", "job_id", jobID, "error", message)
	return nil
}

func (r *extractJobRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ExtractJob, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, file_id, candidate_id, format, status, started_at, finished_at, error_message, confidence, extracted_json
		FROM extract_jobs
		WHERE id = $1`, id.String())

	var (
		job           entity.ExtractJob
		jobID, fileID string
		candidateID   *string
		extracted     *string
	)
	err := row.Scan(&jobID, &fileID, &candidateID, &job.Format, &job.Status,
		&job.StartedAt, &job.FinishedAt, &job.ErrorMessage, &job.Confidence, &extracted)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to scan extract job", err)
	}
	if job.ID, err = uuid.Parse(jobID); err != nil {
		return nil, common.NewAppError("DB_ERROR", "invalid job id", err)
	}
	if job.FileID, err = uuid.Parse(fileID); err != nil {
		return nil, common.NewAppError("DB_ERROR", "invalid job file id", err)
	}
	if candidateID != nil {
		cid, err := uuid.Parse(*candidateID)
		if err != nil {
			return nil, common.NewAppError("DB_ERROR", "invalid job candidate id", err)
		}
		job.CandidateID = &cid
	}
	if extracted != nil {
		job.ExtractedJSON = json.RawMessage(*extracted)
	}
	return &job, nil
}
