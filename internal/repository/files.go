package repository

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/entity"
)

type ResumeFileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeFile, error)
	GetByHash(ctx context.Context, hash string) (*entity.ResumeFile, error)
	Create(ctx context.Context, sourcePath, filename, ext string, size int, hash string, uploadedAt time.Time) (*entity.ResumeFile, error)
}

type resumeFileRepo struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewResumeFileRepository(db *sql.DB, logger *slog.Logger) ResumeFileRepository {
	return &resumeFileRepo{
		db:     db,
		logger: logger,
	}
}

func (r *resumeFileRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ResumeFile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source_path, filename, file_ext, file_size, content_hash, uploaded_at
		FROM resume_files
		WHERE id = $1`, id.String())
	return scanResumeFile(row)
}

func (r *resumeFileRepo) GetByHash(ctx context.Context, hash string) (*entity.ResumeFile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, source_path, filename, file_ext, file_size, content_hash, uploaded_at
		FROM resume_files
		WHERE content_hash = $1
		ORDER BY uploaded_at DESC
		LIMIT 1`, hash)
	return scanResumeFile(row)
}

func (r *resumeFileRepo) Create(ctx context.Context, sourcePath, filename, ext string, size int, hash string, uploadedAt time.Time) (*entity.ResumeFile, error) {
	f := &entity.ResumeFile{
		ID:          uuid.New(),
		SourcePath:  sourcePath,
		Filename:    filename,
		FileExt:     ext,
		FileSize:    size,
		ContentHash: hash,
		UploadedAt:  uploadedAt,
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO resume_files (id, source_path, filename, file_ext, file_size, content_hash, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID.String(), f.SourcePath, f.Filename, f.FileExt, f.FileSize, f.ContentHash, f.UploadedAt)
	if err != nil {
		r.logger.Error("failed to create resume file", "source_path", sourcePath, "filename", filename, "error", err)
		return nil, common.NewAppError("DB_ERROR", "failed to create resume file", err)
	}
	return f, nil
}

func scanResumeFile(row *sql.Row) (*entity.ResumeFile, error) {
	var (
		f  entity.ResumeFile
		id string
	)
	err := row.Scan(&id, &f.SourcePath, &f.Filename, &f.FileExt, &f.FileSize, &f.ContentHash, &f.UploadedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "failed to scan resume file", err)
	}
	f.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, common.NewAppError("DB_ERROR", "invalid resume file id", err)
	}
	return &f, nil
}
