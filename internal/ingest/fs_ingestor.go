package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tundex/resume-parser/constants"
	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/repository"
)

// FSIngestor reads from the local filesystem.
type FSIngestor struct {
	FilesRepo repository.ResumeFileRepository
	UploadDir string
	logger    *slog.Logger
}

func NewFSIngestor(files repository.ResumeFileRepository, uploadDir string, logger *slog.Logger) *FSIngestor {
	if logger == nil {
		logger = slog.Default()
	}
	if uploadDir == "" {
		uploadDir = "./uploads"
	}
	return &FSIngestor{
		FilesRepo: files,
		UploadDir: uploadDir,
		logger:    logger,
	}
}

// IngestPath registers one on-disk document. Files already seen (same
// content hash) are not re-registered; the existing row is returned with
// Deduplicated set so callers can still trigger a re-extraction from it.
func (i *FSIngestor) IngestPath(ctx context.Context, path string) (IngestionResult, error) {
	var out IngestionResult

	abs, err := filepath.Abs(path)
	if err != nil {
		i.logger.Error("abs path failed", "path", path, "error", err)
		return out, err
	}

	ext := constants.NormalizeExt(filepath.Ext(abs))
	if ext == "" || !AllowedExt(ext) {
		i.logger.Warn("unsupported or missing extension", "path", abs, "ext", ext)
		return out, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}

	f, err := os.Open(abs)
	if err != nil {
		i.logger.Error("open failed", "path", abs, "error", err)
		return out, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			i.logger.Error("close failed", "path", abs, "error", err)
		}
	}()

	h := sha256.New()
	size, err := io.Copy(h, f)
	if err != nil {
		i.logger.Error("hash failed", "path", abs, "error", err)
		return out, err
	}
	hashHex := hex.EncodeToString(h.Sum(nil))

	if existing, err := i.FilesRepo.GetByHash(ctx, hashHex); err == nil {
		return IngestionResult{
			SourcePath:   existing.SourcePath,
			FileID:       existing.ID.String(),
			Deduplicated: true,
			HashHex:      existing.ContentHash,
			FileExt:      existing.FileExt,
			UploadedAt:   existing.UploadedAt,
		}, nil
	} else if !errors.Is(err, common.ErrNotFound) {
		return out, err
	}

	row, err := i.FilesRepo.Create(ctx, abs, filepath.Base(abs), ext, int(size), hashHex, time.Now().UTC())
	if err != nil {
		return out, err
	}

	out = IngestionResult{
		SourcePath: row.SourcePath,
		FileID:     row.ID.String(),
		HashHex:    row.ContentHash,
		FileExt:    row.FileExt,
		UploadedAt: row.UploadedAt,
	}
	return out, nil
}

// IngestUpload copies an uploaded stream into the upload directory under a
// collision-free name and registers the stored copy. maxBytes caps the
// upload; exceeding it aborts with ErrInvalidInput and removes the partial
// file.
func (i *FSIngestor) IngestUpload(ctx context.Context, filename string, r io.Reader, maxBytes int64) (IngestionResult, error) {
	var out IngestionResult

	ext := constants.NormalizeExt(filepath.Ext(filename))
	if ext == "" || !AllowedExt(ext) {
		i.logger.Warn("unsupported or missing extension", "filename", filename, "ext", ext)
		return out, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, ext)
	}

	if err := os.MkdirAll(i.UploadDir, 0o755); err != nil {
		return out, err
	}
	dst := filepath.Join(i.UploadDir, uuid.NewString()+"_"+filepath.Base(filename))

	f, err := os.Create(dst)
	if err != nil {
		return out, err
	}

	h := sha256.New()
	limited := r
	if maxBytes > 0 {
		limited = io.LimitReader(r, maxBytes+1)
	}
	size, err := io.Copy(io.MultiWriter(f, h), limited)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return out, err
	}
	if maxBytes > 0 && size > maxBytes {
		_ = os.Remove(dst)
		return out, fmt.Errorf("%w: upload exceeds %d bytes", common.ErrInvalidInput, maxBytes)
	}

	row, err := i.FilesRepo.Create(ctx, dst, filepath.Base(filename), ext, int(size), hex.EncodeToString(h.Sum(nil)), time.Now().UTC())
	if err != nil {
		_ = os.Remove(dst)
		return out, err
	}

	i.logger.Info("upload stored", "file_id", row.ID, "filename", row.Filename, "bytes", size)
	out = IngestionResult{
		SourcePath: row.SourcePath,
		FileID:     row.ID.String(),
		HashHex:    row.ContentHash,
		FileExt:    row.FileExt,
		UploadedAt: row.UploadedAt,
	}
	return out, nil
}

// IngestDirectory walks root, skips hidden if requested,
// and calls IngestPath for each file. Returns per-file results + aggregate stats.
func (i *FSIngestor) IngestDirectory(
	ctx context.Context,
	root string,
	skipHidden bool,
) ([]IngestionResult, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, errors.New("root_path is required")
	}

	var results []IngestionResult
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		stats.Scanned++
		if walkErr != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: walkErr.Error()})
			stats.Failed++
			return nil
		}
		if skipHidden && IsHidden(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			return nil
		}
		ext := constants.NormalizeExt(filepath.Ext(path))
		if !AllowedExt(ext) {
			return nil
		}
		stats.Matched++

		r, err := i.IngestPath(ctx, path)
		if err != nil {
			results = append(results, IngestionResult{SourcePath: path, Err: err.Error()})
			stats.Failed++
			return nil
		}

		results = append(results, r)
		stats.Succeeded++
		if r.Deduplicated {
			stats.Deduplicated++
		}
		return nil
	})

	if err != nil {
		return results, stats, fmt.Errorf("walk: %w", err)
	}
	return results, stats, nil
}
