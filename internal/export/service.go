package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tundex/resume-parser/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	candidates repository.CandidateRepository
	filesRepo  repository.ResumeFileRepository
	logger     *slog.Logger
}

func NewService(candidates repository.CandidateRepository, filesRepo repository.ResumeFileRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{candidates: candidates, filesRepo: filesRepo, logger: logger}
}

// ExportCandidatesXLSX returns an XLSX workbook (as bytes) with one row per
// candidate matching the query and skill filters. Empty filters export
// everything.
func (s *Service) ExportCandidatesXLSX(ctx context.Context, query, skill string) ([]byte, error) {
	start := time.Now()

	cands, err := s.candidates.Search(ctx, query, skill)
	if err != nil {
		return nil, fmt.Errorf("query candidates: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Candidates"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Full Name",
		"Email",
		"Phone",
		"Skills",
		"Education",
		"Experience",
		"Confidence",
		"Source File",
		"Uploaded",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, c := range cands {
		// Resolve the original filename for traceability.
		sourceFile := ""
		uploaded := ""
		if fileRow, err := s.filesRepo.GetByID(ctx, c.FileID); err == nil && fileRow != nil {
			sourceFile = fileRow.Filename
			uploaded = fileRow.UploadedAt.Format("2006-01-02")
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, deref(c.FullName))
		write(2, deref(c.Email))
		write(3, deref(c.Phone))
		write(4, strings.Join(c.Skills, ", "))
		write(5, truncate(strings.Join(c.Education, "; "), 140))
		write(6, truncate(strings.Join(c.Experience, "; "), 200))
		write(7, fmt.Sprintf("%.2f", c.Confidence))
		write(8, sourceFile)
		write(9, uploaded)

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 24) // name
	_ = f.SetColWidth(sheet, "B", "B", 30) // email
	_ = f.SetColWidth(sheet, "C", "C", 18) // phone
	_ = f.SetColWidth(sheet, "D", "D", 36) // skills
	_ = f.SetColWidth(sheet, "E", "F", 48) // education/experience
	_ = f.SetColWidth(sheet, "G", "G", 12) // confidence
	_ = f.SetColWidth(sheet, "H", "H", 32) // source
	_ = f.SetColWidth(sheet, "I", "I", 12) // uploaded

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(cands),
		"query", query,
		"skill", skill,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
