package export

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tundex/resume-parser/constants"
	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/extract"
	"github.com/tundex/resume-parser/internal/repository"
)

func TestExportCandidatesXLSX(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := repository.Open(context.Background(), common.DatabaseConfig{
		Driver:      "sqlite",
		DSN:         ":memory:",
		DialTimeout: time.Second,
	}, logger)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { repository.Close(db, logger) })
	if err := repository.ApplySchema(context.Background(), db, logger); err != nil {
		t.Fatalf("apply schema: %v", err)
	}

	files := repository.NewResumeFileRepository(db, logger)
	candidates := repository.NewCandidateRepository(db, logger)

	file, err := files.Create(context.Background(), "/tmp/jane.docx", "jane.docx", "docx", 1, "h1", time.Now().UTC())
	if err != nil {
		t.Fatalf("create file: %v", err)
	}

	name := "Jane Smith"
	email := "jane@x.com"
	em := extract.NewEntityMap()
	em[constants.CategoryPerson] = append(em[constants.CategoryPerson], name)
	em[constants.CategorySkill] = append(em[constants.CategorySkill], "go")
	res := &extract.ExtractionResult{
		Name:       &name,
		Email:      &email,
		Skills:     em[constants.CategorySkill],
		Education:  []string{"Stanford University"},
		Experience: []string{"Engineer at Acme"},
		Entities:   em,
	}
	if _, err := candidates.CreateFromExtraction(context.Background(), file.ID, res, 0.85); err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	svc := NewService(candidates, files, logger)
	data, err := svc.ExportCandidatesXLSX(context.Background(), "", "")
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer wb.Close()

	got, err := wb.GetCellValue("Candidates", "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if got != "Jane Smith" {
		t.Errorf("A2: expected Jane Smith, got %q", got)
	}
	skills, _ := wb.GetCellValue("Candidates", "D2")
	if skills != "go" {
		t.Errorf("D2: expected go, got %q", skills)
	}
	source, _ := wb.GetCellValue("Candidates", "H2")
	if source != "jane.docx" {
		t.Errorf("H2: expected jane.docx, got %q", source)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdef", 4); got != "abc…" {
		t.Errorf("truncate: got %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate passthrough: got %q", got)
	}
}
