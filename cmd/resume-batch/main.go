package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/export"
	"github.com/tundex/resume-parser/internal/extract"
	"github.com/tundex/resume-parser/internal/ingest"
	"github.com/tundex/resume-parser/internal/pipeline"
	repo "github.com/tundex/resume-parser/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	_ = godotenv.Load()

	// Parse CLI flags
	var (
		inmem = flag.Bool("inmem", false, "use in-memory SQLite database")
		dir   = flag.String("dir", "", "directory to process resumes from (required)")
		out   = flag.String("out", "", "output XLSX file path (optional, defaults to parent directory)")
		query = flag.String("q", "", "name/email filter for the export")
		skill = flag.String("skill", "", "skill filter for the export")
	)
	flag.Parse()

	if *dir == "" {
		printError("Error: --dir is required\n")
		os.Exit(1)
	}
	if *out == "" {
		parentDir := filepath.Dir(*dir)
		*out = filepath.Join(parentDir, "candidates.xlsx")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	cfg := common.LoadConfig()
	if *inmem {
		cfg.Database.Driver = "sqlite"
		cfg.Database.DSN = ":memory:"
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(db, logger)
	if err := repo.ApplySchema(ctx, db, logger); err != nil {
		logger.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	filesRepo := repo.NewResumeFileRepository(db, logger)
	jobsRepo := repo.NewExtractJobRepository(db, logger)
	candidatesRepo := repo.NewCandidateRepository(db, logger)

	tagger, err := extract.NewProseTagger()
	if err != nil {
		logger.Error("entity model unavailable", "error", err)
		os.Exit(1)
	}
	extractor := extract.NewExtractor(
		extract.NewReader(),
		extract.NewRecognizer(tagger, nil, logger),
		extract.NewSegmenter(),
		logger,
	)
	processor := pipeline.NewProcessor(logger, extractor, filesRepo, jobsRepo, candidatesRepo)
	ingestor := ingest.NewFSIngestor(filesRepo, cfg.Extract.UploadDir, logger)

	// Ingest directory
	logger.Info("starting ingestion", "dir", *dir)
	ingestionResults, stats, err := ingestor.IngestDirectory(ctx, *dir, true)
	if err != nil {
		logger.Error("failed to ingest directory", "error", err)
		os.Exit(1)
	}

	var ingested []uuid.UUID
	for _, result := range ingestionResults {
		if result.Err == "" {
			fileID, err := uuid.Parse(result.FileID)
			if err != nil {
				logger.Error("failed to parse file ID", "file_id", result.FileID, "error", err)
				continue
			}
			ingested = append(ingested, fileID)
		}
	}
	logger.Info("ingestion complete",
		"files_ingested", len(ingested),
		"scanned", stats.Scanned,
		"matched", stats.Matched,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"deduplicated", stats.Deduplicated)

	// Process each ingested file
	processed := 0
	failures := 0
	for _, fileID := range ingested {
		logger.Info("processing file", "file_id", fileID)
		if _, _, err := processor.ProcessFile(ctx, fileID); err != nil {
			logger.Error("failed to process file", "file_id", fileID, "error", err)
			failures++
		} else {
			processed++
		}
	}

	// Export to XLSX
	logger.Info("exporting to XLSX", "output", *out)
	exportService := export.NewService(candidatesRepo, filesRepo, logger)
	xlsxBytes, err := exportService.ExportCandidatesXLSX(ctx, *query, *skill)
	if err != nil {
		logger.Error("failed to export candidates", "error", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*out, xlsxBytes, 0644); err != nil {
		logger.Error("failed to write output file", "error", err)
		os.Exit(1)
	}

	logger.Info("batch processing complete",
		"files_ingested", len(ingested),
		"files_processed", processed,
		"failures", failures,
		"output_file", *out)

	fmt.Printf("Batch processing complete!\n")
	fmt.Printf("- Files ingested: %d\n", len(ingested))
	fmt.Printf("- Files processed: %d\n", processed)
	fmt.Printf("- Failures: %d\n", failures)
	fmt.Printf("- Output: %s\n", *out)
}
