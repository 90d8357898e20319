package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tundex/resume-parser/internal/async"
	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/export"
	"github.com/tundex/resume-parser/internal/extract"
	"github.com/tundex/resume-parser/internal/ingest"
	"github.com/tundex/resume-parser/internal/pipeline"
	repo "github.com/tundex/resume-parser/internal/repository"
	"github.com/tundex/resume-parser/internal/server"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := repo.Open(ctx, cfg.Database, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repo.Close(db, logger)

	if err := repo.HealthCheck(ctx, db, 5*time.Second, logger); err != nil {
		logger.Error("failed to ping database", "error", err)
		os.Exit(1)
	}
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
	queue := async.NewProcessorQueue(processor, logger,
		async.WithWorkers(cfg.Extract.Workers),
		async.WithQueueSize(cfg.Extract.QueueSize),
		async.WithProcessTimeout(cfg.Extract.ProcessTimeout),
	)
	ingestor := ingest.NewFSIngestor(filesRepo, cfg.Extract.UploadDir, logger)
	exporter := export.NewService(candidatesRepo, filesRepo, logger)

	srv := server.New(cfg.Server.HTTPAddr, server.Deps{
		Logger:     logger,
		Ingestor:   ingestor,
		Processor:  processor,
		Queue:      queue,
		Candidates: candidatesRepo,
		Exporter:   exporter,
		DB:         db,
		MaxUpload:  cfg.Extract.MaxUploadBytes,
	})

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("http serve error", "error", err)
			os.Exit(1)
		}
	}()
	logger.Info("resumed listening", "addr", cfg.Server.HTTPAddr)

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	queue.Shutdown(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
