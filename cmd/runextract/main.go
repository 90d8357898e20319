package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tundex/resume-parser/constants"
	"github.com/tundex/resume-parser/internal/extract"
)

// runextract runs extraction against a single local file and prints the
// result as JSON. No database involved; handy for eyeballing what the
// pipeline sees in a given resume.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if len(os.Args) != 2 {
		logger.Error("usage", "cmd", "runextract <path-to-resume>")
		os.Exit(2)
	}
	path := os.Args[1]

	format := constants.MapExtToFormat(filepath.Ext(path))
	if format == "" {
		logger.Error("unsupported file extension", "path", path)
		os.Exit(2)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("read file", "path", path, "error", err)
		os.Exit(1)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	res, err := extractor.Extract(ctx, extract.RawDocument{Data: data, Format: format})
	if err != nil {
		logger.Error("extraction failed", "path", path, "error", err, "duration_ms", time.Since(start).Milliseconds())
		os.Exit(1)
	}
	logger.Info("extraction OK",
		"path", path,
		"format", string(format),
		"skills", len(res.Skills),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		logger.Error("encode result", "error", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}
