package server

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/tundex/resume-parser/internal/async"
	"github.com/tundex/resume-parser/internal/export"
	"github.com/tundex/resume-parser/internal/ingest"
	"github.com/tundex/resume-parser/internal/pipeline"
	"github.com/tundex/resume-parser/internal/repository"
)

// Server is the HTTP surface over ingest, extraction and search.
type Server struct {
	logger     *slog.Logger
	ingestor   ingest.Ingestor
	processor  *pipeline.Processor
	queue      async.Queue
	candidates repository.CandidateRepository
	exporter   *export.Service
	db         *sql.DB
	maxUpload  int64

	httpSrv *http.Server
}

type Deps struct {
	Logger     *slog.Logger
	Ingestor   ingest.Ingestor
	Processor  *pipeline.Processor
	Queue      async.Queue
	Candidates repository.CandidateRepository
	Exporter   *export.Service
	DB         *sql.DB
	MaxUpload  int64
}

func New(addr string, deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		logger:     logger,
		ingestor:   deps.Ingestor,
		processor:  deps.Processor,
		queue:      deps.Queue,
		candidates: deps.Candidates,
		exporter:   deps.Exporter,
		db:         deps.DB,
		maxUpload:  deps.MaxUpload,
	}
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/resumes", s.handleUploadResume)
	mux.HandleFunc("/v1/candidates", s.handleListCandidates)
	mux.HandleFunc("/v1/candidates/search", s.handleSearchCandidates)
	mux.HandleFunc("/v1/candidates/export", s.handleExportCandidates)
	mux.HandleFunc("/v1/candidates/", s.handleGetCandidate)

	mux.HandleFunc("/healthz", s.handleHealth)

	return mux
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpSrv.Addr)
	err := s.httpSrv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := repository.HealthCheck(r.Context(), s.db, 2*time.Second, s.logger); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
