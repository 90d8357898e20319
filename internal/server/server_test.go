package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/tundex/resume-parser/internal/async"
	"github.com/tundex/resume-parser/internal/common"
	"github.com/tundex/resume-parser/internal/entity"
	"github.com/tundex/resume-parser/internal/export"
	"github.com/tundex/resume-parser/internal/extract"
	"github.com/tundex/resume-parser/internal/ingest"
	"github.com/tundex/resume-parser/internal/pipeline"
	"github.com/tundex/resume-parser/internal/repository"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
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
	jobs := repository.NewExtractJobRepository(db, logger)
	candidates := repository.NewCandidateRepository(db, logger)

	tagger := extract.TaggerFunc(func(text string) []extract.Span {
		if strings.Contains(text, "Jane Smith") {
			return []extract.Span{{Text: "Jane Smith", Label: "PERSON"}}
		}
		return nil
	})
	extractor := extract.NewExtractor(
		extract.NewReader(),
		extract.NewRecognizer(tagger, []string{"go", "python"}, logger),
		extract.NewSegmenter(),
		logger,
	)
	processor := pipeline.NewProcessor(logger, extractor, files, jobs, candidates)
	queue := async.NewProcessorQueue(processor, logger, async.WithWorkers(1))
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		queue.Shutdown(ctx)
	})

	ingestor := ingest.NewFSIngestor(files, filepath.Join(t.TempDir(), "uploads"), logger)
	exporter := export.NewService(candidates, files, logger)

	srv := New(":0", Deps{
		Logger:     logger,
		Ingestor:   ingestor,
		Processor:  processor,
		Queue:      queue,
		Candidates: candidates,
		Exporter:   exporter,
		DB:         db,
		MaxUpload:  1 << 20,
	})
	return srv.Handler()
}

func docxBytes(t *testing.T, paragraphs ...string) []byte {
	t.Helper()

	var body strings.Builder
	for _, p := range paragraphs {
		fmt.Fprintf(&body, "<w:p><w:r><w:t>%s</w:t></w:r></w:p>", p)
	}
	documentXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		body.String() +
		`</w:body></w:document>`
	relsXML := `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range []struct{ name, content string }{
		{"word/document.xml", documentXML},
		{"word/_rels/document.xml.rels", relsXML},
	} {
		w, err := zw.Create(entry.name)
		if err != nil {
			t.Fatalf("create zip entry: %v", err)
		}
		if _, err := w.Write([]byte(entry.content)); err != nil {
			t.Fatalf("write zip entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func multipartUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func uploadResume(t *testing.T, h http.Handler, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartUpload(t, filename, content)
	req := httptest.NewRequest(http.MethodPost, "/v1/resumes", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUploadResumeAndQuery(t *testing.T) {
	h := newTestServer(t)

	doc := docxBytes(t,
		"Jane Smith",
		"jane@x.com | +1 555-123-4567",
		"Stanford University",
		"Experience",
		"Engineer at Acme writing Go",
	)
	rec := uploadResume(t, h, "jane.docx", doc)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload status: got %d, body %s", rec.Code, rec.Body.String())
	}

	var up uploadResponse
	if err := json.NewDecoder(rec.Body).Decode(&up); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if up.Candidate == nil {
		t.Fatal("expected candidate in response")
	}
	if up.Candidate.FullName == nil || *up.Candidate.FullName != "Jane Smith" {
		t.Errorf("full_name: got %v", up.Candidate.FullName)
	}
	if up.JobID == "" || up.FileID == "" {
		t.Errorf("missing ids in response: %+v", up)
	}

	// Fetch by ID
	req := httptest.NewRequest(http.MethodGet, "/v1/candidates/"+up.Candidate.ID.String(), nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("get candidate status: got %d", rec.Code)
	}
	var cand entity.Candidate
	if err := json.NewDecoder(rec.Body).Decode(&cand); err != nil {
		t.Fatalf("decode candidate: %v", err)
	}
	if cand.Email == nil || *cand.Email != "jane@x.com" {
		t.Errorf("email: got %v", cand.Email)
	}

	// List
	req = httptest.NewRequest(http.MethodGet, "/v1/candidates", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status: got %d", rec.Code)
	}
	var list candidateListResponse
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if list.Count != 1 {
		t.Errorf("list count: got %d", list.Count)
	}

	// Search hits and misses
	for _, tc := range []struct {
		query string
		want  int
	}{
		{"/v1/candidates/search?q=jane", 1},
		{"/v1/candidates/search?skill=go", 1},
		{"/v1/candidates/search?skill=cobol", 0},
	} {
		req = httptest.NewRequest(http.MethodGet, tc.query, nil)
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status %d", tc.query, rec.Code)
		}
		var res candidateListResponse
		if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
			t.Fatalf("%s: decode: %v", tc.query, err)
		}
		if res.Count != tc.want {
			t.Errorf("%s: count %d, want %d", tc.query, res.Count, tc.want)
		}
	}
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	h := newTestServer(t)
	rec := uploadResume(t, h, "notes.txt", []byte("plain text"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d, want 400", rec.Code)
	}
}

func TestUploadCorruptDocument(t *testing.T) {
	h := newTestServer(t)
	rec := uploadResume(t, h, "broken.docx", []byte("not a zip"))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got %d, want 422, body %s", rec.Code, rec.Body.String())
	}
}

func TestGetCandidateErrors(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/candidates/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id: got %d, want 400", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/candidates/1b4e28ba-2fa1-11d2-883f-0016d3cca427", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown id: got %d, want 404", rec.Code)
	}
}

func TestExportCandidates(t *testing.T) {
	h := newTestServer(t)

	doc := docxBytes(t, "Jane Smith", "jane@x.com")
	if rec := uploadResume(t, h, "jane.docx", doc); rec.Code != http.StatusCreated {
		t.Fatalf("upload status: %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/candidates/export", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status: got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("content type: got %q", ct)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected workbook bytes")
	}
}

func TestHealthz(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status: got %d", rec.Code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t)
	req := httptest.NewRequest(http.MethodDelete, "/v1/candidates", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status: got %d, want 405", rec.Code)
	}
}
