package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/tundex/resume-parser/internal/async"
	"github.com/tundex/resume-parser/internal/entity"
)

type uploadResponse struct {
	FileID       string            `json:"file_id"`
	JobID        string            `json:"job_id,omitempty"`
	Deduplicated bool              `json:"deduplicated,omitempty"`
	Status       string            `json:"status"`
	Candidate    *entity.Candidate `json:"candidate,omitempty"`
}

// handleUploadResume accepts a multipart upload under the "file" part,
// stores it, and runs extraction. With ?async=true the work is queued
// instead and the client gets a 202 with the file ID to poll on.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid multipart body"})
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing file part"})
		return
	}
	defer part.Close()

	res, err := s.ingestor.IngestUpload(r.Context(), header.Filename, part, s.maxUpload)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}
	fileID, err := uuid.Parse(res.FileID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	if r.URL.Query().Get("async") == "true" {
		if err := s.queue.Enqueue(r.Context(), async.Job{FileID: fileID, SubmittedAt: time.Now().UTC()}); err != nil {
			writeError(w, s.logger, err)
			return
		}
		writeJSON(w, http.StatusAccepted, uploadResponse{FileID: res.FileID, Status: "QUEUED"})
		return
	}

	jobID, cand, err := s.processor.ProcessFile(r.Context(), fileID)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{
		FileID:    res.FileID,
		JobID:     jobID.String(),
		Status:    "EXTRACTED",
		Candidate: cand,
	})
}
