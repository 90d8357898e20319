package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ExtractJob represents one extraction run for data transfer between layers.
type ExtractJob struct {
	ID            uuid.UUID       `json:"id"`
	FileID        uuid.UUID       `json:"file_id"`
	CandidateID   *uuid.UUID      `json:"candidate_id,omitempty"`
	Format        string          `json:"format"`
	Status        string          `json:"status"`
	StartedAt     time.Time       `json:"started_at"`
	FinishedAt    *time.Time      `json:"finished_at,omitempty"`
	ErrorMessage  *string         `json:"error_message,omitempty"`
	Confidence    *float32        `json:"confidence,omitempty"`
	ExtractedJSON json.RawMessage `json:"extracted_json,omitempty"`
}
