package entity

import (
	"time"

	"github.com/google/uuid"
)

// ResumeFile represents a stored resume document for data transfer between layers.
type ResumeFile struct {
	ID          uuid.UUID `json:"id"`
	SourcePath  string    `json:"source_path"`
	Filename    string    `json:"filename"`
	FileExt     string    `json:"file_ext"`
	FileSize    int       `json:"file_size"`
	ContentHash string    `json:"content_hash"`
	UploadedAt  time.Time `json:"uploaded_at"`
}
