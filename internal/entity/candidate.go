package entity

import (
	"time"

	"github.com/google/uuid"
)

// Candidate represents an extracted candidate for data transfer between layers.
type Candidate struct {
	ID         uuid.UUID           `json:"id"`
	FileID     uuid.UUID           `json:"file_id"`
	FullName   *string             `json:"full_name,omitempty"`
	Email      *string             `json:"email,omitempty"`
	Phone      *string             `json:"phone,omitempty"`
	Skills     []string            `json:"skills"`
	Education  []string            `json:"education"`
	Experience []string            `json:"experience"`
	Entities   map[string][]string `json:"entities"`
	Confidence float32             `json:"confidence"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
}
