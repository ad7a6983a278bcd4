// Package documents implements the document domain. It provides types,
// data access, and business logic for document upload, metadata
// management, blob storage integration, and review status tracking.
package documents

import (
	"time"

	"github.com/google/uuid"
)

// Status is the review lifecycle state of a document.
type Status string

const (
	StatusUploaded     Status = "uploaded"
	StatusReviewing    Status = "reviewing"
	StatusReviewed     Status = "reviewed"
	StatusReviewFailed Status = "review_failed"
)

// Document represents a registered document with its metadata and blob
// storage references. AnalysisKey points at the extracted paragraph
// artifact produced during review; nil until a review has run.
type Document struct {
	ID          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	PageCount   *int      `json:"page_count"`
	StorageKey  string    `json:"storage_key"`
	AnalysisKey *string   `json:"analysis_key"`
	Status      Status    `json:"status"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to upload and register a new document.
// Data holds the raw file bytes. PageCount is optional and may be extracted
// by the caller via pdfcpu; nil values are stored as NULL.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
	UploadedBy  string
}
