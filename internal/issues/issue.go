// Package issues implements the flagged issue domain. Issues are produced
// by document review runs and carry reviewer resolution state.
package issues

import (
	"time"

	"github.com/google/uuid"
)

// Status is the reviewer resolution state of an issue.
type Status string

const (
	StatusNotReviewed Status = "not_reviewed"
	StatusAccepted    Status = "accepted"
	StatusDismissed   Status = "dismissed"
)

// ParseStatus validates a raw status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusNotReviewed, StatusAccepted, StatusDismissed:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

// Issue represents a single flagged finding within a reviewed document.
// Text is the flagged excerpt quoted verbatim from the document;
// Explanation and SuggestedFix are independently adjudicated by the
// reviewer, with edits recorded in ModifiedFields. Location fields are
// best-effort; an excerpt that could not be matched back to a paragraph
// carries no page or bounding box.
type Issue struct {
	ID                uuid.UUID      `json:"id"`
	DocumentID        uuid.UUID      `json:"document_id"`
	Type              string         `json:"type"`
	Text              string         `json:"text"`
	Explanation       string         `json:"explanation"`
	SuggestedFix      string         `json:"suggested_fix"`
	SourceSentence    string         `json:"source_sentence"`
	PageNumber        *int           `json:"page_number"`
	BoundingBox       []float64      `json:"bounding_box"`
	ParagraphIndex    *int           `json:"paragraph_index"`
	Chunk             int            `json:"chunk"`
	Status            Status         `json:"status"`
	ReviewInitiatedBy string         `json:"review_initiated_by"`
	ReviewInitiatedAt time.Time      `json:"review_initiated_at"`
	ResolvedBy        *string        `json:"resolved_by"`
	ResolvedAt        *time.Time     `json:"resolved_at"`
	ModifiedFields    map[string]any `json:"modified_fields"`
	DismissalFeedback *string        `json:"dismissal_feedback"`
}

// CreateCommand carries the data needed to persist a flagged issue.
// Status defaults to not_reviewed.
type CreateCommand struct {
	DocumentID        uuid.UUID `json:"document_id"`
	Type              string    `json:"type"`
	Text              string    `json:"text"`
	Explanation       string    `json:"explanation"`
	SuggestedFix      string    `json:"suggested_fix"`
	SourceSentence    string    `json:"source_sentence"`
	PageNumber        *int      `json:"page_number"`
	BoundingBox       []float64 `json:"bounding_box"`
	ParagraphIndex    *int      `json:"paragraph_index"`
	Chunk             int       `json:"chunk"`
	ReviewInitiatedBy string    `json:"review_initiated_by"`
}

// ResolveCommand carries a reviewer decision on an issue. Modifications
// records the reviewer edits made before accepting, keyed by field name.
type ResolveCommand struct {
	Status            Status         `json:"status"`
	DismissalFeedback *string        `json:"dismissal_feedback,omitempty"`
	ModifiedFields    map[string]any `json:"modified_fields,omitempty"`
}
