// Package review implements the document review pipeline. It loads a
// document's extracted paragraphs, runs concurrent guideline review tasks
// per agent type over fixed-size paragraph chunks, and persists the
// flagged issues.
package review

import (
	"time"

	"github.com/google/uuid"
)

// State bag keys for the review graph.
const (
	KeyDocumentID  = "document_id"
	KeyInitiatedBy = "initiated_by"
	KeyParagraphs  = "paragraphs"
	KeyTypes       = "types"
	KeyBatches     = "batches"
	KeyResult      = "result"
)

// Paragraph is a single extracted paragraph with its page location.
// BoundingBox is [x1, y1, x2, y2] in page coordinates; empty when the
// extractor produced no geometry.
type Paragraph struct {
	Content     string    `json:"content"`
	PageNumber  int       `json:"page_number"`
	BoundingBox []float64 `json:"bounding_box,omitempty"`
}

// AnalysisResult is the extracted paragraph artifact stored alongside a
// document.
type AnalysisResult struct {
	Paragraphs []Paragraph `json:"paragraphs"`
}

// Finding is a single raw finding returned by the review model. Text is
// the flagged excerpt quoted verbatim from the document; SourceSentence
// is the full sentence containing it, used for positional matching.
type Finding struct {
	Text           string `json:"text"`
	Explanation    string `json:"explanation"`
	SuggestedFix   string `json:"suggested_fix"`
	SourceSentence string `json:"source_sentence"`
}

// Issue is a finding enriched with its agent type and best-effort
// document location.
type Issue struct {
	Type           string    `json:"type"`
	Text           string    `json:"text"`
	Explanation    string    `json:"explanation"`
	SuggestedFix   string    `json:"suggested_fix"`
	SourceSentence string    `json:"source_sentence"`
	PageNumber     *int      `json:"page_number"`
	BoundingBox    []float64 `json:"bounding_box,omitempty"`
	ParagraphIndex *int      `json:"paragraph_index"`
	Chunk          int       `json:"chunk"`
}

// Batch carries the issues flagged within a single paragraph chunk,
// ordered by agent type discovery order.
type Batch struct {
	Chunk  int     `json:"chunk"`
	Issues []Issue `json:"issues"`
}

// Result summarizes a completed review run.
type Result struct {
	DocumentID  uuid.UUID `json:"document_id"`
	ChunkCount  int       `json:"chunk_count"`
	IssueCount  int       `json:"issue_count"`
	Types       []string  `json:"types"`
	CompletedAt time.Time `json:"completed_at"`
}
