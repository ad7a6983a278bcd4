package issues

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/query"
	"github.com/redlinehq/redline/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "issues", "i").
	Project("id", "ID").
	Project("document_id", "DocumentID").
	Project("type", "Type").
	Project("text", "Text").
	Project("explanation", "Explanation").
	Project("suggested_fix", "SuggestedFix").
	Project("source_sentence", "SourceSentence").
	Project("page_number", "PageNumber").
	Project("bounding_box", "BoundingBox").
	Project("paragraph_index", "ParagraphIndex").
	Project("chunk", "Chunk").
	Project("status", "Status").
	Project("review_initiated_by", "ReviewInitiatedBy").
	Project("review_initiated_at", "ReviewInitiatedAt").
	Project("resolved_by", "ResolvedBy").
	Project("resolved_at", "ResolvedAt").
	Project("modified_fields", "ModifiedFields").
	Project("dismissal_feedback", "DismissalFeedback")

var defaultSort = query.SortField{
	Field:      "ReviewInitiatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for issue queries.
// Nil fields are ignored; all filters use exact matching.
type Filters struct {
	DocumentID *uuid.UUID `json:"document_id,omitempty"`
	Type       *string    `json:"type,omitempty"`
	Status     *Status    `json:"status,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("DocumentID", f.DocumentID).
		WhereEquals("Type", f.Type).
		WhereEquals("Status", f.Status)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if d := values.Get("document_id"); d != "" {
		if id, err := uuid.Parse(d); err == nil {
			f.DocumentID = &id
		}
	}

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	if s := values.Get("status"); s != "" {
		if status, err := ParseStatus(s); err == nil {
			f.Status = &status
		}
	}

	return f
}

// scanIssue maps a row to an Issue, decoding the jsonb location and
// audit columns.
func scanIssue(s repository.Scanner) (Issue, error) {
	var (
		i              Issue
		boundingBox    []byte
		modifiedFields []byte
	)

	err := s.Scan(
		&i.ID,
		&i.DocumentID,
		&i.Type,
		&i.Text,
		&i.Explanation,
		&i.SuggestedFix,
		&i.SourceSentence,
		&i.PageNumber,
		&boundingBox,
		&i.ParagraphIndex,
		&i.Chunk,
		&i.Status,
		&i.ReviewInitiatedBy,
		&i.ReviewInitiatedAt,
		&i.ResolvedBy,
		&i.ResolvedAt,
		&modifiedFields,
		&i.DismissalFeedback,
	)
	if err != nil {
		return i, err
	}

	if boundingBox != nil {
		if err := json.Unmarshal(boundingBox, &i.BoundingBox); err != nil {
			return i, fmt.Errorf("decode bounding_box: %w", err)
		}
	}
	if modifiedFields != nil {
		if err := json.Unmarshal(modifiedFields, &i.ModifiedFields); err != nil {
			return i, fmt.Errorf("decode modified_fields: %w", err)
		}
	}

	return i, nil
}

// encodeJSON marshals a value for a jsonb column, passing nil through
// so the column stays NULL.
func encodeJSON(v any) (any, error) {
	switch val := v.(type) {
	case []float64:
		if val == nil {
			return nil, nil
		}
	case map[string]any:
		if val == nil {
			return nil, nil
		}
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode jsonb: %w", err)
	}
	return data, nil
}
