package agents

import (
	"net/url"

	"github.com/redlinehq/redline/pkg/query"
	"github.com/redlinehq/redline/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "agents", "a").
	Project("id", "ID").
	Project("name", "Name").
	Project("type", "Type").
	Project("guideline_prompt", "GuidelinePrompt").
	Project("created_by", "CreatedBy").
	Project("created_at", "CreatedAt").
	Project("updated_by", "UpdatedBy").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for agent queries.
// Nil fields are ignored. Type uses exact matching; Name uses
// case-insensitive contains matching.
type Filters struct {
	Name *string `json:"name,omitempty"`
	Type *string `json:"type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereContains("Name", f.Name).
		WhereEquals("Type", f.Type)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if t := values.Get("type"); t != "" {
		f.Type = &t
	}

	return f
}

func scanAgent(s repository.Scanner) (Agent, error) {
	var a Agent
	err := s.Scan(
		&a.ID,
		&a.Name,
		&a.Type,
		&a.GuidelinePrompt,
		&a.CreatedBy,
		&a.CreatedAt,
		&a.UpdatedBy,
		&a.UpdatedAt,
	)
	return a, err
}
