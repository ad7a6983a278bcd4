package settings

import (
	"net/url"

	"github.com/redlinehq/redline/pkg/query"
	"github.com/redlinehq/redline/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "settings", "s").
	Project("id", "ID").
	Project("name", "Name").
	Project("value", "Value").
	Project("created_by", "CreatedBy").
	Project("created_at", "CreatedAt").
	Project("updated_by", "UpdatedBy").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field: "Name",
}

// Filters contains optional filtering criteria for setting queries.
// Name uses case-insensitive contains matching.
type Filters struct {
	Name *string `json:"name,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereContains("Name", f.Name)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	return f
}

func scanSetting(s repository.Scanner) (Setting, error) {
	var st Setting
	err := s.Scan(
		&st.ID,
		&st.Name,
		&st.Value,
		&st.CreatedBy,
		&st.CreatedAt,
		&st.UpdatedBy,
		&st.UpdatedAt,
	)
	return st, err
}
