package api

import (
	"github.com/redlinehq/redline/internal/agents"
	"github.com/redlinehq/redline/internal/documents"
	"github.com/redlinehq/redline/internal/issues"
	"github.com/redlinehq/redline/internal/review"
	"github.com/redlinehq/redline/internal/settings"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Agents    agents.System
	Settings  settings.System
	Documents documents.System
	Issues    issues.System
	Review    review.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	agentsSystem := agents.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	settingsSystem := settings.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	docsSystem := documents.New(
		runtime.Database.Connection(),
		runtime.Storage,
		runtime.Logger,
		runtime.Pagination,
	)

	issuesSystem := issues.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	reviewSystem := review.New(&review.Runtime{
		Config:    runtime.Review,
		Analyzer:  review.NewAnalyzer(runtime.Review.Agent),
		Prompts:   agentsSystem,
		Documents: docsSystem,
		Issues:    issuesSystem,
		Logger:    runtime.Logger,
	})

	return &Domain{
		Agents:    agentsSystem,
		Settings:  settingsSystem,
		Documents: docsSystem,
		Issues:    issuesSystem,
		Review:    reviewSystem,
	}
}
