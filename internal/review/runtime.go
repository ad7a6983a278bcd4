package review

import (
	"context"
	"log/slog"

	"github.com/redlinehq/redline/internal/config"
	"github.com/redlinehq/redline/internal/documents"
	"github.com/redlinehq/redline/internal/issues"
)

// PromptSource supplies the guideline prompts that drive review tasks.
// Satisfied by the agents domain system.
type PromptSource interface {
	LatestPromptByType(ctx context.Context, agentType string) string
	DistinctTypes(ctx context.Context) []string
}

// Runtime bundles the dependencies that review graph nodes require.
// It is constructed by higher-level composition code from Infrastructure
// and Domain systems.
type Runtime struct {
	Config    config.ReviewConfig
	Analyzer  Analyzer
	Prompts   PromptSource
	Documents documents.System
	Issues    issues.System
	Logger    *slog.Logger
}
