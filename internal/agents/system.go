package agents

import (
	"context"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/pagination"
)

// System defines the operations available for agent management.
// Uniqueness of the (Name, Type) pair is enforced at this layer with a
// lookup before each write; concurrent writers may still race between
// the check and the insert.
type System interface {
	// List returns a paginated list of agents matching the filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Agent], error)
	// Find returns a single agent by ID. Returns ErrNotFound if absent.
	Find(ctx context.Context, id uuid.UUID) (*Agent, error)
	// Create validates and inserts a new agent. Returns ErrDuplicate when
	// an agent with the same name and type already exists.
	Create(ctx context.Context, cmd CreateCommand, actor string) (*Agent, error)
	// Update applies a partial update. Returns ErrNotFound if the agent is
	// absent, ErrValidation when the command is empty or invalid, and
	// ErrDuplicate when the effective name and type collide with another
	// agent.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand, actor string) (*Agent, error)
	// Delete removes an agent. Deleting an absent agent is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
	// LatestPromptByType returns the guideline prompt of the most recently
	// written agent for the given type, or "" when none exists or the
	// lookup fails.
	LatestPromptByType(ctx context.Context, agentType string) string
	// DistinctTypes returns the distinct agent types in alphabetical order,
	// or an empty slice when the lookup fails.
	DistinctTypes(ctx context.Context) []string
	// Handler returns the HTTP handler for this system.
	Handler() *Handler
}
