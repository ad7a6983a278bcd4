package settings

import (
	"context"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/pagination"
)

// System defines the operations available for setting management.
// Name uniqueness is enforced at this layer with a lookup before each
// write; concurrent writers may still race between the check and the
// insert.
type System interface {
	// List returns a paginated list of settings matching the filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Setting], error)
	// Find returns a single setting by ID. Returns ErrNotFound if absent.
	Find(ctx context.Context, id uuid.UUID) (*Setting, error)
	// Create validates and inserts a new setting. Returns ErrDuplicate
	// when a setting with the same name already exists.
	Create(ctx context.Context, cmd CreateCommand, actor string) (*Setting, error)
	// Update applies a partial update. Returns ErrNotFound if the setting
	// is absent, ErrValidation when the command is empty or invalid, and
	// ErrDuplicate when the effective name collides with another setting.
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand, actor string) (*Setting, error)
	// Delete removes a setting. Deleting an absent setting is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
	// Handler returns the HTTP handler for this system.
	Handler() *Handler
}
