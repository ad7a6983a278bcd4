package issues

import (
	"context"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/pagination"
)

// System defines the operations available for flagged issue management.
type System interface {
	// List returns a paginated list of issues matching the filters.
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[Issue], error)
	// Find returns a single issue by ID. Returns ErrNotFound if absent.
	Find(ctx context.Context, id uuid.UUID) (*Issue, error)
	// Create persists a single flagged issue with status not_reviewed.
	Create(ctx context.Context, cmd CreateCommand) (*Issue, error)
	// CreateBatch persists a set of flagged issues in one transaction.
	CreateBatch(ctx context.Context, cmds []CreateCommand) ([]Issue, error)
	// Resolve records a reviewer decision on an issue. Returns
	// ErrInvalidStatus for an unrecognized status and ErrNotFound if the
	// issue is absent.
	Resolve(ctx context.Context, id uuid.UUID, cmd ResolveCommand, actor string) (*Issue, error)
	// Delete removes an issue. Deleting an absent issue is a no-op.
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByDocument removes all issues for a document.
	DeleteByDocument(ctx context.Context, documentID uuid.UUID) error
	// Handler returns the HTTP handler for this system.
	Handler() *Handler
}
