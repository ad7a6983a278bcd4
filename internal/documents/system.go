package documents

import (
	"context"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/pagination"
	"github.com/redlinehq/redline/pkg/storage"
)

// System defines the public contract for document domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Document], error)

	Find(ctx context.Context, id uuid.UUID) (*Document, error)
	Create(ctx context.Context, cmd CreateCommand) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Download returns the stored blob stream for a document.
	Download(ctx context.Context, id uuid.UUID) (*storage.DownloadResult, *Document, error)
	// SetStatus transitions the document's review status.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) (*Document, error)
	// StoreAnalysis uploads the extracted paragraph artifact and records
	// its storage key on the document.
	StoreAnalysis(ctx context.Context, id uuid.UUID, data []byte) (*Document, error)
	// LoadAnalysis downloads the extracted paragraph artifact for a
	// document. Returns ErrNotFound when no analysis has been stored.
	LoadAnalysis(ctx context.Context, id uuid.UUID) ([]byte, error)
}
