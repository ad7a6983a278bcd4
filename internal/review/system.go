package review

import (
	"context"

	"github.com/google/uuid"
)

// System defines the operations available for document review.
type System interface {
	// Review runs the full review workflow for a document and returns a
	// summary of the persisted issues.
	Review(ctx context.Context, documentID uuid.UUID, initiatedBy string) (*Result, error)
	// Handler returns the HTTP handler for this system.
	Handler() *Handler
}

type service struct {
	rt *Runtime
}

// New creates a review service from the given runtime.
func New(rt *Runtime) System {
	return &service{rt: rt}
}

func (s *service) Review(ctx context.Context, documentID uuid.UUID, initiatedBy string) (*Result, error) {
	return Execute(ctx, s.rt, documentID, initiatedBy)
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.rt.Logger)
}
