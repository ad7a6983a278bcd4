package review

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"github.com/redlinehq/redline/pkg/routes"
)

type recordingSystem struct {
	result *Result
	err    error
	gotID  uuid.UUID
}

func (s *recordingSystem) Review(_ context.Context, id uuid.UUID, _ string) (*Result, error) {
	s.gotID = id
	return s.result, s.err
}

func (s *recordingSystem) Handler() *Handler {
	return NewHandler(s, slog.New(slog.DiscardHandler))
}

func newStubMux(sys System) *http.ServeMux {
	mux := http.NewServeMux()
	routes.Register(mux, sys.Handler().Routes())
	return mux
}

func TestReviewRoute(t *testing.T) {
	t.Run("trigger mounted under documents", func(t *testing.T) {
		id := uuid.New()
		sys := &recordingSystem{result: &Result{DocumentID: id}}
		mux := newStubMux(sys)

		req := httptest.NewRequest("POST", "/documents/"+id.String()+"/review", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
		}
		if sys.gotID != id {
			t.Errorf("reviewed document = %s, want %s", sys.gotID, id)
		}
	})

	t.Run("invalid id", func(t *testing.T) {
		mux := newStubMux(&recordingSystem{})

		req := httptest.NewRequest("POST", "/documents/not-a-uuid/review", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("unresolved prompts map to conflict", func(t *testing.T) {
		sys := &recordingSystem{err: ErrNoPrompts}
		mux := newStubMux(sys)

		req := httptest.NewRequest("POST", "/documents/"+uuid.NewString()+"/review", nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusConflict)
		}
	})
}
