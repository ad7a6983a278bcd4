package agents_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/redlinehq/redline/internal/agents"
)

func ptr[T any](v T) *T { return &v }

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", agents.ErrNotFound, http.StatusNotFound},
		{"duplicate", agents.ErrDuplicate, http.StatusConflict},
		{"validation", agents.ErrValidation, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", agents.ErrNotFound), http.StatusNotFound},
		{"wrapped duplicate", fmt.Errorf("insert failed: %w", agents.ErrDuplicate), http.StatusConflict},
		{"wrapped validation", fmt.Errorf("bad input: %w", agents.ErrValidation), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := agents.MapHTTPStatus(tt.err)
			if got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestFiltersFromQuery(t *testing.T) {
	t.Run("all params present", func(t *testing.T) {
		values := url.Values{
			"name": {"Compliance"},
			"type": {"compliance"},
		}

		f := agents.FiltersFromQuery(values)

		if f.Name == nil || *f.Name != "Compliance" {
			t.Errorf("Name = %v, want Compliance", f.Name)
		}
		if f.Type == nil || *f.Type != "compliance" {
			t.Errorf("Type = %v, want compliance", f.Type)
		}
	})

	t.Run("empty params yield nil fields", func(t *testing.T) {
		f := agents.FiltersFromQuery(url.Values{})

		if f.Name != nil {
			t.Errorf("Name = %v, want nil", f.Name)
		}
		if f.Type != nil {
			t.Errorf("Type = %v, want nil", f.Type)
		}
	})
}

func TestUpdateCommandEmpty(t *testing.T) {
	tests := []struct {
		name string
		cmd  agents.UpdateCommand
		want bool
	}{
		{"no fields", agents.UpdateCommand{}, true},
		{"name set", agents.UpdateCommand{Name: ptr("x")}, false},
		{"type set", agents.UpdateCommand{Type: ptr("x")}, false},
		{"prompt set", agents.UpdateCommand{GuidelinePrompt: ptr("x")}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cmd.Empty(); got != tt.want {
				t.Errorf("Empty() = %v, want %v", got, tt.want)
			}
		})
	}
}
