package routes_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/redlinehq/redline/pkg/routes"
)

func echo(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}
}

func TestRegisterFlatGroup(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/agents",
		Routes: []routes.Route{
			{Method: http.MethodGet, Pattern: "", Handler: echo("list")},
			{Method: http.MethodGet, Pattern: "/{id}", Handler: echo("find")},
		},
	})

	tests := []struct {
		name string
		path string
		want string
	}{
		{"list route", "/agents", "list"},
		{"find route", "/agents/abc", "find"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Body.String() != tt.want {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestRegisterNestedGroups(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/admin",
		Children: []routes.Group{
			{
				Prefix: "/settings",
				Routes: []routes.Route{
					{Method: http.MethodGet, Pattern: "", Handler: echo("settings")},
				},
			},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/settings", nil))
	if rec.Body.String() != "settings" {
		t.Errorf("body = %q, want settings", rec.Body.String())
	}
}

func TestRegisterMethodConstraint(t *testing.T) {
	mux := http.NewServeMux()
	routes.Register(mux, routes.Group{
		Prefix: "/agents",
		Routes: []routes.Route{
			{Method: http.MethodPost, Pattern: "", Handler: echo("created")},
		},
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}
