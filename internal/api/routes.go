package api

import (
	"net/http"

	"github.com/redlinehq/redline/internal/config"
	"github.com/redlinehq/redline/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(mux, routes.Group{
		Prefix: "/admin",
		Children: []routes.Group{
			domain.Agents.Handler().Routes(),
			domain.Settings.Handler().Routes(),
		},
	})

	routes.Register(
		mux,
		domain.Documents.Handler(cfg.API.MaxUploadSizeBytes()).Routes(),
	)

	routes.Register(mux, domain.Issues.Handler().Routes())
	routes.Register(mux, domain.Review.Handler().Routes())
}
