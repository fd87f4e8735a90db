package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Router bundles the API handlers behind one route registration.
type Router struct {
	catalog  *CatalogHandler
	explorer *ExplorerHandler
	analysis *AnalysisHandler
}

func NewRouter(catalog *CatalogHandler, explorer *ExplorerHandler, analysis *AnalysisHandler) *Router {
	return &Router{catalog: catalog, explorer: explorer, analysis: analysis}
}

func (r *Router) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	r.catalog.RegisterRoutes(e)
	r.explorer.RegisterRoutes(e)
	r.analysis.RegisterRoutes(e)
}
