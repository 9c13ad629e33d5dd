package router

import (
	"github.com/deppfellow/happy/internal/handler"
	"github.com/deppfellow/happy/static"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// orphanage API.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.StaticFS("/static", static.FS)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
