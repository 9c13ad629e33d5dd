// Package router builds the Echo instance: the middleware chain, the
// orphanage routes, the system routes and the uploaded photos.
package router

import (
	"net/http"

	"github.com/deppfellow/happy/internal/handler"
	"github.com/deppfellow/happy/internal/middleware"
	"github.com/deppfellow/happy/internal/model"
	"github.com/deppfellow/happy/internal/server"
	"github.com/deppfellow/happy/internal/upload"
	"github.com/labstack/echo/v4"
)

// NewRouter wires every middleware and route.
//
// Order matters: the request id and the New Relic transaction must exist
// before ContextEnhancer builds the request logger, and the logger must
// exist before RequestLogger and Recover use it.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	middlewares := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = middlewares.Global.GlobalErrorHandler

	router.Use(
		middlewares.Global.CORS(),
		middlewares.Global.Secure(),
		middleware.RequestID(),
		middlewares.Tracing.NewRelicMiddleware(),
		middlewares.Tracing.EnhanceTracing(),
		middlewares.ContextEnhancer.EnhanceContext(),
		middlewares.Global.RequestLogger(),
		middlewares.Global.Recover(),
		middlewares.Global.BodyLimit(),
	)

	registerSystemRoutes(router, h)
	registerUploadRoutes(router, s.Storage)
	registerOrphanageRoutes(router, h, middlewares)

	return router
}

// registerUploadRoutes serves photos kept on local disk. Object storage
// serves its own URLs.
func registerUploadRoutes(r *echo.Echo, storage upload.Storage) {
	if disk, ok := storage.(*upload.DiskStorage); ok {
		r.Static(upload.PublicPath, disk.Dir())
	}
}

func registerOrphanageRoutes(r *echo.Echo, h *handler.Handlers, m *middleware.Middlewares) {
	orphanages := r.Group("/orphanages")

	orphanages.GET("", handler.Handle(
		h.Orphanages.Handler,
		h.Orphanages.List,
		http.StatusOK,
		func() *model.ListOrphanagesRequest { return &model.ListOrphanagesRequest{} },
	))

	orphanages.GET("/:id", handler.Handle(
		h.Orphanages.Handler,
		h.Orphanages.Show,
		http.StatusOK,
		func() *model.ShowOrphanageRequest { return &model.ShowOrphanageRequest{} },
	))

	orphanages.POST("", handler.Handle(
		h.Orphanages.Handler,
		h.Orphanages.Create,
		http.StatusCreated,
		func() *model.CreateOrphanageRequest { return &model.CreateOrphanageRequest{} },
	), m.RateLimit.Limit("POST /orphanages", m.RateLimit.CreateRate()))
}
