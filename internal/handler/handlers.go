package handler

import (
	"github.com/deppfellow/happy/internal/server"
	"github.com/deppfellow/happy/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Orphanages *OrphanageHandler
	Health     *HealthHandler
	OpenAPI    *OpenAPIHandler
}

func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Orphanages: NewOrphanageHandler(s, services.Orphanages),
		Health:     NewHealthHandler(s),
		OpenAPI:    NewOpenAPIHandler(s),
	}
}
