package handler

import (
	"context"

	"github.com/deppfellow/happy/internal/model"
	"github.com/deppfellow/happy/internal/server"
	"github.com/labstack/echo/v4"
)

// OrphanageService is the business layer behind the orphanage routes.
type OrphanageService interface {
	Create(ctx context.Context, req *model.CreateOrphanageRequest) (*model.Orphanage, error)
	List(ctx context.Context) ([]model.Orphanage, error)
	Get(ctx context.Context, id int64) (*model.Orphanage, error)
	ImageURL(path string) string
}

type OrphanageHandler struct {
	Handler
	service OrphanageService
}

func NewOrphanageHandler(s *server.Server, svc OrphanageService) *OrphanageHandler {
	return &OrphanageHandler{
		Handler: NewHandler(s),
		service: svc,
	}
}

// Create handles POST /orphanages.
func (h *OrphanageHandler) Create(c echo.Context, req *model.CreateOrphanageRequest) (model.OrphanageView, error) {
	orphanage, err := h.service.Create(c.Request().Context(), req)
	if err != nil {
		return model.OrphanageView{}, err
	}
	return model.RenderOrphanage(orphanage, h.service.ImageURL), nil
}

// List handles GET /orphanages.
func (h *OrphanageHandler) List(c echo.Context, _ *model.ListOrphanagesRequest) ([]model.OrphanageView, error) {
	orphanages, err := h.service.List(c.Request().Context())
	if err != nil {
		return nil, err
	}
	return model.RenderOrphanages(orphanages, h.service.ImageURL), nil
}

// Show handles GET /orphanages/:id.
func (h *OrphanageHandler) Show(c echo.Context, req *model.ShowOrphanageRequest) (model.OrphanageView, error) {
	orphanage, err := h.service.Get(c.Request().Context(), req.OrphanageID())
	if err != nil {
		return model.OrphanageView{}, err
	}
	return model.RenderOrphanage(orphanage, h.service.ImageURL), nil
}
