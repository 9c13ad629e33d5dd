package handler

import (
	"fmt"
	"net/http"

	"github.com/deppfellow/happy/internal/server"
	"github.com/deppfellow/happy/static"
	"github.com/labstack/echo/v4"
)

// OpenAPIHandler serves the API reference UI. The page loads
// /static/openapi.json.
type OpenAPIHandler struct {
	Handler
}

func NewOpenAPIHandler(s *server.Server) *OpenAPIHandler {
	return &OpenAPIHandler{
		Handler: NewHandler(s),
	}
}

// ServeOpenAPIUI answers GET /docs.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	page, err := static.FS.ReadFile(static.OpenAPIPage)
	if err != nil {
		return fmt.Errorf("failed to read OpenAPI UI template: %w", err)
	}

	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.HTMLBlob(http.StatusOK, page)
}
