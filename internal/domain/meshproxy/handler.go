package meshproxy

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the MeSH Client over HTTP.
type Handler struct {
	client *Client
}

// NewHandler builds a Handler bound to client.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts /api/mesh on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/mesh", h.Lookup)
}

// Lookup handles GET /api/mesh.
func (h *Handler) Lookup(c echo.Context) error {
	q := c.QueryParam("q")
	if len(q) < 2 {
		return echo.NewHTTPError(http.StatusBadRequest, "q must be at least 2 characters")
	}
	return c.JSON(http.StatusOK, h.client.Lookup(c.Request().Context(), q))
}
