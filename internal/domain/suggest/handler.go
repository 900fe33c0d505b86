package suggest

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes Suggest over HTTP.
type Handler struct{}

// NewHandler builds a Handler.
func NewHandler() *Handler { return &Handler{} }

// RegisterRoutes mounts /api/suggest on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/suggest", h.Suggest)
}

// Suggest handles GET /api/suggest.
func (h *Handler) Suggest(c echo.Context) error {
	q := c.QueryParam("q")
	if len(q) < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	return c.JSON(http.StatusOK, Suggest(q))
}
