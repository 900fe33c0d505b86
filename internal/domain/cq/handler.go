package cq

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the CQ browse view over HTTP.
type Handler struct{}

// NewHandler builds a Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes mounts /api/cq/list on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/cq/list", h.List)
}

type listResponse struct {
	TotalGuidelines int     `json:"totalGuidelines"`
	TotalCQs        int     `json:"totalCQs"`
	Groups          []Group `json:"groups"`
}

// List handles GET /api/cq/list, optionally filtered by the cat query param.
func (h *Handler) List(c echo.Context) error {
	groups := GroupedByGuideline(c.QueryParam("cat"))

	total := 0
	for _, g := range groups {
		total += len(g.Questions)
	}

	return c.JSON(http.StatusOK, listResponse{
		TotalGuidelines: len(groups),
		TotalCQs:        total,
		Groups:          groups,
	})
}
