package search

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the orchestrator over HTTP.
type Handler struct {
	orchestrator *Orchestrator
}

// NewHandler builds a Handler bound to orchestrator.
func NewHandler(orchestrator *Orchestrator) *Handler {
	return &Handler{orchestrator: orchestrator}
}

// RegisterRoutes mounts /api/search on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/search", h.Search)
}

// Search handles GET /api/search.
func (h *Handler) Search(c echo.Context) error {
	req := Request{
		Q:         c.QueryParam("q"),
		Disease:   c.QueryParam("disease"),
		Treatment: c.QueryParam("treatment"),
		Topic:     c.QueryParam("topic"),
	}
	req.Multilingual = c.QueryParam("multilingual") == "true"
	req.PatientVoice = c.QueryParam("patientVoice") == "true"

	resp, err := h.orchestrator.Run(c.Request().Context(), req)
	if err != nil {
		return echo.NewHTTPError(StatusFor(err), err.Error())
	}

	return c.JSON(http.StatusOK, resp)
}
