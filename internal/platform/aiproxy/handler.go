package aiproxy

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes the AI proxy Client over HTTP. Unlike the MeSH and
// translate surfaces, an upstream failure here is reported to the caller
// as 502 rather than degraded to an empty result.
type Handler struct {
	client *Client
}

// NewHandler builds a Handler bound to client.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts /api/ai/parse and /api/ai/summary on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/ai/parse", h.Parse)
	api.POST("/ai/summary", h.Summary)
}

// Parse handles POST /api/ai/parse.
func (h *Handler) Parse(c echo.Context) error {
	var req ParseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	var out map[string]interface{}
	if err := h.client.Parse(c.Request().Context(), "/parse", req, &out); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}

// Summary handles POST /api/ai/summary.
func (h *Handler) Summary(c echo.Context) error {
	var req SummaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	var out SummaryResponse
	if err := h.client.Parse(c.Request().Context(), "/summary", req, &out); err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, out)
}
