package cqevidence

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medsearch/aggregator/internal/domain/record"
	"github.com/medsearch/aggregator/internal/domain/sources"
	"github.com/medsearch/aggregator/internal/domain/synonym"
)

// Handler exposes Lookup over HTTP.
type Handler struct {
	pubmed   sources.Adapter
	synonyms *synonym.Index
}

// NewHandler builds a Handler bound to pubmed and the given synonym index.
func NewHandler(pubmed sources.Adapter, idx *synonym.Index) *Handler {
	return &Handler{pubmed: pubmed, synonyms: idx}
}

// RegisterRoutes mounts /api/cq/evidence on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/cq/evidence", h.Evidence)
}

type evidenceResponse struct {
	Results  []record.Record `json:"results"`
	Keywords []string        `json:"keywords"`
	Query    string          `json:"query,omitempty"`
}

// Evidence handles GET /api/cq/evidence.
func (h *Handler) Evidence(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	kw := c.QueryParam("kw")

	result, err := Lookup(c.Request().Context(), h.pubmed, h.synonyms, q, kw)
	if err != nil {
		return c.JSON(http.StatusOK, evidenceResponse{Results: []record.Record{}, Keywords: result.Keywords, Query: q})
	}

	return c.JSON(http.StatusOK, evidenceResponse{Results: result.Results, Keywords: result.Keywords, Query: q})
}
