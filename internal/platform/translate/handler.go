package translate

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler exposes Client.Translate over HTTP.
type Handler struct {
	client *Client
}

// NewHandler builds a Handler bound to client.
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// RegisterRoutes mounts /api/translate on api.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/translate", h.Translate)
}

type translateResponse struct {
	Text string `json:"text"`
	Src  string `json:"src"`
	Tgt  string `json:"tgt"`
}

// Translate handles GET /api/translate. src/tgt default to the direction
// implied by the text's script when omitted: ja->en for Japanese text,
// en->ja otherwise. A failed or absent translation still returns 200 with
// the original text echoed back, per the proxy's degrade-silently contract.
func (h *Handler) Translate(c echo.Context) error {
	text := c.QueryParam("text")
	if text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "text is required")
	}

	src := c.QueryParam("src")
	tgt := c.QueryParam("tgt")
	if src == "" || tgt == "" {
		if IsJapanese(text) {
			src, tgt = "ja", "en"
		} else {
			src, tgt = "en", "ja"
		}
	}

	out, ok := h.client.Translate(c.Request().Context(), text, src, tgt)
	if !ok {
		out = text
	}

	return c.JSON(http.StatusOK, translateResponse{Text: out, Src: src, Tgt: tgt})
}
