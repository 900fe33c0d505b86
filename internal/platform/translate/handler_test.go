package translate

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateHandler_MissingTextIsBadRequest(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/translate", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(NewClient(""))
	err := h.Translate(c)
	require.Error(t, err)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestTranslateHandler_EchoesOriginalOnAbsentTranslation(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/translate?text=stroke", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(NewClient(""))
	require.NoError(t, h.Translate(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"text":"stroke"`)
	assert.Contains(t, rec.Body.String(), `"src":"en"`)
	assert.Contains(t, rec.Body.String(), `"tgt":"ja"`)
}

func TestTranslateHandler_DefaultsToJaEnForJapaneseText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[["stroke","脳卒中",null,0]]]`))
	}))
	defer srv.Close()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/translate?text=脳卒中", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHandler(NewClient(srv.URL))
	require.NoError(t, h.Translate(c))
	assert.Contains(t, rec.Body.String(), `"src":"ja"`)
	assert.Contains(t, rec.Body.String(), `"tgt":"en"`)
}
