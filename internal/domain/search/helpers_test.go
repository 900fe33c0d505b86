package search

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medsearch/aggregator/internal/domain/synonym"
)

// synonymlessIndex returns an Index with no equivalence classes, so Expand
// is a pure identity/dedup operation — used by orchestrator tests that
// don't care about synonym expansion.
func synonymlessIndex() *synonym.Index {
	return synonym.NewIndex(nil)
}

// stubTranslateServer answers every translate request with the same
// response text, wrapped in the [[[text, original, null, 0]]] shape
// translate.Client expects.
type stubTranslateServer struct {
	t        *testing.T
	response string
}

func (s *stubTranslateServer) start() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		text := r.URL.Query().Get("text")
		w.Write([]byte(`[[["` + s.response + `","` + text + `",null,0]]]`))
	}))
}
