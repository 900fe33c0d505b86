package meshproxy

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup_ReturnsLabels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"label":"Stroke"},{"label":"Rehabilitation"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got := c.Lookup(context.Background(), "stroke")
	assert.Equal(t, []string{"Stroke", "Rehabilitation"}, got)
}

func TestLookup_ShortQueryReturnsEmptyWithoutCalling(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got := c.Lookup(context.Background(), "s")
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestLookup_HTTPFailureReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got := c.Lookup(context.Background(), "stroke")
	assert.Empty(t, got)
}

func TestLookup_EmptyBaseURLReturnsEmpty(t *testing.T) {
	c := NewClient("")
	got := c.Lookup(context.Background(), "stroke")
	assert.Empty(t, got)
}

func TestLookup_MalformedJSONReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	got := c.Lookup(context.Background(), "stroke")
	assert.Empty(t, got)
}
