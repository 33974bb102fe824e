package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func cacheKeyFor(method, target string) string {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath(req.URL.Path)
	return cacheKey("catalog:cache", c)
}

func TestCacheKey(t *testing.T) {
	get := cacheKeyFor("GET", "/v1/movies?page=1")

	t.Run("stable for the same request shape", func(t *testing.T) {
		assert.Equal(t, get, cacheKeyFor("GET", "/v1/movies?page=1"))
	})

	t.Run("query changes the key", func(t *testing.T) {
		assert.NotEqual(t, get, cacheKeyFor("GET", "/v1/movies?page=2"))
	})

	t.Run("method changes the key", func(t *testing.T) {
		assert.NotEqual(t, get, cacheKeyFor("HEAD", "/v1/movies?page=1"))
	})
}
