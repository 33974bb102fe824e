package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SenoussiAl/movie-catalog/internal/utils"
)

// runChain executes the middleware in registration order ahead of a
// handler that answers 200, mirroring how the router stacks them.
func runChain(t *testing.T, header string, mws ...echo.MiddlewareFunc) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	chain := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	for i := len(mws) - 1; i >= 0; i-- {
		chain = mws[i](chain)
	}
	require.NoError(t, chain(c))
	return rec, c
}

func TestJWTAuthInjectsClaims(t *testing.T) {
	token, err := utils.NewAccessToken("s3cret", "user-9", "ADMIN", 5)
	require.NoError(t, err)

	rec, c := runChain(t, "Bearer "+token.Token, JWTAuth("s3cret"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-9", c.Get(ContextUserID))
	assert.Equal(t, "ADMIN", c.Get(ContextRole))
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	rec, _ := runChain(t, "", JWTAuth("s3cret"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsBadToken(t *testing.T) {
	rec, _ := runChain(t, "Bearer garbage", JWTAuth("s3cret"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	token, err := utils.NewAccessToken("other", "user-9", "USER", 5)
	require.NoError(t, err)

	rec, _ := runChain(t, "Bearer "+token.Token, JWTAuth("s3cret"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	token, err := utils.NewAccessToken("s3cret", "user-9", "USER", 5)
	require.NoError(t, err)

	t.Run("allowed role passes", func(t *testing.T) {
		rec, _ := runChain(t, "Bearer "+token.Token, JWTAuth("s3cret"), RequireRole("USER", "ADMIN"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("disallowed role is refused", func(t *testing.T) {
		rec, _ := runChain(t, "Bearer "+token.Token, JWTAuth("s3cret"), RequireRole("ADMIN"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing auth context is refused", func(t *testing.T) {
		rec, _ := runChain(t, "", RequireRole("USER"))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
