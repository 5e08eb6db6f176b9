package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEmpty(t, nonce1)

	nonce2, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var fromRequest string
	handler := CSPNonce()(func(c echo.Context) error {
		fromRequest = GetNonce(c.Request().Context())
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, handler(c))

	nonce := c.Get(string(NonceKey)).(string)
	assert.NotEmpty(t, nonce)
	assert.Equal(t, nonce, fromRequest)
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "'nonce-"+nonce+"'")
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestGetNonceMissing(t *testing.T) {
	assert.Empty(t, GetNonce(context.Background()))
}
