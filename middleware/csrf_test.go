package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", "test-csrf-token")
		assert.Equal(t, "test-csrf-token", GetCSRFToken(c))
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "", GetCSRFToken(c))
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set("csrf", 123)
		assert.Equal(t, "", GetCSRFToken(c))
	})
}

func TestCSRF(t *testing.T) {
	e := echo.New()
	e.Use(CSRF(false))
	e.GET("/form", func(c echo.Context) error {
		return c.String(http.StatusOK, GetCSRFToken(c))
	})
	e.POST("/form", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	e.POST("/api/notify-lawyer", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("GET issues a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/form", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Body.String())
	})

	t.Run("POST without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader("a=b"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("API routes are skipped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/notify-lawyer", strings.NewReader("{}"))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
