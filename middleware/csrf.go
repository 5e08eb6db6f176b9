package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const csrfContextKey = "csrf"

// CSRF protects form posts. JSON API calls, metrics and health checks are
// skipped.
func CSRF(secure bool) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		ContextKey:     csrfContextKey,
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   secure,
		CookieSameSite: http.SameSiteLaxMode,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/api/") || path == "/metrics" || path == "/healthz"
		},
	})
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	token := c.Get(csrfContextKey)
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}
