package handlers

import (
	"net/http"

	"family_law_portal_go/config"
	"family_law_portal_go/middleware"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/pages"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

func getConfig(c echo.Context) *config.Config {
	if cfg, ok := c.Get("config").(*config.Config); ok && cfg != nil {
		return cfg
	}
	return &config.Config{DefaultHourlyRate: 250, InvoiceDueDays: 30, Environment: "development"}
}

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// formStatus keeps HTMX form responses at 200 so the fragment is swapped in
func formStatus(c echo.Context, status int) int {
	if isHTMX(c) {
		return http.StatusOK
	}
	return status
}

func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

func layoutData(c echo.Context, title string) components.LayoutData {
	return components.LayoutData{
		Title:     title,
		CSRFToken: middleware.GetCSRFToken(c),
		User:      middleware.GetCurrentUser(c),
	}
}

func renderError(c echo.Context, status int, message string) error {
	return render(c, status, pages.ErrorPage(layoutData(c, message), status, message))
}
