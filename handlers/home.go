package handlers

import (
	"net/http"

	"family_law_portal_go/db"
	"family_law_portal_go/middleware"
	"family_law_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

// LandingHandler lets the visitor pick the client or lawyer area. Signed-in
// users go straight to their home page.
func LandingHandler(c echo.Context) error {
	if user := middleware.GetCurrentUser(c); user != nil {
		return c.Redirect(http.StatusSeeOther, middleware.HomePath(user.Role))
	}
	return render(c, http.StatusOK, pages.Landing(layoutData(c, "Welcome")))
}

// HealthHandler reports whether the record store answers
func HealthHandler(c echo.Context) error {
	if err := db.Ping(c.Request().Context()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
