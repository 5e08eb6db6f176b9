package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"family_law_portal_go/db"
	"family_law_portal_go/middleware"
	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/pages"
	"family_law_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

const (
	msgAuthFailed     = "Authentication failed"
	msgAccountLocked  = "Account temporarily locked. Try again later."
	msgMissingLogin   = "Email and password are required"
	msgMissingSignup  = "Name, email and password are required"
	msgRegisterFailed = "Registration failed. Please try again."
)

func authTitle(role string, register bool) string {
	label := "Client"
	if role == models.RoleLawyer {
		label = "Lawyer"
	}
	if register {
		return label + " Registration"
	}
	return label + " Login"
}

// LoginPageHandler renders the login form for role
func LoginPageHandler(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user := middleware.GetCurrentUser(c); user != nil && user.Role == role {
			return c.Redirect(http.StatusSeeOther, middleware.HomePath(role))
		}
		return render(c, http.StatusOK, pages.AuthPage(pages.AuthPageData{
			Layout: layoutData(c, authTitle(role, false)),
			Role:   role,
		}))
	}
}

// RegisterPageHandler renders the registration form for role
func RegisterPageHandler(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		if user := middleware.GetCurrentUser(c); user != nil && user.Role == role {
			return c.Redirect(http.StatusSeeOther, middleware.HomePath(role))
		}
		return render(c, http.StatusOK, pages.AuthPage(pages.AuthPageData{
			Layout:   layoutData(c, authTitle(role, true)),
			Role:     role,
			Register: true,
		}))
	}
}

// LoginPostHandler signs the user in when the account holds role. Unknown
// accounts, wrong passwords and role mismatches share one message.
func LoginPostHandler(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		email := strings.TrimSpace(c.FormValue("email"))
		password := c.FormValue("password")

		data := pages.AuthPageData{Role: role, Email: email}
		if email == "" || password == "" {
			return authFailure(c, data, http.StatusBadRequest, msgMissingLogin)
		}

		user, err := services.Authenticate(db.DB, email, password, role)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrRoleMismatch), errors.Is(err, services.ErrAccountInactive):
				services.Monitor.TrackFailedLogin(c.RealIP(), role)
				return authFailure(c, data, http.StatusUnauthorized, msgAuthFailed)
			case errors.Is(err, services.ErrAccountLocked):
				return authFailure(c, data, http.StatusTooManyRequests, msgAccountLocked)
			default:
				log.Printf("[ERROR] Login failed for %s: %v", email, err)
				return authFailure(c, data, http.StatusInternalServerError, msgAuthFailed)
			}
		}

		return startSession(c, user)
	}
}

// RegisterPostHandler creates an account with role and signs it in
func RegisterPostHandler(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := strings.TrimSpace(c.FormValue("name"))
		email := strings.TrimSpace(c.FormValue("email"))
		password := c.FormValue("password")

		data := pages.AuthPageData{Role: role, Register: true, Name: name, Email: email}
		if name == "" || email == "" || password == "" {
			return authFailure(c, data, http.StatusBadRequest, msgMissingSignup)
		}

		user, err := services.Register(db.DB, name, email, password, role)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrEmailTaken):
				return authFailure(c, data, http.StatusConflict, "An account with this email already exists")
			case errors.Is(err, services.ErrWeakPassword):
				return authFailure(c, data, http.StatusBadRequest, capitalize(err.Error()))
			default:
				log.Printf("[ERROR] Registration failed for %s: %v", email, err)
				return authFailure(c, data, http.StatusInternalServerError, msgRegisterFailed)
			}
		}

		return startSession(c, user)
	}
}

// LogoutHandler ends the session and returns to the landing page
func LogoutHandler(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			log.Printf("[WARNING] Logout: %v", err)
		}
	}
	if user := middleware.GetCurrentUser(c); user != nil {
		services.LogSecurityEvent("LOGOUT", user.ID, "")
	}
	middleware.ClearSession(c)

	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", "/")
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func startSession(c echo.Context, user *models.User) error {
	session, err := services.CreateSession(db.DB, user, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}
	middleware.SetSessionCookie(c, session.Token)

	home := middleware.HomePath(user.Role)
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", home)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, home)
}

// authFailure answers HTMX forms with the message fragment and full page
// posts with the re-rendered form
func authFailure(c echo.Context, data pages.AuthPageData, status int, message string) error {
	if isHTMX(c) {
		return render(c, http.StatusOK, partials.Alert(partials.ToastError, message))
	}
	data.Layout = layoutData(c, authTitle(data.Role, data.Register))
	data.Error = message
	return render(c, status, pages.AuthPage(data))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
