package middleware

import (
	"net/http"
	"strings"

	"family_law_portal_go/config"
	"family_law_portal_go/db"
	"family_law_portal_go/models"
	"family_law_portal_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "family_law_session"
	// ContextKeyAuth is the context key for the resolved Auth
	ContextKeyAuth = "auth"
)

// AuthState says what is known about the caller's identity
type AuthState int

const (
	// AuthUnknown means the session has not been resolved yet
	AuthUnknown AuthState = iota
	// AuthAnonymous means there is no valid session
	AuthAnonymous
	// AuthAuthenticated means User and Session are set
	AuthAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case AuthAnonymous:
		return "anonymous"
	case AuthAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// Auth is the per-request identity
type Auth struct {
	State   AuthState
	User    *models.User
	Session *models.Session
}

// IsAuthenticated reports whether a user is attached
func (a Auth) IsAuthenticated() bool {
	return a.State == AuthAuthenticated && a.User != nil
}

// HasRole reports whether the authenticated user holds one of roles
func (a Auth) HasRole(roles ...string) bool {
	if !a.IsAuthenticated() {
		return false
	}
	for _, role := range roles {
		if a.User.Role == role {
			return true
		}
	}
	return false
}

// LoadAuthState resolves the session cookie once per request and stores the
// result. It never rejects a request.
func LoadAuthState() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			resolveAuth(c)
			return next(c)
		}
	}
}

// GetAuthState returns the resolved identity, or AuthUnknown when
// LoadAuthState has not run for this request
func GetAuthState(c echo.Context) Auth {
	if auth, ok := c.Get(ContextKeyAuth).(Auth); ok {
		return auth
	}
	return Auth{State: AuthUnknown}
}

func resolveAuth(c echo.Context) Auth {
	if auth := GetAuthState(c); auth.State != AuthUnknown {
		return auth
	}

	auth := Auth{State: AuthAnonymous}
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		session, err := services.ValidateSession(db.DB, cookie.Value)
		switch {
		case err != nil:
			clearSessionCookie(c)
		case !session.User.IsActive:
			clearSessionCookie(c)
		default:
			auth = Auth{State: AuthAuthenticated, User: &session.User, Session: session}
		}
	}

	c.Set(ContextKeyAuth, auth)
	return auth
}

// RequireAuth rejects anonymous callers
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !resolveAuth(c).IsAuthenticated() {
				return unauthenticated(c, "/")
			}
			return next(c)
		}
	}
}

// RequireRole admits only authenticated users holding role. Anonymous callers
// are sent to that role's login page; other roles get 403.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := resolveAuth(c)
			if !auth.IsAuthenticated() {
				return unauthenticated(c, LoginPath(role))
			}
			if !auth.HasRole(role) {
				services.LogSecurityEvent("ROLE_DENIED", auth.User.ID, c.Request().URL.Path)
				return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
			}
			return next(c)
		}
	}
}

// LoginPath is the login page for role
func LoginPath(role string) string {
	if role == models.RoleLawyer {
		return "/lawyer-login"
	}
	return "/client-login"
}

// HomePath is where a signed-in user lands
func HomePath(role string) string {
	if role == models.RoleLawyer {
		return "/dashboard"
	}
	return "/intake"
}

func unauthenticated(c echo.Context, loginPath string) error {
	if c.Request().Header.Get("HX-Request") == "true" {
		c.Response().Header().Set("HX-Redirect", loginPath)
		return c.NoContent(http.StatusUnauthorized)
	}
	if strings.HasPrefix(c.Request().URL.Path, "/api/") {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}
	return c.Redirect(http.StatusSeeOther, loginPath)
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	auth := GetAuthState(c)
	if !auth.IsAuthenticated() {
		return nil
	}
	return auth.User
}

// SetSessionCookie issues the session cookie for token
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(services.DefaultSessionDuration.Seconds()),
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession forgets the caller's identity for the rest of the request
func ClearSession(c echo.Context) {
	clearSessionCookie(c)
	c.Set(ContextKeyAuth, Auth{State: AuthAnonymous})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   isProduction(c),
		SameSite: http.SameSiteLaxMode,
	})
}

func isProduction(c echo.Context) bool {
	cfg, ok := c.Get("config").(*config.Config)
	return ok && cfg.IsProduction()
}
