package handlers

import (
	"net/http"
	"net/url"
	"testing"

	"family_law_portal_go/middleware"
	"family_law_portal_go/models"
	"family_law_portal_go/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPageHandler(t *testing.T) {
	setupTestDB(t)

	_, c, rec := setupEcho(http.MethodGet, "/lawyer-login", nil)
	require.NoError(t, LoginPageHandler(models.RoleLawyer)(c))
	assertStatus(t, http.StatusOK, rec)
	assert.Contains(t, rec.Body.String(), "Lawyer Login")
	assert.Contains(t, rec.Body.String(), `action="/lawyer-login"`)
}

func TestLoginPageRedirectsSignedInUser(t *testing.T) {
	database := setupTestDB(t)
	user := createUser(t, database, "client@example.com", "password123", models.RoleClient)

	_, c, rec := setupEcho(http.MethodGet, "/client-login", nil)
	loginAs(c, user)
	require.NoError(t, LoginPageHandler(models.RoleClient)(c))
	assertStatus(t, http.StatusSeeOther, rec)
	assert.Equal(t, "/intake", rec.Header().Get("Location"))
}

func TestLoginPostHandler(t *testing.T) {
	t.Run("valid credentials start a session", func(t *testing.T) {
		database := setupTestDB(t)
		createUser(t, database, "lawyer@example.com", "password123", models.RoleLawyer)

		_, c, rec := setupForm(http.MethodPost, "/lawyer-login", url.Values{
			"email":    {"lawyer@example.com"},
			"password": {"password123"},
		})
		require.NoError(t, LoginPostHandler(models.RoleLawyer)(c))
		assertStatus(t, http.StatusSeeOther, rec)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

		var cookie *http.Cookie
		for _, ck := range rec.Result().Cookies() {
			if ck.Name == middleware.SessionCookieName {
				cookie = ck
			}
		}
		require.NotNil(t, cookie)
		assert.True(t, cookie.HttpOnly)

		var sessions int64
		database.Model(&models.Session{}).Count(&sessions)
		assert.Equal(t, int64(1), sessions)
	})

	t.Run("wrong password", func(t *testing.T) {
		database := setupTestDB(t)
		createUser(t, database, "lawyer@example.com", "password123", models.RoleLawyer)

		_, c, rec := setupForm(http.MethodPost, "/lawyer-login", url.Values{
			"email":    {"lawyer@example.com"},
			"password": {"wrong-password"},
		})
		require.NoError(t, LoginPostHandler(models.RoleLawyer)(c))
		assertStatus(t, http.StatusUnauthorized, rec)
		assert.Contains(t, rec.Body.String(), "Authentication failed")
	})

	t.Run("client account on lawyer portal", func(t *testing.T) {
		database := setupTestDB(t)
		createUser(t, database, "client@example.com", "password123", models.RoleClient)

		_, c, rec := setupForm(http.MethodPost, "/lawyer-login", url.Values{
			"email":    {"client@example.com"},
			"password": {"password123"},
		})
		require.NoError(t, LoginPostHandler(models.RoleLawyer)(c))
		assertStatus(t, http.StatusUnauthorized, rec)
		assert.Contains(t, rec.Body.String(), "Authentication failed")

		var sessions int64
		database.Model(&models.Session{}).Count(&sessions)
		assert.Zero(t, sessions)
	})

	t.Run("missing fields", func(t *testing.T) {
		setupTestDB(t)
		_, c, rec := setupForm(http.MethodPost, "/client-login", url.Values{"email": {"a@example.com"}})
		require.NoError(t, LoginPostHandler(models.RoleClient)(c))
		assertStatus(t, http.StatusBadRequest, rec)
		assert.Contains(t, rec.Body.String(), "Email and password are required")
	})

	t.Run("htmx failure returns the message fragment", func(t *testing.T) {
		setupTestDB(t)
		_, c, rec := setupForm(http.MethodPost, "/client-login", url.Values{
			"email":    {"nobody@example.com"},
			"password": {"password123"},
		})
		asHTMX(c)
		require.NoError(t, LoginPostHandler(models.RoleClient)(c))
		assertStatus(t, http.StatusOK, rec)
		assert.Contains(t, rec.Body.String(), "Authentication failed")
		assert.NotContains(t, rec.Body.String(), "<html")
	})

	t.Run("htmx success redirects through header", func(t *testing.T) {
		database := setupTestDB(t)
		createUser(t, database, "client@example.com", "password123", models.RoleClient)

		_, c, rec := setupForm(http.MethodPost, "/client-login", url.Values{
			"email":    {"client@example.com"},
			"password": {"password123"},
		})
		asHTMX(c)
		require.NoError(t, LoginPostHandler(models.RoleClient)(c))
		assertStatus(t, http.StatusOK, rec)
		assert.Equal(t, "/intake", rec.Header().Get("HX-Redirect"))
	})
}

func TestRegisterPostHandler(t *testing.T) {
	t.Run("creates account and signs in", func(t *testing.T) {
		database := setupTestDB(t)

		_, c, rec := setupForm(http.MethodPost, "/client-register", url.Values{
			"name":     {"Jane Doe"},
			"email":    {"Jane@Example.com"},
			"password": {"password123"},
		})
		require.NoError(t, RegisterPostHandler(models.RoleClient)(c))
		assertStatus(t, http.StatusSeeOther, rec)
		assert.Equal(t, "/intake", rec.Header().Get("Location"))

		var user models.User
		require.NoError(t, database.Where("email = ?", "jane@example.com").First(&user).Error)
		assert.Equal(t, models.RoleClient, user.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		database := setupTestDB(t)
		createUser(t, database, "jane@example.com", "password123", models.RoleClient)

		_, c, rec := setupForm(http.MethodPost, "/client-register", url.Values{
			"name":     {"Jane Doe"},
			"email":    {"jane@example.com"},
			"password": {"password123"},
		})
		require.NoError(t, RegisterPostHandler(models.RoleClient)(c))
		assertStatus(t, http.StatusConflict, rec)
		assert.Contains(t, rec.Body.String(), "already exists")
	})

	t.Run("short password", func(t *testing.T) {
		setupTestDB(t)
		_, c, rec := setupForm(http.MethodPost, "/lawyer-register", url.Values{
			"name":     {"Sam Counsel"},
			"email":    {"sam@example.com"},
			"password": {"short"},
		})
		require.NoError(t, RegisterPostHandler(models.RoleLawyer)(c))
		assertStatus(t, http.StatusBadRequest, rec)
		assert.Contains(t, rec.Body.String(), "Password must be at least 8 characters")
		assert.Contains(t, rec.Body.String(), `value="Sam Counsel"`)
	})
}

func TestLogoutHandler(t *testing.T) {
	database := setupTestDB(t)
	user := createUser(t, database, "client@example.com", "password123", models.RoleClient)
	session, err := services.CreateSession(database, user, "127.0.0.1", "test")
	require.NoError(t, err)

	_, c, rec := setupEcho(http.MethodPost, "/logout", nil)
	c.Request().AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: session.Token})
	loginAs(c, user)

	require.NoError(t, LogoutHandler(c))
	assertStatus(t, http.StatusSeeOther, rec)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	var count int64
	database.Model(&models.Session{}).Count(&count)
	assert.Zero(t, count)
	assert.Nil(t, middleware.GetCurrentUser(c))
}
