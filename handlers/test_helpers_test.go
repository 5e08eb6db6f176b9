package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"family_law_portal_go/config"
	"family_law_portal_go/db"
	"family_law_portal_go/middleware"
	"family_law_portal_go/models"
	"family_law_portal_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	// Unique shared-memory name isolates tests while letting goroutines share the store
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ClientRecord{},
		&models.NotificationEvent{},
		&models.TimeEntry{},
		&models.Invoice{},
	))

	saved := db.DB
	db.DB = testDB
	t.Cleanup(func() {
		db.DB = saved
		if sqlDB, err := testDB.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return testDB
}

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		EmailFrom:         "portal@example.com",
		LawyerEmail:       "lawyer@example.com",
		AppURL:            "http://localhost:8080",
		DefaultHourlyRate: 250,
		InvoiceDueDays:    30,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("config", testConfig())
	return e, c, rec
}

func setupForm(method, path string, form url.Values) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e, c, rec := setupEcho(method, path, strings.NewReader(form.Encode()))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	return e, c, rec
}

func setupJSON(method, path, body string) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e, c, rec := setupEcho(method, path, strings.NewReader(body))
	c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return e, c, rec
}

func asHTMX(c echo.Context) {
	c.Request().Header.Set("HX-Request", "true")
}

func createUser(t *testing.T, database *gorm.DB, email, password, role string) *models.User {
	hash, err := services.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Name: "Test " + role, Email: email, Password: hash, Role: role, IsActive: true}
	require.NoError(t, database.Create(user).Error)
	return user
}

func loginAs(c echo.Context, user *models.User) {
	c.Set(middleware.ContextKeyAuth, middleware.Auth{State: middleware.AuthAuthenticated, User: user})
}

func createClient(t *testing.T, database *gorm.DB, owner, name string) *models.ClientRecord {
	rec := models.NewClientRecord()
	rec.OwnerID = owner
	rec.ClientInfo.Name = name
	rec.ClientInfo.Email = owner + "@example.com"
	require.NoError(t, database.Create(&rec).Error)
	return &rec
}

// useDeps swaps the handler adapters and the clock for one test
func useDeps(t *testing.T, d Dependencies, at time.Time) {
	savedDeps, savedNow := deps, now
	deps = d
	if deps.Bus == nil {
		deps.Bus = services.NewMemoryBus()
	}
	if deps.Mailer == nil {
		deps.Mailer = &recordingMailer{}
	}
	now = func() time.Time { return at }
	t.Cleanup(func() {
		deps, now = savedDeps, savedNow
	})
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []*services.Email
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, email *services.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, email)
	return nil
}

func (m *recordingMailer) Sent() []*services.Email {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*services.Email(nil), m.sent...)
}

func stubPDF(ctx context.Context, html string, options services.PDFOptions) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

func assertStatus(t *testing.T, want int, rec *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, want, rec.Code, rec.Body.String())
}
