package handlers

import (
	"family_law_portal_go/middleware"
	"family_law_portal_go/models"

	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts every page and API endpoint on e. Session resolution
// and CSRF are expected to run as global middleware.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/", LandingHandler)
	e.GET("/healthz", HealthHandler)

	for _, role := range []string{models.RoleClient, models.RoleLawyer} {
		e.GET("/"+role+"-login", LoginPageHandler(role))
		e.POST("/"+role+"-login", LoginPostHandler(role), middleware.LoginRateLimiter.Middleware())
		e.GET("/"+role+"-register", RegisterPageHandler(role))
		e.POST("/"+role+"-register", RegisterPostHandler(role), middleware.RegisterRateLimiter.Middleware())
	}
	e.POST("/logout", LogoutHandler, middleware.RequireAuth())

	e.POST("/api/notify-lawyer", NotifyLawyerHandler, middleware.NotifyRateLimiter.Middleware())
	e.GET("/api/intake/schema", IntakeSchemaHandler)

	clientOnly := middleware.RequireRole(models.RoleClient)
	e.GET("/intake", IntakePageHandler, clientOnly)
	e.POST("/intake", IntakePostHandler, clientOnly, middleware.IntakeRateLimiter.Middleware())
	e.POST("/api/intake", IntakeAPIHandler, clientOnly, middleware.IntakeRateLimiter.Middleware())

	dashboard := e.Group("/dashboard", middleware.RequireRole(models.RoleLawyer))
	dashboard.GET("", DashboardHandler)
	dashboard.GET("/clients/export.xlsx", ExportClientsHandler)
	dashboard.GET("/clients/:id", ClientDetailHandler)
	dashboard.GET("/clients/:id/edit", ClientEditHandler)
	dashboard.POST("/clients/:id", ClientUpdateHandler)

	dashboard.GET("/time-tracking", TimeTrackingHandler)
	dashboard.POST("/time-tracking", CreateTimeEntryHandler)
	dashboard.POST("/time-tracking/:id/delete", DeleteTimeEntryHandler)

	dashboard.GET("/invoices", InvoicesHandler)
	dashboard.POST("/invoices", CreateInvoiceHandler)
	dashboard.GET("/invoices/export.xlsx", ExportInvoicesHandler)
	dashboard.GET("/invoices/:id/pdf", InvoicePDFHandler)
	dashboard.POST("/invoices/:id/send", SendInvoiceHandler)
	dashboard.POST("/invoices/:id/paid", MarkInvoicePaidHandler)

	api := e.Group("/api", middleware.RequireRole(models.RoleLawyer))
	api.GET("/clients", ListClientsAPIHandler)
	api.GET("/clients/:id", GetClientAPIHandler)
	api.PUT("/clients/:id", UpdateClientAPIHandler)
	api.GET("/notifications/latest", LatestNotificationHandler)
	api.POST("/notifications/read", MarkNotificationsReadHandler)
	api.GET("/notifications/stream", NotificationStreamHandler)
}
