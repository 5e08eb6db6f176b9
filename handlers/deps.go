package handlers

import (
	"time"

	"family_law_portal_go/config"
	"family_law_portal_go/db"
	"family_law_portal_go/services"
)

// Dependencies are the outbound adapters shared by all handlers
type Dependencies struct {
	Mailer  services.Mailer
	Bus     services.NotificationBus
	Storage services.StorageProvider
	PDF     services.PDFRenderer
}

var (
	deps = Dependencies{
		Mailer: services.ConsoleMailer{},
		Bus:    services.NewMemoryBus(),
		PDF:    services.GeneratePDF,
	}
	// now is replaced in tests
	now = time.Now
)

// SetDependencies installs the adapters built at startup. Nil members keep
// their defaults.
func SetDependencies(d Dependencies) {
	if d.Mailer != nil {
		deps.Mailer = d.Mailer
	}
	if d.Bus != nil {
		deps.Bus = d.Bus
	}
	if d.Storage != nil {
		deps.Storage = d.Storage
	}
	if d.PDF != nil {
		deps.PDF = d.PDF
	}
}

func notificationService(cfg *config.Config) *services.NotificationService {
	return services.NewNotificationService(db.DB, cfg, deps.Mailer, deps.Bus)
}

func intakeService(cfg *config.Config) *services.IntakeService {
	return services.NewIntakeService(db.DB, notificationService(cfg))
}

func timeEntryService(cfg *config.Config) *services.TimeEntryService {
	return services.NewTimeEntryService(db.DB, cfg.DefaultHourlyRate)
}

func invoiceService(cfg *config.Config) *services.InvoiceService {
	svc := services.NewInvoiceService(db.DB, cfg.InvoiceDueDays, deps.Storage)
	svc.Render = deps.PDF
	return svc
}
