package pages

import (
	"time"

	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/partials"
)

// AuthPageData drives the four login and register pages
type AuthPageData struct {
	Layout   components.LayoutData
	Role     string
	Register bool
	Error    string
	Name     string
	Email    string
}

// IntakePageData drives the client intake form
type IntakePageData struct {
	Layout           components.LayoutData
	Record           *models.ClientRecord
	Errors           map[models.FieldKey]string
	Submitted        bool
	AlreadySubmitted bool
	ErrorMessage     string
}

// DashboardData holds the data for the client dashboard
type DashboardData struct {
	Layout components.LayoutData
	List   partials.ClientListData
}

// ClientPageData drives the client detail and edit pages
type ClientPageData struct {
	Layout       components.LayoutData
	Record       *models.ClientRecord
	Message      string
	ErrorMessage string
}

// TimeTrackingData holds the time tracking page
type TimeTrackingData struct {
	Layout       components.LayoutData
	Entries      []models.TimeEntry
	Summary      services.TimeSummary
	Clients      []models.ClientRecord
	Filter       services.TimeEntryFilter
	Today        string
	DefaultRate  float64
	Message      string
	ErrorMessage string
}

// InvoicesData holds the invoices page
type InvoicesData struct {
	Layout       components.LayoutData
	Invoices     []models.Invoice
	Stats        services.InvoiceStats
	Clients      []models.ClientRecord
	Filter       services.InvoiceFilter
	Now          time.Time
	Message      string
	ErrorMessage string
}
