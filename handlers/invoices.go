package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"family_law_portal_go/db"
	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const invoicesPath = "/dashboard/invoices"

func invoiceFilterFromQuery(c echo.Context) services.InvoiceFilter {
	filter := services.InvoiceFilter{
		Query:  strings.TrimSpace(c.QueryParam("q")),
		Tab:    c.QueryParam("tab"),
		Period: c.QueryParam("period"),
	}
	if filter.Tab != models.InvoiceStatusPaid && filter.Tab != models.InvoiceStatusUnpaid {
		filter.Tab = "all"
	}
	switch filter.Period {
	case services.PeriodMonth, services.PeriodQuarter, services.PeriodYear, services.PeriodAll:
	default:
		filter.Period = services.PeriodAll
	}
	return filter
}

// InvoicesHandler shows the invoice overview and list
func InvoicesHandler(c echo.Context) error {
	return renderInvoices(c, http.StatusOK, notices[c.QueryParam("notice")], "")
}

func renderInvoices(c echo.Context, status int, message, errMessage string) error {
	ctx := c.Request().Context()
	current := now()
	filter := invoiceFilterFromQuery(c)

	invoices, err := invoiceService(getConfig(c)).ListInvoices(ctx, filter, current)
	if err != nil {
		log.Printf("[ERROR] Invoices: %v", err)
		return renderError(c, http.StatusInternalServerError, "Failed to load invoices")
	}
	clients, err := services.NewClientService(db.DB).ListClients(ctx)
	if err != nil {
		log.Printf("[ERROR] Invoices: %v", err)
		return renderError(c, http.StatusInternalServerError, "Failed to load clients")
	}

	return render(c, status, pages.Invoices(pages.InvoicesData{
		Layout:       layoutData(c, "Invoices"),
		Invoices:     invoices,
		Stats:        services.SummarizeInvoices(invoices, current),
		Clients:      clients,
		Filter:       filter,
		Now:          current,
		Message:      message,
		ErrorMessage: errMessage,
	}))
}

// CreateInvoiceHandler bills the client's unbilled time
func CreateInvoiceHandler(c echo.Context) error {
	clientID := c.FormValue("client_id")
	if clientID == "" {
		return renderInvoices(c, http.StatusBadRequest, "", "Select a client to bill")
	}

	if _, err := invoiceService(getConfig(c)).CreateInvoice(c.Request().Context(), clientID, now()); err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound), errors.Is(err, services.ErrNothingToBill):
			return renderInvoices(c, http.StatusBadRequest, "", err.Error())
		default:
			log.Printf("[ERROR] Create invoice for %s: %v", clientID, err)
			return renderInvoices(c, http.StatusInternalServerError, "", "Failed to create invoice")
		}
	}
	return c.Redirect(http.StatusSeeOther, invoicesPath+"?notice=invoiced")
}

// MarkInvoicePaidHandler records payment of an invoice
func MarkInvoicePaidHandler(c echo.Context) error {
	if _, err := invoiceService(getConfig(c)).MarkPaid(c.Request().Context(), c.Param("id"), now()); err != nil {
		return invoiceActionError(c, err, "Failed to update invoice")
	}
	return c.Redirect(http.StatusSeeOther, invoicesPath+"?notice=paid")
}

// SendInvoiceHandler emails the invoice to the client
func SendInvoiceHandler(c echo.Context) error {
	if err := invoiceService(getConfig(c)).SendInvoice(c.Request().Context(), c.Param("id"), deps.Mailer); err != nil {
		return invoiceActionError(c, err, "Failed to send invoice")
	}
	return c.Redirect(http.StatusSeeOther, invoicesPath+"?notice=sent")
}

// InvoicePDFHandler serves the rendered invoice
func InvoicePDFHandler(c echo.Context) error {
	data, invoice, err := invoiceService(getConfig(c)).InvoicePDF(c.Request().Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrInvoiceNotFound) {
			return renderError(c, http.StatusNotFound, err.Error())
		}
		log.Printf("[ERROR] Invoice PDF %s: %v", c.Param("id"), err)
		return renderError(c, http.StatusInternalServerError, "Failed to generate invoice PDF")
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, `inline; filename="`+invoice.Number+`.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

// ExportInvoicesHandler downloads the filtered invoice list as a workbook
func ExportInvoicesHandler(c echo.Context) error {
	current := now()
	invoices, err := invoiceService(getConfig(c)).ListInvoices(c.Request().Context(), invoiceFilterFromQuery(c), current)
	if err != nil {
		log.Printf("[ERROR] Invoice export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load invoices")
	}
	data, err := services.ExportInvoicesXLSX(invoices, current)
	if err != nil {
		log.Printf("[ERROR] Invoice export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export invoices")
	}
	filename := "invoices-" + current.Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

func invoiceActionError(c echo.Context, err error, fallback string) error {
	if errors.Is(err, services.ErrInvoiceNotFound) || errors.Is(err, services.ErrClientNotFound) {
		return renderInvoices(c, http.StatusNotFound, "", err.Error())
	}
	log.Printf("[ERROR] Invoice %s: %v", c.Param("id"), err)
	return renderInvoices(c, http.StatusInternalServerError, "", fallback)
}
