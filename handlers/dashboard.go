package handlers

import (
	"log"
	"net/http"
	"strings"

	"family_law_portal_go/db"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/pages"
	"family_law_portal_go/templates/partials"

	"github.com/labstack/echo/v4"
)

// DashboardHandler lists client records with search and status tabs. HTMX
// requests get only the list.
func DashboardHandler(c echo.Context) error {
	list, err := loadClientList(c)
	if err != nil {
		log.Printf("[ERROR] Dashboard: %v", err)
		if isHTMX(c) {
			return render(c, http.StatusOK, partials.Toast(partials.ToastError, "Failed to load clients"))
		}
		return renderError(c, http.StatusInternalServerError, "Failed to load clients")
	}

	if isHTMX(c) {
		return render(c, http.StatusOK, partials.ClientList(list))
	}
	return render(c, http.StatusOK, pages.Dashboard(pages.DashboardData{
		Layout: layoutData(c, "Clients"),
		List:   list,
	}))
}

// ExportClientsHandler downloads the filtered client list as a workbook
func ExportClientsHandler(c echo.Context) error {
	list, err := loadClientList(c)
	if err != nil {
		log.Printf("[ERROR] Client export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load clients")
	}

	data, err := services.ExportClientsXLSX(list.Records)
	if err != nil {
		log.Printf("[ERROR] Client export: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to export clients")
	}

	filename := "clients-" + now().Format("2006-01-02") + ".xlsx"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func loadClientList(c echo.Context) (partials.ClientListData, error) {
	query := strings.TrimSpace(c.QueryParam("q"))
	tab := services.NormalizeTab(c.QueryParam("tab"))

	records, err := services.NewClientService(db.DB).ListClients(c.Request().Context())
	if err != nil {
		return partials.ClientListData{}, err
	}

	return partials.ClientListData{
		Records: services.FilterClients(records, query, tab),
		Tab:     tab,
		Query:   query,
		Counts:  services.TabCounts(records, query),
	}, nil
}
