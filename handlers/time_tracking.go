package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"family_law_portal_go/db"
	"family_law_portal_go/middleware"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const timeTrackingPath = "/dashboard/time-tracking"

// notices are the fixed confirmation messages a redirect may ask for
var notices = map[string]string{
	"logged":   "Time entry saved",
	"deleted":  "Time entry deleted",
	"invoiced": "Invoice created",
	"paid":     "Invoice marked as paid",
	"sent":     "Invoice emailed to the client",
}

func timeFilterFromQuery(c echo.Context) services.TimeEntryFilter {
	filter := services.TimeEntryFilter{
		Query:  strings.TrimSpace(c.QueryParam("q")),
		Tab:    c.QueryParam("tab"),
		Period: c.QueryParam("period"),
	}
	if filter.Tab != services.TimeTabBillable && filter.Tab != services.TimeTabNonBillable {
		filter.Tab = "all"
	}
	switch filter.Period {
	case services.PeriodToday, services.PeriodWeek, services.PeriodMonth, services.PeriodAll:
	default:
		filter.Period = services.PeriodWeek
	}
	return filter
}

// TimeTrackingHandler shows the entry form, the overview and the entry list
func TimeTrackingHandler(c echo.Context) error {
	return renderTimeTracking(c, http.StatusOK, notices[c.QueryParam("notice")], "")
}

func renderTimeTracking(c echo.Context, status int, message, errMessage string) error {
	ctx := c.Request().Context()
	cfg := getConfig(c)
	current := now()
	filter := timeFilterFromQuery(c)

	entries, err := timeEntryService(cfg).ListTimeEntries(ctx, filter, current)
	if err != nil {
		log.Printf("[ERROR] Time entries: %v", err)
		return renderError(c, http.StatusInternalServerError, "Failed to load time entries")
	}
	clients, err := services.NewClientService(db.DB).ListClients(ctx)
	if err != nil {
		log.Printf("[ERROR] Time entries: %v", err)
		return renderError(c, http.StatusInternalServerError, "Failed to load clients")
	}

	return render(c, status, pages.TimeTracking(pages.TimeTrackingData{
		Layout:       layoutData(c, "Time Tracking"),
		Entries:      entries,
		Summary:      services.SummarizeTime(entries, current),
		Clients:      clients,
		Filter:       filter,
		Today:        current.Format(services.DateLayout),
		DefaultRate:  cfg.DefaultHourlyRate,
		Message:      message,
		ErrorMessage: errMessage,
	}))
}

// CreateTimeEntryHandler logs a time entry for the signed-in lawyer
func CreateTimeEntryHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	input := services.TimeEntryInput{
		ClientID:    c.FormValue("client_id"),
		LawyerID:    user.ID,
		Date:        c.FormValue("date"),
		Description: c.FormValue("description"),
		Billable:    c.FormValue("billable") == "true",
	}
	if v := strings.TrimSpace(c.FormValue("hours")); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return renderTimeTracking(c, http.StatusBadRequest, "", services.ErrInvalidHours.Error())
		}
		input.Hours = hours
	}
	if v := strings.TrimSpace(c.FormValue("rate")); v != "" {
		if rate, err := strconv.ParseFloat(v, 64); err == nil {
			input.Rate = rate
		}
	}

	if _, err := timeEntryService(getConfig(c)).CreateTimeEntry(c.Request().Context(), input); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields), errors.Is(err, services.ErrInvalidHours), errors.Is(err, services.ErrClientNotFound):
			return renderTimeTracking(c, http.StatusBadRequest, "", err.Error())
		case strings.HasPrefix(err.Error(), "invalid date"):
			return renderTimeTracking(c, http.StatusBadRequest, "", "Date must be YYYY-MM-DD")
		default:
			log.Printf("[ERROR] Create time entry: %v", err)
			return renderTimeTracking(c, http.StatusInternalServerError, "", "Failed to save time entry")
		}
	}
	return c.Redirect(http.StatusSeeOther, timeTrackingPath+"?notice=logged")
}

// DeleteTimeEntryHandler removes an entry that has not been invoiced
func DeleteTimeEntryHandler(c echo.Context) error {
	if err := timeEntryService(getConfig(c)).DeleteTimeEntry(c.Request().Context(), c.Param("id")); err != nil {
		switch {
		case errors.Is(err, services.ErrTimeEntryNotFound):
			return renderTimeTracking(c, http.StatusNotFound, "", err.Error())
		case errors.Is(err, services.ErrTimeEntryInvoiced):
			return renderTimeTracking(c, http.StatusConflict, "", err.Error())
		default:
			log.Printf("[ERROR] Delete time entry %s: %v", c.Param("id"), err)
			return renderTimeTracking(c, http.StatusInternalServerError, "", "Failed to delete time entry")
		}
	}
	return c.Redirect(http.StatusSeeOther, timeTrackingPath+"?notice=deleted")
}
