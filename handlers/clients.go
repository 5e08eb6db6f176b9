package handlers

import (
	"errors"
	"log"
	"net/http"

	"family_law_portal_go/db"
	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/pages"

	"github.com/labstack/echo/v4"
)

const (
	msgClientNotFound = "Client not found"
	msgClientLoad     = "Failed to load client"
	msgClientSaved    = "Client saved"
	msgClientSave     = "Failed to save client"
)

// ClientDetailHandler shows one record read-only
func ClientDetailHandler(c echo.Context) error {
	rec, err := services.NewClientService(db.DB).GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return clientLoadError(c, err)
	}
	data := pages.ClientPageData{
		Layout: layoutData(c, rec.ClientInfo.Name),
		Record: rec,
	}
	if c.QueryParam("saved") == "1" {
		data.Message = msgClientSaved
	}
	return render(c, http.StatusOK, pages.ClientDetail(data))
}

// ClientEditHandler shows one record in edit mode
func ClientEditHandler(c echo.Context) error {
	rec, err := services.NewClientService(db.DB).GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return clientLoadError(c, err)
	}
	return render(c, http.StatusOK, pages.ClientEdit(pages.ClientPageData{
		Layout: layoutData(c, "Edit "+rec.ClientInfo.Name),
		Record: rec,
	}))
}

// ClientUpdateHandler saves the edit form over the stored record
func ClientUpdateHandler(c echo.Context) error {
	ctx := c.Request().Context()
	svc := services.NewClientService(db.DB)
	id := c.Param("id")

	rec, err := svc.GetClient(ctx, id)
	if err != nil {
		return clientLoadError(c, err)
	}

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	services.ApplyForm(rec, values, true)
	if v, ok := values["status"]; ok && len(v) > 0 {
		rec.Status = v[0]
	}
	if v, ok := values["priority"]; ok && len(v) > 0 {
		rec.Priority = v[0]
	}

	if _, err := svc.UpdateClient(ctx, id, rec); err != nil {
		status, message := http.StatusInternalServerError, msgClientSave
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return clientLoadError(c, err)
		case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidPriority):
			status, message = http.StatusBadRequest, capitalize(err.Error())
		default:
			log.Printf("[ERROR] Update client %s: %v", id, err)
		}
		return render(c, status, pages.ClientEdit(pages.ClientPageData{
			Layout:       layoutData(c, "Edit "+rec.ClientInfo.Name),
			Record:       rec,
			ErrorMessage: message,
		}))
	}

	target := "/dashboard/clients/" + id + "?saved=1"
	if isHTMX(c) {
		c.Response().Header().Set("HX-Redirect", target)
		return c.NoContent(http.StatusOK)
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func clientLoadError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrClientNotFound) {
		return renderError(c, http.StatusNotFound, msgClientNotFound)
	}
	log.Printf("[ERROR] Load client %s: %v", c.Param("id"), err)
	return renderError(c, http.StatusInternalServerError, msgClientLoad)
}

// ListClientsAPIHandler returns the filtered records as JSON
func ListClientsAPIHandler(c echo.Context) error {
	list, err := loadClientList(c)
	if err != nil {
		log.Printf("[ERROR] List clients: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load clients")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"clients": list.Records,
		"counts":  list.Counts,
	})
}

// GetClientAPIHandler returns one record as JSON
func GetClientAPIHandler(c echo.Context) error {
	rec, err := services.NewClientService(db.DB).GetClient(c.Request().Context(), c.Param("id"))
	if err != nil {
		return clientAPIError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

// UpdateClientAPIHandler replaces the editable content of a record with the
// JSON body. Missing blocks are stored empty.
func UpdateClientAPIHandler(c echo.Context) error {
	edited := models.NewClientRecord()
	if err := c.Bind(&edited); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid client document")
	}

	rec, err := services.NewClientService(db.DB).UpdateClient(c.Request().Context(), c.Param("id"), &edited)
	if err != nil {
		return clientAPIError(c, err)
	}
	return c.JSON(http.StatusOK, rec)
}

func clientAPIError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, services.ErrClientNotFound):
		return echo.NewHTTPError(http.StatusNotFound, msgClientNotFound)
	case errors.Is(err, services.ErrInvalidStatus), errors.Is(err, services.ErrInvalidPriority):
		return echo.NewHTTPError(http.StatusBadRequest, capitalize(err.Error()))
	}
	log.Printf("[ERROR] Client API %s: %v", c.Param("id"), err)
	return echo.NewHTTPError(http.StatusInternalServerError, msgClientLoad)
}
