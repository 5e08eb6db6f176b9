package handlers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"family_law_portal_go/middleware"
	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/pages"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

const (
	intakeTitle       = "Intake Questionnaire"
	msgIntakeFailed   = "We could not save your answers. Please try again."
	maxIntakeBodySize = 1 << 20
)

// IntakePageHandler shows the questionnaire, or the already-submitted notice
// when the client owns a record
func IntakePageHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	cfg := getConfig(c)

	submitted, err := intakeService(cfg).HasSubmitted(c.Request().Context(), user.ID)
	if err != nil {
		log.Printf("[ERROR] %v", err)
		return renderError(c, http.StatusInternalServerError, "Failed to load intake form")
	}

	rec := models.NewClientRecord()
	return render(c, http.StatusOK, pages.Intake(pages.IntakePageData{
		Layout:           layoutData(c, intakeTitle),
		Record:           &rec,
		AlreadySubmitted: submitted,
	}))
}

// IntakePostHandler submits the questionnaire form
func IntakePostHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	cfg := getConfig(c)

	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid form data")
	}
	answers := services.IntakeFromForm(values)

	data := pages.IntakePageData{
		Layout: layoutData(c, intakeTitle),
		Record: answers,
	}
	status := http.StatusOK

	_, err = intakeService(cfg).SubmitIntake(c.Request().Context(), user.ID, answers)
	var verrs services.ValidationErrors
	switch {
	case err == nil:
		fresh := models.NewClientRecord()
		data.Record = &fresh
		data.Submitted = true
	case errors.As(err, &verrs):
		data.Errors = verrs
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrAlreadySubmitted):
		data.AlreadySubmitted = true
		status = http.StatusConflict
	default:
		log.Printf("[ERROR] Intake for %s: %v", user.ID, err)
		data.ErrorMessage = msgIntakeFailed
		status = http.StatusInternalServerError
	}

	var page templ.Component
	if isHTMX(c) {
		page = pages.IntakeContent(data)
	} else {
		page = pages.Intake(data)
	}
	return render(c, formStatus(c, status), page)
}

// IntakeAPIHandler accepts the questionnaire as a JSON document
func IntakeAPIHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	cfg := getConfig(c)

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxIntakeBodySize))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read request body")
	}

	answers, err := services.ParseIntakeJSON(body)
	if err == nil {
		var rec *models.ClientRecord
		rec, err = intakeService(cfg).SubmitIntake(c.Request().Context(), user.ID, answers)
		if err == nil {
			return c.JSON(http.StatusCreated, rec)
		}
	}

	var verrs services.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"error":  "Validation failed",
			"fields": verrs,
		})
	case errors.Is(err, services.ErrAlreadySubmitted):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	default:
		log.Printf("[ERROR] Intake API for %s: %v", user.ID, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": msgIntakeFailed})
	}
}

// IntakeSchemaHandler publishes the JSON schema accepted by the intake API
func IntakeSchemaHandler(c echo.Context) error {
	return c.Blob(http.StatusOK, "application/schema+json", []byte(components.JSON(services.IntakeSchemaDocument())))
}
