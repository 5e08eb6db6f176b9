package pages

import (
	"context"

	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/partials"

	"github.com/a-h/templ"
)

// Intake renders the client questionnaire page
func Intake(data IntakePageData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		h.Raw(`<h1>Family Law Intake Questionnaire</h1>`)
		h.Component(ctx, IntakeContent(data))
	})
	return components.Layout(data.Layout, body)
}

// IntakeContent is the swappable part of the intake page: the confirmation,
// the already-submitted notice, or the form itself
func IntakeContent(data IntakePageData) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		h.Raw(`<div id="intake">`)
		switch {
		case data.Submitted:
			h.Raw(`<section class="confirmation"><h2>Thank you</h2>`)
			h.Raw(`<p>Your intake form has been submitted. A lawyer will review it and contact you.</p></section>`)
		case data.AlreadySubmitted:
			h.Component(ctx, partials.Alert(partials.ToastInfo, "You have already submitted the intake form."))
		default:
			h.Raw(`<form method="POST" action="/intake" hx-post="/intake" hx-target="#intake" hx-swap="outerHTML" novalidate>`)
			h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.Layout.CSRFToken)
			h.Component(ctx, partials.Alert(partials.ToastError, data.ErrorMessage))
			h.Component(ctx, partials.FieldSections(data.Record, false, data.Errors))
			h.Raw(`<div class="form-actions"><button type="submit" class="btn btn-primary">Submit</button></div></form>`)
		}
		h.Raw(`</div>`)
	})
}
