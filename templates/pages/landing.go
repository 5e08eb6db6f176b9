package pages

import (
	"context"

	"family_law_portal_go/templates/components"

	"github.com/a-h/templ"
)

// Landing lets the visitor choose between the client and lawyer areas
func Landing(layout components.LayoutData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		h.Raw(`<section class="hero"><h1>`)
		h.Text(components.AppName)
		h.Raw(`</h1><p class="muted">Start your family law matter online, or sign in to manage your clients.</p></section>`)
		h.Raw(`<div class="role-choice">`)
		h.Raw(`<a class="role-card" href="/client-login"><h2>I'm a client</h2><p>Complete your intake questionnaire.</p></a>`)
		h.Raw(`<a class="role-card" href="/lawyer-login"><h2>I'm a lawyer</h2><p>Review intakes, track time and send invoices.</p></a>`)
		h.Raw(`</div>`)
	})
	return components.Layout(layout, body)
}

// ErrorPage is the blocking full-page message for not-found and load failures
func ErrorPage(layout components.LayoutData, status int, message string) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		h.Printf(`<section class="error-page"><p class="status">%d</p><h1>%s</h1>`, status, message)
		h.Raw(`<p><a class="btn btn-secondary" href="/dashboard">Back to dashboard</a></p></section>`)
	})
	return components.Layout(layout, body)
}
