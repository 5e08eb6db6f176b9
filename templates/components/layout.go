package components

import (
	"context"

	"family_law_portal_go/middleware"
	"family_law_portal_go/models"

	"github.com/a-h/templ"
)

const AppName = "Family Law Portal"

// LayoutData is what every full page needs
type LayoutData struct {
	Title     string
	CSRFToken string
	User      *models.User
}

// Layout renders the document shell around body. Lawyers also get the live
// notification listener.
func Layout(data LayoutData, body templ.Component) templ.Component {
	return Build(func(ctx context.Context, h *Writer) {
		nonce := middleware.GetNonce(ctx)
		title := AppName
		if data.Title != "" {
			title = data.Title + " | " + AppName
		}

		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="UTF-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1.0">`)
		h.Printf(`<title>%s</title>`, title)
		h.Printf(`<meta name="csrf-token" content="%s">`, data.CSRFToken)
		h.Printf(`<link rel="stylesheet" href="%s">`, middleware.AssetURL("css/app.css"))
		h.Printf(`<script nonce="%s" src="https://unpkg.com/htmx.org@2.0.4"></script>`, nonce)
		h.Raw(`</head><body hx-headers='{"X-CSRF-Token": "`)
		h.Text(data.CSRFToken)
		h.Raw(`"}'>`)

		h.Component(ctx, Nav(data))
		h.Raw(`<div id="toasts" class="toasts" aria-live="polite"></div>`)
		h.Raw(`<main class="container">`)
		h.Component(ctx, body)
		h.Raw(`</main>`)

		if data.User != nil && data.User.IsLawyer() {
			h.Printf(`<script nonce="%s" src="%s"></script>`, nonce, middleware.AssetURL("js/notifications.js"))
		}
		h.Raw(`</body></html>`)
	})
}

// Nav renders the top bar with the sign-out form for signed-in users
func Nav(data LayoutData) templ.Component {
	return Build(func(ctx context.Context, h *Writer) {
		h.Raw(`<nav class="nav"><a class="brand" href="/">`)
		h.Text(AppName)
		h.Raw(`</a>`)
		if data.User != nil {
			h.Raw(`<div class="nav-links">`)
			if data.User.IsLawyer() {
				h.Raw(`<a href="/dashboard">Clients</a><a href="/dashboard/time-tracking">Time Tracking</a><a href="/dashboard/invoices">Invoices</a>`)
			} else {
				h.Raw(`<a href="/intake">Intake Form</a>`)
			}
			h.Printf(`<span class="muted">%s</span>`, data.User.Name)
			h.Raw(`<form method="POST" action="/logout" class="inline">`)
			h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.CSRFToken)
			h.Raw(`<button type="submit" class="btn btn-link">Sign out</button></form></div>`)
		}
		h.Raw(`</nav>`)
	})
}
