package pages

import (
	"context"
	"net/url"

	"family_law_portal_go/models"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/partials"

	"github.com/a-h/templ"
)

// Dashboard renders the lawyer's client list with search and tabs
func Dashboard(data DashboardData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		export := "/dashboard/clients/export.xlsx?" + url.Values{"tab": {data.List.Tab}, "q": {data.List.Query}}.Encode()

		h.Raw(`<div class="page-header"><h1>Clients</h1>`)
		h.Printf(`<a class="btn btn-secondary" href="%s">Export to Excel</a></div>`, export)

		h.Raw(`<form class="search" method="GET" action="/dashboard" hx-get="/dashboard" hx-target="#client-list" hx-swap="outerHTML" hx-trigger="input changed delay:300ms from:#search, submit" hx-push-url="true">`)
		h.Printf(`<input type="hidden" name="tab" value="%s">`, data.List.Tab)
		h.Printf(`<input type="search" id="search" name="q" value="%s" placeholder="Search by client name" aria-label="Search clients">`, data.List.Query)
		h.Raw(`</form>`)

		h.Component(ctx, partials.ClientList(data.List))
	})
	return components.Layout(data.Layout, body)
}

// ClientDetail is the read-only view of one record
func ClientDetail(data ClientPageData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		rec := data.Record
		h.Raw(`<div class="page-header"><div>`)
		h.Printf(`<h1>%s</h1><p class="muted">%s</p>`, rec.ClientInfo.Name, rec.CaseLabel())
		h.Raw(`<div class="badges">`)
		h.Component(ctx, partials.StatusBadge(rec.Status))
		h.Component(ctx, partials.PriorityBadge(rec.Priority))
		h.Raw(`</div></div>`)
		h.Printf(`<a class="btn btn-primary" href="/dashboard/clients/%s/edit">Edit</a></div>`, rec.ID)

		h.Component(ctx, partials.Alert(partials.ToastSuccess, data.Message))

		h.Raw(`<dl class="meta">`)
		h.Printf(`<dt>Submitted</dt><dd>%s</dd>`, partials.FormatDate(rec.CreatedAt))
		h.Printf(`<dt>Last activity</dt><dd>%s</dd>`, partials.FormatTimestamp(rec.LastActivity))
		h.Printf(`<dt>Billable hours</dt><dd>%s</dd>`, partials.FormatHours(rec.BillableHours))
		h.Raw(`</dl>`)

		h.Component(ctx, partials.ReadOnlySections(rec))
		h.Raw(`<p><a href="/dashboard">Back to clients</a></p>`)
	})
	return components.Layout(data.Layout, body)
}

// ClientEdit renders one control per field plus the triage selectors
func ClientEdit(data ClientPageData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		rec := data.Record
		h.Printf(`<h1>Edit %s</h1>`, rec.ClientInfo.Name)
		h.Component(ctx, partials.Alert(partials.ToastError, data.ErrorMessage))

		h.Printf(`<form method="POST" action="/dashboard/clients/%s">`, rec.ID)
		h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.Layout.CSRFToken)

		h.Raw(`<fieldset class="section"><legend>Triage</legend>`)
		h.Raw(`<div class="field"><label for="status">Status</label><select id="status" name="status">`)
		for _, s := range models.ClientStatuses {
			h.Printf(`<option value="%s"%s>%s</option>`, s, components.BoolAttr("selected", s == rec.Status), partials.Title(s))
		}
		h.Raw(`</select></div>`)
		h.Raw(`<div class="field"><label for="priority">Priority</label><select id="priority" name="priority">`)
		for _, p := range []string{"", models.PriorityHigh, models.PriorityMedium, models.PriorityLow} {
			label := partials.Title(p)
			if p == "" {
				label = "None"
			}
			h.Printf(`<option value="%s"%s>%s</option>`, p, components.BoolAttr("selected", p == rec.Priority), label)
		}
		h.Raw(`</select></div></fieldset>`)

		h.Component(ctx, partials.FieldSections(rec, true, nil))

		h.Raw(`<div class="form-actions"><button type="submit" class="btn btn-primary">Save</button>`)
		h.Printf(`<a class="btn btn-secondary" href="/dashboard/clients/%s">Cancel</a></div></form>`, rec.ID)
	})
	return components.Layout(data.Layout, body)
}
