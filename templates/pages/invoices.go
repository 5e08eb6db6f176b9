package pages

import (
	"context"
	"net/url"

	"family_law_portal_go/models"
	"family_law_portal_go/services"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/partials"

	"github.com/a-h/templ"
)

var invoiceTabs = []struct{ Key, Label string }{
	{"all", "All"},
	{models.InvoiceStatusUnpaid, "Unpaid"},
	{models.InvoiceStatusPaid, "Paid"},
}

var invoicePeriods = []struct{ Key, Label string }{
	{services.PeriodMonth, "This month"},
	{services.PeriodQuarter, "This quarter"},
	{services.PeriodYear, "This year"},
	{services.PeriodAll, "All time"},
}

// Invoices renders the invoice overview, creation form and list
func Invoices(data InvoicesData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		export := "/dashboard/invoices/export.xlsx?" + url.Values{"tab": {data.Filter.Tab}, "period": {data.Filter.Period}, "q": {data.Filter.Query}}.Encode()
		h.Raw(`<div class="page-header"><h1>Invoices</h1>`)
		h.Printf(`<a class="btn btn-secondary" href="%s">Export to Excel</a></div>`, export)
		h.Component(ctx, partials.Alert(partials.ToastSuccess, data.Message))
		h.Component(ctx, partials.Alert(partials.ToastError, data.ErrorMessage))

		h.Raw(`<div class="stats">`)
		h.Printf(`<div class="stat"><span class="muted">Outstanding</span><strong>%s</strong></div>`, partials.FormatMoney(data.Stats.Outstanding))
		h.Printf(`<div class="stat"><span class="muted">Paid</span><strong>%s</strong></div>`, partials.FormatMoney(data.Stats.Paid))
		h.Printf(`<div class="stat"><span class="muted">Overdue</span><strong>%d</strong></div>`, data.Stats.OverdueCount)
		h.Printf(`<div class="stat"><span class="muted">Invoices</span><strong>%d</strong></div>`, data.Stats.Count)
		h.Raw(`</div>`)

		h.Raw(`<form class="card form-inline" method="POST" action="/dashboard/invoices">`)
		h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.Layout.CSRFToken)
		h.Raw(`<label for="invoice-client">Bill unbilled time for</label><select id="invoice-client" name="client_id" required><option value="">Select a client</option>`)
		for _, c := range data.Clients {
			h.Printf(`<option value="%s">%s</option>`, c.ID, c.ClientInfo.Name)
		}
		h.Raw(`</select><button type="submit" class="btn btn-primary">Create invoice</button></form>`)

		h.Raw(`<div class="filters"><div class="tabs">`)
		for _, tab := range invoiceTabs {
			h.Component(ctx, filterLink("/dashboard/invoices", tab.Label, url.Values{"tab": {tab.Key}, "period": {data.Filter.Period}, "q": {data.Filter.Query}}, tab.Key == data.Filter.Tab))
		}
		h.Raw(`</div><div class="tabs">`)
		for _, p := range invoicePeriods {
			h.Component(ctx, filterLink("/dashboard/invoices", p.Label, url.Values{"tab": {data.Filter.Tab}, "period": {p.Key}, "q": {data.Filter.Query}}, p.Key == data.Filter.Period))
		}
		h.Raw(`</div>`)
		h.Raw(`<form class="search" method="GET" action="/dashboard/invoices">`)
		h.Printf(`<input type="hidden" name="tab" value="%s"><input type="hidden" name="period" value="%s">`, data.Filter.Tab, data.Filter.Period)
		h.Printf(`<input type="search" name="q" value="%s" placeholder="Search client or number" aria-label="Search invoices"></form></div>`, data.Filter.Query)

		if len(data.Invoices) == 0 {
			h.Raw(`<p class="empty">No invoices.</p>`)
			return
		}
		h.Raw(`<table class="table"><thead><tr><th>Number</th><th>Client</th><th>Date</th><th>Due</th><th class="num">Hours</th><th class="num">Amount</th><th>Status</th><th></th></tr></thead><tbody>`)
		for i := range data.Invoices {
			inv := &data.Invoices[i]
			h.Printf(`<tr id="invoice-%s"><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td><td class="num">%s</td><td>`,
				inv.ID, inv.Number, inv.ClientName, partials.FormatDate(inv.IssueDate), partials.FormatDate(inv.DueDate),
				partials.FormatHours(inv.Hours), partials.FormatMoney(inv.Amount))
			switch {
			case inv.IsPaid():
				h.Raw(`<span class="badge badge-active">Paid</span>`)
			case inv.IsOverdue(data.Now):
				h.Raw(`<span class="badge badge-priority-high">Overdue</span>`)
			default:
				h.Raw(`<span class="badge badge-pending">Unpaid</span>`)
			}
			h.Raw(`</td><td class="actions">`)
			h.Printf(`<a class="btn btn-link" href="/dashboard/invoices/%s/pdf" target="_blank">PDF</a>`, inv.ID)
			h.Printf(`<form method="POST" action="/dashboard/invoices/%s/send" class="inline"><input type="hidden" name="_csrf" value="%s"><button type="submit" class="btn btn-link">Email</button></form>`, inv.ID, data.Layout.CSRFToken)
			if !inv.IsPaid() {
				h.Printf(`<form method="POST" action="/dashboard/invoices/%s/paid" class="inline"><input type="hidden" name="_csrf" value="%s"><button type="submit" class="btn btn-link">Mark paid</button></form>`, inv.ID, data.Layout.CSRFToken)
			}
			h.Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table>`)
	})
	return components.Layout(data.Layout, body)
}
