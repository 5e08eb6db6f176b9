package pages

import (
	"context"
	"net/url"

	"family_law_portal_go/services"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/partials"

	"github.com/a-h/templ"
)

var timeTabs = []struct{ Key, Label string }{
	{"all", "All"},
	{services.TimeTabBillable, "Billable"},
	{services.TimeTabNonBillable, "Non-billable"},
}

var timePeriods = []struct{ Key, Label string }{
	{services.PeriodToday, "Today"},
	{services.PeriodWeek, "This week"},
	{services.PeriodMonth, "This month"},
	{services.PeriodAll, "All time"},
}

// TimeTracking renders the time entry form, overview and list
func TimeTracking(data TimeTrackingData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		h.Raw(`<div class="page-header"><h1>Time Tracking</h1></div>`)
		h.Component(ctx, partials.Alert(partials.ToastSuccess, data.Message))
		h.Component(ctx, partials.Alert(partials.ToastError, data.ErrorMessage))

		h.Raw(`<div class="stats">`)
		h.Printf(`<div class="stat"><span class="muted">Hours this week</span><strong>%s</strong></div>`, partials.FormatHours(data.Summary.HoursThisWeek))
		h.Printf(`<div class="stat"><span class="muted">Total hours</span><strong>%s</strong></div>`, partials.FormatHours(data.Summary.TotalHours))
		h.Printf(`<div class="stat"><span class="muted">Billable amount</span><strong>%s</strong></div>`, partials.FormatMoney(data.Summary.BillableAmount))
		h.Printf(`<div class="stat"><span class="muted">Unbilled</span><strong>%s</strong></div>`, partials.FormatMoney(data.Summary.UnbilledAmount))
		h.Raw(`</div>`)

		h.Raw(`<form class="card form-grid" method="POST" action="/dashboard/time-tracking">`)
		h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.Layout.CSRFToken)
		h.Raw(`<div class="field"><label for="client_id">Client</label><select id="client_id" name="client_id" required><option value="">Select a client</option>`)
		for _, c := range data.Clients {
			h.Printf(`<option value="%s">%s</option>`, c.ID, c.ClientInfo.Name)
		}
		h.Raw(`</select></div>`)
		h.Printf(`<div class="field"><label for="date">Date</label><input type="date" id="date" name="date" value="%s" required></div>`, data.Today)
		h.Raw(`<div class="field"><label for="hours">Hours</label><input type="number" id="hours" name="hours" step="0.25" min="0.25" max="24" required></div>`)
		h.Printf(`<div class="field"><label for="rate">Rate</label><input type="number" id="rate" name="rate" step="0.01" min="0" value="%.2f"></div>`, data.DefaultRate)
		h.Raw(`<div class="field field-wide"><label for="description">Description</label><textarea id="description" name="description" rows="2" required></textarea></div>`)
		h.Raw(`<div class="field"><label><input type="checkbox" name="billable" value="true" checked> Billable</label></div>`)
		h.Raw(`<div class="form-actions"><button type="submit" class="btn btn-primary">Log time</button></div></form>`)

		h.Raw(`<div class="filters"><div class="tabs">`)
		for _, tab := range timeTabs {
			h.Component(ctx, filterLink("/dashboard/time-tracking", tab.Label, url.Values{"tab": {tab.Key}, "period": {data.Filter.Period}, "q": {data.Filter.Query}}, tab.Key == data.Filter.Tab))
		}
		h.Raw(`</div><div class="tabs">`)
		for _, p := range timePeriods {
			h.Component(ctx, filterLink("/dashboard/time-tracking", p.Label, url.Values{"tab": {data.Filter.Tab}, "period": {p.Key}, "q": {data.Filter.Query}}, p.Key == data.Filter.Period))
		}
		h.Raw(`</div>`)
		h.Raw(`<form class="search" method="GET" action="/dashboard/time-tracking">`)
		h.Printf(`<input type="hidden" name="tab" value="%s"><input type="hidden" name="period" value="%s">`, data.Filter.Tab, data.Filter.Period)
		h.Printf(`<input type="search" name="q" value="%s" placeholder="Search client or description" aria-label="Search time entries"></form></div>`, data.Filter.Query)

		if len(data.Entries) == 0 {
			h.Raw(`<p class="empty">No time entries.</p>`)
			return
		}
		h.Raw(`<table class="table"><thead><tr><th>Date</th><th>Client</th><th>Description</th><th class="num">Hours</th><th class="num">Amount</th><th>Billing</th><th></th></tr></thead><tbody>`)
		for _, e := range data.Entries {
			h.Printf(`<tr id="entry-%s"><td>%s</td><td>%s</td><td>%s</td><td class="num">%s</td>`,
				e.ID, e.Date.Format(services.DateLayout), e.Client.ClientInfo.Name, e.Description, partials.FormatHours(e.Hours))
			switch {
			case !e.Billable:
				h.Raw(`<td class="num">-</td><td><span class="badge">Non-billable</span></td><td>`)
			case e.InvoiceID != nil:
				h.Printf(`<td class="num">%s</td><td><span class="badge badge-closed">Invoiced</span></td><td>`, partials.FormatMoney(e.Amount()))
			default:
				h.Printf(`<td class="num">%s</td><td><span class="badge badge-pending">Unbilled</span></td><td>`, partials.FormatMoney(e.Amount()))
			}
			if e.InvoiceID == nil {
				h.Printf(`<form method="POST" action="/dashboard/time-tracking/%s/delete" class="inline">`, e.ID)
				h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.Layout.CSRFToken)
				h.Raw(`<button type="submit" class="btn btn-link">Delete</button></form>`)
			}
			h.Raw(`</td></tr>`)
		}
		h.Raw(`</tbody></table>`)
	})
	return components.Layout(data.Layout, body)
}

func filterLink(path, label string, q url.Values, active bool) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		for k, v := range q {
			if len(v) == 0 || v[0] == "" {
				q.Del(k)
			}
		}
		class := "tab"
		if active {
			class += " tab-active"
		}
		h.Printf(`<a class="%s" href="%s?%s">%s</a>`, class, path, q.Encode(), label)
	})
}
