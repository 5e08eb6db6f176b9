package partials

import (
	"context"
	"net/url"

	"family_law_portal_go/models"
	"family_law_portal_go/templates/components"

	"github.com/a-h/templ"
)

// ClientListData is the filtered dashboard list
type ClientListData struct {
	Records []models.ClientRecord
	Tab     string
	Query   string
	Counts  map[string]int
}

var dashboardTabs = []struct{ Key, Label string }{
	{"all", "All"},
	{models.ClientStatusPending, "Pending"},
	{models.ClientStatusActive, "Active"},
	{models.ClientStatusClosed, "Closed"},
}

// ClientList renders the tabs and the client cards. It is the HTMX swap
// target of the search box and the tabs.
func ClientList(data ClientListData) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		h.Raw(`<div id="client-list">`)
		h.Raw(`<div class="tabs" role="tablist">`)
		for _, tab := range dashboardTabs {
			q := url.Values{"tab": {tab.Key}}
			if data.Query != "" {
				q.Set("q", data.Query)
			}
			href := "/dashboard?" + q.Encode()
			class := "tab"
			if tab.Key == data.Tab {
				class += " tab-active"
			}
			h.Printf(`<a class="%s" role="tab" href="%s" hx-get="%s" hx-target="#client-list" hx-swap="outerHTML" hx-push-url="true">%s <span class="count">%d</span></a>`,
				class, href, href, tab.Label, data.Counts[tab.Key])
		}
		h.Raw(`</div>`)

		if len(data.Records) == 0 {
			h.Raw(`<p class="empty">No clients found.</p>`)
		} else {
			h.Raw(`<div class="cards">`)
			for i := range data.Records {
				h.Component(ctx, ClientCard(&data.Records[i]))
			}
			h.Raw(`</div>`)
		}
		h.Raw(`</div>`)
	})
}

// ClientCard is one row of the dashboard list
func ClientCard(rec *models.ClientRecord) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		detail := "/dashboard/clients/" + rec.ID
		h.Printf(`<article class="card" id="client-%s">`, rec.ID)
		h.Printf(`<div class="avatar">%s</div>`, rec.Initials())
		h.Raw(`<div class="card-body">`)
		h.Printf(`<h3 class="card-title">%s</h3>`, rec.ClientInfo.Name)
		h.Printf(`<p class="muted">%s</p>`, rec.CaseLabel())
		h.Raw(`<div class="badges">`)
		h.Component(ctx, StatusBadge(rec.Status))
		h.Component(ctx, PriorityBadge(rec.Priority))
		h.Raw(`</div></div>`)
		h.Raw(`<div class="card-actions">`)
		h.Printf(`<a class="btn btn-secondary" href="%s">Details</a>`, detail)
		h.Raw(`<details class="dropdown"><summary aria-label="More actions">&#8942;</summary><ul>`)
		h.Printf(`<li><a href="%s">View client</a></li>`, detail)
		h.Raw(`</ul></details></div></article>`)
	})
}
