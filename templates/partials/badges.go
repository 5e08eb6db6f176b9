package partials

import (
	"context"

	"family_law_portal_go/models"
	"family_law_portal_go/templates/components"

	"github.com/a-h/templ"
)

func StatusBadge(status string) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		h.Printf(`<span class="badge badge-%s">%s</span>`, status, Title(status))
	})
}

func PriorityBadge(priority string) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		if !models.IsValidPriority(priority) || priority == "" {
			return
		}
		h.Printf(`<span class="badge badge-priority-%s">%s priority</span>`, priority, Title(priority))
	})
}
