package partials

import (
	"context"

	"family_law_portal_go/templates/components"

	"github.com/a-h/templ"
)

// Toast kinds
const (
	ToastSuccess = "success"
	ToastError   = "error"
	ToastInfo    = "info"
)

// Toast is an out-of-band message appended to the toast stack
func Toast(kind, message string) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		h.Printf(`<div id="toasts" hx-swap-oob="beforeend"><div class="toast toast-%s" role="status">%s</div></div>`, kind, message)
	})
}

// Alert is an inline message box
func Alert(kind, message string) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		if message == "" {
			return
		}
		h.Printf(`<div class="alert alert-%s" role="alert">%s</div>`, kind, message)
	})
}
