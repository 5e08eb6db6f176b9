package pages

import (
	"context"

	"family_law_portal_go/models"
	"family_law_portal_go/templates/components"
	"family_law_portal_go/templates/partials"

	"github.com/a-h/templ"
)

func roleLabel(role string) string {
	if role == models.RoleLawyer {
		return "Lawyer"
	}
	return "Client"
}

// AuthPage renders the login or register form for a role
func AuthPage(data AuthPageData) templ.Component {
	body := components.Build(func(ctx context.Context, h *components.Writer) {
		action := "/" + data.Role + "-login"
		heading := roleLabel(data.Role) + " Login"
		button := "Sign in"
		if data.Register {
			action = "/" + data.Role + "-register"
			heading = roleLabel(data.Role) + " Registration"
			button = "Create account"
		}

		h.Printf(`<section class="auth"><h1>%s</h1>`, heading)
		h.Printf(`<form method="POST" action="%s" hx-post="%s" hx-target="#form-message" hx-swap="innerHTML">`, action, action)
		h.Printf(`<input type="hidden" name="_csrf" value="%s">`, data.Layout.CSRFToken)
		h.Raw(`<div id="form-message">`)
		h.Component(ctx, partials.Alert(partials.ToastError, data.Error))
		h.Raw(`</div>`)
		if data.Register {
			h.Printf(`<div class="field"><label for="name">Name</label><input type="text" id="name" name="name" value="%s" required></div>`, data.Name)
		}
		h.Printf(`<div class="field"><label for="email">Email</label><input type="email" id="email" name="email" value="%s" required autocomplete="email"></div>`, data.Email)
		h.Raw(`<div class="field"><label for="password">Password</label><input type="password" id="password" name="password" required minlength="8"></div>`)
		h.Printf(`<button type="submit" class="btn btn-primary">%s</button></form>`, button)

		if data.Register {
			h.Printf(`<p class="muted">Already registered? <a href="/%s-login">Sign in</a></p>`, data.Role)
		} else {
			h.Printf(`<p class="muted">New here? <a href="/%s-register">Create an account</a></p>`, data.Role)
		}
		h.Raw(`</section>`)
	})
	return components.Layout(data.Layout, body)
}
