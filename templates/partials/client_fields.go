package partials

import (
	"context"

	"family_law_portal_go/models"
	"family_law_portal_go/templates/components"

	"github.com/a-h/templ"
)

// FieldInput renders the control for one registry field. errMsg is shown
// under the control when set.
func FieldInput(spec models.FieldSpec, value, errMsg string) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		name := string(spec.Key)
		id := "field-" + name
		class := "field"
		if errMsg != "" {
			class += " field-invalid"
		}

		h.Printf(`<div class="%s"><label for="%s">%s`, class, id, spec.Label)
		if spec.Required {
			h.Raw(` <span class="required" aria-hidden="true">*</span>`)
		}
		h.Raw(`</label>`)

		required := components.BoolAttr("required", spec.Required)
		switch spec.Widget {
		case models.WidgetTextarea:
			h.Printf(`<textarea id="%s" name="%s" rows="4"%s>%s</textarea>`, id, name, required, value)
		case models.WidgetDate:
			h.Printf(`<input type="date" id="%s" name="%s" value="%s"%s>`, id, name, value, required)
		case models.WidgetEmail:
			h.Printf(`<input type="email" id="%s" name="%s" value="%s"%s>`, id, name, value, required)
		default:
			h.Printf(`<input type="text" id="%s" name="%s" value="%s"%s>`, id, name, value, required)
		}

		if errMsg != "" {
			h.Printf(`<p class="field-error" role="alert">%s</p>`, errMsg)
		}
		h.Raw(`</div>`)
	})
}

// FieldSections renders every section of the form. errs maps field keys to
// their messages.
func FieldSections(rec *models.ClientRecord, includeLawyerOnly bool, errs map[models.FieldKey]string) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		for _, section := range models.Sections(includeLawyerOnly) {
			h.Printf(`<fieldset class="section"><legend>%s</legend>`, section.Title)
			for _, spec := range section.Fields {
				h.Component(ctx, FieldInput(spec, spec.Get(rec), errs[spec.Key]))
			}
			h.Raw(`</fieldset>`)
		}
	})
}

// ReadOnlySections renders the answered fields of rec, skipping empty ones
// and sections with nothing answered
func ReadOnlySections(rec *models.ClientRecord) templ.Component {
	return components.Build(func(ctx context.Context, h *components.Writer) {
		for _, section := range models.Sections(true) {
			var answered []models.FieldSpec
			for _, spec := range section.Fields {
				if spec.Get(rec) != "" {
					answered = append(answered, spec)
				}
			}
			if len(answered) == 0 {
				continue
			}
			h.Printf(`<section class="section"><h2>%s</h2><dl>`, section.Title)
			for _, spec := range answered {
				if spec.Widget == models.WidgetTextarea {
					h.Printf(`<dt>%s</dt><dd class="pre">`, spec.Label)
					h.Raw(RichText(spec.Get(rec)))
					h.Raw(`</dd>`)
					continue
				}
				h.Printf(`<dt>%s</dt><dd class="pre">%s</dd>`, spec.Label, spec.Get(rec))
			}
			h.Raw(`</dl></section>`)
		}
	})
}
