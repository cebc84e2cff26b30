package vanilla

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/render"
)

// controlFunc emits the input control for one field kind. Values arrive
// pre-looked-up so builders never touch the options map directly.
type controlFunc func(r *Renderer, b *strings.Builder, field model.FormField, value string)

// controls is the closed per-type dispatch table mirroring the strategy table
// in pkg/render.
var controls = map[model.FieldType]controlFunc{
	model.FieldTypeText:      scalarInput("text"),
	model.FieldTypeNumber:    scalarInput("number"),
	model.FieldTypeDate:      scalarInput("date"),
	model.FieldTypeEmail:     scalarInput("email"),
	model.FieldTypePhone:     scalarInput("tel"),
	model.FieldTypeTextarea:  renderTextarea,
	model.FieldTypeCheckbox:  renderCheckboxGroup,
	model.FieldTypeSelect:    renderSelect,
	model.FieldTypeSignature: renderSignature,
}

func init() {
	for _, fieldType := range model.FieldTypes() {
		if _, ok := controls[fieldType]; !ok {
			panic(fmt.Sprintf("vanilla: no control registered for field type %q", fieldType))
		}
	}
}

// renderField wraps the type-specific control with label, required marker, and
// inline error chrome.
func (r *Renderer) renderField(field model.FormField, options render.RenderOptions) (string, error) {
	control, ok := controls[field.Type]
	if !ok {
		return "", fmt.Errorf("vanilla: %w: %q", model.ErrUnknownFieldType, field.Type)
	}

	var b strings.Builder
	b.Grow(512)

	b.WriteString(`<div class="formpress-field" data-type="`)
	b.WriteString(escape(string(field.Type)))
	b.WriteString(`">`)

	b.WriteString(`<label for="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`">`)
	b.WriteString(r.sanitize(field.Label))
	if field.Required {
		b.WriteString(`<span class="formpress-required" aria-hidden="true">*</span>`)
	}
	b.WriteString(`</label>`)

	control(r, &b, field, options.Values[field.ID])

	if message := options.Errors[field.ID]; message != "" {
		b.WriteString(`<p class="formpress-error">`)
		b.WriteString(escape(message))
		b.WriteString(`</p>`)
	}

	b.WriteString(`</div>`)
	return b.String(), nil
}

func scalarInput(inputType string) controlFunc {
	return func(r *Renderer, b *strings.Builder, field model.FormField, value string) {
		b.WriteString(`<input type="`)
		b.WriteString(inputType)
		b.WriteString(`" id="`)
		b.WriteString(escape(field.ID))
		b.WriteString(`" name="`)
		b.WriteString(escape(field.ID))
		b.WriteString(`" value="`)
		b.WriteString(escape(value))
		b.WriteString(`"`)
		if placeholder := r.sanitize(field.Placeholder); placeholder != "" {
			b.WriteString(` placeholder="`)
			b.WriteString(escape(placeholder))
			b.WriteString(`"`)
		}
		b.WriteString(`>`)
	}
}

func renderTextarea(r *Renderer, b *strings.Builder, field model.FormField, value string) {
	b.WriteString(`<textarea id="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`" name="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`" rows="3"`)
	if placeholder := r.sanitize(field.Placeholder); placeholder != "" {
		b.WriteString(` placeholder="`)
		b.WriteString(escape(placeholder))
		b.WriteString(`"`)
	}
	b.WriteString(`>`)
	b.WriteString(escape(value))
	b.WriteString(`</textarea>`)
}

// renderCheckboxGroup renders one checkbox per option. The stored value is a
// comma-joined subset of the option strings; each box checks itself against
// that subset. An empty option list renders an empty group, not an error.
func renderCheckboxGroup(r *Renderer, b *strings.Builder, field model.FormField, value string) {
	selected := make(map[string]struct{})
	for _, part := range strings.Split(value, ",") {
		if part != "" {
			selected[part] = struct{}{}
		}
	}

	b.WriteString(`<div class="formpress-checkbox-group" data-name="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`">`)
	for _, option := range field.Options {
		b.WriteString(`<label class="formpress-checkbox"><input type="checkbox" value="`)
		b.WriteString(escape(option))
		b.WriteString(`"`)
		if _, ok := selected[option]; ok {
			b.WriteString(` checked`)
		}
		b.WriteString(`><span>`)
		b.WriteString(r.sanitize(option))
		b.WriteString(`</span></label>`)
	}
	b.WriteString(`<input type="hidden" name="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`" value="`)
	b.WriteString(escape(value))
	b.WriteString(`">`)
	b.WriteString(`</div>`)
}

func renderSelect(r *Renderer, b *strings.Builder, field model.FormField, value string) {
	b.WriteString(`<select id="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`" name="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`">`)

	b.WriteString(`<option value="">`)
	if placeholder := r.sanitize(field.Placeholder); placeholder != "" {
		b.WriteString(escape(placeholder))
	} else {
		b.WriteString("Select...")
	}
	b.WriteString(`</option>`)

	for _, option := range field.Options {
		b.WriteString(`<option value="`)
		b.WriteString(escape(option))
		b.WriteString(`"`)
		if option == value {
			b.WriteString(` selected`)
		}
		b.WriteString(`>`)
		b.WriteString(r.sanitize(option))
		b.WriteString(`</option>`)
	}
	b.WriteString(`</select>`)
}

// renderSignature emits the canvas widget plus the hidden input the capture
// script fills with a trimmed data-URI PNG.
func renderSignature(r *Renderer, b *strings.Builder, field model.FormField, value string) {
	b.WriteString(`<div class="formpress-signature" data-signature-for="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`">`)
	b.WriteString(`<canvas height="128" aria-label="Signature area"></canvas>`)
	b.WriteString(`<button type="button" class="formpress-signature-clear">Clear</button>`)
	b.WriteString(`<input type="hidden" name="`)
	b.WriteString(escape(field.ID))
	b.WriteString(`" value="`)
	b.WriteString(escape(value))
	b.WriteString(`">`)
	b.WriteString(`</div>`)
}

func escape(s string) string {
	return html.EscapeString(s)
}

func sortStrings(values []string) {
	sort.Strings(values)
}
