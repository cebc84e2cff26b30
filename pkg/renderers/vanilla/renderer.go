// Package vanilla renders a published form schema as a dependency-free HTML
// document: native inputs per field kind, inline validation feedback, and a
// canvas-backed signature widget that stores its strokes as a data-URI PNG.
package vanilla

import (
	"context"
	"fmt"
	"strings"

	"github.com/flosch/pongo2/v6"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/render"
)

const rendererName = "vanilla"

// Option customises renderer construction.
type Option func(*Renderer)

// WithTheme applies a go-theme renderer configuration: CSS custom properties
// are emitted on the form wrapper and the theme name lands on a data
// attribute so stylesheets can target it.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.theme = cfg
	}
}

// WithSanitizer overrides the policy applied to creator- and AI-supplied text
// (titles, labels, placeholders, options) before it is embedded in markup.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(r *Renderer) {
		if policy != nil {
			r.sanitizer = policy
		}
	}
}

// Renderer implements render.Renderer for static HTML output.
type Renderer struct {
	template  *pongo2.Template
	sanitizer *bluemonday.Policy
	theme     *theme.RendererConfig
}

// New constructs the HTML renderer with its embedded shell template.
func New(options ...Option) (*Renderer, error) {
	set := pongo2.NewSet("formpress-vanilla", pongo2.NewFSLoader(templatesFS))
	tmpl, err := set.FromFile("templates/form.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("vanilla: load shell template: %w", err)
	}

	r := &Renderer{
		template:  tmpl,
		sanitizer: bluemonday.StrictPolicy(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return rendererName }

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render produces the full HTML document for a schema. Field controls are
// emitted in sortOrder; per-key errors from options render inline beside the
// control they belong to.
func (r *Renderer) Render(ctx context.Context, schema model.FormSchema, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, fmt.Errorf("vanilla: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var fields strings.Builder
	for _, field := range schema.Fields {
		markup, err := r.renderField(field, options)
		if err != nil {
			return nil, err
		}
		fields.WriteString(markup)
	}

	data := pongo2.Context{
		"title":       r.sanitize(schema.Title),
		"description": r.sanitize(schema.Description),
		"submitURL":   options.SubmitURL,
		"fieldsHTML":  fields.String(),
		"nameValue":   options.Values[render.KeyName],
		"emailValue":  options.Values[render.KeyEmail],
		"nameError":   options.Errors[render.KeyName],
		"emailError":  options.Errors[render.KeyEmail],
		"themeAttrs":  r.themeAttributes(),
	}

	out, err := r.template.ExecuteBytes(data)
	if err != nil {
		return nil, fmt.Errorf("vanilla: execute shell template: %w", err)
	}
	return out, nil
}

func (r *Renderer) sanitize(text string) string {
	return strings.TrimSpace(r.sanitizer.Sanitize(text))
}

// themeAttributes builds the style/data attributes emitted on the form
// wrapper from the configured theme, if any.
func (r *Renderer) themeAttributes() string {
	if r.theme == nil {
		return ""
	}

	var builder strings.Builder
	if r.theme.Theme != "" {
		builder.WriteString(` data-theme="`)
		builder.WriteString(escape(r.theme.Theme))
		builder.WriteString(`"`)
	}
	if r.theme.Variant != "" {
		builder.WriteString(` data-theme-variant="`)
		builder.WriteString(escape(r.theme.Variant))
		builder.WriteString(`"`)
	}
	if style := cssVarsStyle(r.theme.CSSVars); style != "" {
		builder.WriteString(` style="`)
		builder.WriteString(escape(style))
		builder.WriteString(`"`)
	}
	return builder.String()
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sortStrings(keys)

	var builder strings.Builder
	for _, key := range keys {
		name := strings.TrimSpace(key)
		if name == "" {
			continue
		}
		if !strings.HasPrefix(name, "--") {
			name = "--" + name
		}
		builder.WriteString(name)
		builder.WriteString(":")
		builder.WriteString(strings.TrimSpace(vars[key]))
		builder.WriteString(";")
	}
	return builder.String()
}
