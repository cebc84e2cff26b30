package render

import (
	"context"

	"github.com/goliatone/go-formpress/pkg/model"
)

// Renderer converts a published form schema into a byte representation (HTML,
// terminal interaction transcript, etc.).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, schema model.FormSchema, options RenderOptions) ([]byte, error)
}

// RenderOptions carry per-request data renderers can use without mutating the
// schema.
type RenderOptions struct {
	// Values pre-populates controls keyed by field id. Respondent identity
	// uses the reserved KeyName/KeyEmail keys.
	Values map[string]string
	// Errors surfaces validation feedback keyed the same way; renderers show
	// these inline next to the offending control.
	Errors map[string]string
	// SubmitURL is the intake endpoint the rendered form posts to.
	SubmitURL string
}
