// Package pipeline runs the submission intake sequence. Steps execute in a
// fixed order with an explicit fatal or non-fatal tag each, so the
// degrade-gracefully behavior is auditable step by step rather than buried
// in error handling.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formpress/pkg/document"
	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/notify"
	"github.com/goliatone/go-formpress/pkg/render"
	"github.com/goliatone/go-formpress/pkg/store"
)

// Request is a submission attempt against a published form, addressed by
// its public share token.
type Request struct {
	ShareToken      string
	RespondentName  string
	RespondentEmail string
	Values          map[string]string
}

// StepOutcome records one executed step. Err is nil for steps that
// succeeded and non-nil for non-fatal steps that were logged and skipped
// past; a fatal failure aborts the run before later steps are recorded.
type StepOutcome struct {
	Name string
	Err  error
}

// Result reports a completed attempt. Success is fixed the moment the
// submission row commits; downstream rendering, storage, and notification
// failures never retract it.
type Result struct {
	Success      bool
	SubmissionID string
	DocumentURL  string
	Steps        []StepOutcome
}

// Deps are the external collaborators a Pipeline orchestrates.
type Deps struct {
	Forms       store.FormStore
	Submissions store.SubmissionStore
	Blobs       store.BlobStore
	Contacts    store.ContactStore
	Notifier    notify.Notifier
}

// Pipeline processes submission attempts. Safe for concurrent use.
type Pipeline struct {
	deps   Deps
	logger zerolog.Logger
	now    func() time.Time
	render func(document.Document) ([]byte, error)
}

// Option configures optional Pipeline behavior.
type Option func(*Pipeline)

// WithLogger replaces the default no-op logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithDocumentRenderer overrides the PDF renderer.
func WithDocumentRenderer(render func(document.Document) ([]byte, error)) Option {
	return func(p *Pipeline) { p.render = render }
}

// New builds a Pipeline around the given collaborators.
func New(deps Deps, opts ...Option) *Pipeline {
	p := &Pipeline{
		deps:   deps,
		logger: zerolog.Nop(),
		now:    time.Now,
		render: document.Render,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// run carries the state threaded through the step sequence.
type run struct {
	req        Request
	schema     model.FormSchema
	submission model.Submission
	doc        document.Document
	pdf        []byte
	stored     bool
	result     Result
}

type step struct {
	name  string
	fatal bool
	exec  func(ctx context.Context, r *run) error
}

// Process executes the step sequence for one attempt. It returns a non-nil
// error only when a fatal step failed; the Result still reports how far the
// run got, including a SubmissionID when the row committed before a later
// fatal render failure.
func (p *Pipeline) Process(ctx context.Context, req Request) (Result, error) {
	r := &run{req: req}

	steps := []step{
		{name: "authorize", fatal: true, exec: p.authorize},
		{name: "validate", fatal: true, exec: p.validate},
		{name: "persist_submission", fatal: true, exec: p.persistSubmission},
		{name: "persist_values", fatal: false, exec: p.persistValues},
		{name: "render_document", fatal: true, exec: p.renderDocument},
		{name: "store_document", fatal: false, exec: p.storeDocument},
		{name: "backfill_url", fatal: false, exec: p.backfillURL},
		{name: "notify", fatal: false, exec: p.notifyParties},
	}

	for _, s := range steps {
		err := s.exec(ctx, r)
		if err != nil && s.fatal {
			p.logger.Error().Err(err).Str("step", s.name).Str("token", req.ShareToken).
				Msg("submission aborted")
			return r.result, err
		}
		if err != nil {
			p.logger.Warn().Err(err).Str("step", s.name).
				Str("submission", r.submission.ID).Msg("step degraded")
		}
		r.result.Steps = append(r.result.Steps, StepOutcome{Name: s.name, Err: err})
	}
	return r.result, nil
}

// authorize loads the schema by share token. Draft and missing forms are
// indistinguishable to an unauthenticated caller.
func (p *Pipeline) authorize(ctx context.Context, r *run) error {
	schema, err := p.deps.Forms.GetFormByShareToken(ctx, r.req.ShareToken)
	if err != nil {
		return fmt.Errorf("%w: token %q", ErrNotFound, r.req.ShareToken)
	}
	if !model.IsRespondable(schema) {
		return fmt.Errorf("%w: token %q", ErrNotFound, r.req.ShareToken)
	}
	r.schema = schema
	return nil
}

// validate checks request shape, then re-runs the same field validation the
// form surface uses. Rejecting here keeps "required" and email-shape rules
// enforced even for callers that bypass the rendered form.
func (p *Pipeline) validate(_ context.Context, r *run) error {
	// A values mapping must be present even when empty; its absence means the
	// caller never assembled a submission payload.
	if r.req.Values == nil {
		return fmt.Errorf("%w: missing values", ErrBadRequest)
	}

	fieldErrors := render.Validate(r.schema, render.Input{
		RespondentName:  r.req.RespondentName,
		RespondentEmail: r.req.RespondentEmail,
		Values:          r.req.Values,
	})
	if len(fieldErrors) > 0 {
		return &ValidationError{Fields: fieldErrors}
	}
	return nil
}

func (p *Pipeline) persistSubmission(ctx context.Context, r *run) error {
	submission, err := p.deps.Submissions.CreateSubmission(ctx, model.Submission{
		FormID:          r.schema.ID,
		RespondentName:  strings.TrimSpace(r.req.RespondentName),
		RespondentEmail: strings.TrimSpace(r.req.RespondentEmail),
		Values:          r.req.Values,
		SubmittedAt:     p.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: create submission: %v", ErrPersistence, err)
	}
	r.submission = submission
	r.result.Success = true
	r.result.SubmissionID = submission.ID
	return nil
}

// persistValues writes one row per schema field. Missing input is stored as
// null so the value breakdown always mirrors the schema shape.
func (p *Pipeline) persistValues(ctx context.Context, r *run) error {
	values := make([]store.FieldValue, 0, len(r.schema.Fields))
	for _, field := range r.schema.Fields {
		row := store.FieldValue{SubmissionID: r.submission.ID, FieldID: field.ID}
		if raw, ok := r.req.Values[field.ID]; ok {
			value := raw
			row.Value = &value
		}
		values = append(values, row)
	}
	if err := p.deps.Submissions.CreateValues(ctx, values); err != nil {
		return fmt.Errorf("persist values: %w", err)
	}
	return nil
}

func (p *Pipeline) renderDocument(_ context.Context, r *run) error {
	r.doc = document.FromSubmission(r.schema, r.submission)
	pdf, err := p.render(r.doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	r.pdf = pdf
	return nil
}

func (p *Pipeline) storeDocument(ctx context.Context, r *run) error {
	name := document.Filename(r.submission.ID)
	if err := p.deps.Blobs.Upload(ctx, name, r.pdf, "application/pdf"); err != nil {
		return fmt.Errorf("store document: %w", err)
	}
	r.stored = true
	return nil
}

func (p *Pipeline) backfillURL(ctx context.Context, r *run) error {
	if !r.stored {
		return nil
	}
	url := p.deps.Blobs.PublicURL(document.Filename(r.submission.ID))
	if err := p.deps.Submissions.SetDocumentURL(ctx, r.submission.ID, url); err != nil {
		return fmt.Errorf("backfill document url: %w", err)
	}
	r.result.DocumentURL = url
	return nil
}

// notifyParties sends both emails concurrently. Each send is attempted even
// if the other fails, and a missing creator contact only drops the creator
// copy.
func (p *Pipeline) notifyParties(ctx context.Context, r *run) error {
	messages := []notify.Message{
		notify.RespondentMessage(r.schema, r.doc, r.pdf),
	}
	creatorEmail, err := p.deps.Contacts.CreatorEmail(ctx, r.schema.CreatorID)
	if err != nil {
		p.logger.Warn().Err(err).Str("creator", r.schema.CreatorID).
			Msg("creator contact unresolved, skipping creator notification")
	} else {
		messages = append(messages, notify.CreatorMessage(creatorEmail, r.schema, r.doc, r.pdf))
	}

	errs := make([]error, len(messages))
	var wg sync.WaitGroup
	for i, msg := range messages {
		wg.Add(1)
		go func(i int, msg notify.Message) {
			defer wg.Done()
			errs[i] = p.deps.Notifier.Send(ctx, msg)
		}(i, msg)
	}
	wg.Wait()

	var failed []error
	for _, err := range errs {
		if err != nil {
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("notify: %d of %d sends failed: %v", len(failed), len(messages), failed)
	}
	return nil
}
