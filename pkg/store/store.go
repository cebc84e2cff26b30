// Package store declares the durable-row and blob storage contracts the rest
// of the system consumes. Implementations live in subpackages: memory for
// tests and local development, surreal for a SurrealDB-backed deployment.
package store

import (
	"context"
	"errors"

	"github.com/goliatone/go-formpress/pkg/model"
)

var (
	// ErrNotFound is returned when a single-row read matches zero rows.
	ErrNotFound = errors.New("store: not found")
	// ErrMultipleRows is returned when a single-row read matches more than
	// one row, which indicates corrupted data rather than a caller mistake.
	ErrMultipleRows = errors.New("store: multiple rows match")
)

// FieldValue is one normalized answer row, keyed by submission and field.
// A nil Value records that the respondent supplied no input for the field.
type FieldValue struct {
	SubmissionID string  `json:"submissionId"`
	FieldID      string  `json:"fieldId"`
	Value        *string `json:"value"`
}

// FormStore persists form schemas and their field lists. Loads return fields
// ordered by sort order. Field persistence is replace-all: SaveFields always
// replaces the complete field set for a form.
type FormStore interface {
	CreateForm(ctx context.Context, schema model.FormSchema) (model.FormSchema, error)
	GetForm(ctx context.Context, id string) (model.FormSchema, error)
	GetFormByShareToken(ctx context.Context, token string) (model.FormSchema, error)
	UpdateForm(ctx context.Context, schema model.FormSchema) (model.FormSchema, error)
	SaveFields(ctx context.Context, formID string, fields []model.FormField) ([]model.FormField, error)
	ListForms(ctx context.Context, creatorID string) ([]model.FormSchema, error)
	DeleteForm(ctx context.Context, id string) error
}

// SubmissionStore persists submissions and their per-field value rows. The
// submission row is the durable source of truth that a response was received;
// value rows are a normalized convenience that may be incomplete.
type SubmissionStore interface {
	CreateSubmission(ctx context.Context, submission model.Submission) (model.Submission, error)
	CreateValues(ctx context.Context, values []FieldValue) error
	SetDocumentURL(ctx context.Context, submissionID, url string) error
	GetSubmission(ctx context.Context, id string) (model.Submission, error)
	ListSubmissions(ctx context.Context, formID string) ([]model.Submission, error)
}

// BlobStore stores immutable named blobs and serves them from public URLs.
// Names are never re-uploaded by this system.
type BlobStore interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) error
	PublicURL(name string) string
}

// ContactStore resolves a creator id to a notification address.
type ContactStore interface {
	CreatorEmail(ctx context.Context, creatorID string) (string, error)
}
