// Package surreal backs the store contracts with SurrealDB. Row ids are the
// engine's "table:id" record pointers and stay opaque to callers.
package surreal

import (
	"context"
	"fmt"
	"time"

	surrealdb "github.com/surrealdb/surrealdb.go"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/store"
)

const (
	tableForms       = "forms"
	tableFields      = "form_fields"
	tableSubmissions = "submissions"
	tableValues      = "submission_values"
	tableProfiles    = "profiles"
)

// Config selects the SurrealDB endpoint and namespace.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// Store implements store.FormStore, store.SubmissionStore, and
// store.ContactStore over a SurrealDB connection.
type Store struct {
	db *surrealdb.DB
}

// Connect dials SurrealDB and selects the configured namespace/database.
func Connect(cfg Config) (*Store, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("surreal: connect %q: %w", cfg.URL, err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.Username, "pass": cfg.Password}); err != nil {
		return nil, fmt.Errorf("surreal: signin: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("surreal: use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying connection.
func (s *Store) Close() {
	s.db.Close()
}

type formRow struct {
	ID              string `json:"id,omitempty"`
	CreatorID       string `json:"creator_id,omitempty"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Status          string `json:"status"`
	ShareToken      string `json:"share_token,omitempty"`
	OriginalFileURL string `json:"original_file_url,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	UpdatedAt       string `json:"updated_at,omitempty"`
}

type fieldRow struct {
	ID          string   `json:"id,omitempty"`
	FormID      string   `json:"form_id"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
	SortOrder   int      `json:"sort_order"`
}

type submissionRow struct {
	ID              string `json:"id,omitempty"`
	FormID          string `json:"form_id"`
	RespondentName  string `json:"respondent_name"`
	RespondentEmail string `json:"respondent_email"`
	SubmittedAt     string `json:"submitted_at"`
	DocumentURL     string `json:"document_url,omitempty"`
}

type valueRow struct {
	SubmissionID string  `json:"submission_id"`
	FieldID      string  `json:"field_id"`
	Value        *string `json:"value"`
}

type profileRow struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email"`
}

func (s *Store) CreateForm(ctx context.Context, schema model.FormSchema) (model.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return model.FormSchema{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	created, err := s.db.Create(tableForms, map[string]any{
		"creator_id":        schema.CreatorID,
		"title":             schema.Title,
		"description":       schema.Description,
		"status":            string(schema.Status),
		"share_token":       schema.ShareToken,
		"original_file_url": schema.OriginalFileURL,
		"created_at":        now,
		"updated_at":        now,
	})
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("surreal: create form: %w", err)
	}

	var rows []formRow
	if err := surrealdb.Unmarshal(created, &rows); err != nil {
		return model.FormSchema{}, fmt.Errorf("surreal: decode created form: %w", err)
	}
	if len(rows) != 1 {
		return model.FormSchema{}, fmt.Errorf("surreal: create form returned %d rows: %w", len(rows), store.ErrMultipleRows)
	}

	out := rowToSchema(rows[0])
	out.Fields, err = s.SaveFields(ctx, out.ID, schema.Fields)
	if err != nil {
		// The original cleans the form up when field creation fails so a
		// half-created form never lingers in the dashboard.
		_, _ = s.db.Delete(rows[0].ID)
		return model.FormSchema{}, err
	}
	return out, nil
}

func (s *Store) GetForm(ctx context.Context, id string) (model.FormSchema, error) {
	row, err := s.selectSingleForm(ctx, "SELECT * FROM forms WHERE id = $id", map[string]any{"id": id})
	if err != nil {
		return model.FormSchema{}, err
	}
	return s.attachFields(ctx, rowToSchema(row))
}

func (s *Store) GetFormByShareToken(ctx context.Context, token string) (model.FormSchema, error) {
	row, err := s.selectSingleForm(ctx, "SELECT * FROM forms WHERE share_token = $token", map[string]any{"token": token})
	if err != nil {
		return model.FormSchema{}, err
	}
	return s.attachFields(ctx, rowToSchema(row))
}

func (s *Store) UpdateForm(ctx context.Context, schema model.FormSchema) (model.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return model.FormSchema{}, err
	}

	_, err := s.db.Query(
		`UPDATE $id SET title = $title, description = $description, status = $status,
			share_token = $share_token, updated_at = $updated_at`,
		map[string]any{
			"id":          schema.ID,
			"title":       schema.Title,
			"description": schema.Description,
			"status":      string(schema.Status),
			"share_token": schema.ShareToken,
			"updated_at":  time.Now().UTC().Format(time.RFC3339),
		})
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("surreal: update form %q: %w", schema.ID, err)
	}
	return s.GetForm(ctx, schema.ID)
}

// SaveFields implements replace-all persistence: the stored field set is
// always the full current editor state.
func (s *Store) SaveFields(ctx context.Context, formID string, fields []model.FormField) ([]model.FormField, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := s.db.Query("DELETE form_fields WHERE form_id = $form", map[string]any{"form": formID}); err != nil {
		return nil, fmt.Errorf("surreal: clear fields for %q: %w", formID, err)
	}

	out := make([]model.FormField, 0, len(fields))
	for i, field := range fields {
		created, err := s.db.Create(tableFields, fieldRow{
			FormID:      formID,
			Label:       field.Label,
			Type:        string(field.Type),
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Options:     field.Options,
			SortOrder:   i,
		})
		if err != nil {
			return nil, fmt.Errorf("surreal: create field %d: %w", i, err)
		}
		var rows []fieldRow
		if err := surrealdb.Unmarshal(created, &rows); err != nil {
			return nil, fmt.Errorf("surreal: decode created field: %w", err)
		}
		if len(rows) != 1 {
			return nil, fmt.Errorf("surreal: create field returned %d rows", len(rows))
		}
		out = append(out, rowToField(rows[0]))
	}
	return out, nil
}

func (s *Store) ListForms(ctx context.Context, creatorID string) ([]model.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]formRow](s.db.Query(
		"SELECT * FROM forms WHERE creator_id = $creator ORDER BY created_at DESC",
		map[string]any{"creator": creatorID}))
	if err != nil {
		return nil, fmt.Errorf("surreal: list forms: %w", err)
	}

	out := make([]model.FormSchema, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToSchema(row))
	}
	return out, nil
}

func (s *Store) DeleteForm(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.db.Query("DELETE form_fields WHERE form_id = $form", map[string]any{"form": id}); err != nil {
		return fmt.Errorf("surreal: delete fields for %q: %w", id, err)
	}
	if _, err := s.db.Delete(id); err != nil {
		return fmt.Errorf("surreal: delete form %q: %w", id, err)
	}
	return nil
}

func (s *Store) CreateSubmission(ctx context.Context, submission model.Submission) (model.Submission, error) {
	if err := ctx.Err(); err != nil {
		return model.Submission{}, err
	}

	created, err := s.db.Create(tableSubmissions, submissionRow{
		FormID:          submission.FormID,
		RespondentName:  submission.RespondentName,
		RespondentEmail: submission.RespondentEmail,
		SubmittedAt:     submission.SubmittedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return model.Submission{}, fmt.Errorf("surreal: create submission: %w", err)
	}

	var rows []submissionRow
	if err := surrealdb.Unmarshal(created, &rows); err != nil {
		return model.Submission{}, fmt.Errorf("surreal: decode created submission: %w", err)
	}
	if len(rows) != 1 {
		return model.Submission{}, fmt.Errorf("surreal: create submission returned %d rows", len(rows))
	}

	out := rowToSubmission(rows[0])
	out.Values = submission.Values
	return out, nil
}

func (s *Store) CreateValues(ctx context.Context, values []store.FieldValue) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, value := range values {
		if _, err := s.db.Create(tableValues, valueRow{
			SubmissionID: value.SubmissionID,
			FieldID:      value.FieldID,
			Value:        value.Value,
		}); err != nil {
			return fmt.Errorf("surreal: create value row: %w", err)
		}
	}
	return nil
}

func (s *Store) SetDocumentURL(ctx context.Context, submissionID, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.db.Query("UPDATE $id SET document_url = $url", map[string]any{
		"id":  submissionID,
		"url": url,
	})
	if err != nil {
		return fmt.Errorf("surreal: set document url on %q: %w", submissionID, err)
	}
	return nil
}

func (s *Store) GetSubmission(ctx context.Context, id string) (model.Submission, error) {
	if err := ctx.Err(); err != nil {
		return model.Submission{}, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]submissionRow](s.db.Query(
		"SELECT * FROM submissions WHERE id = $id", map[string]any{"id": id}))
	if err != nil {
		return model.Submission{}, fmt.Errorf("surreal: get submission %q: %w", id, err)
	}
	switch len(rows) {
	case 0:
		return model.Submission{}, fmt.Errorf("submission %q: %w", id, store.ErrNotFound)
	case 1:
		return rowToSubmission(rows[0]), nil
	default:
		return model.Submission{}, fmt.Errorf("submission %q: %w", id, store.ErrMultipleRows)
	}
}

func (s *Store) ListSubmissions(ctx context.Context, formID string) ([]model.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]submissionRow](s.db.Query(
		"SELECT * FROM submissions WHERE form_id = $form ORDER BY submitted_at DESC",
		map[string]any{"form": formID}))
	if err != nil {
		return nil, fmt.Errorf("surreal: list submissions: %w", err)
	}

	out := make([]model.Submission, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToSubmission(row))
	}
	return out, nil
}

func (s *Store) CreatorEmail(ctx context.Context, creatorID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	rows, err := surrealdb.SmartUnmarshal[[]profileRow](s.db.Query(
		"SELECT * FROM profiles WHERE id = $id", map[string]any{"id": creatorID}))
	if err != nil {
		return "", fmt.Errorf("surreal: creator profile %q: %w", creatorID, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("creator %q: %w", creatorID, store.ErrNotFound)
	}
	return rows[0].Email, nil
}

func (s *Store) selectSingleForm(ctx context.Context, query string, vars map[string]any) (formRow, error) {
	if err := ctx.Err(); err != nil {
		return formRow{}, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]formRow](s.db.Query(query, vars))
	if err != nil {
		return formRow{}, fmt.Errorf("surreal: select form: %w", err)
	}
	switch len(rows) {
	case 0:
		return formRow{}, fmt.Errorf("form: %w", store.ErrNotFound)
	case 1:
		return rows[0], nil
	default:
		return formRow{}, fmt.Errorf("form: %w", store.ErrMultipleRows)
	}
}

func (s *Store) attachFields(ctx context.Context, schema model.FormSchema) (model.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return model.FormSchema{}, err
	}

	rows, err := surrealdb.SmartUnmarshal[[]fieldRow](s.db.Query(
		"SELECT * FROM form_fields WHERE form_id = $form ORDER BY sort_order",
		map[string]any{"form": schema.ID}))
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("surreal: load fields for %q: %w", schema.ID, err)
	}

	schema.Fields = make([]model.FormField, 0, len(rows))
	for _, row := range rows {
		schema.Fields = append(schema.Fields, rowToField(row))
	}
	return schema, nil
}

func rowToSchema(row formRow) model.FormSchema {
	return model.FormSchema{
		ID:              row.ID,
		CreatorID:       row.CreatorID,
		Title:           row.Title,
		Description:     row.Description,
		Status:          model.FormStatus(row.Status),
		ShareToken:      row.ShareToken,
		OriginalFileURL: row.OriginalFileURL,
		Fields:          []model.FormField{},
		CreatedAt:       parseTime(row.CreatedAt),
		UpdatedAt:       parseTime(row.UpdatedAt),
	}
}

func rowToField(row fieldRow) model.FormField {
	return model.FormField{
		ID:          row.ID,
		Label:       row.Label,
		Type:        model.FieldType(row.Type),
		Placeholder: row.Placeholder,
		Required:    row.Required,
		Options:     row.Options,
		SortOrder:   row.SortOrder,
	}
}

func rowToSubmission(row submissionRow) model.Submission {
	return model.Submission{
		ID:              row.ID,
		FormID:          row.FormID,
		RespondentName:  row.RespondentName,
		RespondentEmail: row.RespondentEmail,
		SubmittedAt:     parseTime(row.SubmittedAt),
		DocumentURL:     row.DocumentURL,
	}
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return parsed
}
