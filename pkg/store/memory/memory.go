// Package memory provides map-backed implementations of the store contracts.
// It exists for tests and single-process local runs; nothing survives a
// restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/store"
)

// Store implements store.FormStore, store.SubmissionStore, store.BlobStore,
// and store.ContactStore over in-process maps.
type Store struct {
	mu          sync.RWMutex
	forms       map[string]model.FormSchema
	submissions map[string]model.Submission
	values      map[string][]store.FieldValue
	blobs       map[string]blob
	contacts    map[string]string

	// BaseURL prefixes public blob URLs; defaults to a memory scheme.
	BaseURL string
}

type blob struct {
	data        []byte
	contentType string
}

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		forms:       make(map[string]model.FormSchema),
		submissions: make(map[string]model.Submission),
		values:      make(map[string][]store.FieldValue),
		blobs:       make(map[string]blob),
		contacts:    make(map[string]string),
		BaseURL:     "memory://blobs",
	}
}

// SetCreatorEmail seeds the contact directory.
func (s *Store) SetCreatorEmail(creatorID, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contacts[creatorID] = email
}

func (s *Store) CreateForm(_ context.Context, schema model.FormSchema) (model.FormSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema.ID = uuid.NewString()
	now := time.Now().UTC()
	schema.CreatedAt = now
	schema.UpdatedAt = now
	schema.Fields = assignFieldIDs(schema.Fields)
	s.forms[schema.ID] = cloneSchema(schema)
	return cloneSchema(schema), nil
}

func (s *Store) GetForm(_ context.Context, id string) (model.FormSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	schema, ok := s.forms[id]
	if !ok {
		return model.FormSchema{}, fmt.Errorf("form %q: %w", id, store.ErrNotFound)
	}
	return cloneSchema(schema), nil
}

func (s *Store) GetFormByShareToken(_ context.Context, token string) (model.FormSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matches []model.FormSchema
	for _, schema := range s.forms {
		if schema.ShareToken != "" && schema.ShareToken == token {
			matches = append(matches, schema)
		}
	}
	switch len(matches) {
	case 0:
		return model.FormSchema{}, fmt.Errorf("share token: %w", store.ErrNotFound)
	case 1:
		return cloneSchema(matches[0]), nil
	default:
		return model.FormSchema{}, fmt.Errorf("share token %q: %w", token, store.ErrMultipleRows)
	}
}

func (s *Store) UpdateForm(_ context.Context, schema model.FormSchema) (model.FormSchema, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.forms[schema.ID]
	if !ok {
		return model.FormSchema{}, fmt.Errorf("form %q: %w", schema.ID, store.ErrNotFound)
	}
	schema.CreatedAt = current.CreatedAt
	schema.UpdatedAt = time.Now().UTC()
	schema.Fields = current.Fields
	s.forms[schema.ID] = cloneSchema(schema)
	return cloneSchema(schema), nil
}

// SaveFields replaces the complete field set for a form, assigning fresh ids
// to fields that have none.
func (s *Store) SaveFields(_ context.Context, formID string, fields []model.FormField) ([]model.FormField, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	schema, ok := s.forms[formID]
	if !ok {
		return nil, fmt.Errorf("form %q: %w", formID, store.ErrNotFound)
	}
	schema.Fields = assignFieldIDs(cloneFields(fields))
	schema.UpdatedAt = time.Now().UTC()
	s.forms[formID] = schema
	return cloneFields(schema.Fields), nil
}

func (s *Store) ListForms(_ context.Context, creatorID string) ([]model.FormSchema, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.FormSchema
	for _, schema := range s.forms {
		if creatorID == "" || schema.CreatorID == creatorID {
			out = append(out, cloneSchema(schema))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteForm(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.forms[id]; !ok {
		return fmt.Errorf("form %q: %w", id, store.ErrNotFound)
	}
	delete(s.forms, id)
	return nil
}

func (s *Store) CreateSubmission(_ context.Context, submission model.Submission) (model.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission.ID = uuid.NewString()
	s.submissions[submission.ID] = cloneSubmission(submission)
	return cloneSubmission(submission), nil
}

func (s *Store) CreateValues(_ context.Context, values []store.FieldValue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, value := range values {
		s.values[value.SubmissionID] = append(s.values[value.SubmissionID], value)
	}
	return nil
}

func (s *Store) SetDocumentURL(_ context.Context, submissionID, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	submission, ok := s.submissions[submissionID]
	if !ok {
		return fmt.Errorf("submission %q: %w", submissionID, store.ErrNotFound)
	}
	submission.DocumentURL = url
	s.submissions[submissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, id string) (model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submission, ok := s.submissions[id]
	if !ok {
		return model.Submission{}, fmt.Errorf("submission %q: %w", id, store.ErrNotFound)
	}
	return cloneSubmission(submission), nil
}

func (s *Store) ListSubmissions(_ context.Context, formID string) ([]model.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []model.Submission
	for _, submission := range s.submissions {
		if submission.FormID == formID {
			out = append(out, cloneSubmission(submission))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s *Store) Upload(_ context.Context, name string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blobs[name] = blob{data: append([]byte(nil), data...), contentType: contentType}
	return nil
}

func (s *Store) PublicURL(name string) string {
	return s.BaseURL + "/" + name
}

// Blob returns a stored blob's bytes, for tests.
func (s *Store) Blob(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blobs[name]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), b.data...), true
}

// Values returns the value rows recorded for a submission, for tests.
func (s *Store) Values(submissionID string) []store.FieldValue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]store.FieldValue(nil), s.values[submissionID]...)
}

func (s *Store) CreatorEmail(_ context.Context, creatorID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email, ok := s.contacts[creatorID]
	if !ok {
		return "", fmt.Errorf("creator %q: %w", creatorID, store.ErrNotFound)
	}
	return email, nil
}

func assignFieldIDs(fields []model.FormField) []model.FormField {
	for i := range fields {
		if fields[i].ID == "" {
			fields[i].ID = uuid.NewString()
		}
	}
	return fields
}

func cloneSchema(schema model.FormSchema) model.FormSchema {
	schema.Fields = cloneFields(schema.Fields)
	return schema
}

func cloneFields(fields []model.FormField) []model.FormField {
	out := make([]model.FormField, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Options != nil {
			out[i].Options = append([]string(nil), out[i].Options...)
		}
	}
	return out
}

func cloneSubmission(submission model.Submission) model.Submission {
	values := make(map[string]string, len(submission.Values))
	for key, value := range submission.Values {
		values[key] = value
	}
	submission.Values = values
	return submission
}
