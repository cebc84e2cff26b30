package model

import (
	"errors"
	"fmt"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrEmptyTitle is returned when publishing a form with a blank title.
var ErrEmptyTitle = errors.New("model: form title is required")

// shareTokenLength matches the original short-link length; nanoid's default
// alphabet keeps tokens URL-safe and collision-resistant at this size.
const shareTokenLength = 10

// NewDraft creates an empty draft form. The share token is minted later, on
// first publish.
func NewDraft(title, description string) FormSchema {
	return FormSchema{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      StatusDraft,
		Fields:      []FormField{},
	}
}

// Publish freezes a draft for respondents, minting its share token. It is
// idempotent: publishing an already-published form returns it unchanged and
// never re-mints the token.
func Publish(schema FormSchema) (FormSchema, error) {
	if strings.TrimSpace(schema.Title) == "" {
		return FormSchema{}, ErrEmptyTitle
	}
	if schema.Status == StatusPublished && schema.ShareToken != "" {
		return schema, nil
	}

	token, err := NewShareToken()
	if err != nil {
		return FormSchema{}, err
	}

	schema.Status = StatusPublished
	schema.ShareToken = token
	return schema, nil
}

// IsRespondable reports whether respondents may view and submit the form.
func IsRespondable(schema FormSchema) bool {
	return schema.Status == StatusPublished
}

// NewShareToken mints a short random capability token. Knowledge of the token
// is the sole authorization to view or submit the form, so tokens are never
// derived from the form id or any sequence.
func NewShareToken() (string, error) {
	token, err := gonanoid.New(shareTokenLength)
	if err != nil {
		return "", fmt.Errorf("model: mint share token: %w", err)
	}
	return token, nil
}
