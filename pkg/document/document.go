// Package document turns a stored submission into the PDF artifact that gets
// uploaded and attached to the notification emails.
package document

import (
	"strings"
	"time"

	"github.com/goliatone/go-formpress/pkg/model"
)

// SignedPlaceholder replaces signature payloads in the rendered listing.
// Raw data URIs are far too large to print and carry no meaning as text.
const SignedPlaceholder = "(signed)"

// Entry is one answered field in display order. Type is carried so consumers
// can treat signature entries specially without re-resolving the schema.
type Entry struct {
	Label string
	Value string
	Type  model.FieldType
}

// Document is the render-ready view of a submission. It carries no store
// types so layout code can be tested without a database.
type Document struct {
	Title           string
	Description     string
	RespondentName  string
	RespondentEmail string
	SubmittedAt     time.Time
	Entries         []Entry
}

// FromSubmission flattens a submission against its schema. Fields appear in
// schema order, unanswered fields render as a blank value, and signature
// payloads collapse to SignedPlaceholder.
func FromSubmission(schema model.FormSchema, submission model.Submission) Document {
	doc := Document{
		Title:           schema.Title,
		Description:     schema.Description,
		RespondentName:  submission.RespondentName,
		RespondentEmail: submission.RespondentEmail,
		SubmittedAt:     submission.SubmittedAt,
	}

	for _, field := range schema.Fields {
		value := submission.Values[field.ID]
		if field.Type == model.FieldTypeSignature && strings.TrimSpace(value) != "" {
			value = SignedPlaceholder
		}
		doc.Entries = append(doc.Entries, Entry{Label: field.Label, Value: value, Type: field.Type})
	}
	return doc
}

// Filename derives the stored object name from the submission id. Record ids
// may carry table prefixes like "submissions:abc", which are not filename
// safe.
func Filename(submissionID string) string {
	var b strings.Builder
	for _, r := range submissionID {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String() + ".pdf"
}
