// Package notify builds and delivers the submission notification emails.
package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/goliatone/go-formpress/pkg/document"
	"github.com/goliatone/go-formpress/pkg/model"
)

// Attachment is the rendered submission document carried by both emails.
type Attachment struct {
	Filename string
	Content  []byte
}

// Message is a single outbound email.
type Message struct {
	To         string
	Subject    string
	HTML       string
	Attachment *Attachment
}

// Notifier delivers one message. Implementations must be safe for
// concurrent use since the pipeline sends creator and respondent
// notifications at the same time.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Send(ctx context.Context, msg Message) error { return f(ctx, msg) }

// AttachmentFilename derives the attachment name from the form title.
// Anything outside [A-Za-z0-9] becomes an underscore.
func AttachmentFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String() + ".pdf"
}

// CreatorMessage is the "you received a submission" email.
func CreatorMessage(creatorEmail string, schema model.FormSchema, doc document.Document, pdf []byte) Message {
	return Message{
		To:      creatorEmail,
		Subject: fmt.Sprintf("New submission: %s", schema.Title),
		HTML: fmt.Sprintf(
			"<h2>New submission for %q</h2><p>%s (%s) just submitted a response.</p>%s<p>The completed form is attached as a PDF.</p>",
			html.EscapeString(schema.Title),
			html.EscapeString(doc.RespondentName),
			html.EscapeString(doc.RespondentEmail),
			summaryHTML(doc)),
		Attachment: &Attachment{
			Filename: AttachmentFilename(schema.Title),
			Content:  pdf,
		},
	}
}

// RespondentMessage is the confirmation copy sent back to the person who
// filled the form in.
func RespondentMessage(schema model.FormSchema, doc document.Document, pdf []byte) Message {
	return Message{
		To:      doc.RespondentEmail,
		Subject: fmt.Sprintf("Copy of your submission: %s", schema.Title),
		HTML: fmt.Sprintf(
			"<h2>Thanks, %s!</h2><p>Here is a copy of your submission to %q.</p>%s<p>A PDF copy is attached for your records.</p>",
			html.EscapeString(doc.RespondentName),
			html.EscapeString(schema.Title),
			summaryHTML(doc)),
		Attachment: &Attachment{
			Filename: AttachmentFilename(schema.Title),
			Content:  pdf,
		},
	}
}

// summaryHTML lists answered fields. Signature fields never appear in the
// textual summary, only in the attached document.
func summaryHTML(doc document.Document) string {
	var b strings.Builder
	b.WriteString("<ul>")
	for _, entry := range doc.Entries {
		if entry.Type == model.FieldTypeSignature {
			continue
		}
		value := entry.Value
		if value == "" {
			value = "-"
		}
		fmt.Fprintf(&b, "<li><strong>%s:</strong> %s</li>",
			html.EscapeString(entry.Label), html.EscapeString(value))
	}
	b.WriteString("</ul>")
	return b.String()
}
