package notify

import (
	"strings"
	"testing"

	"github.com/goliatone/go-formpress/pkg/document"
	"github.com/goliatone/go-formpress/pkg/model"
)

func TestAttachmentFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Rental Application", "Rental_Application.pdf"},
		{"W-9 (2026)", "W_9__2026_.pdf"},
		{"simple", "simple.pdf"},
	}
	for _, tt := range tests {
		if got := AttachmentFilename(tt.title); got != tt.want {
			t.Errorf("AttachmentFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestMessagesExcludeSignatureFromSummary(t *testing.T) {
	schema := model.FormSchema{
		Title: "NDA",
		Fields: []model.FormField{
			{ID: "f1", Label: "Company", Type: model.FieldTypeText},
			{ID: "f2", Label: "Signature", Type: model.FieldTypeSignature},
		},
	}
	doc := document.Document{
		RespondentName:  "Ada",
		RespondentEmail: "ada@example.com",
		Entries: []document.Entry{
			{Label: "Company", Value: "Acme", Type: model.FieldTypeText},
			{Label: "Signature", Value: document.SignedPlaceholder, Type: model.FieldTypeSignature},
		},
	}
	pdf := []byte("%PDF-1.7")

	creator := CreatorMessage("owner@example.com", schema, doc, pdf)
	respondent := RespondentMessage(schema, doc, pdf)

	for _, msg := range []Message{creator, respondent} {
		if !strings.Contains(msg.HTML, "Company") || !strings.Contains(msg.HTML, "Acme") {
			t.Errorf("summary missing answered field: %s", msg.HTML)
		}
		if strings.Contains(msg.HTML, "Signature") {
			t.Errorf("signature field leaked into summary: %s", msg.HTML)
		}
		if msg.Attachment == nil || msg.Attachment.Filename != "NDA.pdf" {
			t.Errorf("attachment = %+v, want NDA.pdf", msg.Attachment)
		}
	}

	if creator.To != "owner@example.com" {
		t.Errorf("creator To = %q", creator.To)
	}
	if respondent.To != "ada@example.com" {
		t.Errorf("respondent To = %q", respondent.To)
	}
}

func TestSummaryKeepsTextFieldSharingSignatureLabel(t *testing.T) {
	schema := model.FormSchema{
		Title: "Contract",
		Fields: []model.FormField{
			{ID: "f1", Label: "Signature", Type: model.FieldTypeText},
			{ID: "f2", Label: "Signature", Type: model.FieldTypeSignature},
		},
	}
	doc := document.Document{
		RespondentName:  "Ada",
		RespondentEmail: "ada@example.com",
		Entries: []document.Entry{
			{Label: "Signature", Value: "cursive initials", Type: model.FieldTypeText},
			{Label: "Signature", Value: document.SignedPlaceholder, Type: model.FieldTypeSignature},
		},
	}

	msg := RespondentMessage(schema, doc, nil)
	if !strings.Contains(msg.HTML, "cursive initials") {
		t.Errorf("text field dropped because a signature field shares its label: %s", msg.HTML)
	}
	if strings.Contains(msg.HTML, document.SignedPlaceholder) {
		t.Errorf("signature entry leaked into summary: %s", msg.HTML)
	}
}

func TestSummaryEscapesValues(t *testing.T) {
	schema := model.FormSchema{
		Title:  "Feedback",
		Fields: []model.FormField{{ID: "f1", Label: "Comment", Type: model.FieldTypeTextarea}},
	}
	doc := document.Document{
		RespondentName:  "<script>alert(1)</script>",
		RespondentEmail: "eve@example.com",
		Entries:         []document.Entry{{Label: "Comment", Value: "<img src=x onerror=alert(1)>", Type: model.FieldTypeTextarea}},
	}

	msg := CreatorMessage("owner@example.com", schema, doc, nil)
	if strings.Contains(msg.HTML, "<script>") || strings.Contains(msg.HTML, "<img") {
		t.Errorf("unescaped markup in email body: %s", msg.HTML)
	}
}
