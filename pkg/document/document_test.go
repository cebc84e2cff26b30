package document

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpress/pkg/model"
)

func testSchema(t *testing.T) model.FormSchema {
	t.Helper()

	schema := model.NewDraft("Rental Application", "Tell us about yourself")
	fields := []model.FieldInput{
		{Label: "Full name", Type: string(model.FieldTypeText)},
		{Label: "Pets", Type: string(model.FieldTypeCheckbox), Options: []string{"Dog", "Cat"}},
		{Label: "Signature", Type: string(model.FieldTypeSignature)},
	}
	for i, in := range fields {
		field, err := model.NewField(in, i)
		if err != nil {
			t.Fatalf("NewField(%d): %v", i, err)
		}
		field.ID = in.Label
		schema.Fields = append(schema.Fields, field)
	}
	return schema
}

func TestFromSubmission(t *testing.T) {
	schema := testSchema(t)
	submittedAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	doc := FromSubmission(schema, model.Submission{
		RespondentName:  "Ada Lovelace",
		RespondentEmail: "ada@example.com",
		SubmittedAt:     submittedAt,
		Values: map[string]string{
			"Full name": "Ada Lovelace",
			"Signature": "data:image/png;base64,iVBORw0KGgo=",
		},
	})

	want := Document{
		Title:           "Rental Application",
		Description:     "Tell us about yourself",
		RespondentName:  "Ada Lovelace",
		RespondentEmail: "ada@example.com",
		SubmittedAt:     submittedAt,
		Entries: []Entry{
			{Label: "Full name", Value: "Ada Lovelace", Type: model.FieldTypeText},
			{Label: "Pets", Value: "", Type: model.FieldTypeCheckbox},
			{Label: "Signature", Value: SignedPlaceholder, Type: model.FieldTypeSignature},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestFromSubmissionBlankSignatureStaysBlank(t *testing.T) {
	schema := testSchema(t)
	doc := FromSubmission(schema, model.Submission{Values: map[string]string{"Signature": "   "}})

	if got := doc.Entries[2].Value; got != "   " {
		t.Errorf("blank signature = %q, want untouched whitespace", got)
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"abc123", "abc123.pdf"},
		{"submissions:9f2c", "submissions_9f2c.pdf"},
		{"a b/c", "a_b_c.pdf"},
	}
	for _, tt := range tests {
		if got := Filename(tt.id); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLayoutPaginates(t *testing.T) {
	doc := Document{Title: "Long form", RespondentName: "A", RespondentEmail: "a@b.c"}
	for i := 0; i < 60; i++ {
		doc.Entries = append(doc.Entries, Entry{Label: "Question", Value: "Answer"})
	}

	pages := layout(doc)
	if len(pages) < 2 {
		t.Fatalf("layout produced %d pages, want at least 2", len(pages))
	}
	usable := float64(pageHeight - 2*marginTop)
	perPage := int(usable / lineHeight)
	for i, page := range pages {
		if len(page) > perPage {
			t.Errorf("page %d holds %d lines, budget is %d", i+1, len(page), perPage)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		columns int
		want    []string
	}{
		{"empty", "", 10, []string{""}},
		{"fits", "one two", 10, []string{"one two"}},
		{"breaks on words", "alpha beta gamma", 11, []string{"alpha beta", "gamma"}},
		{"oversized word kept whole", "supercalifragilistic", 5, []string{"supercalifragilistic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, wrap(tt.text, tt.columns)); diff != "" {
				t.Errorf("wrap mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
