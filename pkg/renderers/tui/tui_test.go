package tui

import (
	"errors"
	"strings"
	"testing"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-formpress/pkg/model"
)

func publishedSchema(t *testing.T) model.FormSchema {
	t.Helper()

	schema := model.NewDraft("Club Membership", "")
	schema.Fields = []model.FormField{
		{ID: "f-name", Label: "Full name", Type: model.FieldTypeText, Required: true, SortOrder: 0},
		{ID: "f-days", Label: "Training days", Type: model.FieldTypeCheckbox, Options: []string{"Mon", "Wed", "Fri"}, SortOrder: 1},
		{ID: "f-sign", Label: "Signature", Type: model.FieldTypeSignature, Required: true, SortOrder: 2},
	}
	published, err := model.Publish(schema)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	return published
}

// scriptedAsk answers prompts by matching on the prompt message.
func scriptedAsk(t *testing.T, answers map[string]any) func(survey.Prompt, any, ...survey.AskOpt) error {
	t.Helper()
	return func(p survey.Prompt, response any, _ ...survey.AskOpt) error {
		var message string
		switch prompt := p.(type) {
		case *survey.Input:
			message = prompt.Message
		case *survey.Multiline:
			message = prompt.Message
		case *survey.Select:
			message = prompt.Message
		case *survey.MultiSelect:
			message = prompt.Message
		default:
			t.Fatalf("unexpected prompt type %T", p)
		}

		for key, answer := range answers {
			if strings.HasPrefix(message, key) {
				switch out := response.(type) {
				case *string:
					*out = answer.(string)
				case *[]string:
					*out = answer.([]string)
				}
				return nil
			}
		}
		t.Fatalf("no scripted answer for prompt %q", message)
		return nil
	}
}

func TestFillCommaJoinsCheckboxAndEncodesSignature(t *testing.T) {
	schema := publishedSchema(t)

	f := New(WithAsk(scriptedAsk(t, map[string]any{
		"Your name":  "Ada Lovelace",
		"Your email": "ada@example.com",
		"Full name":  "Ada Lovelace",
		"Training days": []string{
			"Mon", "Fri",
		},
		"Signature": "/tmp/sig.png",
	})))
	f.readFile = func(path string) ([]byte, error) {
		if path != "/tmp/sig.png" {
			t.Errorf("readFile path = %q", path)
		}
		return []byte{0x89, 'P', 'N', 'G'}, nil
	}

	input, err := f.Fill(schema)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}

	if got := input.Values["f-days"]; got != "Mon,Fri" {
		t.Errorf("checkbox value = %q, want comma-joined", got)
	}
	if got := input.Values["f-sign"]; !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("signature value = %q, want data URI", got)
	}
}

func TestFillRepromptsUntilValid(t *testing.T) {
	schema := publishedSchema(t)

	emails := []string{"not-an-email", "ada@example.com"}
	f := New(WithAsk(func(p survey.Prompt, response any, _ ...survey.AskOpt) error {
		switch prompt := p.(type) {
		case *survey.Input:
			out := response.(*string)
			switch {
			case strings.HasPrefix(prompt.Message, "Your email"):
				*out = emails[0]
				if len(emails) > 1 {
					emails = emails[1:]
				}
			case strings.HasPrefix(prompt.Message, "Signature"):
				*out = "/sig.png"
			default:
				*out = "Ada"
			}
		case *survey.MultiSelect:
			*response.(*[]string) = []string{"Mon"}
		}
		return nil
	}))
	f.readFile = func(string) ([]byte, error) { return []byte{1}, nil }

	input, err := f.Fill(schema)
	if err != nil {
		t.Fatalf("Fill: %v", err)
	}
	if input.RespondentEmail != "ada@example.com" {
		t.Errorf("email = %q, want the corrected value", input.RespondentEmail)
	}
}

func TestFillRejectsDraft(t *testing.T) {
	f := New(WithAsk(func(survey.Prompt, any, ...survey.AskOpt) error { return nil }))
	if _, err := f.Fill(model.NewDraft("Draft", "")); !errors.Is(err, ErrNotRespondable) {
		t.Errorf("err = %v, want ErrNotRespondable", err)
	}
}

func TestSignatureRequiresPNG(t *testing.T) {
	f := New(WithAsk(scriptedAsk(t, map[string]any{
		"Signature": "/tmp/sig.jpg",
	})))

	_, err := f.promptSignature("Signature", "")
	if err == nil || !strings.Contains(err.Error(), "PNG") {
		t.Errorf("err = %v, want PNG rejection", err)
	}
}
