package model

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewField(t *testing.T) {
	cases := []struct {
		name  string
		input FieldInput
		want  FormField
	}{
		{
			name:  "text keeps placeholder",
			input: FieldInput{Label: " Full name ", Type: "text", Placeholder: " Jane Doe ", Required: true},
			want:  FormField{Label: "Full name", Type: FieldTypeText, Placeholder: "Jane Doe", Required: true, SortOrder: 3},
		},
		{
			name:  "signature drops placeholder",
			input: FieldInput{Label: "Sign here", Type: "signature", Placeholder: "ignored"},
			want:  FormField{Label: "Sign here", Type: FieldTypeSignature, SortOrder: 3},
		},
		{
			name:  "checkbox keeps options and drops placeholder",
			input: FieldInput{Label: "Symptoms", Type: "checkbox", Placeholder: "ignored", Options: []string{" Cough ", "", "Fever"}},
			want:  FormField{Label: "Symptoms", Type: FieldTypeCheckbox, Options: []string{"Cough", "Fever"}, SortOrder: 3},
		},
		{
			name:  "select with no options stays structurally valid",
			input: FieldInput{Label: "State", Type: "select"},
			want:  FormField{Label: "State", Type: FieldTypeSelect, Options: []string{}, SortOrder: 3},
		},
		{
			name:  "options forbidden for scalar kinds",
			input: FieldInput{Label: "Age", Type: "number", Options: []string{"1", "2"}},
			want:  FormField{Label: "Age", Type: FieldTypeNumber, SortOrder: 3},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewField(tc.input, 3)
			if err != nil {
				t.Fatalf("NewField: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("field mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewField_UnknownType(t *testing.T) {
	_, err := NewField(FieldInput{Label: "Upload", Type: "file"}, 0)
	if !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("NewField with unknown type = %v, want ErrUnknownFieldType", err)
	}
}

func TestDefaultField(t *testing.T) {
	field := DefaultField(5)
	if field.Type != FieldTypeText || field.Required || field.SortOrder != 5 {
		t.Fatalf("unexpected default field: %+v", field)
	}
}
