package model

import (
	"errors"
	"testing"
)

func TestDescribe_TotalOverEnum(t *testing.T) {
	for _, fieldType := range FieldTypes() {
		if _, err := Describe(fieldType); err != nil {
			t.Fatalf("Describe(%q) returned error: %v", fieldType, err)
		}
	}
}

func TestDescribe_OptionKinds(t *testing.T) {
	cases := []struct {
		fieldType      FieldType
		acceptsOptions bool
		shape          ValueShape
	}{
		{FieldTypeText, false, ValueShapeScalar},
		{FieldTypeTextarea, false, ValueShapeScalar},
		{FieldTypeNumber, false, ValueShapeScalar},
		{FieldTypeDate, false, ValueShapeScalar},
		{FieldTypeEmail, false, ValueShapeScalar},
		{FieldTypePhone, false, ValueShapeScalar},
		{FieldTypeCheckbox, true, ValueShapeMultiSelect},
		{FieldTypeSelect, true, ValueShapeScalar},
		{FieldTypeSignature, false, ValueShapeImageDataURI},
	}

	for _, tc := range cases {
		spec, err := Describe(tc.fieldType)
		if err != nil {
			t.Fatalf("Describe(%q): %v", tc.fieldType, err)
		}
		if spec.AcceptsOptions != tc.acceptsOptions {
			t.Errorf("Describe(%q).AcceptsOptions = %v, want %v", tc.fieldType, spec.AcceptsOptions, tc.acceptsOptions)
		}
		if spec.Shape != tc.shape {
			t.Errorf("Describe(%q).Shape = %q, want %q", tc.fieldType, spec.Shape, tc.shape)
		}
	}
}

func TestDescribe_UnknownType(t *testing.T) {
	for _, raw := range []string{"", "file", "TEXT", "dropdown"} {
		_, err := Describe(FieldType(raw))
		if !errors.Is(err, ErrUnknownFieldType) {
			t.Fatalf("Describe(%q) = %v, want ErrUnknownFieldType", raw, err)
		}
	}
}

func TestDescribe_PlaceholderMeaningless(t *testing.T) {
	for _, fieldType := range []FieldType{FieldTypeCheckbox, FieldTypeSignature} {
		spec, err := Describe(fieldType)
		if err != nil {
			t.Fatalf("Describe(%q): %v", fieldType, err)
		}
		if spec.AcceptsPlaceholder {
			t.Errorf("Describe(%q).AcceptsPlaceholder = true, want false", fieldType)
		}
	}
}
