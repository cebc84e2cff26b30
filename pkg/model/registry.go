package model

import (
	"errors"
	"fmt"
)

// ErrUnknownFieldType signals a field type outside the closed enumeration.
// Callers must treat this as a data-integrity error, not user input error.
var ErrUnknownFieldType = errors.New("model: unknown field type")

// TypeSpec declares the rendering and validation contract of a field kind.
type TypeSpec struct {
	// AcceptsOptions reports whether the kind requires an option list.
	AcceptsOptions bool
	// AcceptsPlaceholder reports whether placeholder text is meaningful.
	AcceptsPlaceholder bool
	// Shape is the raw-value encoding respondent input uses for this kind.
	Shape ValueShape
}

var typeSpecs = map[FieldType]TypeSpec{
	FieldTypeText:      {AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypeTextarea:  {AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypeNumber:    {AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypeDate:      {AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypeEmail:     {AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypePhone:     {AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypeCheckbox:  {AcceptsOptions: true, Shape: ValueShapeMultiSelect},
	FieldTypeSelect:    {AcceptsOptions: true, AcceptsPlaceholder: true, Shape: ValueShapeScalar},
	FieldTypeSignature: {Shape: ValueShapeImageDataURI},
}

// Describe returns the contract for a field kind. It is a pure lookup, total
// over the closed enumeration, and fails with ErrUnknownFieldType otherwise.
func Describe(t FieldType) (TypeSpec, error) {
	spec, ok := typeSpecs[t]
	if !ok {
		return TypeSpec{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, t)
	}
	return spec, nil
}

// FieldTypes returns the supported kinds in a stable display order.
func FieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeTextarea,
		FieldTypeNumber,
		FieldTypeDate,
		FieldTypeEmail,
		FieldTypePhone,
		FieldTypeCheckbox,
		FieldTypeSelect,
		FieldTypeSignature,
	}
}
