package model

import "strings"

// FieldInput carries untrusted field data from a creator edit or an AI schema
// proposal. NewField is the only construction path into a FormField.
type FieldInput struct {
	ID          string   `json:"id,omitempty"`
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Options     []string `json:"options,omitempty"`
}

// NewField validates input against the type registry and normalises it into a
// FormField at the given sort order. Options are kept (possibly empty) only
// for kinds that accept them; placeholders are dropped for kinds that do not.
func NewField(in FieldInput, sortOrder int) (FormField, error) {
	fieldType := FieldType(strings.TrimSpace(in.Type))
	spec, err := Describe(fieldType)
	if err != nil {
		return FormField{}, err
	}

	field := FormField{
		ID:        strings.TrimSpace(in.ID),
		Label:     strings.TrimSpace(in.Label),
		Type:      fieldType,
		Required:  in.Required,
		SortOrder: sortOrder,
	}

	if spec.AcceptsPlaceholder {
		field.Placeholder = strings.TrimSpace(in.Placeholder)
	}

	if spec.AcceptsOptions {
		field.Options = normalizeOptions(in.Options)
	}

	return field, nil
}

// DefaultField is the field appended by the editor's add operation.
func DefaultField(sortOrder int) FormField {
	return FormField{
		Type:      FieldTypeText,
		Required:  false,
		SortOrder: sortOrder,
	}
}

// normalizeOptions trims entries and drops blanks while preserving order. A
// nil input becomes an empty, structurally valid option list.
func normalizeOptions(options []string) []string {
	out := make([]string, 0, len(options))
	for _, option := range options {
		trimmed := strings.TrimSpace(option)
		if trimmed == "" {
			continue
		}
		out = append(out, trimmed)
	}
	return out
}
