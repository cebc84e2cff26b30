// Package editor implements in-memory editing of a draft form's field list.
// Every operation returns a new, renumbered list; persistence is replace-all
// on save, so the editor never tracks per-field diffs.
package editor

import (
	"fmt"

	"github.com/goliatone/go-formpress/pkg/model"
)

// FieldPatch carries partial updates for a single field. Nil members leave the
// current value untouched.
type FieldPatch struct {
	Label       *string
	Type        *model.FieldType
	Placeholder *string
	Required    *bool
	Options     []string
}

// AddField appends a default text field with a fresh sort order.
func AddField(fields []model.FormField) []model.FormField {
	out := cloneFields(fields)
	out = append(out, model.DefaultField(len(out)))
	return renumber(out)
}

// UpdateField applies a patch at index. Changing the type re-runs the field
// through model.NewField so type-specific invariants (options presence,
// placeholder relevance) hold for the new kind.
func UpdateField(fields []model.FormField, index int, patch FieldPatch) ([]model.FormField, error) {
	if index < 0 || index >= len(fields) {
		return nil, fmt.Errorf("editor: field index %d out of range", index)
	}

	out := cloneFields(fields)
	field := out[index]

	if patch.Label != nil {
		field.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		field.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		field.Required = *patch.Required
	}
	if patch.Options != nil {
		field.Options = append([]string(nil), patch.Options...)
	}
	if patch.Type != nil {
		field.Type = *patch.Type
	}

	normalized, err := model.NewField(model.FieldInput{
		ID:          field.ID,
		Label:       field.Label,
		Type:        string(field.Type),
		Placeholder: field.Placeholder,
		Required:    field.Required,
		Options:     field.Options,
	}, field.SortOrder)
	if err != nil {
		return nil, err
	}

	out[index] = normalized
	return renumber(out), nil
}

// RemoveField deletes the field at index and renumbers the remainder so sort
// orders stay dense while preserving relative order.
func RemoveField(fields []model.FormField, index int) ([]model.FormField, error) {
	if index < 0 || index >= len(fields) {
		return nil, fmt.Errorf("editor: field index %d out of range", index)
	}
	out := cloneFields(fields)
	out = append(out[:index], out[index+1:]...)
	return renumber(out), nil
}

// MoveField splices the field at from into position to and renumbers. A to
// index outside [0, len) is a no-op, not an error, matching drag-and-drop
// semantics where dropping outside the list cancels the move.
func MoveField(fields []model.FormField, from, to int) ([]model.FormField, error) {
	if from < 0 || from >= len(fields) {
		return nil, fmt.Errorf("editor: field index %d out of range", from)
	}
	if to < 0 || to >= len(fields) {
		return cloneFields(fields), nil
	}

	out := cloneFields(fields)
	moved := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]model.FormField{moved}, out[to:]...)...)
	return renumber(out), nil
}

func renumber(fields []model.FormField) []model.FormField {
	for i := range fields {
		fields[i].SortOrder = i
	}
	return fields
}

func cloneFields(fields []model.FormField) []model.FormField {
	out := make([]model.FormField, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Options != nil {
			out[i].Options = append([]string(nil), out[i].Options...)
		}
	}
	return out
}
