package editor

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formpress/pkg/model"
)

func sampleFields(t *testing.T, labels ...string) []model.FormField {
	t.Helper()
	fields := make([]model.FormField, 0, len(labels))
	for i, label := range labels {
		field, err := model.NewField(model.FieldInput{Label: label, Type: "text"}, i)
		if err != nil {
			t.Fatalf("NewField(%q): %v", label, err)
		}
		fields = append(fields, field)
	}
	return fields
}

func labels(fields []model.FormField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Label)
	}
	return out
}

func assertDense(t *testing.T, fields []model.FormField) {
	t.Helper()
	for i, f := range fields {
		if f.SortOrder != i {
			t.Fatalf("sortOrder not dense at %d: %+v", i, fields)
		}
	}
}

func TestAddField_AppendsDefault(t *testing.T) {
	fields := sampleFields(t, "a", "b")
	out := AddField(fields)

	if len(out) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(out))
	}
	added := out[2]
	if added.Type != model.FieldTypeText || added.Required || added.SortOrder != 2 {
		t.Fatalf("unexpected appended field: %+v", added)
	}
	assertDense(t, out)
	if len(fields) != 2 {
		t.Fatalf("input slice mutated: %+v", fields)
	}
}

func TestRemoveField_RenumbersDense(t *testing.T) {
	fields := sampleFields(t, "a", "b", "c", "d")

	out, err := RemoveField(fields, 1)
	if err != nil {
		t.Fatalf("RemoveField: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "c", "d"}, labels(out)); diff != "" {
		t.Fatalf("relative order lost (-want +got):\n%s", diff)
	}
	assertDense(t, out)
}

func TestMoveField(t *testing.T) {
	cases := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 0, []string{"d", "a", "b", "c"}},
		{"same position", 1, 1, []string{"a", "b", "c", "d"}},
		{"to below range is noop", 2, -1, []string{"a", "b", "c", "d"}},
		{"to above range is noop", 2, 4, []string{"a", "b", "c", "d"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fields := sampleFields(t, "a", "b", "c", "d")
			out, err := MoveField(fields, tc.from, tc.to)
			if err != nil {
				t.Fatalf("MoveField(%d, %d): %v", tc.from, tc.to, err)
			}
			if diff := cmp.Diff(tc.want, labels(out)); diff != "" {
				t.Fatalf("order mismatch (-want +got):\n%s", diff)
			}
			assertDense(t, out)
		})
	}
}

func TestMoveField_FromOutOfRange(t *testing.T) {
	fields := sampleFields(t, "a", "b")
	if _, err := MoveField(fields, 5, 0); err == nil {
		t.Fatal("expected error for from index out of range")
	}
}

func TestUpdateField_TypeChangeRenormalizes(t *testing.T) {
	fields := sampleFields(t, "Symptoms")
	fields[0].Placeholder = "describe symptoms"

	checkbox := model.FieldTypeCheckbox
	out, err := UpdateField(fields, 0, FieldPatch{
		Type:    &checkbox,
		Options: []string{"Cough", "Fever"},
	})
	if err != nil {
		t.Fatalf("UpdateField: %v", err)
	}

	updated := out[0]
	if updated.Type != model.FieldTypeCheckbox {
		t.Fatalf("type = %q, want checkbox", updated.Type)
	}
	if updated.Placeholder != "" {
		t.Fatalf("placeholder survived type change to checkbox: %q", updated.Placeholder)
	}
	if diff := cmp.Diff([]string{"Cough", "Fever"}, updated.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdateField_RejectsUnknownType(t *testing.T) {
	fields := sampleFields(t, "a")
	bogus := model.FieldType("file")
	if _, err := UpdateField(fields, 0, FieldPatch{Type: &bogus}); err == nil {
		t.Fatal("expected error for unknown field type")
	}
}

func TestEditSequence_SortOrderStaysDensePermutation(t *testing.T) {
	fields := sampleFields(t, "a", "b", "c")
	var err error

	fields = AddField(fields)
	fields, err = MoveField(fields, 3, 0)
	if err != nil {
		t.Fatalf("MoveField: %v", err)
	}
	fields, err = RemoveField(fields, 2)
	if err != nil {
		t.Fatalf("RemoveField: %v", err)
	}
	fields = AddField(fields)

	assertDense(t, fields)
	if len(fields) != 4 {
		t.Fatalf("expected 4 fields, got %d", len(fields))
	}
}
