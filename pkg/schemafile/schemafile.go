// Package schemafile loads and saves form definitions as YAML, for seeding
// forms from files and exporting them for versioning outside the store.
package schemafile

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formpress/pkg/model"
)

// File is the on-disk shape. Field order in the file is the sort order;
// explicit sortOrder values are not stored.
type File struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description,omitempty"`
	Fields      []FileField `yaml:"fields"`
}

// FileField mirrors model.FieldInput in YAML form.
type FileField struct {
	Label       string   `yaml:"label"`
	Type        string   `yaml:"type"`
	Placeholder string   `yaml:"placeholder,omitempty"`
	Required    bool     `yaml:"required,omitempty"`
	Options     []string `yaml:"options,omitempty"`
}

// Read decodes a definition and funnels every field through the standard
// construction path, so a hand-edited file cannot produce an invalid schema.
func Read(r io.Reader) (model.FormSchema, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return model.FormSchema{}, fmt.Errorf("schemafile: decode: %w", err)
	}

	schema := model.NewDraft(file.Title, file.Description)
	for i, ff := range file.Fields {
		field, err := model.NewField(model.FieldInput{
			Label:       ff.Label,
			Type:        ff.Type,
			Placeholder: ff.Placeholder,
			Required:    ff.Required,
			Options:     ff.Options,
		}, i)
		if err != nil {
			return model.FormSchema{}, fmt.Errorf("schemafile: field %d (%q): %w", i, ff.Label, err)
		}
		schema.Fields = append(schema.Fields, field)
	}
	return schema, nil
}

// Write encodes a schema. Ids, status, and the share token are deliberately
// left out: a file round-trips the editable definition, not store state.
func Write(w io.Writer, schema model.FormSchema) error {
	file := File{
		Title:       schema.Title,
		Description: schema.Description,
		Fields:      make([]FileField, 0, len(schema.Fields)),
	}
	for _, field := range schema.Fields {
		file.Fields = append(file.Fields, FileField{
			Label:       field.Label,
			Type:        string(field.Type),
			Placeholder: field.Placeholder,
			Required:    field.Required,
			Options:     field.Options,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(file); err != nil {
		return fmt.Errorf("schemafile: encode: %w", err)
	}
	return enc.Close()
}

// Load reads a definition from a path.
func Load(path string) (model.FormSchema, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.FormSchema{}, fmt.Errorf("schemafile: open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Save writes a definition to a path.
func Save(path string, schema model.FormSchema) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("schemafile: create %s: %w", path, err)
	}
	if err := Write(f, schema); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
