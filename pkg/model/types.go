package model

import "time"

// FieldType is the closed enumeration of supported field kinds.
type FieldType string

const (
	FieldTypeText      FieldType = "text"
	FieldTypeTextarea  FieldType = "textarea"
	FieldTypeNumber    FieldType = "number"
	FieldTypeDate      FieldType = "date"
	FieldTypeEmail     FieldType = "email"
	FieldTypePhone     FieldType = "phone"
	FieldTypeCheckbox  FieldType = "checkbox"
	FieldTypeSelect    FieldType = "select"
	FieldTypeSignature FieldType = "signature"
)

// ValueShape describes how a field's raw value is encoded. Every value is
// ultimately stored as a string; the shape tells renderers and validators how
// to interpret it.
type ValueShape string

const (
	// ValueShapeScalar is a single text-like value.
	ValueShapeScalar ValueShape = "scalar"
	// ValueShapeMultiSelect is a comma-joined subset of the field's options.
	ValueShapeMultiSelect ValueShape = "multiselect"
	// ValueShapeImageDataURI is a raster image payload (data-URI PNG).
	ValueShapeImageDataURI ValueShape = "image-data-uri"
)

// FormStatus is the lifecycle state of a form.
type FormStatus string

const (
	StatusDraft     FormStatus = "draft"
	StatusPublished FormStatus = "published"
)

// FormField models an individual input inside a form. ID is assigned by the
// store on persistence and is empty for unsaved fields. SortOrder is a dense
// 0-based rank unique within a form. Options is non-nil iff the field type
// accepts an option list.
type FormField struct {
	ID          string    `json:"id,omitempty"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Placeholder string    `json:"placeholder,omitempty"`
	Required    bool      `json:"required"`
	Options     []string  `json:"options,omitempty"`
	SortOrder   int       `json:"sortOrder"`
}

// FormSchema is the top-level form representation. ShareToken is present iff
// the form is Published and is immutable once minted.
type FormSchema struct {
	ID              string      `json:"id,omitempty"`
	CreatorID       string      `json:"creatorId,omitempty"`
	Title           string      `json:"title"`
	Description     string      `json:"description,omitempty"`
	Status          FormStatus  `json:"status"`
	ShareToken      string      `json:"shareToken,omitempty"`
	OriginalFileURL string      `json:"originalFileUrl,omitempty"`
	Fields          []FormField `json:"fields"`
	CreatedAt       time.Time   `json:"createdAt,omitempty"`
	UpdatedAt       time.Time   `json:"updatedAt,omitempty"`
}

// Submission records one respondent's answers against a published form. It is
// immutable after creation except for the single DocumentURL backfill that
// happens once the rendered document has been stored.
type Submission struct {
	ID              string            `json:"id"`
	FormID          string            `json:"formId"`
	RespondentName  string            `json:"respondentName"`
	RespondentEmail string            `json:"respondentEmail"`
	Values          map[string]string `json:"values"`
	SubmittedAt     time.Time         `json:"submittedAt"`
	DocumentURL     string            `json:"documentUrl,omitempty"`
}
