// Package openapi describes a published form's public intake surface as an
// OpenAPI 3 document, so external systems can submit responses without
// scraping the rendered form.
package openapi

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formpress/pkg/model"
)

// ErrNotPublished is returned for forms that have no public surface yet.
var ErrNotPublished = errors.New("openapi: form is not published")

// Export builds the intake contract for one published form: the share-token
// read path and the submission intake path, with per-field value schemas.
func Export(schema model.FormSchema) (*openapi3.T, error) {
	if !model.IsRespondable(schema) {
		return nil, ErrNotPublished
	}

	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       schema.Title,
			Description: schema.Description,
			Version:     "1.0.0",
		},
		Paths: openapi3.NewPaths(
			openapi3.WithPath("/f/"+schema.ShareToken, &openapi3.PathItem{
				Get: readOperation(schema),
			}),
			openapi3.WithPath("/api/submissions", &openapi3.PathItem{
				Post: intakeOperation(schema),
			}),
		),
	}
	return doc, nil
}

func readOperation(schema model.FormSchema) *openapi3.Operation {
	fieldSchema := openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema()).
		WithProperty("label", openapi3.NewStringSchema()).
		WithProperty("type", openapi3.NewStringSchema().WithEnum(fieldTypeNames()...)).
		WithProperty("placeholder", openapi3.NewStringSchema()).
		WithProperty("required", openapi3.NewBoolSchema()).
		WithProperty("options", openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()))

	body := openapi3.NewObjectSchema().
		WithProperty("title", openapi3.NewStringSchema()).
		WithProperty("description", openapi3.NewStringSchema()).
		WithPropertyRef("fields", openapi3.NewSchemaRef("",
			openapi3.NewArraySchema().WithItems(fieldSchema)))

	return &openapi3.Operation{
		OperationID: "getForm",
		Summary:     "Fetch the respondable form definition",
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("The published form definition").
					WithJSONSchema(body),
			}),
			openapi3.WithStatus(404, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Unknown token or unpublished form"),
			}),
		),
	}
}

func intakeOperation(schema model.FormSchema) *openapi3.Operation {
	values := openapi3.NewObjectSchema()
	for _, field := range schema.Fields {
		values = values.WithProperty(field.ID, valueSchema(field))
		if field.Required {
			values.Required = append(values.Required, field.ID)
		}
	}

	request := openapi3.NewObjectSchema().
		WithProperty("formId", openapi3.NewStringSchema().WithEnum(schema.ShareToken)).
		WithProperty("respondentName", openapi3.NewStringSchema().WithMinLength(1)).
		WithProperty("respondentEmail", openapi3.NewStringSchema().WithFormat("email")).
		WithProperty("values", values)
	request.Required = []string{"formId", "respondentName", "respondentEmail", "values"}

	success := openapi3.NewObjectSchema().
		WithProperty("success", openapi3.NewBoolSchema()).
		WithProperty("submissionId", openapi3.NewStringSchema())

	return &openapi3.Operation{
		OperationID: "createSubmission",
		Summary:     "Submit a response",
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchema(request),
		},
		Responses: openapi3.NewResponses(
			openapi3.WithStatus(200, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Submission accepted").
					WithJSONSchema(success),
			}),
			openapi3.WithStatus(400, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Validation failed, body maps field keys to messages"),
			}),
			openapi3.WithStatus(404, &openapi3.ResponseRef{
				Value: openapi3.NewResponse().
					WithDescription("Unknown token or unpublished form"),
			}),
		),
	}
}

// valueSchema maps a field's raw value encoding: everything travels as a
// string, with the option set surfaced as enum or comma-join guidance.
func valueSchema(field model.FormField) *openapi3.Schema {
	s := openapi3.NewStringSchema()
	s.Description = field.Label

	switch field.Type {
	case model.FieldTypeSelect:
		if len(field.Options) > 0 {
			s = s.WithEnum(anySlice(field.Options)...)
			s.Description = field.Label
		}
	case model.FieldTypeCheckbox:
		s.Description = fmt.Sprintf("%s. Comma-joined subset of: %s",
			field.Label, strings.Join(field.Options, ", "))
	case model.FieldTypeSignature:
		s.Description = field.Label + ". PNG data URI of the drawn signature"
		s.Format = "uri"
	case model.FieldTypeEmail:
		s.Format = "email"
	case model.FieldTypeDate:
		s.Format = "date"
	}
	return s
}

func fieldTypeNames() []any {
	types := model.FieldTypes()
	out := make([]any, 0, len(types))
	for _, t := range types {
		out = append(out, string(t))
	}
	return out
}

func anySlice(values []string) []any {
	out := make([]any, 0, len(values))
	for _, v := range values {
		out = append(out, v)
	}
	return out
}
