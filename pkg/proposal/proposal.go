// Package proposal extracts a draft field list from an uploaded form image
// or PDF using a vision model. Model output is untrusted: every proposed
// field passes through the same construction path as manual entry, so a
// hallucinated type or stray option set can never reach a schema.
package proposal

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-formpress/pkg/model"
)

// ErrNoFields is returned when the model reply parsed cleanly but proposed
// nothing usable.
var ErrNoFields = errors.New("proposal: no usable fields proposed")

// SchemaProposalError wraps a failure to obtain or parse a proposal.
type SchemaProposalError struct {
	Stage string
	Err   error
}

func (e *SchemaProposalError) Error() string {
	return fmt.Sprintf("proposal: %s: %v", e.Stage, e.Err)
}

func (e *SchemaProposalError) Unwrap() error { return e.Err }

// Proposal is the model's suggested form content before any human edits.
type Proposal struct {
	Title       string
	Description string
	Fields      []model.FormField
}

// Service produces a schema proposal from an uploaded source document.
type Service interface {
	Propose(ctx context.Context, fileURL, mimeType string) (Proposal, error)
}

// rawProposal mirrors the JSON shape the model is instructed to emit.
type rawProposal struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Fields      []rawField `json:"fields"`
}

type rawField struct {
	Label       string   `json:"label"`
	Type        string   `json:"type"`
	Placeholder string   `json:"placeholder"`
	Required    bool     `json:"required"`
	Options     []string `json:"options"`
}

// normalize funnels raw model output through field construction. Fields the
// model got wrong are skipped rather than failing the whole proposal, since
// the creator reviews and edits the result anyway.
func normalize(raw rawProposal) (Proposal, error) {
	out := Proposal{
		Title:       raw.Title,
		Description: raw.Description,
	}

	for _, rf := range raw.Fields {
		field, err := model.NewField(model.FieldInput{
			Label:       rf.Label,
			Type:        rf.Type,
			Placeholder: rf.Placeholder,
			Required:    rf.Required,
			Options:     rf.Options,
		}, len(out.Fields))
		if err != nil {
			continue
		}
		out.Fields = append(out.Fields, field)
	}

	if len(out.Fields) == 0 {
		return Proposal{}, ErrNoFields
	}
	return out, nil
}
