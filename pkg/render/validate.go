package render

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-formpress/pkg/model"
)

// Reserved error-map keys for the respondent identity inputs, which exist on
// every form regardless of its schema.
const (
	KeyName  = "_name"
	KeyEmail = "_email"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Input is the accumulated respondent state validated before submission.
type Input struct {
	RespondentName  string
	RespondentEmail string
	Values          map[string]string
}

// Validate checks respondent input against a schema and returns a mapping from
// field key (KeyName, KeyEmail, or a field id) to a human-readable message. An
// empty map clears the input to submit. Validation has no side effects and is
// safe to re-run on every keystroke; required checks defer to the per-type
// strategy's notion of blank. Non-required fields may be omitted entirely.
func Validate(schema model.FormSchema, input Input) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(input.RespondentName) == "" {
		errs[KeyName] = "Name is required"
	}
	email := strings.TrimSpace(input.RespondentEmail)
	if email == "" {
		errs[KeyEmail] = "Email is required"
	} else if !emailPattern.MatchString(email) {
		errs[KeyEmail] = "Invalid email address"
	}

	for _, field := range schema.Fields {
		if !field.Required {
			continue
		}
		strategy, err := StrategyFor(field.Type)
		if err != nil {
			// Schema integrity violation; surface it on the field so the
			// creator sees where the schema is broken.
			errs[field.ID] = "This field has an unsupported type"
			continue
		}
		if strategy.Blank(input.Values[field.ID]) {
			errs[field.ID] = "This field is required"
		}
	}

	return errs
}

// Valid reports whether the input clears to submit.
func Valid(schema model.FormSchema, input Input) bool {
	return len(Validate(schema, input)) == 0
}
