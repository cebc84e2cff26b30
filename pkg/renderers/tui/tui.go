// Package tui fills a published form interactively in a terminal. It is the
// second input surface next to the HTML renderer and produces the same
// validated input shape, including the comma-joined checkbox encoding and
// the data-URI signature payload.
package tui

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-formpress/pkg/model"
	"github.com/goliatone/go-formpress/pkg/render"
)

// ErrNotRespondable is returned when filling a draft form.
var ErrNotRespondable = errors.New("tui: form is not published")

// maxValidationRounds bounds the re-prompt loop so a field that can never
// validate does not trap the user.
const maxValidationRounds = 3

// Filler drives the interactive session.
type Filler struct {
	ask      func(p survey.Prompt, response any, opts ...survey.AskOpt) error
	readFile func(path string) ([]byte, error)
}

// Option configures a Filler.
type Option func(*Filler)

// WithAsk replaces the prompt function, used by tests.
func WithAsk(ask func(p survey.Prompt, response any, opts ...survey.AskOpt) error) Option {
	return func(f *Filler) { f.ask = ask }
}

// New builds a Filler that prompts on the controlling terminal.
func New(opts ...Option) *Filler {
	f := &Filler{
		ask:      survey.AskOne,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fill prompts for every field and returns input that passes the shared
// validation. Fields that fail validation are re-prompted with the message
// shown inline, the same contract the HTML surface implements.
func (f *Filler) Fill(schema model.FormSchema) (render.Input, error) {
	if !model.IsRespondable(schema) {
		return render.Input{}, ErrNotRespondable
	}

	input := render.Input{Values: map[string]string{}}

	name, err := f.promptText("Your name", "", "")
	if err != nil {
		return render.Input{}, err
	}
	input.RespondentName = name

	email, err := f.promptText("Your email", "", "")
	if err != nil {
		return render.Input{}, err
	}
	input.RespondentEmail = email

	for _, field := range schema.Fields {
		value, err := f.promptField(field, "")
		if err != nil {
			return render.Input{}, err
		}
		input.Values[field.ID] = value
	}

	for round := 0; round < maxValidationRounds; round++ {
		problems := render.Validate(schema, input)
		if len(problems) == 0 {
			return input, nil
		}

		if msg, ok := problems[render.KeyName]; ok {
			if input.RespondentName, err = f.promptText("Your name", "", msg); err != nil {
				return render.Input{}, err
			}
		}
		if msg, ok := problems[render.KeyEmail]; ok {
			if input.RespondentEmail, err = f.promptText("Your email", "", msg); err != nil {
				return render.Input{}, err
			}
		}
		for _, field := range schema.Fields {
			msg, ok := problems[field.ID]
			if !ok {
				continue
			}
			if input.Values[field.ID], err = f.promptField(field, msg); err != nil {
				return render.Input{}, err
			}
		}
	}

	return render.Input{}, fmt.Errorf("tui: input still invalid after %d attempts", maxValidationRounds)
}

// promptField dispatches on field type. The returned string is already in
// the field's raw value encoding.
func (f *Filler) promptField(field model.FormField, problem string) (string, error) {
	label := field.Label
	if field.Required {
		label += " *"
	}

	switch field.Type {
	case model.FieldTypeTextarea:
		var answer string
		err := f.ask(&survey.Multiline{Message: withProblem(label, problem)}, &answer)
		return answer, err

	case model.FieldTypeSelect:
		if len(field.Options) == 0 {
			return "", nil
		}
		var answer string
		err := f.ask(&survey.Select{
			Message: withProblem(label, problem),
			Options: field.Options,
		}, &answer)
		return answer, err

	case model.FieldTypeCheckbox:
		if len(field.Options) == 0 {
			return "", nil
		}
		var picked []string
		err := f.ask(&survey.MultiSelect{
			Message: withProblem(label, problem),
			Options: field.Options,
		}, &picked)
		return strings.Join(picked, ","), err

	case model.FieldTypeSignature:
		return f.promptSignature(label, problem)

	default:
		return f.promptText(label, field.Placeholder, problem)
	}
}

func (f *Filler) promptText(label, placeholder, problem string) (string, error) {
	var answer string
	err := f.ask(&survey.Input{
		Message: withProblem(label, problem),
		Default: "",
		Help:    placeholder,
	}, &answer)
	return strings.TrimSpace(answer), err
}

// promptSignature asks for a PNG file path and encodes it as the data URI
// the rest of the system expects from a drawn signature.
func (f *Filler) promptSignature(label, problem string) (string, error) {
	var path string
	err := f.ask(&survey.Input{
		Message: withProblem(label+" (path to a PNG file)", problem),
	}, &path)
	if err != nil {
		return "", err
	}

	path = strings.TrimSpace(path)
	if path == "" {
		return "", nil
	}
	if strings.ToLower(filepath.Ext(path)) != ".png" {
		return "", fmt.Errorf("tui: signature must be a PNG file, got %s", path)
	}

	data, err := f.readFile(path)
	if err != nil {
		return "", fmt.Errorf("tui: read signature: %w", err)
	}
	return EncodeSignature(data), nil
}

// EncodeSignature wraps raw PNG bytes in the data-URI encoding used for
// signature values.
func EncodeSignature(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}

func withProblem(label, problem string) string {
	if problem == "" {
		return label
	}
	return fmt.Sprintf("%s [%s]", label, problem)
}
