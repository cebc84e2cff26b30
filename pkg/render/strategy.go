package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formpress/pkg/model"
)

// InputMode hints what kind of input affordance a surface should present for
// a field. It never changes the stored representation, which is always a
// string.
type InputMode string

const (
	InputModeText      InputMode = "text"
	InputModeMultiline InputMode = "multiline"
	InputModeNumber    InputMode = "number"
	InputModeDate      InputMode = "date"
	InputModeEmail     InputMode = "email"
	InputModeTel       InputMode = "tel"
	InputModeMulti     InputMode = "multi"
	InputModeChoice    InputMode = "choice"
	InputModeDrawing   InputMode = "drawing"
)

// Strategy bundles the per-type behaviour every surface shares: the blank
// check used by required-field validation and the input affordance hint.
type Strategy struct {
	Mode InputMode
	// Blank reports whether a raw value counts as empty for required checks.
	Blank func(value string) bool
}

func blankAfterTrim(value string) bool {
	return strings.TrimSpace(value) == ""
}

// strategies is the total mapping over the closed field-type set. A checkbox
// value is a comma-joined subset of its options and is blank iff nothing is
// selected; a signature is blank iff it has no image payload.
var strategies = map[model.FieldType]Strategy{
	model.FieldTypeText:      {Mode: InputModeText, Blank: blankAfterTrim},
	model.FieldTypeTextarea:  {Mode: InputModeMultiline, Blank: blankAfterTrim},
	model.FieldTypeNumber:    {Mode: InputModeNumber, Blank: blankAfterTrim},
	model.FieldTypeDate:      {Mode: InputModeDate, Blank: blankAfterTrim},
	model.FieldTypeEmail:     {Mode: InputModeEmail, Blank: blankAfterTrim},
	model.FieldTypePhone:     {Mode: InputModeTel, Blank: blankAfterTrim},
	model.FieldTypeCheckbox:  {Mode: InputModeMulti, Blank: blankAfterTrim},
	model.FieldTypeSelect:    {Mode: InputModeChoice, Blank: blankAfterTrim},
	model.FieldTypeSignature: {Mode: InputModeDrawing, Blank: blankAfterTrim},
}

func init() {
	for _, fieldType := range model.FieldTypes() {
		if _, ok := strategies[fieldType]; !ok {
			panic(fmt.Sprintf("render: no strategy registered for field type %q", fieldType))
		}
	}
}

// StrategyFor returns the strategy for a field type, failing with the model's
// unknown-type error for anything outside the enumeration.
func StrategyFor(t model.FieldType) (Strategy, error) {
	if _, err := model.Describe(t); err != nil {
		return Strategy{}, err
	}
	return strategies[t], nil
}
