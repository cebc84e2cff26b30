// Package model defines the typed form schema consumed by editors, renderers,
// and the submission pipeline. A form is an ordered list of typed fields drawn
// from a closed set of field kinds; each kind declares whether it carries an
// option list, whether placeholders are meaningful, and how its raw value is
// encoded. Field construction always goes through NewField so AI-proposed
// fields and manually edited fields satisfy the same structural invariants.
package model
