// Package render defines the renderer contract shared by every output surface
// (HTML, terminal, document) plus the respondent-input validation that runs
// before a submission may leave the client. Per-type behaviour is a closed
// strategy table over model.FieldType; the table is checked for exhaustiveness
// at init so a new field kind cannot ship without a strategy.
package render
