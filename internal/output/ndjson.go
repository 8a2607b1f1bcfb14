package output

import (
	"encoding/json"
	"io"

	"github.com/vburojevic/faultline/internal/domain"
)

// NDJSONWriter writes reports as NDJSON
type NDJSONWriter struct {
	w       io.Writer
	encoder *json.Encoder
}

// NewNDJSONWriter creates a new NDJSON writer
func NewNDJSONWriter(w io.Writer) *NDJSONWriter {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false) // URLs and queries stay readable
	return &NDJSONWriter{
		w:       w,
		encoder: enc,
	}
}

// InfoOutput represents an informational message
type InfoOutput struct {
	Type          string `json:"type"` // Always "info"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
	Query         string `json:"query,omitempty"`
	From          string `json:"from,omitempty"`
	Until         string `json:"until,omitempty"`
}

// WarningOutput represents a warning message
type WarningOutput struct {
	Type          string `json:"type"` // Always "warning"
	SchemaVersion int    `json:"schemaVersion"`
	Message       string `json:"message"`
}

// FileOutput reports a file written by a report
type FileOutput struct {
	Type          string `json:"type"` // Always "file"
	SchemaVersion int    `json:"schemaVersion"`
	Path          string `json:"path"`
	Rows          int    `json:"rows"`
}

// MetadataOutput describes the tool build
type MetadataOutput struct {
	Type          string `json:"type"` // Always "metadata"
	SchemaVersion int    `json:"schemaVersion"`
	Version       string `json:"version"`
	Commit        string `json:"commit"`
	BuildDate     string `json:"build_date,omitempty"`
}

// Notice outputs a progress message
func (w *NDJSONWriter) Notice(n Notice) error {
	return w.encoder.Encode(&InfoOutput{
		Type:          "info",
		SchemaVersion: SchemaVersion,
		Message:       n.String(),
		Query:         n.Query,
		From:          n.From,
		Until:         n.Until,
	})
}

// Report outputs a percentage report
func (w *NDJSONWriter) Report(r *domain.Report) error {
	r.SchemaVersion = SchemaVersion
	return w.encoder.Encode(r)
}

// Ranking outputs a ranked count list
func (w *NDJSONWriter) Ranking(r *domain.Ranking) error {
	r.SchemaVersion = SchemaVersion
	return w.encoder.Encode(r)
}

// Hourly outputs per-hour totals
func (w *NDJSONWriter) Hourly(h *domain.HourlyReport) error {
	h.SchemaVersion = SchemaVersion
	return w.encoder.Encode(h)
}

// FileCreated reports a written file
func (w *NDJSONWriter) FileCreated(path string, rows int) error {
	return w.encoder.Encode(&FileOutput{
		Type:          "file",
		SchemaVersion: SchemaVersion,
		Path:          path,
		Rows:          rows,
	})
}

// Error outputs an error
func (w *NDJSONWriter) Error(code, message, hint string) error {
	err := domain.NewErrorOutput(code, message)
	err.Hint = hint
	err.SchemaVersion = SchemaVersion
	return w.encoder.Encode(err)
}

// Warning outputs a warning message
func (w *NDJSONWriter) Warning(message string) error {
	return w.encoder.Encode(&WarningOutput{
		Type:          "warning",
		SchemaVersion: SchemaVersion,
		Message:       message,
	})
}

// Metadata outputs build metadata
func (w *NDJSONWriter) Metadata(version, commit, buildDate string) error {
	return w.encoder.Encode(&MetadataOutput{
		Type:          "metadata",
		SchemaVersion: SchemaVersion,
		Version:       version,
		Commit:        commit,
		BuildDate:     buildDate,
	})
}

// WriteRaw outputs any value as one JSON line
func (w *NDJSONWriter) WriteRaw(v any) error {
	return w.encoder.Encode(v)
}
