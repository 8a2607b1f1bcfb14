package domain

import "time"

// ReportKind names the report a command produced
type ReportKind string

const (
	ReportFaults ReportKind = "faults"
	ReportRollup ReportKind = "rollup"
	ReportURLs   ReportKind = "urls"
	ReportHourly ReportKind = "hourly"
)

// Row is one ranked line of a percentage report
type Row struct {
	Rank    int     `json:"rank"`
	Key     string  `json:"key"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// Report is a ranked frequency table normalized against a baseline request count
type Report struct {
	Type          string     `json:"type"`          // Always "report"
	SchemaVersion int        `json:"schemaVersion"` // Schema version for compatibility
	Kind          ReportKind `json:"kind"`
	Query         string     `json:"query"`
	From          string     `json:"from"`
	Until         string     `json:"until"`

	// Baseline is the total request count the percentages are relative to
	Baseline      int     `json:"baseline"`
	Events        int     `json:"events"`
	EventsPercent float64 `json:"eventsPercent"`
	Distinct      int     `json:"distinct"`
	Rows          []Row   `json:"rows"`
}

// NewReport creates an empty report of the given kind
func NewReport(kind ReportKind) *Report {
	return &Report{Type: "report", Kind: kind}
}

// Ranking is a count-descending view of a FrequencyTable without percentages
type Ranking struct {
	Type          string     `json:"type"` // Always "ranking"
	SchemaVersion int        `json:"schemaVersion"`
	Kind          ReportKind `json:"kind"`
	Query         string     `json:"query,omitempty"`
	Events        int        `json:"events"`
	Distinct      int        `json:"distinct"` // distinct keys before truncation
	Limit         int        `json:"limit,omitempty"`
	Entries       []Entry    `json:"entries"`
}

// HourBucket is the request total of one hour
type HourBucket struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Total int       `json:"total"`
}

// HourlyReport lists per-hour totals for a query
type HourlyReport struct {
	Type          string       `json:"type"` // Always "hourly"
	SchemaVersion int          `json:"schemaVersion"`
	Kind          ReportKind   `json:"kind"`
	Query         string       `json:"query"`
	Buckets       []HourBucket `json:"buckets"`
	Total         int          `json:"total"`
}

// ErrorOutput represents a structured error for NDJSON output
type ErrorOutput struct {
	Type          string `json:"type"`           // Always "error"
	SchemaVersion int    `json:"schemaVersion"`  // Schema version for compatibility
	Code          string `json:"code"`           // Machine-readable error code
	Message       string `json:"message"`        // Human-readable message
	Hint          string `json:"hint,omitempty"` // Suggested next step
}

// NewErrorOutput creates a new error output
// Note: SchemaVersion should be set by the caller (report package)
func NewErrorOutput(code, message string) *ErrorOutput {
	return &ErrorOutput{
		Type:    "error",
		Code:    code,
		Message: message,
	}
}
