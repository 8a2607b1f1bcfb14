package output

import (
	"fmt"
	"io"

	"github.com/vburojevic/faultline/internal/domain"
)

// Formats accepted by NewSink
const (
	FormatText   = "text"
	FormatTable  = "table"
	FormatNDJSON = "ndjson"
)

// Notice announces a query before its pages are fetched
type Notice struct {
	Query string
	From  string
	Until string
}

func (n Notice) String() string {
	return fmt.Sprintf("Gathering `%s` events from &from=%s&until=%s...", n.Query, n.From, n.Until)
}

// Sink renders report results in one output format
type Sink interface {
	Notice(n Notice) error
	Report(r *domain.Report) error
	Ranking(r *domain.Ranking) error
	Hourly(h *domain.HourlyReport) error
	FileCreated(path string, rows int) error
	Error(code, message, hint string) error
}

// NewSink returns the sink for format. styled enables lipgloss styling of
// text output and is ignored by the other formats.
func NewSink(format string, w io.Writer, styled bool) (Sink, error) {
	switch format {
	case "", FormatText:
		return NewTextWriter(w, styled), nil
	case FormatTable:
		return NewTableWriter(w), nil
	case FormatNDJSON:
		return NewNDJSONWriter(w), nil
	default:
		return nil, fmt.Errorf("unknown format %q (use text, table or ndjson)", format)
	}
}
