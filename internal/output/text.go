package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/report"
)

// HourLayout formats hour bucket starts in text output
const HourLayout = "2006-01-02 15:04"

// TextWriter writes reports as plain or styled text
type TextWriter struct {
	w      io.Writer
	styled bool
}

// NewTextWriter creates a new text writer
func NewTextWriter(w io.Writer, styled bool) *TextWriter {
	return &TextWriter{w: w, styled: styled}
}

func (w *TextWriter) write(s string) error {
	_, err := io.WriteString(w.w, s)
	return err
}

// Notice outputs a progress line
func (w *TextWriter) Notice(n Notice) error {
	return w.write(painter(w.styled).paint(Styles.Notice, n.String()) + "\n")
}

// Report outputs a percentage report
func (w *TextWriter) Report(r *domain.Report) error {
	return w.write(RenderReport(r, w.styled))
}

// Ranking outputs a rollup or URL count summary
func (w *TextWriter) Ranking(r *domain.Ranking) error {
	return w.write(RenderRanking(r, w.styled))
}

// Hourly outputs per-hour totals and, for more than one hour, a chart
func (w *TextWriter) Hourly(h *domain.HourlyReport) error {
	return w.write(RenderHourly(h, w.styled))
}

// FileCreated reports a written file
func (w *TextWriter) FileCreated(path string, _ int) error {
	return w.write(path + " created.\n")
}

// Error outputs a styled error
func (w *TextWriter) Error(code, message, hint string) error {
	p := painter(w.styled)
	line := p.paint(Styles.Danger, "Error") + " " + p.paint(Styles.Warning, "["+code+"]") + ": " + message + "\n"
	if hint != "" {
		line += p.paint(Styles.Label, "Hint: ") + hint + "\n"
	}
	return w.write(line)
}

// RenderReport formats the summary header followed by one line per key:
//
//	53137 requests
//	58 events (0.109%)
//
//	Counted 20 (0.038%): call.timeout
//
// A truncated report ends with the number of distinct keys.
func RenderReport(r *domain.Report, styled bool) string {
	p := painter(styled)
	var b strings.Builder

	b.WriteString(p.paint(Styles.Header, strconv.Itoa(r.Baseline)+" requests") + "\n")
	fmt.Fprintf(&b, "%s events (%s%%)\n\n",
		p.paint(Styles.Count, strconv.Itoa(r.Events)),
		p.paint(PercentStyle(r.EventsPercent), report.FormatPercent(r.EventsPercent)))

	for _, row := range r.Rows {
		fmt.Fprintf(&b, "Counted %s (%s%%): %s\n",
			p.paint(Styles.Count, strconv.Itoa(row.Count)),
			p.paint(PercentStyle(row.Percent), report.FormatPercent(row.Percent)),
			p.paint(Styles.Key, row.Key))
	}
	if len(r.Rows) < r.Distinct {
		fmt.Fprintf(&b, "\n%s distinct keys\n", p.paint(Styles.Count, strconv.Itoa(r.Distinct)))
	}
	return b.String()
}

// RenderRanking formats a rollup as the top URLs and the number of distinct
// URLs. URL rankings written to a file only get their totals.
func RenderRanking(r *domain.Ranking, styled bool) string {
	p := painter(styled)
	var b strings.Builder

	if r.Kind == domain.ReportURLs {
		fmt.Fprintf(&b, "%s events\n", p.paint(Styles.Count, strconv.Itoa(r.Events)))
		fmt.Fprintf(&b, "%s unique URLs\n", p.paint(Styles.Count, strconv.Itoa(r.Distinct)))
		return b.String()
	}

	limit := r.Limit
	if limit <= 0 {
		limit = len(r.Entries)
	}
	b.WriteString(p.paint(Styles.Header, fmt.Sprintf("Top %d URLs by incidence count:", limit)) + "\n\n")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "Counted %s: %s\n", p.paint(Styles.Count, strconv.Itoa(e.Count)), p.paint(Styles.Key, e.Key))
	}
	fmt.Fprintf(&b, "\n%d unique URLs with errors.\n", r.Distinct)
	return b.String()
}

// RenderHourly formats one line per hour, the total and a chart of the totals
func RenderHourly(h *domain.HourlyReport, styled bool) string {
	p := painter(styled)
	var b strings.Builder

	if len(h.Buckets) > 1 {
		for _, bucket := range h.Buckets {
			fmt.Fprintf(&b, "%s  %s Events\n",
				p.paint(Styles.Label, bucket.Start.Format(HourLayout)),
				p.paint(Styles.Count, strconv.Itoa(bucket.Total)))
		}
		b.WriteString("\n")
	}
	b.WriteString(p.paint(Styles.Header, strconv.Itoa(h.Total)+" Events") + "\n")

	if chart := HourlyChart(h, 60, 10); chart != "" {
		b.WriteString("\n" + chart + "\n")
	}
	return b.String()
}
