package output

import (
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/vburojevic/faultline/internal/domain"
	"github.com/vburojevic/faultline/internal/report"
)

// TableWriter renders reports as aligned tables
type TableWriter struct {
	w io.Writer
}

// NewTableWriter creates a new table writer
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{w: w}
}

func (t *TableWriter) render(headers []string, rows [][]string) error {
	table := tablewriter.NewTable(t.w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
	table.Header(headers)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// Notice outputs a progress line
func (t *TableWriter) Notice(n Notice) error {
	_, err := io.WriteString(t.w, n.String()+"\n")
	return err
}

// Report outputs the summary line and a rank/count/percent/key table
func (t *TableWriter) Report(r *domain.Report) error {
	summary := strconv.Itoa(r.Baseline) + " requests, " + strconv.Itoa(r.Events) +
		" events (" + report.FormatPercent(r.EventsPercent) + "%)\n\n"
	if _, err := io.WriteString(t.w, summary); err != nil {
		return err
	}

	rows := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		rows = append(rows, []string{
			strconv.Itoa(row.Rank),
			strconv.Itoa(row.Count),
			report.FormatPercent(row.Percent) + "%",
			row.Key,
		})
	}
	if err := t.render([]string{"Rank", "Count", "Percent", "Key"}, rows); err != nil {
		return err
	}
	if len(r.Rows) < r.Distinct {
		_, err := io.WriteString(t.w, "\n"+strconv.Itoa(r.Distinct)+" distinct keys\n")
		return err
	}
	return nil
}

// Ranking outputs a rank/count/key table and the distinct key count
func (t *TableWriter) Ranking(r *domain.Ranking) error {
	rows := make([][]string, 0, len(r.Entries))
	for i, e := range r.Entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), strconv.Itoa(e.Count), e.Key})
	}
	if err := t.render([]string{"Rank", "Count", "Key"}, rows); err != nil {
		return err
	}
	_, err := io.WriteString(t.w, "\n"+strconv.Itoa(r.Distinct)+" unique keys, "+strconv.Itoa(r.Events)+" events\n")
	return err
}

// Hourly outputs a start/end/events table
func (t *TableWriter) Hourly(h *domain.HourlyReport) error {
	rows := make([][]string, 0, len(h.Buckets)+1)
	for _, b := range h.Buckets {
		rows = append(rows, []string{b.Start.Format(HourLayout), b.End.Format(HourLayout), strconv.Itoa(b.Total)})
	}
	rows = append(rows, []string{"total", "", strconv.Itoa(h.Total)})
	return t.render([]string{"Start", "End", "Events"}, rows)
}

// FileCreated reports a written file
func (t *TableWriter) FileCreated(path string, _ int) error {
	_, err := io.WriteString(t.w, path+" created.\n")
	return err
}

// Error outputs an error line
func (t *TableWriter) Error(code, message, hint string) error {
	line := "Error [" + code + "]: " + message + "\n"
	if hint != "" {
		line += "Hint: " + hint + "\n"
	}
	_, err := io.WriteString(t.w, line)
	return err
}
