package cli

import (
	"context"
	"strings"

	"github.com/vburojevic/faultline/internal/engine"
)

// LogsCmd reports fault counts of the main query as a share of all requests
type LogsCmd struct {
	Time      string   `arg:"" optional:"" help:"Window length, counted back from now or forward from FROM (10m, 2h, 1d)"`
	From      []string `arg:"" optional:"" help:"Start of the window: 0430, '2017-10-26 04:30', 'yesterday at 4pm'"`
	Query     string   `short:"Q" help:"Override the configured query"`
	Extractor string   `short:"x" default:"fault" enum:"fault,url,req_url,rollup" help:"Field to count events by"`
	Top       int      `short:"n" help:"Show only the N most frequent keys (0 = all)"`
	Normalize bool     `help:"Collapse ids, hex strings and numbers in keys before counting"`

	FilterFlags `embed:""`
}

// Run executes the logs command
func (c *LogsCmd) Run(globals *Globals) error {
	f, err := c.FilterFlags.build()
	if err != nil {
		return emitError(globals, err)
	}

	return globals.runReport("logs", func(ctx context.Context, e *engine.Engine) error {
		_, err := e.Logs(ctx, engine.LogsRequest{
			Time:      c.Time,
			From:      strings.Join(c.From, " "),
			Query:     c.Query,
			Extractor: c.Extractor,
			Top:       c.Top,
			Normalize: c.Normalize,
			Filter:    f,
		})
		return err
	})
}
