package cli

import (
	"context"

	"github.com/vburojevic/faultline/internal/engine"
)

// RollupCmd ranks the URLs of faulted events matching a filter term
type RollupCmd struct {
	Filter    string `arg:"" help:"Term placed into the rollup query, e.g. fault=call.timeout"`
	Time      string `arg:"" optional:"" help:"Window length (10m, 2h, 1d)"`
	From      string `help:"Start of the window: 0430, '2017-10-26 04:30', 'yesterday at 4pm'"`
	Top       int    `short:"n" help:"Number of URLs to show (default: reports.rollup_top)"`
	Normalize bool   `help:"Collapse ids, hex strings and numbers in URLs before counting"`

	FilterFlags `embed:""`
}

// Run executes the rollup command
func (c *RollupCmd) Run(globals *Globals) error {
	f, err := c.FilterFlags.build()
	if err != nil {
		return emitError(globals, err)
	}

	return globals.runReport("rollup "+c.Filter, func(ctx context.Context, e *engine.Engine) error {
		_, err := e.Rollup(ctx, engine.RollupRequest{
			Filter:    c.Filter,
			Time:      c.Time,
			From:      c.From,
			Top:       c.Top,
			Normalize: c.Normalize,
			Events:    f,
		})
		return err
	})
}
