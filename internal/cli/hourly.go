package cli

import (
	"context"

	"github.com/vburojevic/faultline/internal/engine"
)

// HourlyCmd counts a query per hour
type HourlyCmd struct {
	Hours int    `short:"H" default:"1" help:"Number of one-hour buckets"`
	Query string `short:"Q" help:"Override reports.hourly_query"`
	From  string `help:"Start of the first bucket (default: HOURS hours ago)"`
}

// Run executes the hourly command
func (c *HourlyCmd) Run(globals *Globals) error {
	if c.Hours < 1 {
		emitWarning(globals, "--hours below 1 counts a single hour")
	}
	return globals.runReport("hourly", func(ctx context.Context, e *engine.Engine) error {
		_, err := e.Hourly(ctx, engine.HourlyRequest{Hours: c.Hours, Query: c.Query, From: c.From})
		return err
	})
}
