package cli

import (
	"bytes"
	"context"

	"github.com/vburojevic/faultline/internal/engine"
	"github.com/vburojevic/faultline/internal/output"
	"github.com/vburojevic/faultline/internal/tui"
)

func (g *Globals) ctx() context.Context {
	if g.Context != nil {
		return g.Context
	}
	return context.Background()
}

// runReport builds an engine over the configured sink and runs fn. Text
// reports go through the pager when --pager is set and stdout is a terminal.
func (g *Globals) runReport(title string, fn func(ctx context.Context, e *engine.Engine) error) error {
	paged := g.Pager && g.Format == output.FormatText && isTerminal(g.Stdout)
	g.Debug("running %s report (format=%s, paged=%t)", title, g.Format, paged)

	var buf bytes.Buffer
	w := g.Stdout
	if paged {
		w = &buf
	}

	sink, err := g.sink(w)
	if err != nil {
		return emitError(g, err)
	}
	e, err := g.newEngine(sink)
	if err != nil {
		return emitError(g, err)
	}

	if err := fn(g.ctx(), e); err != nil {
		if paged {
			_, _ = g.Stdout.Write(buf.Bytes())
		}
		return emitError(g, err)
	}

	if paged {
		if err := tui.Run(title, buf.String(), g.Stdin, g.Stdout); err != nil {
			return emitError(g, &CLIError{Code: CodeOutputFailed, Message: "pager: " + err.Error(), Err: err})
		}
	}
	return nil
}
