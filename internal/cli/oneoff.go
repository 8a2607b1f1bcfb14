package cli

import (
	"context"
	"fmt"

	"github.com/vburojevic/faultline/internal/config"
	"github.com/vburojevic/faultline/internal/engine"
	"github.com/vburojevic/faultline/internal/output"
)

// OneoffCmd counts the URLs of a preset query and writes them to a CSV file
type OneoffCmd struct {
	Preset    string `arg:"" optional:"" default:"oneoff" help:"Preset from reports.presets (oneoff, oneoff-endeca, ...)"`
	Time      string `short:"t" help:"Override the preset window length"`
	From      string `help:"Start of the window"`
	Query     string `short:"Q" help:"Override the preset query"`
	Extractor string `short:"x" help:"Override the preset extractor (fault, url, req_url, rollup)"`
	Out       string `short:"o" help:"CSV path ('-' to skip the file)"`
	Normalize bool   `help:"Collapse ids, hex strings and numbers in URLs before counting"`
	List      bool   `help:"List presets and exit"`

	FilterFlags `embed:""`
}

// Run executes the oneoff command
func (c *OneoffCmd) Run(globals *Globals) error {
	if c.List {
		return c.listPresets(globals)
	}

	f, err := c.FilterFlags.build()
	if err != nil {
		return emitError(globals, err)
	}

	return globals.runReport("oneoff "+c.Preset, func(ctx context.Context, e *engine.Engine) error {
		_, err := e.URLs(ctx, engine.URLsRequest{
			Preset:    c.Preset,
			Query:     c.Query,
			Time:      c.Time,
			From:      c.From,
			Extractor: c.Extractor,
			Output:    c.Out,
			Normalize: c.Normalize,
			Filter:    f,
		})
		return err
	})
}

type presetOutput struct {
	Type          string `json:"type"`
	SchemaVersion int    `json:"schemaVersion"`
	Name          string `json:"name"`
	config.Preset
}

func (c *OneoffCmd) listPresets(globals *Globals) error {
	cfg := globals.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if globals.Format == output.FormatNDJSON {
		w := output.NewNDJSONWriter(globals.Stdout)
		for _, name := range cfg.PresetNames() {
			p, _ := cfg.Preset(name)
			if err := w.WriteRaw(presetOutput{Type: "preset", SchemaVersion: output.SchemaVersion, Name: name, Preset: p}); err != nil {
				return err
			}
		}
		return nil
	}

	for _, name := range cfg.PresetNames() {
		p, _ := cfg.Preset(name)
		fmt.Fprintf(globals.Stdout, "%-16s %-6s %-8s %s\n", name, p.Time, p.Extractor, p.Output)
		fmt.Fprintf(globals.Stdout, "%-16s %s\n", "", p.Query)
	}
	return nil
}
