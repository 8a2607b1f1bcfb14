package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/vburojevic/faultline/internal/cli"
	"github.com/vburojevic/faultline/internal/config"
)

const quickStart = `faultline - rank log search faults as a share of requests

START HERE:
  faultline logs 10m                    Faults of the last 10 minutes
  faultline logs 1h 0430                One hour starting at 04:30
  faultline rollup fault=call.timeout   Top URLs behind a fault

Other useful commands:
  faultline oneoff --list               One-off URL report presets
  faultline hourly --hours 6            Requests per hour
  faultline config generate             Sample configuration
`

func main() {
	if len(os.Args) == 1 {
		fmt.Print(quickStart)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load config: %v\n", err)
		cfg = config.Default()
	}

	var c cli.CLI

	// Config values become flag defaults; explicit flags still win
	vars := kong.Vars{
		"config_format": cfg.Format,
	}

	kctx := kong.Parse(&c,
		kong.Name("faultline"),
		kong.Description("Query a Loggly-style log search API and rank faults, URLs and hourly totals against the request baseline."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
			Summary: true,
		}),
		vars,
	)

	flagsSet := map[string]bool{}
	for _, p := range kctx.Path {
		if p.Flag != nil {
			flagsSet[p.Flag.Name] = true
		}
	}

	if c.ConfigFile != "" {
		loaded, err := config.LoadFromFile(c.ConfigFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error [CONFIG_INVALID]: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
		if !flagsSet["format"] && cfg.Format != "" {
			c.Format = cfg.Format
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	globals := cli.NewGlobalsWithConfig(&c, cfg)
	globals.Context = ctx
	globals.FlagsSet = flagsSet
	if globals.ConfigFile == "" {
		globals.ConfigFile = config.ConfigFile()
	}

	err = kctx.Run(globals)
	_ = globals.Logger().Sync()
	if err != nil {
		stop()
		os.Exit(1)
	}
}
