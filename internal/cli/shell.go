package cli

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/vburojevic/faultline/internal/dispatch"
)

// ShellCmd reads chat-style commands line by line and runs each one
type ShellCmd struct {
	File     string `short:"i" type:"existingfile" help:"Read commands from a file instead of stdin"`
	Commands bool   `help:"List the accepted commands and exit"`
}

// Run executes the shell command
func (c *ShellCmd) Run(globals *Globals) error {
	sink, err := globals.sink(globals.Stdout)
	if err != nil {
		return emitError(globals, err)
	}
	e, err := globals.newEngine(sink)
	if err != nil {
		return emitError(globals, err)
	}
	router := dispatch.NewCommandRouter(e)

	if c.Commands {
		for _, rt := range router.Routes() {
			fmt.Fprintln(globals.Stdout, rt.Help)
		}
		return nil
	}

	var in io.Reader = globals.Stdin
	if c.File != "" {
		f, err := os.Open(c.File)
		if err != nil {
			return emitError(globals, err)
		}
		defer f.Close()
		in = f
	}

	log := globals.Logger()
	err = router.Serve(globals.ctx(), in, func(line string, err error) {
		log.Debug("command failed", zap.String("line", line), zap.Error(err))
		_ = emitError(globals, err)
	})
	if err != nil && globals.ctx().Err() == nil {
		return emitError(globals, err)
	}
	return nil
}
