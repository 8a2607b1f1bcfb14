package cli

import (
	"errors"

	"github.com/vburojevic/faultline/internal/output"
)

// emitError writes err in the current format so scripted callers always get
// a machine-readable failure, and returns it as a *CLIError.
func emitError(globals *Globals, err error) error {
	var ce *CLIError
	if !errors.As(err, &ce) {
		code, hint := codeForError(err)
		ce = &CLIError{Code: code, Message: err.Error(), Hint: hint, Err: err}
	}

	if globals == nil {
		return ce
	}
	if globals.Format == output.FormatNDJSON {
		_ = output.NewNDJSONWriter(globals.Stdout).Error(ce.Code, ce.Message, ce.Hint)
	} else {
		styled := !globals.NoColor && isTerminal(globals.Stderr)
		_ = output.NewTextWriter(globals.Stderr, styled).Error(ce.Code, ce.Message, ce.Hint)
	}
	return ce
}

// emitWarning respects format/quiet.
func emitWarning(globals *Globals, msg string) {
	if globals.Quiet {
		return
	}
	if globals.Format == output.FormatNDJSON {
		_ = output.NewNDJSONWriter(globals.Stdout).Warning(msg)
		return
	}
	_, _ = globals.Stderr.Write([]byte("Warning: " + msg + "\n"))
}
