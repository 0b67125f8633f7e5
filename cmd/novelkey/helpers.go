package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/invoke"
	"github.com/novelpro/novelkey/internal/log"
	"github.com/novelpro/novelkey/internal/output"
	"github.com/novelpro/novelkey/internal/secret"
)

// parseOutputFormat parses and validates the output format string
func parseOutputFormat(s string) (output.Format, error) {
	f := output.Format(s)
	if !output.IsValid(f) {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": s})
	}
	return resolveAuto(f), nil
}

// resolveFormatForError resolves the format for error output
func resolveFormatForError(s string) output.Format {
	f := output.Format(s)
	if !output.IsValid(f) {
		f = output.FormatAuto
	}
	return resolveAuto(f)
}

// resolveAuto resolves "auto" format to appropriate format based on TTY
func resolveAuto(f output.Format) output.Format {
	if f != output.FormatAuto {
		return f
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return output.FormatTable
	}
	return output.FormatJSON
}

// normalizeErr normalizes any error to XError
func normalizeErr(err error) *errors.XError {
	if xe, ok := errors.As(err); ok {
		return xe
	}
	// cobra 参数校验等错误视为用法错误
	return errors.Wrap(errors.CodeCfgInvalid, err.Error(), nil, err)
}

// newStore builds the secret store from the resolved configuration
func newStore(stderr io.Writer) (*secret.Store, *errors.XError) {
	r := GlobalConfig.Resolved
	return secret.NewStore(r.Service, secret.StoreOptions{
		Workers: r.Workers,
		Timeout: r.Timeout,
		Logger:  log.Diagnostic(stderr, r.Debug),
	})
}

// newDispatcher builds the dispatcher with the secret commands registered
func newDispatcher(stderr io.Writer) (*invoke.Dispatcher, *errors.XError) {
	st, xe := newStore(stderr)
	if xe != nil {
		return nil, xe
	}
	d := invoke.NewDispatcher(log.Diagnostic(stderr, GlobalConfig.Resolved.Debug))
	invoke.RegisterSecretCommands(d, st)
	return d, nil
}

// stderrOf returns the command's error stream
func stderrOf(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stderr
	}
	return cmd.ErrOrStderr()
}
