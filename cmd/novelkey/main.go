package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/novelpro/novelkey/internal/app"
	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/output"
)

func main() {
	exit := run()
	os.Exit(exit)
}

// run is the main entry point
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

// execute builds the command tree and runs it against the given streams
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := app.New(version, commit, date)
	w := output.New(stdout, stderr)

	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(NewSpecCommand(&a, &w))
	root.AddCommand(NewVersionCommand(&a, &w))
	root.AddCommand(NewSaveCommand(&w))
	root.AddCommand(NewGetCommand(&w))
	root.AddCommand(NewDeleteCommand(&w))
	root.AddCommand(NewInvokeCommand(&w))
	root.AddCommand(NewMCPCommand())

	if err := root.ExecuteContext(ctx); err != nil {
		xe := normalizeErr(err)
		format := resolveFormatForError(GlobalConfig.FormatStr)
		_ = w.WriteError(format, xe)
		return int(errors.ExitCodeFor(xe.Code))
	}
	return int(errors.ExitOK)
}
