package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/output"
)

// SaveFlags holds the flags for the save command
type SaveFlags struct {
	Stdin bool
}

// NewSaveCommand creates the save command
func NewSaveCommand(w *output.Writer) *cobra.Command {
	flags := &SaveFlags{}
	cmd := &cobra.Command{
		Use:   "save <key> [value]",
		Short: "Save a secret to the OS credential store",
		Long: "Save a secret under <key>, replacing any existing value.\n" +
			"The value is taken from the argument, from stdin with --stdin, or prompted for without echo.",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args, flags, w)
		},
	}
	cmd.Flags().BoolVar(&flags.Stdin, "stdin", false, "Read the value from stdin")
	return cmd
}

func runSave(cmd *cobra.Command, args []string, flags *SaveFlags, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}
	key := args[0]

	var value string
	switch {
	case len(args) == 2 && flags.Stdin:
		return errors.New(errors.CodeCfgInvalid, "value argument and --stdin are mutually exclusive", nil)
	case len(args) == 2:
		value = args[1]
	case flags.Stdin:
		v, xe := readValue(cmd.InOrStdin())
		if xe != nil {
			return xe
		}
		value = v
	default:
		v, xe := promptValue(cmd.InOrStdin(), cmd.ErrOrStderr(), key)
		if xe != nil {
			return xe
		}
		value = v
	}

	st, xe := newStore(cmd.ErrOrStderr())
	if xe != nil {
		return xe
	}
	if err := st.Set(cmd.Context(), key, value); err != nil {
		return err
	}
	return w.WriteOK(format, map[string]any{
		"key":     key,
		"service": st.Service(),
		"saved":   true,
	})
}

// NewGetCommand creates the get command
func NewGetCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Read a secret from the OS credential store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			st, xe := newStore(cmd.ErrOrStderr())
			if xe != nil {
				return xe
			}
			value, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return w.WriteOK(format, map[string]any{
				"key":     args[0],
				"service": st.Service(),
				"value":   value,
			})
		},
	}
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Delete a secret from the OS credential store",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			st, xe := newStore(cmd.ErrOrStderr())
			if xe != nil {
				return xe
			}
			if err := st.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			return w.WriteOK(format, map[string]any{
				"key":     args[0],
				"service": st.Service(),
				"deleted": true,
			})
		},
	}
}

// readValue reads the whole of r, dropping one trailing line ending.
func readValue(r io.Reader) (string, *errors.XError) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(errors.CodeCfgInvalid, "failed to read value from stdin", nil, err)
	}
	s := string(b)
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, nil
}

// promptValue asks for the value on a terminal without echo; a non-terminal
// stdin is read as a single line.
func promptValue(in io.Reader, prompt io.Writer, key string) (string, *errors.XError) {
	f, ok := in.(*os.File)
	if ok && term.IsTerminal(int(f.Fd())) {
		_, _ = fmt.Fprintf(prompt, "Value for %s: ", key)
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(prompt)
		if err != nil {
			return "", errors.Wrap(errors.CodeCfgInvalid, "failed to read value", nil, err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(errors.CodeCfgInvalid, "failed to read value", nil, err)
	}
	if err == io.EOF && line == "" {
		return "", errors.New(errors.CodeCfgInvalid, "value is required: pass it as an argument, use --stdin, or run in a terminal", nil)
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}
