package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/invoke"
	"github.com/novelpro/novelkey/internal/output"
)

// NewInvokeCommand creates the invoke command
func NewInvokeCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <command> [json-args]",
		Short: "Call a registered command (save_key, get_key, delete_key) with JSON arguments",
		Example: `  novelkey invoke save_key '{"key":"api_token","value":"abc123"}'
  novelkey invoke get_key '{"key":"api_token"}'`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			d, xe := newDispatcher(cmd.ErrOrStderr())
			if xe != nil {
				return xe
			}
			var raw json.RawMessage
			if len(args) == 2 {
				raw = json.RawMessage(args[1])
			}
			res, xe := d.Call(cmd.Context(), args[0], raw)
			if xe != nil {
				// 错误信封中的 message 即宿主边界上的错误字符串
				return errors.New(xe.Code, invoke.Render(xe), xe.Details)
			}
			return w.WriteOK(format, res)
		},
	}
}
