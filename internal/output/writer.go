package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/novelpro/novelkey/internal/errors"
)

type Writer struct {
	Out io.Writer
	Err io.Writer
}

func New(out, err io.Writer) Writer {
	return Writer{Out: out, Err: err}
}

func (w Writer) WriteOK(format Format, data any) error {
	return w.write(format, OKEnvelope(data))
}

func (w Writer) WriteError(format Format, xe *errors.XError) error {
	return w.write(format, ErrorEnvelope(xe))
}

func (w Writer) write(format Format, env Envelope) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w.Out)
		enc.SetEscapeHTML(false)
		return enc.Encode(env)
	case FormatYAML:
		b, err := yaml.Marshal(env)
		if err != nil {
			return err
		}
		_, err = w.Out.Write(b)
		if err != nil {
			return err
		}
		if len(b) == 0 || b[len(b)-1] != '\n' {
			_, _ = w.Out.Write([]byte("\n"))
		}
		return nil
	case FormatTable:
		return writeTable(w.Out, env)
	case FormatCSV:
		return writeCSV(w.Out, env)
	default:
		return errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": string(format)})
	}
}

// dataRows 将 data 展开为 (字段, 值) 行：map 按键排序逐行输出，其他类型整体 JSON 化。
func dataRows(data any) [][2]string {
	if data == nil {
		return nil
	}
	if m, ok := data.(map[string]any); ok {
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rows := make([][2]string, 0, len(keys))
		for _, k := range keys {
			rows = append(rows, [2]string{"data." + k, scalar(m[k])})
		}
		return rows
	}
	return [][2]string{{"data", scalar(data)}}
}

func scalar(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case nil:
		return ""
	default:
		b, _ := json.MarshalIndent(x, "", "  ")
		return strings.ReplaceAll(string(b), "\n", " ")
	}
}

func writeTable(out io.Writer, env Envelope) error {
	tw := tabwriter.NewWriter(out, 0, 2, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ok\t%v\n", env.OK)
	_, _ = fmt.Fprintf(tw, "schema_version\t%d\n", env.SchemaVersion)
	if env.OK {
		for _, r := range dataRows(env.Data) {
			_, _ = fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
		}
	} else if env.Error != nil {
		_, _ = fmt.Fprintf(tw, "error.code\t%s\n", env.Error.Code)
		_, _ = fmt.Fprintf(tw, "error.message\t%s\n", env.Error.Message)
		if env.Error.Cause != "" {
			_, _ = fmt.Fprintf(tw, "error.cause\t%s\n", env.Error.Cause)
		}
	}
	return tw.Flush()
}

func writeCSV(out io.Writer, env Envelope) error {
	cw := csv.NewWriter(out)

	_ = cw.Write([]string{"ok", fmt.Sprintf("%v", env.OK)})
	_ = cw.Write([]string{"schema_version", fmt.Sprintf("%d", env.SchemaVersion)})
	if env.OK {
		for _, r := range dataRows(env.Data) {
			_ = cw.Write([]string{r[0], r[1]})
		}
	} else if env.Error != nil {
		_ = cw.Write([]string{"error.code", string(env.Error.Code)})
		_ = cw.Write([]string{"error.message", env.Error.Message})
		if env.Error.Cause != "" {
			_ = cw.Write([]string{"error.cause", env.Error.Cause})
		}
	}
	cw.Flush()
	return cw.Error()
}
