package output

import "strings"

type Format string

const (
	FormatAuto  Format = "auto"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
)

// Formats 返回所有受支持的格式。
func Formats() []Format {
	return []Format{FormatAuto, FormatJSON, FormatYAML, FormatTable, FormatCSV}
}

// FormatsHelp 返回 "auto|json|..." 形式的格式列表，用于 flag 帮助文本。
func FormatsHelp() string {
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

func IsValid(f Format) bool {
	for _, known := range Formats() {
		if f == known {
			return true
		}
	}
	return false
}
