package log

import (
	"io"
	"log/slog"
)

// New 返回写入到 w 的 slog.Logger（默认 level=INFO）。
// 注意：stdout=数据，日志应始终写 stderr（由调用方传入）。
func New(w io.Writer) *slog.Logger {
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})
	return slog.New(h)
}

// Discard 返回丢弃所有记录的 logger。
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Diagnostic 返回诊断 logger：debug 构建（-tags debug）或显式开启时写入 w，否则丢弃。
func Diagnostic(w io.Writer, enabled bool) *slog.Logger {
	if DebugBuild || enabled {
		return New(w)
	}
	return Discard()
}
