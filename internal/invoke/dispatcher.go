// Package invoke 是宿主的命令分发器：命令在启动时按名称注册，
// 以 JSON 参数调用，失败在最外层渲染为单个字符串。
package invoke

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/novelpro/novelkey/internal/errors"
)

// Handler 处理一次命令调用。args 为原始 JSON 对象（可能为空）。
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Param 描述命令的一个字符串参数，供 spec 与 MCP schema 使用。
type Param struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Required    bool   `json:"required" yaml:"required"`
}

// Command 是已注册命令的元数据。
type Command struct {
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []Param `json:"params,omitempty" yaml:"params,omitempty"`
}

type entry struct {
	cmd     Command
	handler Handler
}

type Dispatcher struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  *slog.Logger
}

func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{entries: make(map[string]entry), logger: logger}
}

// Register 注册命令。名称为空或重复注册属于编程错误，直接 panic。
func (d *Dispatcher) Register(cmd Command, h Handler) {
	if cmd.Name == "" {
		panic("invoke: command name is empty")
	}
	if h == nil {
		panic("invoke: nil handler for " + cmd.Name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, dup := d.entries[cmd.Name]; dup {
		panic("invoke: duplicate command " + cmd.Name)
	}
	d.entries[cmd.Name] = entry{cmd: cmd, handler: h}
}

// Commands 返回按名称排序的已注册命令。
func (d *Dispatcher) Commands() []Command {
	d.mu.RLock()
	defer d.mu.RUnlock()
	cmds := make([]Command, 0, len(d.entries))
	for _, e := range d.entries {
		cmds = append(cmds, e.cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
	return cmds
}

// Names 返回按名称排序的命令名。
func (d *Dispatcher) Names() []string {
	cmds := d.Commands()
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	return names
}

// Call 调用命令并返回结构化错误。
func (d *Dispatcher) Call(ctx context.Context, name string, args json.RawMessage) (any, *errors.XError) {
	d.mu.RLock()
	e, ok := d.entries[name]
	d.mu.RUnlock()
	if !ok {
		xe := errors.New(errors.CodeCfgInvalid, "unknown command", map[string]any{"command": name})
		d.logger.Info("invoke", "command", name, "code", xe.Code)
		return nil, xe
	}

	trimmed := bytes.TrimSpace(args)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		trimmed = []byte("{}")
	}

	res, err := e.handler(ctx, json.RawMessage(trimmed))
	if err != nil {
		xe := errors.AsOrWrap(err)
		d.logger.Info("invoke", "command", name, "code", xe.Code)
		return nil, xe
	}
	d.logger.Info("invoke", "command", name, "ok", true)
	return res, nil
}

// Invoke 调用命令，失败时只返回渲染后的错误字符串（宿主边界契约）。
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (any, string) {
	res, xe := d.Call(ctx, name, args)
	if xe != nil {
		return nil, Render(xe)
	}
	return res, ""
}

// Render 把结构化错误渲染为边界上的错误字符串："CODE: message: cause"。
func Render(xe *errors.XError) string {
	return xe.Error()
}

// decodeArgs 解析 JSON 参数对象。
func decodeArgs(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(errors.CodeCfgInvalid, "invalid arguments", nil, err)
	}
	return nil
}
