package spec

import (
	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/invoke"
)

type FlagSpec struct {
	Name        string `json:"name" yaml:"name"`
	Shorthand   string `json:"shorthand,omitempty" yaml:"shorthand,omitempty"`
	Env         string `json:"env,omitempty" yaml:"env,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

type CommandSpec struct {
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Args        []string   `json:"args,omitempty" yaml:"args,omitempty"`
	Flags       []FlagSpec `json:"flags,omitempty" yaml:"flags,omitempty"`
}

// Spec 描述 CLI 命令、可远程调用的 invoke 命令与稳定错误码。
type Spec struct {
	SchemaVersion  int              `json:"schema_version" yaml:"schema_version"`
	Service        string           `json:"service" yaml:"service"`
	Commands       []CommandSpec    `json:"commands" yaml:"commands"`
	InvokeCommands []invoke.Command `json:"invoke_commands" yaml:"invoke_commands"`
	ErrorCodes     []errors.Code    `json:"error_codes" yaml:"error_codes"`
}
