package app

import (
	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/invoke"
	"github.com/novelpro/novelkey/internal/output"
	"github.com/novelpro/novelkey/internal/spec"
)

type App struct {
	Version string
	Commit  string
	Date    string
}

func New(version, commit, date string) App {
	return App{Version: version, Commit: commit, Date: date}
}

// BuildSpec 导出工具描述；invoke 命令直接取自分发器的注册表。
func (a App) BuildSpec(service string, cmds []invoke.Command) spec.Spec {
	globalFlags := []spec.FlagSpec{
		{Name: "config", Default: "", Description: "Config file path (YAML); default: ./novelkey.yaml or $HOME/.config/novelkey/novelkey.yaml"},
		{Name: "service", Env: "NOVELKEY_SERVICE", Default: "NovelPro", Description: "Keyring service name all keys live under"},
		{Name: "format", Shorthand: "f", Env: "NOVELKEY_FORMAT", Default: "auto", Description: "Output format: json|yaml|table|csv|auto"},
		{Name: "debug", Env: "NOVELKEY_DEBUG", Default: "false", Description: "Write diagnostic logs to stderr"},
	}

	return spec.Spec{
		SchemaVersion: output.SchemaVersion,
		Service:       service,
		Commands: []spec.CommandSpec{
			{Name: "spec", Description: "Export tool spec for AI/agents", Flags: globalFlags},
			{Name: "version", Description: "Print version information", Flags: globalFlags},
			{
				Name:        "save",
				Description: "Save a secret to the OS credential store",
				Args:        []string{"key", "[value]"},
				Flags: append(globalFlags,
					spec.FlagSpec{Name: "stdin", Default: "false", Description: "Read the value from stdin"},
				),
			},
			{Name: "get", Description: "Read a secret from the OS credential store", Args: []string{"key"}, Flags: globalFlags},
			{Name: "delete", Description: "Delete a secret from the OS credential store", Args: []string{"key"}, Flags: globalFlags},
			{Name: "invoke", Description: "Call a registered command with JSON arguments", Args: []string{"command", "[json-args]"}, Flags: globalFlags},
			{
				Name:        "mcp server",
				Description: "Start MCP server exposing the invoke commands as tools",
				Flags: append(globalFlags,
					spec.FlagSpec{Name: "transport", Env: "NOVELKEY_MCP_TRANSPORT", Default: "stdio", Description: "MCP transport: stdio|streamable_http"},
					spec.FlagSpec{Name: "http-addr", Env: "NOVELKEY_MCP_HTTP_ADDR", Default: "127.0.0.1:8787", Description: "Streamable HTTP listen address"},
					spec.FlagSpec{Name: "http-auth-token", Env: "NOVELKEY_MCP_HTTP_AUTH_TOKEN", Description: "Streamable HTTP bearer token"},
				),
			},
		},
		InvokeCommands: cmds,
		ErrorCodes:     errors.AllCodes(),
	}
}

type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date}
}
