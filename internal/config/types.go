package config

import "time"

// File 表示 novelkey.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Service string    `yaml:"service"` // keyring service name（命名空间）
	Format  string    `yaml:"format"`
	Workers int       `yaml:"workers"` // 同时进行的平台调用上限
	Timeout string    `yaml:"timeout"` // 单次平台调用超时，如 "10s"
	Debug   bool      `yaml:"debug"`
	MCP     MCPConfig `yaml:"mcp"`
}

type MCPConfig struct {
	Transport string        `yaml:"transport"` // stdio | streamable_http
	HTTP      MCPHTTPConfig `yaml:"http"`
}

type MCPHTTPConfig struct {
	Addr                string `yaml:"addr"`
	AuthToken           string `yaml:"auth_token"` // 支持 keyring:xxx 引用
	AllowPlaintextToken bool   `yaml:"allow_plaintext_token"`
}

type Resolved struct {
	ConfigPath string
	Service    string
	Format     string
	Workers    int
	Timeout    time.Duration
	Debug      bool
	MCP        MCPConfig
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// CLI
	CLIService    string
	CLIServiceSet bool
	CLIFormat     string
	CLIFormatSet  bool
	CLIDebug      bool
	CLIDebugSet   bool

	// ENV（由调用方注入，便于测试）
	EnvService string
	EnvFormat  string
	EnvDebug   string

	// HomeDir 用于默认路径计算（为空则自动探测）。
	HomeDir string
	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string
}
