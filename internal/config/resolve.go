package config

import (
	"strconv"
	"time"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/secret"
)

// Resolve 读取配置文件并合并 service/format/debug：CLI > ENV > Config > 默认值。
func Resolve(opts Options) (Resolved, *errors.XError) {
	cfg, cfgPath, xe := LoadConfig(opts)
	if xe != nil {
		return Resolved{}, xe
	}

	// service：--service > NOVELKEY_SERVICE > service > NovelPro
	service := secret.DefaultService
	if cfg.Service != "" {
		service = cfg.Service
	}
	if opts.EnvService != "" {
		service = opts.EnvService
	}
	if opts.CLIServiceSet {
		service = opts.CLIService
	}
	if service == "" {
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "service name is empty", nil)
	}

	// format：--format > NOVELKEY_FORMAT > format > auto
	format := "auto"
	if cfg.Format != "" {
		format = cfg.Format
	}
	if opts.EnvFormat != "" {
		format = opts.EnvFormat
	}
	if opts.CLIFormatSet {
		format = opts.CLIFormat
	}

	debug := cfg.Debug
	if opts.EnvDebug != "" {
		v, err := strconv.ParseBool(opts.EnvDebug)
		if err != nil {
			return Resolved{}, errors.Wrap(errors.CodeCfgInvalid, "invalid NOVELKEY_DEBUG value", map[string]any{"value": opts.EnvDebug}, err)
		}
		debug = v
	}
	if opts.CLIDebugSet {
		debug = opts.CLIDebug
	}

	if cfg.Workers < 0 {
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "workers must not be negative", map[string]any{"path": cfgPath, "workers": cfg.Workers})
	}

	var timeout time.Duration
	if cfg.Timeout != "" {
		d, err := time.ParseDuration(cfg.Timeout)
		if err != nil {
			return Resolved{}, errors.Wrap(errors.CodeCfgInvalid, "invalid timeout", map[string]any{"path": cfgPath, "timeout": cfg.Timeout}, err)
		}
		if d < 0 {
			return Resolved{}, errors.New(errors.CodeCfgInvalid, "timeout must not be negative", map[string]any{"path": cfgPath, "timeout": cfg.Timeout})
		}
		timeout = d
	}

	return Resolved{
		ConfigPath: cfgPath,
		Service:    service,
		Format:     format,
		Workers:    cfg.Workers,
		Timeout:    timeout,
		Debug:      debug,
		MCP:        cfg.MCP,
	}, nil
}
