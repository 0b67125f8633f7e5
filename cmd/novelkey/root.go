package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/novelpro/novelkey/internal/config"
	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/output"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr  string
	ConfigStr  string
	ServiceStr string
	Debug      bool
	Resolved   config.Resolved
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "novelkey",
		Short:         "Store and retrieve secrets in the OS credential store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI > ENV > Config
			configSet := cmd.Flags().Changed("config")
			if configSet && GlobalConfig.ConfigStr == "" {
				return errors.New(errors.CodeCfgInvalid, "config path is empty", nil)
			}

			r, xe := config.Resolve(config.Options{
				ConfigPath:    GlobalConfig.ConfigStr,
				CLIService:    GlobalConfig.ServiceStr,
				CLIServiceSet: cmd.Flags().Changed("service"),
				CLIFormat:     GlobalConfig.FormatStr,
				CLIFormatSet:  cmd.Flags().Changed("format"),
				CLIDebug:      GlobalConfig.Debug,
				CLIDebugSet:   cmd.Flags().Changed("debug"),
				EnvService:    os.Getenv("NOVELKEY_SERVICE"),
				EnvFormat:     os.Getenv("NOVELKEY_FORMAT"),
				EnvDebug:      os.Getenv("NOVELKEY_DEBUG"),
			})
			if xe != nil {
				return xe
			}
			GlobalConfig.Resolved = r
			GlobalConfig.FormatStr = r.Format
			GlobalConfig.ServiceStr = r.Service
			GlobalConfig.Debug = r.Debug
			return nil
		},
	}

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./novelkey.yaml or $HOME/.config/novelkey/novelkey.yaml")
	root.PersistentFlags().StringVar(&GlobalConfig.ServiceStr, "service", "", "Keyring service name (default NovelPro)")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: "+output.FormatsHelp())
	root.PersistentFlags().BoolVar(&GlobalConfig.Debug, "debug", false, "Write diagnostic logs to stderr")

	return root
}
