package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/novelpro/novelkey/internal/config"
	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/log"
	mcp_pkg "github.com/novelpro/novelkey/internal/mcp"
	"github.com/novelpro/novelkey/internal/secret"
)

// NewMCPCommand creates the MCP command group
func NewMCPCommand() *cobra.Command {
	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP (Model Context Protocol) server commands",
	}

	mcpCmd.AddCommand(newMCPServerCommand())

	return mcpCmd
}

// newMCPServerCommand creates the MCP server command
func newMCPServerCommand() *cobra.Command {
	opts := &mcpServerOptions{}
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start MCP server exposing save_key, get_key and delete_key as tools",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.transportSet = cmd.Flags().Changed("transport")
			opts.httpAddrSet = cmd.Flags().Changed("http-addr")
			opts.httpAuthTokenSet = cmd.Flags().Changed("http-auth-token")
			return runMCPServer(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.transport, "transport", mcp_pkg.TransportStdio, "MCP transport: stdio|streamable_http")
	cmd.Flags().StringVar(&opts.httpAddr, "http-addr", mcp_pkg.DefaultHTTPAddr, "Streamable HTTP listen address")
	cmd.Flags().StringVar(&opts.httpAuthToken, "http-auth-token", "", "Streamable HTTP auth token (required for streamable_http)")
	return cmd
}

// runMCPServer runs the MCP server
func runMCPServer(cmd *cobra.Command, opts *mcpServerOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	resolved, xe := resolveMCPServerOptions(ctx, opts, GlobalConfig.Resolved)
	if xe != nil {
		return xe
	}

	d, xe := newDispatcher(cmd.ErrOrStderr())
	if xe != nil {
		return xe
	}
	server, err := mcp_pkg.CreateServer(version, d)
	if err != nil {
		return errors.AsOrWrap(err)
	}

	return mcp_pkg.Serve(ctx, server, mcp_pkg.ServeOptions{
		Transport: resolved.transport,
		HTTPAddr:  resolved.httpAddr,
		AuthToken: resolved.httpAuthToken,
		Logger:    log.Diagnostic(cmd.ErrOrStderr(), GlobalConfig.Resolved.Debug),
	})
}

type mcpServerOptions struct {
	transport        string
	transportSet     bool
	httpAddr         string
	httpAddrSet      bool
	httpAuthToken    string
	httpAuthTokenSet bool

	// keyring 仅供测试注入（nil 则用 OS keyring）
	keyring secret.KeyringAPI
}

type mcpServerResolved struct {
	transport     string
	httpAddr      string
	httpAuthToken string
}

func resolveMCPServerOptions(ctx context.Context, opts *mcpServerOptions, cfg config.Resolved) (mcpServerResolved, *errors.XError) {
	if opts == nil {
		opts = &mcpServerOptions{}
	}

	transport := firstNonEmpty(
		valueIfSet(opts.transportSet, opts.transport),
		os.Getenv("NOVELKEY_MCP_TRANSPORT"),
		cfg.MCP.Transport,
	)
	if transport == "" {
		transport = mcp_pkg.TransportStdio
	}
	if !mcp_pkg.ValidTransport(transport) {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "invalid mcp transport", map[string]any{"transport": transport})
	}

	httpAddr := firstNonEmpty(
		valueIfSet(opts.httpAddrSet, opts.httpAddr),
		os.Getenv("NOVELKEY_MCP_HTTP_ADDR"),
		cfg.MCP.HTTP.Addr,
	)
	if httpAddr == "" {
		httpAddr = mcp_pkg.DefaultHTTPAddr
	}

	authToken := firstNonEmpty(
		valueIfSet(opts.httpAuthTokenSet, opts.httpAuthToken),
		os.Getenv("NOVELKEY_MCP_HTTP_AUTH_TOKEN"),
	)
	// token 仅在 HTTP 传输下才解析，避免 stdio 模式触发 keyring 访问。
	// CLI/ENV 给出的明文 token 直接使用；keyring: 引用与配置文件中的 token 都经 secret.Resolve。
	if transport == mcp_pkg.TransportStreamableHTTP {
		raw, allowPlaintext := "", false
		switch {
		case secret.IsKeyringRef(authToken):
			raw = authToken
		case authToken == "" && cfg.MCP.HTTP.AuthToken != "":
			raw, allowPlaintext = cfg.MCP.HTTP.AuthToken, cfg.MCP.HTTP.AllowPlaintextToken
		}
		if raw != "" {
			secretValue, xe := secret.Resolve(ctx, raw, secret.Options{
				AllowPlaintext: allowPlaintext,
				Service:        cfg.Service,
				Keyring:        opts.keyring,
			})
			if xe != nil {
				return mcpServerResolved{}, xe
			}
			authToken = secretValue
		}
	}

	if transport == mcp_pkg.TransportStreamableHTTP && authToken == "" {
		return mcpServerResolved{}, errors.New(errors.CodeCfgInvalid, "streamable http transport requires auth token", nil)
	}

	return mcpServerResolved{
		transport:     transport,
		httpAddr:      httpAddr,
		httpAuthToken: authToken,
	}, nil
}

func valueIfSet(set bool, value string) string {
	if !set {
		return ""
	}
	return value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}
