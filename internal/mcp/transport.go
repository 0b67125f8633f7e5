package mcp

import (
	"context"
	"crypto/subtle"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/novelpro/novelkey/internal/errors"
)

const (
	TransportStdio          = "stdio"
	TransportStreamableHTTP = "streamable_http"

	DefaultHTTPAddr = "127.0.0.1:8787"
)

const (
	authHeader   = "Authorization"
	bearerPrefix = "Bearer "
)

const shutdownTimeout = 5 * time.Second

// ValidTransport 报告 transport 是否受支持。
func ValidTransport(transport string) bool {
	return transport == TransportStdio || transport == TransportStreamableHTTP
}

// NewStreamableHTTPHandler wraps the server in a streamable HTTP handler that
// requires a bearer token on every request.
func NewStreamableHTTPHandler(server *mcp.Server, authToken string) (http.Handler, error) {
	if server == nil {
		return nil, errors.New(errors.CodeInternal, "mcp server is nil", nil)
	}
	if authToken == "" {
		return nil, errors.New(errors.CodeCfgInvalid, "mcp streamable http auth token is required", nil)
	}
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
	return bearerAuth(handler, []byte(authToken)), nil
}

func bearerAuth(next http.Handler, token []byte) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		auth := strings.TrimSpace(req.Header.Get(authHeader))
		if auth == "" {
			http.Error(w, "authorization header is required", http.StatusUnauthorized)
			return
		}
		received, ok := strings.CutPrefix(auth, bearerPrefix)
		if !ok || subtle.ConstantTimeCompare([]byte(received), token) != 1 {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, req)
	})
}

// ServeOptions 描述 MCP 服务的传输方式。
type ServeOptions struct {
	Transport string
	HTTPAddr  string
	AuthToken string
	Logger    *slog.Logger
}

// Serve 在选定的传输上运行 server，直到 ctx 结束或传输关闭。
func Serve(ctx context.Context, server *mcp.Server, opts ServeOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	switch opts.Transport {
	case TransportStdio:
		logger.Info("mcp server listening", "transport", TransportStdio)
		return server.Run(ctx, &mcp.StdioTransport{})
	case TransportStreamableHTTP:
		handler, err := NewStreamableHTTPHandler(server, opts.AuthToken)
		if err != nil {
			return err
		}
		addr := opts.HTTPAddr
		if addr == "" {
			addr = DefaultHTTPAddr
		}
		httpServer := &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = httpServer.Shutdown(shutdownCtx)
		}()
		logger.Info("mcp server listening", "transport", TransportStreamableHTTP, "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(errors.CodeInternal, "mcp http server failed", map[string]any{"addr": addr}, err)
		}
		return nil
	default:
		return errors.New(errors.CodeCfgInvalid, "unsupported mcp transport", map[string]any{"transport": opts.Transport})
	}
}
