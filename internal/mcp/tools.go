package mcp

import (
	"context"
	"encoding/json"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/novelpro/novelkey/internal/errors"
	"github.com/novelpro/novelkey/internal/invoke"
	"github.com/novelpro/novelkey/internal/output"
)

// ToolHandler 将分发器中的每个命令暴露为一个 MCP tool。
type ToolHandler struct {
	dispatcher *invoke.Dispatcher
}

// NewToolHandler creates a new tool handler
func NewToolHandler(d *invoke.Dispatcher) *ToolHandler {
	return &ToolHandler{dispatcher: d}
}

// inputSchema 由命令参数生成 JSON schema（所有参数均为字符串）。
func inputSchema(cmd invoke.Command) *jsonschema.Schema {
	schema := &jsonschema.Schema{
		Type:       "object",
		Properties: make(map[string]*jsonschema.Schema, len(cmd.Params)),
	}
	for _, p := range cmd.Params {
		schema.Properties[p.Name] = &jsonschema.Schema{
			Type:        "string",
			Description: p.Description,
		}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}
	return schema
}

// RegisterTools registers all dispatcher commands with the MCP server
func (h *ToolHandler) RegisterTools(server *mcp.Server) {
	for _, cmd := range h.dispatcher.Commands() {
		server.AddTool(&mcp.Tool{
			Name:        cmd.Name,
			Description: cmd.Description,
			InputSchema: inputSchema(cmd),
		}, h.handlerFor(cmd.Name))
	}
}

func (h *ToolHandler) handlerFor(name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req != nil && req.Params != nil {
			args = req.Params.Arguments
		}
		res, xe := h.dispatcher.Call(ctx, name, args)
		if xe != nil {
			return errorResult(xe), nil
		}
		return okResult(res), nil
	}
}

func okResult(data any) *mcp.CallToolResult {
	jsonData, err := json.MarshalIndent(output.OKEnvelope(data), "", "  ")
	if err != nil {
		return errorResult(errors.Wrap(errors.CodeInternal, "failed to marshal result", nil, err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(jsonData)},
		},
	}
}

func errorResult(xe *errors.XError) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: formatError(xe)},
		},
	}
}

// formatError formats an error as the JSON error envelope
func formatError(err error) string {
	var xe *errors.XError
	if err != nil {
		xe = errors.AsOrWrap(err)
	} else {
		xe = errors.New(errors.CodeInternal, "unknown error", nil)
	}
	jsonData, _ := json.MarshalIndent(output.ErrorEnvelope(xe), "", "  ")
	return string(jsonData)
}

// CreateServer creates a new MCP server exposing the dispatcher's commands
func CreateServer(version string, d *invoke.Dispatcher) (*mcp.Server, error) {
	if d == nil {
		return nil, errors.New(errors.CodeInternal, "dispatcher is nil", nil)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "novelkey",
		Version: version,
	}, nil)

	handler := NewToolHandler(d)
	handler.RegisterTools(server)

	return server, nil
}
