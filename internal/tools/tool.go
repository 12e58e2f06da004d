package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// Tool is the interface that all tools must implement.
type Tool interface {
	// Name returns the name of the tool.
	Name() string

	// Definition returns the tool's MCP schema.
	Definition() mcp.Tool

	// Handle executes the tool with the given request. Mapped failures
	// are returned as textual results; only unanticipated internal
	// errors surface through the error return.
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}
