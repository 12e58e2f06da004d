package telemetry

import (
	"context"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"lanyard-mcp-go/internal/tools"
)

var (
	defaultMetrics *Metrics
	defaultOnce    sync.Once
)

// Default returns the process-wide Metrics instance. promauto registers
// against the global registry, so the instance is created at most once.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

// WrapTool returns a Tool whose Handle records execution metrics.
func WrapTool(tool tools.Tool, metrics *Metrics) tools.Tool {
	return &instrumentedTool{Tool: tool, metrics: metrics}
}

type instrumentedTool struct {
	tools.Tool
	metrics *Metrics
}

func (t *instrumentedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()

	result, err := t.Tool.Handle(ctx, req)

	duration := time.Since(start)
	status := "success"
	if err != nil || (result != nil && result.IsError) {
		status = "error"
	}

	t.metrics.RecordToolExecution(t.Name(), status, duration)

	return result, err
}
