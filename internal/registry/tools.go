package registry

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterDatasetTools defines the two dataset tool schemas and wires their
// handlers to the dispatcher. The catalog is fixed: callers always see
// exactly `plot` and `average`.
func RegisterDatasetTools(s *server.MCPServer, reg *Registry, d *Dispatcher) {
	// plot
	plotTool := mcp.NewTool(
		"plot",
		mcp.WithDescription("Plot a graph from the loaded dataset"),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("bar", "line", "scatter"), mcp.Description("Type of plot to create (e.g., bar, line, scatter)")),
		mcp.WithString("x", mcp.Description("Column name for x-axis")),
		mcp.WithString("y", mcp.Description("Column name for y-axis")),
		mcp.WithString("title", mcp.Description("Title of the plot")),
	)
	s.AddTool(plotTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return d.Call(ctx, req.Params.Name, req.GetArguments()), nil
	})
	reg.Register(plotTool)

	// average
	avgTool := mcp.NewTool(
		"average",
		mcp.WithDescription("Calculate the average of a column"),
		mcp.WithString("column", mcp.Required(), mcp.Description("Column name to calculate the average for")),
	)
	s.AddTool(avgTool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return d.Call(ctx, req.Params.Name, req.GetArguments()), nil
	})
	reg.Register(avgTool)
}
