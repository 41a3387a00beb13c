package mcptools

import (
	"context"
	"fmt"

	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReportTool handles the export_mistake_report MCP tool.
type ReportTool struct {
	assistant *study.Assistant
}

// NewReportTool creates a ReportTool.
func NewReportTool(a *study.Assistant) *ReportTool {
	return &ReportTool{assistant: a}
}

// Definition returns the MCP tool definition for export_mistake_report.
func (t *ReportTool) Definition() mcp.Tool {
	return mcp.NewTool("export_mistake_report",
		mcp.WithDescription(
			"Export the mistake log as a Markdown review document. "+
				"Overwrites any previous report in the target directory.",
		),
		mcp.WithString("dir",
			mcp.Description("Directory to write the report into (default: current directory)"),
		),
	)
}

// Handle processes the export_mistake_report tool call.
func (t *ReportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := req.GetString("dir", "")

	path, err := t.assistant.ExportReport(ctx, dir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Mistake report written to %s", path)), nil
}
