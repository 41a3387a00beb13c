package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studypal/internal/extract"
	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
)

// ExtractTool handles the extract_knowledge_points MCP tool.
type ExtractTool struct {
	assistant *study.Assistant
}

// NewExtractTool creates an ExtractTool.
func NewExtractTool(a *study.Assistant) *ExtractTool {
	return &ExtractTool{assistant: a}
}

// Definition returns the MCP tool definition for extract_knowledge_points.
func (t *ExtractTool) Definition() mcp.Tool {
	return mcp.NewTool("extract_knowledge_points",
		mcp.WithDescription(
			"Mine knowledge points from the imported documents using the configured model. "+
				"Each point records which chunk of which document it came from.",
		),
		mcp.WithString("subject",
			mcp.Description("Only extract from documents with this subject"),
		),
	)
}

// Handle processes the extract_knowledge_points tool call.
func (t *ExtractTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject := req.GetString("subject", "")

	n, err := t.assistant.ExtractKnowledgePoints(ctx, subject)
	if err != nil {
		if errors.Is(err, extract.ErrNoChunks) {
			return mcp.NewToolResultError("no documents imported yet, call import_documents first"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("extraction failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Extracted %d knowledge point(s).", n)), nil
}
