package mcptools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/abhisek/studypal/internal/store"
	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
)

// ListKPsTool handles the list_knowledge_points MCP tool.
type ListKPsTool struct {
	assistant *study.Assistant
}

// NewListKPsTool creates a ListKPsTool.
func NewListKPsTool(a *study.Assistant) *ListKPsTool {
	return &ListKPsTool{assistant: a}
}

// Definition returns the MCP tool definition for list_knowledge_points.
func (t *ListKPsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_knowledge_points",
		mcp.WithDescription("List extracted knowledge points, newest first."),
		mcp.WithString("subject",
			mcp.Description("Only list points for this subject"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of points to return (default 20)"),
		),
	)
}

// Handle processes the list_knowledge_points tool call.
func (t *ListKPsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	subject := req.GetString("subject", "")
	limit := intArg(req, "limit", 0)

	kps, err := t.assistant.ListKnowledgePoints(ctx, subject, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("list knowledge points: %v", err)), nil
	}
	if len(kps) == 0 {
		return mcp.NewToolResultText("No knowledge points yet. Import documents and run extract_knowledge_points first."), nil
	}

	data, err := json.MarshalIndent(kps, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode knowledge points: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// ChunkTool handles the get_chunk MCP tool, the provenance lookup: given
// a knowledge point's source_chunk_id it returns the original document
// text the point was extracted from.
type ChunkTool struct {
	assistant *study.Assistant
}

// NewChunkTool creates a ChunkTool.
func NewChunkTool(a *study.Assistant) *ChunkTool {
	return &ChunkTool{assistant: a}
}

// Definition returns the MCP tool definition for get_chunk.
func (t *ChunkTool) Definition() mcp.Tool {
	return mcp.NewTool("get_chunk",
		mcp.WithDescription(
			"Fetch the original document chunk a knowledge point or question was derived from, "+
				"including the source file path.",
		),
		mcp.WithNumber("chunk_id",
			mcp.Required(),
			mcp.Description("The source_chunk_id of a knowledge point or question"),
		),
	)
}

// Handle processes the get_chunk tool call.
func (t *ChunkTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	chunkID := int64(intArg(req, "chunk_id", 0))
	if chunkID == 0 {
		return mcp.NewToolResultError("'chunk_id' is required"), nil
	}

	c, err := t.assistant.GetChunk(ctx, chunkID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("chunk %d not found", chunkID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("get chunk: %v", err)), nil
	}

	msg := fmt.Sprintf("Source: %s (pages %d-%d)\n\n%s", c.SourcePath, c.PageFrom, c.PageTo, c.Content)
	return mcp.NewToolResultText(msg), nil
}
