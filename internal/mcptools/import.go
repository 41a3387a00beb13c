package mcptools

import (
	"context"
	"fmt"

	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
)

// ImportTool handles the import_documents MCP tool.
type ImportTool struct {
	assistant *study.Assistant
}

// NewImportTool creates an ImportTool.
func NewImportTool(a *study.Assistant) *ImportTool {
	return &ImportTool{assistant: a}
}

// Definition returns the MCP tool definition for import_documents.
func (t *ImportTool) Definition() mcp.Tool {
	return mcp.NewTool("import_documents",
		mcp.WithDescription(
			"Import study documents (.txt and .md files) from a file or directory into the study database. "+
				"Re-importing the same path is safe and never duplicates content.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Absolute path to a file or directory of notes"),
		),
		mcp.WithString("subject",
			mcp.Description("Subject tag for the imported documents (e.g. 'Biology')"),
		),
	)
}

// Handle processes the import_documents tool call.
func (t *ImportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}
	subject := req.GetString("subject", "")

	res, err := t.assistant.ImportDocuments(ctx, path, subject)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import failed: %v", err)), nil
	}

	msg := fmt.Sprintf("Imported %d document(s), %d new chunk(s).", res.Documents, res.Chunks)
	if len(res.Skipped) > 0 {
		msg += fmt.Sprintf(" Skipped %d unsupported or empty file(s).", len(res.Skipped))
	}
	return mcp.NewToolResultText(msg), nil
}
