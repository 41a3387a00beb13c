// Package mcpserver wires the study assistant into an MCP server.
//
// This is the composition root: it registers the tools and resources over
// one study.Assistant. No business logic lives here, only wiring.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studypal/internal/mcptools"
	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with all study tools and resources
// registered.
func New(assistant *study.Assistant) *server.MCPServer {
	s := server.NewMCPServer(
		"studypal",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	importTool := mcptools.NewImportTool(assistant)
	s.AddTool(importTool.Definition(), importTool.Handle)

	extractTool := mcptools.NewExtractTool(assistant)
	s.AddTool(extractTool.Definition(), extractTool.Handle)

	quizTool := mcptools.NewQuizTool(assistant)
	s.AddTool(quizTool.Definition(), quizTool.Handle)

	gradeTool := mcptools.NewGradeTool(assistant)
	s.AddTool(gradeTool.Definition(), gradeTool.Handle)

	listKPs := mcptools.NewListKPsTool(assistant)
	s.AddTool(listKPs.Definition(), listKPs.Handle)

	chunkTool := mcptools.NewChunkTool(assistant)
	s.AddTool(chunkTool.Definition(), chunkTool.Handle)

	reportTool := mcptools.NewReportTool(assistant)
	s.AddTool(reportTool.Definition(), reportTool.Handle)

	h := &resourceHandler{assistant: assistant}
	s.AddResource(h.knowledgePointsResource(), h.handleKnowledgePoints)
	s.AddResource(h.mistakesResource(), h.handleMistakes)

	return s
}

// resourceHandler serves the read-only study resources.
type resourceHandler struct {
	assistant *study.Assistant
}

func (h *resourceHandler) knowledgePointsResource() mcp.Resource {
	return mcp.NewResource(
		"study://knowledge-points",
		"Knowledge Points",
		mcp.WithResourceDescription("All extracted knowledge points with their source provenance"),
		mcp.WithMIMEType("application/json"),
	)
}

func (h *resourceHandler) handleKnowledgePoints(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	kps, err := h.assistant.ListKnowledgePoints(ctx, "", 0)
	if err != nil {
		return nil, fmt.Errorf("listing knowledge points: %w", err)
	}
	return jsonResource(req.Params.URI, kps)
}

func (h *resourceHandler) mistakesResource() mcp.Resource {
	return mcp.NewResource(
		"study://mistakes",
		"Mistake Log",
		mcp.WithResourceDescription("Questions the user has answered incorrectly, with repeat counts"),
		mcp.WithMIMEType("application/json"),
	)
}

func (h *resourceHandler) handleMistakes(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	mistakes, err := h.assistant.ListMistakes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing mistakes: %w", err)
	}
	return jsonResource(req.Params.URI, mistakes)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling resource: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// serverInstructions tells the AI host how to run a study session.
func serverInstructions() string {
	return `You have access to StudyPal, a personal study assistant MCP server.

StudyPal turns the user's own notes into quizzes and tracks what they get wrong.

## Typical session
1. import_documents — load the user's .txt/.md notes (ask for the path and a subject)
2. extract_knowledge_points — mine discrete facts from the imported text
3. generate_quiz — get questions for a knowledge point (or a random one)
4. Present each question to the user WITHOUT revealing the answer, collect their choice
5. grade_answer — grade their choice; wrong answers land in the mistake log automatically
6. export_mistake_report — produce a Markdown review sheet of everything they missed

## Rules
- NEVER invent quiz questions yourself — always use generate_quiz so grading works
- NEVER reveal or guess the correct answer before grade_answer returns
- Use get_chunk when the user asks where a fact came from — it returns the original text and file
- The study://knowledge-points and study://mistakes resources give read-only snapshots for context`
}
