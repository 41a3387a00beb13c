package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
)

// QuizTool handles the generate_quiz MCP tool.
type QuizTool struct {
	assistant *study.Assistant
}

// NewQuizTool creates a QuizTool.
func NewQuizTool(a *study.Assistant) *QuizTool {
	return &QuizTool{assistant: a}
}

// Definition returns the MCP tool definition for generate_quiz.
func (t *QuizTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_quiz",
		mcp.WithDescription(
			"Generate multiple-choice questions from a knowledge point. "+
				"Answers are withheld — present the questions to the user, then call grade_answer with their choice.",
		),
		mcp.WithNumber("kp_id",
			mcp.Description("Knowledge point id. Omit or 0 to pick a random one."),
		),
		mcp.WithNumber("count",
			mcp.Description("Number of questions to generate (default 1)"),
		),
	)
}

// quizQuestion is the answer-free view returned to the MCP client. The
// correct option and explanation stay server-side until grading.
type quizQuestion struct {
	ID      int64             `json:"question_id"`
	Stem    string            `json:"stem"`
	Options map[string]string `json:"options"`
}

// Handle processes the generate_quiz tool call.
func (t *QuizTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kpID := int64(intArg(req, "kp_id", 0))
	count := intArg(req, "count", 1)

	qs, err := t.assistant.GenerateQuiz(ctx, kpID, count)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("quiz generation failed: %v", err)), nil
	}
	if len(qs) == 0 {
		return mcp.NewToolResultError("the model returned no questions for this knowledge point"), nil
	}

	out := make([]quizQuestion, 0, len(qs))
	for _, q := range qs {
		out = append(out, quizQuestion{ID: q.ID, Stem: q.Stem, Options: q.Options})
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode questions: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
