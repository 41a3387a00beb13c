package mcptools

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studypal/internal/store"
	"github.com/abhisek/studypal/internal/study"
	"github.com/mark3labs/mcp-go/mcp"
)

// GradeTool handles the grade_answer MCP tool.
type GradeTool struct {
	assistant *study.Assistant
}

// NewGradeTool creates a GradeTool.
func NewGradeTool(a *study.Assistant) *GradeTool {
	return &GradeTool{assistant: a}
}

// Definition returns the MCP tool definition for grade_answer.
func (t *GradeTool) Definition() mcp.Tool {
	return mcp.NewTool("grade_answer",
		mcp.WithDescription(
			"Grade the user's answer to a question from generate_quiz. "+
				"Logs the attempt and records incorrect answers in the mistake log for later review.",
		),
		mcp.WithNumber("question_id",
			mcp.Required(),
			mcp.Description("The question_id returned by generate_quiz"),
		),
		mcp.WithString("answer",
			mcp.Required(),
			mcp.Description("The user's chosen option letter, e.g. 'B'"),
		),
	)
}

// Handle processes the grade_answer tool call.
func (t *GradeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	questionID := int64(intArg(req, "question_id", 0))
	answer := req.GetString("answer", "")
	if questionID == 0 {
		return mcp.NewToolResultError("'question_id' is required"), nil
	}
	if answer == "" {
		return mcp.NewToolResultError("'answer' is required"), nil
	}

	res, err := t.assistant.Grade(ctx, questionID, answer)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("question %d not found", questionID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("grading failed: %v", err)), nil
	}

	var msg string
	if res.IsCorrect {
		msg = "Correct!"
	} else {
		msg = fmt.Sprintf("Incorrect. The correct answer is %s. This mistake has been recorded for review.", res.CorrectAnswer)
	}
	if res.Explanation != "" {
		msg += "\n\n" + res.Explanation
	}
	return mcp.NewToolResultText(msg), nil
}
