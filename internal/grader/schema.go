package grader

import "github.com/abhisek/studypal/internal/llm"

// VerdictSchema defines the JSON shape of a grading response.
var VerdictSchema = &llm.Schema{
	Name:        "grading-verdict",
	Description: "Judgment of one quiz answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "Whether the user's answer is correct",
			},
			"correct_answer": map[string]any{
				"type":        "string",
				"description": "The correct option letter",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Why the correct option is correct, and what the user missed if wrong",
			},
		},
		"required":             []any{"is_correct", "correct_answer", "explanation"},
		"additionalProperties": false,
	},
}
