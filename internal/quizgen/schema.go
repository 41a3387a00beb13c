package quizgen

import "github.com/abhisek/studypal/internal/llm"

// QuestionsSchema defines the JSON shape of a quiz generation response:
// an array of four-option multiple-choice questions.
var QuestionsSchema = &llm.Schema{
	Name:        "quiz-questions",
	Description: "Multiple-choice questions derived from one knowledge point",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"qtype": map[string]any{
					"type":        "string",
					"enum":        []any{"choice"},
					"description": "Question type, always \"choice\"",
				},
				"stem": map[string]any{
					"type":        "string",
					"description": "The question stem shown to the learner",
				},
				"options": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"A": map[string]any{"type": "string"},
						"B": map[string]any{"type": "string"},
						"C": map[string]any{"type": "string"},
						"D": map[string]any{"type": "string"},
					},
					"required":             []any{"A", "B", "C", "D"},
					"additionalProperties": false,
					"description":          "Exactly four labeled options",
				},
				"answer": map[string]any{
					"type":        "string",
					"enum":        []any{"A", "B", "C", "D"},
					"description": "The correct option letter",
				},
				"explanation": map[string]any{
					"type":        "string",
					"description": "Why the correct option is correct",
				},
			},
			"required":             []any{"qtype", "stem", "options", "answer", "explanation"},
			"additionalProperties": false,
		},
	},
}
