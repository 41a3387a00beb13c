package extract

import "github.com/abhisek/studypal/internal/llm"

// KnowledgePointsSchema defines the JSON shape of an extraction response:
// an array of tagged knowledge points with chunk provenance.
var KnowledgePointsSchema = &llm.Schema{
	Name:        "knowledge-points",
	Description: "Knowledge points extracted from document chunks",
	Definition: map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"subject": map[string]any{
					"type":        "string",
					"description": "The main subject of the material, e.g. \"Physics\"",
				},
				"topic": map[string]any{
					"type":        "string",
					"description": "The sub-topic the knowledge point belongs to, e.g. \"Energy\"",
				},
				"kp": map[string]any{
					"type":        "string",
					"description": "A concise statement of the knowledge point",
				},
				"chunk_id": map[string]any{
					"type":        "integer",
					"description": "The CHUNK_ID marker of the chunk this point was found in",
				},
			},
			"required":             []any{"subject", "topic", "kp"},
			"additionalProperties": false,
		},
	},
}
