// Package llm abstracts the language-model collaborator behind a Provider
// interface with interchangeable backends (Anthropic, OpenAI, OpenRouter,
// Gemini, mock) plus retry and request-logging middleware.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction. Every workflow
// (extraction, quiz generation, grading) talks to the model through it,
// which keeps those workflows deterministic under test via MockProvider.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its response.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and the response Content is the
	// validated JSON. Errors are one of the typed errors in this package.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes one call to the model.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. StudyPal only does single-turn
	// generation, so this is one user message in practice.
	Messages []Message

	// Schema, when set, is the JSON Schema the response must conform to.
	// When nil the response Content is raw text as json.RawMessage and may
	// need fence stripping before parsing (see ExtractJSON).
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0 (deterministic) to 1.0.
	Temperature float64
}

// Message is a single conversation message.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "knowledge-points".
	Name string

	// Description tells the model what this schema represents.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is the generated output. Validated JSON when a Schema was
	// requested, otherwise raw text wrapped as a json.RawMessage.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to: "end", "max_tokens", "error".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
