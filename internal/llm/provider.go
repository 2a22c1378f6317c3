package llm

import (
	"context"
	"encoding/json"
)

// Provider generates structured output from a language model.
type Provider interface {
	// Generate runs a single prompt. When req.Format is set the provider
	// asks for JSON matching the schema and validates the result before
	// returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name identifies the backend ("anthropic", "openai", ...).
	Name() string

	// ModelID returns the model this provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt.
type Request struct {
	System string
	Prompt string

	// Format asks for JSON output conforming to a schema. Nil means plain
	// text, returned as a JSON string.
	Format *Format

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// Format names a JSON Schema for structured output.
type Format struct {
	// Name is sent as the schema or tool name, kebab-case.
	Name        string
	Description string
	Schema      map[string]any
}

// Response holds the model output.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// Truncated is set when generation stopped at MaxTokens.
	Truncated bool
}

// Usage is token consumption for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Total returns input plus output tokens.
func (u Usage) Total() int { return u.InputTokens + u.OutputTokens }
