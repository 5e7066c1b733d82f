package llm

import "context"

// DefaultTemperature is the analyzer default when none is configured.
const DefaultTemperature float32 = 0.5

// Request is a single prompt with an optional requested output shape.
type Request struct {
	Prompt      string
	Schema      *Schema
	Temperature float32
}

// LLM is a text generation backend. Generate performs exactly one call to
// the provider and returns the raw text of the answer.
type LLM interface {
	Generate(ctx context.Context, req Request) (string, error)
	Model() string
}
