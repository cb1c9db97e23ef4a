package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over completion APIs. Callers build a Request,
// receive JSON back, and never touch provider SDK types directly.
type Provider interface {
	// Generate sends a prompt to the model and returns its reply.
	// When the request carries a Schema, the provider switches the API into
	// structured (JSON) output mode and validates the reply against the
	// schema before returning it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes a single completion call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation. Proofpal only ever sends a single
	// user message, but the shape allows multi-turn.
	Messages []Message

	// Schema, when set, forces structured JSON output conforming to it.
	Schema *Schema

	// MaxTokens bounds the reply length.
	MaxTokens int

	// Temperature in [0.0, 1.0]. Zero means deterministic.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema describes the JSON shape expected from the model.
type Schema struct {
	// Name identifies the schema, kebab-case (e.g. "hint-reply").
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's reply.
type Response struct {
	// Content is the reply body. With a Schema it is the validated JSON
	// object; without one it is the raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the call.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token counts for one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
