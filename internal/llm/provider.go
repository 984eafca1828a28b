// Package llm talks to hosted language models for generated study content
// such as podcast scripts.
package llm

import (
	"context"
	"encoding/json"
	"net/http"
)

// Provider generates structured content from a prompt.
type Provider interface {
	// Generate sends req and returns the model output. When req.Schema is
	// set the output is JSON that has been validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the configured model identifier.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	System   string
	Messages []Message

	// Schema, when set, asks the provider for JSON matching it using the
	// provider's native structured output.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one turn of the conversation.
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

// Schema is the JSON Schema an output must satisfy.
type Schema struct {
	// Name is a kebab-case identifier, e.g. "podcast-transcript". It doubles
	// as the cache key of the compiled schema.
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the model output.
type Response struct {
	// Content is the validated JSON object when a schema was requested,
	// otherwise the raw text.
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption of one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// finishResponse turns raw provider output into a Response. Truncated
// output is reported as ErrMaxTokensExceeded before schema validation so
// it is not retried as an invalid response.
func finishResponse(schema *Schema, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if stop == StopMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	doc, err := decodeStructured(schema, content)
	if err != nil {
		return nil, err
	}
	return &Response{
		Content:    doc,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// statusError classifies a provider API failure by HTTP status.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names are used as given.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
