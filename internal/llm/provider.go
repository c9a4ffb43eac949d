package llm

import (
	"context"
	"encoding/json"
	"fmt"
)

// Provider is the boundary to a text-generation model.
// Tutor features call Generate and never see SDK types.
type Provider interface {
	// Generate sends a prompt to the model. When req.Schema is set the
	// response Content is JSON validated against it; otherwise Content is
	// the reply text encoded as a JSON string.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the model.
type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation history, oldest first.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the model.
type Schema struct {
	// Name identifies this schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "remediation-note".
	Name string

	// Description is sent to the model to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the model's output.
type Response struct {
	// Content is validated JSON for schema requests, or the reply text
	// as a JSON string for free-text requests.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason is stopEnd or stopMaxTokens.
	StopReason string
}

const (
	stopEnd       = "end"
	stopMaxTokens = "max_tokens"
)

// truncationReasons lists the provider finish reasons that mean output was
// cut off at the token limit. Anthropic, OpenAI and Gemini spell it
// differently.
var truncationReasons = map[string]bool{
	"max_tokens": true,
	"length":     true,
	"MAX_TOKENS": true,
}

// normalizeStop maps a provider finish reason onto StopReason values.
func normalizeStop(reason string) string {
	if truncationReasons[reason] {
		return stopMaxTokens
	}
	return stopEnd
}

// Text decodes a free-text response.
func (r *Response) Text() (string, error) {
	var s string
	if err := json.Unmarshal(r.Content, &s); err != nil {
		return "", fmt.Errorf("decode text response: %w", err)
	}
	return s, nil
}

// Decode unmarshals a structured response into v.
func (r *Response) Decode(v any) error {
	if err := json.Unmarshal(r.Content, v); err != nil {
		return &ErrInvalidResponse{Content: r.Content, Err: err}
	}
	return nil
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// buildResponse turns raw model output into a Response. Schema requests are
// validated; free text is wrapped as a JSON string so Content is always JSON.
func buildResponse(req Request, raw, model, stop string, usage Usage) (*Response, error) {
	if stop == stopMaxTokens && req.Schema != nil {
		return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(raw)}
	}

	var content json.RawMessage
	if req.Schema != nil {
		content = json.RawMessage(raw)
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	} else {
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("encode text response: %w", err)
		}
		content = b
	}

	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}
