package llm

import (
	"context"
	"errors"
)

// ErrProviderNotConfigured is returned on first use of a provider whose
// credentials or endpoint were absent at startup.
var ErrProviderNotConfigured = errors.New("llm provider is not configured")

// Provider defines the interface for interacting with one language model
// deployment. Implementations translate these shapes into their SDK calls.
type Provider interface {
	// Name returns the provider family, e.g. "openai" or "bedrock".
	Name() string
	// Generate performs a single non-streaming completion.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
	// GenerateStream writes incremental chunks to ch in the order they are
	// produced and closes ch before returning.
	GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error
}

// Message is a single role/content pair sent to a model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerateRequest is the provider-neutral request shape.
type GenerateRequest struct {
	Messages    []Message `json:"messages"`
	Temperature *float32  `json:"temperature,omitempty"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
}

// GenerateResponse is the result of a non-streaming completion.
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// StreamChunk is a piece of incremental output from a provider stream.
type StreamChunk struct {
	Content string
}

// Temperature is a small helper for the optional temperature field.
func Temperature(v float32) *float32 { return &v }

// splitSystem separates system messages (joined) from the conversational turns,
// for providers whose APIs take the system prompt out of band.
func splitSystem(messages []Message) (string, []Message) {
	var system string
	turns := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == "system" {
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
			continue
		}
		turns = append(turns, m)
	}
	return system, turns
}
