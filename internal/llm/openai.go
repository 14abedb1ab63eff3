package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type openAIProvider struct {
	client *openai.Client
	model  string
	name   string
}

// NewOpenAIProvider binds a provider to one OpenAI chat model. baseURL may point
// at any OpenAI-compatible endpoint; an empty apiKey yields a provider that
// fails on first use.
func NewOpenAIProvider(apiKey, baseURL, model string) Provider {
	if strings.TrimSpace(apiKey) == "" {
		return &openAIProvider{model: model, name: "openai"}
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &openAIProvider{client: openai.NewClientWithConfig(cfg), model: model, name: "openai"}
}

// NewAzureOpenAIProvider binds a provider to one Azure OpenAI deployment. Every
// request is routed to deployment regardless of the model name.
func NewAzureOpenAIProvider(apiKey, endpoint, deployment string) Provider {
	if strings.TrimSpace(apiKey) == "" || strings.TrimSpace(endpoint) == "" || strings.TrimSpace(deployment) == "" {
		return &openAIProvider{model: deployment, name: "azure"}
	}
	cfg := openai.DefaultAzureConfig(apiKey, endpoint)
	cfg.AzureModelMapperFunc = func(string) string { return deployment }
	return &openAIProvider{client: openai.NewClientWithConfig(cfg), model: deployment, name: "azure"}
}

func (p *openAIProvider) Name() string { return p.name }

func (p *openAIProvider) chatRequest(req *GenerateRequest, stream bool) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}
	out := openai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
		Stream:    stream,
	}
	if req.Temperature != nil {
		out.Temperature = *req.Temperature
	}
	return out
}

func (p *openAIProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if p.client == nil {
		return nil, fmt.Errorf("%s: %w", p.name, ErrProviderNotConfigured)
	}
	resp, err := p.client.CreateChatCompletion(ctx, p.chatRequest(req, false))
	if err != nil {
		return nil, fmt.Errorf("%s chat completion: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%s chat completion: no choices returned", p.name)
	}
	return &GenerateResponse{Model: resp.Model, Response: resp.Choices[0].Message.Content}, nil
}

func (p *openAIProvider) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error {
	defer close(ch)
	if p.client == nil {
		return fmt.Errorf("%s: %w", p.name, ErrProviderNotConfigured)
	}
	stream, err := p.client.CreateChatCompletionStream(ctx, p.chatRequest(req, true))
	if err != nil {
		return fmt.Errorf("%s open stream: %w", p.name, err)
	}
	defer stream.Close()

	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s stream receive: %w", p.name, err)
		}
		if len(resp.Choices) == 0 || resp.Choices[0].Delta.Content == "" {
			continue
		}
		select {
		case ch <- StreamChunk{Content: resp.Choices[0].Delta.Content}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
