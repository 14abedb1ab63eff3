package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// continuationPrompt opens a Converse conversation whose kept history starts
// on an assistant turn, since Converse requires the first message to be a user one.
const continuationPrompt = "(continuing our earlier conversation)"

// bedrockProvider talks to the Bedrock Converse API. The AWS config is loaded on
// first use so that resolving the handle stays free of I/O and missing
// credentials only surface when a request is actually made.
type bedrockProvider struct {
	region  string
	modelID string

	mu     sync.Mutex
	client *bedrockruntime.Client
}

// NewBedrockProvider binds a provider to one Bedrock model id in region.
func NewBedrockProvider(region, modelID string) Provider {
	return &bedrockProvider{region: strings.TrimSpace(region), modelID: modelID}
}

func (p *bedrockProvider) Name() string { return "bedrock" }

// getClient loads the AWS config once it succeeds; a failed load is retried
// by the next request. The load does not inherit the caller's cancellation.
func (p *bedrockProvider) getClient(ctx context.Context) (*bedrockruntime.Client, error) {
	if p.region == "" {
		return nil, fmt.Errorf("bedrock: missing region: %w", ErrProviderNotConfigured)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.client != nil {
		return p.client, nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(context.WithoutCancel(ctx), awsconfig.WithRegion(p.region))
	if err != nil {
		return nil, fmt.Errorf("bedrock: load aws config: %w", err)
	}
	p.client = bedrockruntime.NewFromConfig(cfg)
	return p.client, nil
}

func (p *bedrockProvider) converseParts(req *GenerateRequest) ([]types.SystemContentBlock, []types.Message, *types.InferenceConfiguration) {
	systemText, turns := splitSystem(req.Messages)

	var system []types.SystemContentBlock
	if systemText != "" {
		system = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: systemText}}
	}

	// Converse requires alternating roles starting with the user, so consecutive
	// turns of the same role are merged.
	var messages []types.Message
	if len(turns) > 0 && turns[0].Role == "assistant" {
		messages = append(messages, types.Message{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: continuationPrompt}},
		})
	}
	for _, m := range turns {
		role := types.ConversationRoleUser
		if m.Role == "assistant" {
			role = types.ConversationRoleAssistant
		}
		if n := len(messages); n > 0 && messages[n-1].Role == role {
			messages[n-1].Content = append(messages[n-1].Content, &types.ContentBlockMemberText{Value: m.Content})
			continue
		}
		messages = append(messages, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}},
		})
	}

	inference := &types.InferenceConfiguration{}
	if req.Temperature != nil {
		inference.Temperature = aws.Float32(*req.Temperature)
	}
	if req.MaxTokens > 0 {
		inference.MaxTokens = aws.Int32(int32(req.MaxTokens))
	}
	return system, messages, inference
}

func (p *bedrockProvider) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}
	system, messages, inference := p.converseParts(req)
	out, err := client.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId:         aws.String(p.modelID),
		System:          system,
		Messages:        messages,
		InferenceConfig: inference,
	})
	if err != nil {
		return nil, fmt.Errorf("bedrock converse: %w", err)
	}
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return nil, fmt.Errorf("bedrock converse: unexpected output type %T", out.Output)
	}
	var sb strings.Builder
	for _, block := range msg.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			sb.WriteString(text.Value)
		}
	}
	return &GenerateResponse{Model: p.modelID, Response: sb.String()}, nil
}

func (p *bedrockProvider) GenerateStream(ctx context.Context, req *GenerateRequest, ch chan<- StreamChunk) error {
	defer close(ch)
	client, err := p.getClient(ctx)
	if err != nil {
		return err
	}
	system, messages, inference := p.converseParts(req)
	out, err := client.ConverseStream(ctx, &bedrockruntime.ConverseStreamInput{
		ModelId:         aws.String(p.modelID),
		System:          system,
		Messages:        messages,
		InferenceConfig: inference,
	})
	if err != nil {
		return fmt.Errorf("bedrock open stream: %w", err)
	}
	stream := out.GetStream()
	defer stream.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-stream.Events():
			if !ok {
				if err := stream.Err(); err != nil {
					return fmt.Errorf("bedrock stream receive: %w", err)
				}
				return nil
			}
			delta, ok := event.(*types.ConverseStreamOutputMemberContentBlockDelta)
			if !ok {
				continue
			}
			text, ok := delta.Value.Delta.(*types.ContentBlockDeltaMemberText)
			if !ok || text.Value == "" {
				continue
			}
			select {
			case ch <- StreamChunk{Content: text.Value}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}
