package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
)

const (
	// DefaultGenerationTimeout bounds every single provider call.
	DefaultGenerationTimeout = 2 * time.Minute

	maxAnswerPills = 4
	maxStarters    = 4
	streamBuffer   = 16
)

// ChunkSink receives text chunks in the order the provider produced them. A
// non-nil error stops the generation.
type ChunkSink func(content string) error

// Pipeline drives provider calls under a per-call deadline.
type Pipeline struct {
	timeout time.Duration
}

func NewPipeline(timeout time.Duration) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultGenerationTimeout
	}
	return &Pipeline{timeout: timeout}
}

// Complete performs one non-streaming call and returns the text.
func (p *Pipeline) Complete(ctx context.Context, provider llm.Provider, req *llm.GenerateRequest) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := provider.Generate(callCtx, req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", app_errors.ErrUpstream, err)
	}
	return resp.Response, nil
}

// StreamText forwards every chunk to sink and returns the concatenated text.
// The provider runs in its own goroutine writing to a bounded channel; a sink
// failure or ctx cancellation cancels the provider call.
func (p *Pipeline) StreamText(ctx context.Context, provider llm.Provider, req *llm.GenerateRequest, sink ChunkSink) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	chunks := make(chan llm.StreamChunk, streamBuffer)
	errCh := make(chan error, 1)
	go func() {
		errCh <- provider.GenerateStream(callCtx, req, chunks)
	}()

	var full strings.Builder
	var sinkErr error
	for chunk := range chunks {
		if sinkErr != nil {
			continue
		}
		full.WriteString(chunk.Content)
		if err := sink(chunk.Content); err != nil {
			sinkErr = err
			cancel()
		}
	}

	providerErr := <-errCh
	if sinkErr != nil {
		return full.String(), sinkErr
	}
	if providerErr != nil {
		return full.String(), fmt.Errorf("%w: %w", app_errors.ErrUpstream, providerErr)
	}
	return full.String(), nil
}

// StreamProseWithFollowUp streams the prose, then, once the prose stream has
// drained, makes one non-streaming call for the comprehension check. Failures
// of the follow-up degrade to empty defaults; the prose is kept.
func (p *Pipeline) StreamProseWithFollowUp(
	ctx context.Context,
	provider llm.Provider,
	proseReq *llm.GenerateRequest,
	followUp func(prose string) *llm.GenerateRequest,
	sink ChunkSink,
) (*model.SummaryEntry, error) {
	prose, err := p.StreamText(ctx, provider, proseReq, sink)
	if err != nil {
		return nil, err
	}

	entry := emptyFollowUp()
	entry.Summary = prose

	raw, err := p.Complete(ctx, provider, followUp(prose))
	if err != nil {
		slog.WarnContext(ctx, "Follow-up question generation failed, using defaults.", "provider", provider.Name(), "error", err)
		return entry, nil
	}

	var payload followUpPayload
	if err := llm.DecodeJSON(raw, &payload); err != nil {
		slog.WarnContext(ctx, "Could not parse follow-up question, using defaults.", "provider", provider.Name(), "error", err)
		return entry, nil
	}
	payload.applyTo(entry)
	return entry, nil
}

// SummarizeHistory collapses older turns into one paragraph.
func (p *Pipeline) SummarizeHistory(ctx context.Context, provider llm.Provider, messages []model.ConversationMessage) (string, error) {
	summary, err := p.Complete(ctx, provider, historySummaryRequest(messages))
	if err != nil {
		return "", fmt.Errorf("summarize history: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// Summarizer binds the pipeline to one provider for use by a ContextWindow.
func (p *Pipeline) Summarizer(provider llm.Provider) HistorySummarizer {
	return &providerSummarizer{pipeline: p, provider: provider}
}

type providerSummarizer struct {
	pipeline *Pipeline
	provider llm.Provider
}

func (s *providerSummarizer) SummarizeHistory(ctx context.Context, messages []model.ConversationMessage) (string, error) {
	return s.pipeline.SummarizeHistory(ctx, s.provider, messages)
}

type followUpPayload struct {
	Question     string   `json:"question"`
	AnswerPills  []string `json:"answerPills"`
	CorrectIndex *int     `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	Starters     []string `json:"starters"`
}

func emptyFollowUp() *model.SummaryEntry {
	return &model.SummaryEntry{
		AnswerPills:  []string{},
		CorrectIndex: -1,
		Starters:     []string{},
	}
}

func (f followUpPayload) applyTo(entry *model.SummaryEntry) {
	entry.Question = strings.TrimSpace(f.Question)
	entry.Explanation = strings.TrimSpace(f.Explanation)
	entry.AnswerPills = cleanPills(f.AnswerPills, maxAnswerPills)
	entry.Starters = cleanPills(f.Starters, maxStarters)

	entry.CorrectIndex = -1
	if f.CorrectIndex != nil && *f.CorrectIndex >= 0 && *f.CorrectIndex < len(entry.AnswerPills) {
		entry.CorrectIndex = *f.CorrectIndex
	}
}

func cleanPills(in []string, limit int) []string {
	out := make([]string, 0, limit)
	for _, s := range in {
		if s = strings.TrimSpace(s); s == "" {
			continue
		}
		out = append(out, s)
		if len(out) == limit {
			break
		}
	}
	return out
}
