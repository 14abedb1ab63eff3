package service

import (
	"context"
	"fmt"

	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
)

// DefaultHistoryWindow is how many recent non-system messages are sent verbatim.
const DefaultHistoryWindow = 15

const earlierSummaryPrefix = "Earlier conversation summary: "

// HistorySummarizer condenses the part of a conversation that falls outside
// the verbatim window.
type HistorySummarizer interface {
	SummarizeHistory(ctx context.Context, messages []model.ConversationMessage) (string, error)
}

// ContextWindow bounds the prompt sent to a model as a conversation grows.
type ContextWindow struct {
	size       int
	summarizer HistorySummarizer
}

func NewContextWindow(size int, summarizer HistorySummarizer) *ContextWindow {
	if size <= 0 {
		size = DefaultHistoryWindow
	}
	return &ContextWindow{size: size, summarizer: summarizer}
}

// BuildPrompt returns the system prompt, an optional summary of older turns,
// the last size non-system messages of history in order, and the new user
// message. Stored system messages are never replayed.
//
// A failed summarization is returned as is; the caller must not generate
// from a prompt that silently lost earlier turns.
func (w *ContextWindow) BuildPrompt(
	ctx context.Context,
	systemPrompt string,
	history []model.ConversationMessage,
	newUserMessage string,
) ([]llm.Message, error) {
	turns := make([]model.ConversationMessage, 0, len(history))
	for _, m := range history {
		if m.Role == model.RoleSystem {
			continue
		}
		turns = append(turns, m)
	}

	kept := turns
	var earlier []model.ConversationMessage
	if len(turns) > w.size {
		earlier = turns[:len(turns)-w.size]
		kept = turns[len(turns)-w.size:]
	}

	prompt := make([]llm.Message, 0, len(kept)+3)
	prompt = append(prompt, llm.Message{Role: string(model.RoleSystem), Content: systemPrompt})

	if len(earlier) > 0 {
		summary, err := w.summarizer.SummarizeHistory(ctx, earlier)
		if err != nil {
			return nil, fmt.Errorf("build prompt: %w", err)
		}
		prompt = append(prompt, llm.Message{Role: string(model.RoleSystem), Content: earlierSummaryPrefix + summary})
	}

	for _, m := range kept {
		prompt = append(prompt, llm.Message{Role: string(m.Role), Content: m.Content})
	}
	prompt = append(prompt, llm.Message{Role: string(model.RoleUser), Content: newUserMessage})
	return prompt, nil
}
