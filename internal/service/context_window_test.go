package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
)

type countingSummarizer struct {
	calls int
	got   []model.ConversationMessage
	err   error
}

func (c *countingSummarizer) SummarizeHistory(_ context.Context, messages []model.ConversationMessage) (string, error) {
	c.calls++
	c.got = messages
	if c.err != nil {
		return "", c.err
	}
	return fmt.Sprintf("%d earlier turns", len(messages)), nil
}

func makeHistory(n int) []model.ConversationMessage {
	history := make([]model.ConversationMessage, n)
	for i := range history {
		role := model.RoleUser
		if i%2 == 1 {
			role = model.RoleAssistant
		}
		history[i] = model.ConversationMessage{Role: role, Content: fmt.Sprintf("msg-%d", i)}
	}
	return history
}

func TestContextWindow_BuildPrompt(t *testing.T) {
	ctx := context.Background()

	t.Run("Empty history", func(t *testing.T) {
		summarizer := &countingSummarizer{}
		window := NewContextWindow(15, summarizer)

		prompt, err := window.BuildPrompt(ctx, "sys", nil, "hello")

		require.NoError(t, err)
		assert.Equal(t, []llm.Message{{Role: "system", Content: "sys"}, {Role: "user", Content: "hello"}}, prompt)
		assert.Zero(t, summarizer.calls)
	})

	for _, n := range []int{1, 7, 14, 15} {
		t.Run(fmt.Sprintf("%d messages are kept verbatim", n), func(t *testing.T) {
			summarizer := &countingSummarizer{}
			window := NewContextWindow(15, summarizer)
			history := makeHistory(n)

			prompt, err := window.BuildPrompt(ctx, "sys", history, "next")

			require.NoError(t, err)
			assert.Zero(t, summarizer.calls)
			require.Len(t, prompt, n+2)
			for i, m := range history {
				assert.Equal(t, m.Content, prompt[i+1].Content)
				assert.Equal(t, string(m.Role), prompt[i+1].Role)
			}
			assert.Equal(t, "next", prompt[len(prompt)-1].Content)
		})
	}

	for _, n := range []int{16, 20, 41} {
		t.Run(fmt.Sprintf("%d messages trigger one summary", n), func(t *testing.T) {
			summarizer := &countingSummarizer{}
			window := NewContextWindow(15, summarizer)
			history := makeHistory(n)

			prompt, err := window.BuildPrompt(ctx, "sys", history, "next")

			require.NoError(t, err)
			assert.Equal(t, 1, summarizer.calls)
			assert.Equal(t, history[:n-15], summarizer.got)

			require.Len(t, prompt, 15+3)
			assert.Equal(t, llm.Message{Role: "system", Content: "sys"}, prompt[0])
			assert.Equal(t, llm.Message{Role: "system", Content: fmt.Sprintf("Earlier conversation summary: %d earlier turns", n-15)}, prompt[1])
			for i, m := range history[n-15:] {
				assert.Equal(t, m.Content, prompt[i+2].Content)
			}
			assert.Equal(t, llm.Message{Role: "user", Content: "next"}, prompt[len(prompt)-1])
		})
	}

	t.Run("Stored system messages are dropped before windowing", func(t *testing.T) {
		summarizer := &countingSummarizer{}
		window := NewContextWindow(15, summarizer)
		history := makeHistory(15)
		history = append([]model.ConversationMessage{{Role: model.RoleSystem, Content: "stale"}}, history...)
		history = append(history, model.ConversationMessage{Role: model.RoleSystem, Content: "stale too"})

		prompt, err := window.BuildPrompt(ctx, "sys", history, "next")

		require.NoError(t, err)
		assert.Zero(t, summarizer.calls)
		for _, m := range prompt[1:] {
			assert.NotContains(t, m.Content, "stale")
		}
		assert.Len(t, prompt, 17)
	})

	t.Run("Summarization failure propagates", func(t *testing.T) {
		boom := errors.New("provider down")
		window := NewContextWindow(15, &countingSummarizer{err: boom})

		prompt, err := window.BuildPrompt(ctx, "sys", makeHistory(30), "next")

		assert.ErrorIs(t, err, boom)
		assert.Nil(t, prompt)
	})

	t.Run("Non-positive size uses the default", func(t *testing.T) {
		summarizer := &countingSummarizer{}
		window := NewContextWindow(0, summarizer)

		_, err := window.BuildPrompt(ctx, "sys", makeHistory(DefaultHistoryWindow+1), "next")

		require.NoError(t, err)
		assert.Equal(t, 1, summarizer.calls)
		assert.Len(t, summarizer.got, 1)
	})
}
