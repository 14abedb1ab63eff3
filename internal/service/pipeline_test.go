package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	app_errors "tutorflow/backend/internal/errors"
	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/llm/mocks"
)

func streamChunks(chunks ...string) func(args mock.Arguments) {
	return func(args mock.Arguments) {
		ch := args.Get(2).(chan<- llm.StreamChunk)
		for _, c := range chunks {
			ch <- llm.StreamChunk{Content: c}
		}
		close(ch)
	}
}

func TestPipeline_StreamText(t *testing.T) {
	ctx := context.Background()
	req := &llm.GenerateRequest{Messages: []llm.Message{{Role: "user", Content: "hi"}}}

	t.Run("Success - chunks arrive in order", func(t *testing.T) {
		// ARRANGE
		provider := mocks.NewMockProvider(t)
		provider.On("GenerateStream", mock.Anything, req, mock.Anything).
			Run(streamChunks("Photo", "syn", "thesis")).Return(nil).Once()
		var got []string

		// ACT
		text, err := NewPipeline(time.Second).StreamText(ctx, provider, req, func(c string) error {
			got = append(got, c)
			return nil
		})

		// ASSERT
		require.NoError(t, err)
		assert.Equal(t, "Photosynthesis", text)
		assert.Equal(t, []string{"Photo", "syn", "thesis"}, got)
	})

	t.Run("Failure - provider error is upstream", func(t *testing.T) {
		provider := mocks.NewMockProvider(t)
		provider.On("GenerateStream", mock.Anything, req, mock.Anything).
			Run(streamChunks("partial")).Return(errors.New("quota exceeded")).Once()

		text, err := NewPipeline(time.Second).StreamText(ctx, provider, req, func(string) error { return nil })

		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.ErrorContains(t, err, "quota exceeded")
		assert.Equal(t, "partial", text)
	})

	t.Run("Failure - sink error cancels the provider", func(t *testing.T) {
		provider := &scriptedProvider{chunks: []string{"a", "b", "c", "d"}}
		gone := errors.New("client gone")
		calls := 0

		_, err := NewPipeline(time.Second).StreamText(ctx, provider, req, func(string) error {
			calls++
			return gone
		})

		assert.ErrorIs(t, err, gone)
		assert.Equal(t, 1, calls)
	})

	t.Run("Failure - per-call deadline", func(t *testing.T) {
		provider := mocks.NewMockProvider(t)
		provider.On("GenerateStream", mock.Anything, req, mock.Anything).
			Return(func(ctx context.Context, _ *llm.GenerateRequest, ch chan<- llm.StreamChunk) error {
				defer close(ch)
				<-ctx.Done()
				return ctx.Err()
			}).Once()

		_, err := NewPipeline(20*time.Millisecond).StreamText(ctx, provider, req, func(string) error { return nil })

		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestPipeline_Complete(t *testing.T) {
	req := &llm.GenerateRequest{}

	t.Run("Success", func(t *testing.T) {
		provider := mocks.NewMockProvider(t)
		provider.On("Generate", mock.Anything, req).Return(&llm.GenerateResponse{Response: "ok"}, nil).Once()

		text, err := NewPipeline(0).Complete(context.Background(), provider, req)

		require.NoError(t, err)
		assert.Equal(t, "ok", text)
	})

	t.Run("Failure", func(t *testing.T) {
		provider := mocks.NewMockProvider(t)
		provider.On("Generate", mock.Anything, req).Return(nil, llm.ErrProviderNotConfigured).Once()

		_, err := NewPipeline(0).Complete(context.Background(), provider, req)

		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.ErrorIs(t, err, llm.ErrProviderNotConfigured)
	})
}

func TestPipeline_StreamProseWithFollowUp(t *testing.T) {
	ctx := context.Background()
	proseReq := &llm.GenerateRequest{Messages: []llm.Message{{Role: "user", Content: "overview"}}}

	run := func(t *testing.T, provider llm.Provider) (*[]string, func() (string, error)) {
		var chunks []string
		return &chunks, func() (string, error) {
			entry, err := NewPipeline(time.Second).StreamProseWithFollowUp(ctx, provider, proseReq, summaryFollowUpRequest, func(c string) error {
				chunks = append(chunks, c)
				return nil
			})
			if err != nil {
				return "", err
			}
			return entry.Summary, nil
		}
	}

	t.Run("Fenced JSON is parsed and normalized", func(t *testing.T) {
		provider := &scriptedProvider{
			chunks: []string{"ATP ", "is energy."},
			complete: func(*llm.GenerateRequest) (string, error) {
				return "```json\n" + `{"question":"Where?","answerPills":["a","b","c","d","e"],"correctIndex":2,` +
					`"explanation":"Because.","starters":["s1"," ","s2","s3","s4","s5"]}` + "\n```", nil
			},
		}

		entry, err := NewPipeline(time.Second).StreamProseWithFollowUp(ctx, provider, proseReq, summaryFollowUpRequest, func(string) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, "ATP is energy.", entry.Summary)
		assert.Equal(t, "Where?", entry.Question)
		assert.Equal(t, []string{"a", "b", "c", "d"}, entry.AnswerPills)
		assert.Equal(t, 2, entry.CorrectIndex)
		assert.Equal(t, []string{"s1", "s2", "s3", "s4"}, entry.Starters)
		assert.Equal(t, 1, provider.completions())
	})

	t.Run("Follow-up starts after the prose drained", func(t *testing.T) {
		provider := &scriptedProvider{chunks: []string{"one", "two"}}
		chunks, call := run(t, provider)
		provider.complete = func(req *llm.GenerateRequest) (string, error) {
			assert.Equal(t, []string{"one", "two"}, *chunks)
			assert.Contains(t, req.Messages[1].Content, "onetwo")
			return `{"question":"q"}`, nil
		}

		summary, err := call()

		require.NoError(t, err)
		assert.Equal(t, "onetwo", summary)
	})

	t.Run("Unparseable follow-up degrades to defaults", func(t *testing.T) {
		provider := &scriptedProvider{
			chunks:   []string{"prose"},
			complete: func(*llm.GenerateRequest) (string, error) { return "Sorry, I cannot do that.", nil },
		}

		entry, err := NewPipeline(time.Second).StreamProseWithFollowUp(ctx, provider, proseReq, summaryFollowUpRequest, func(string) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, "prose", entry.Summary)
		assert.Equal(t, "", entry.Question)
		assert.Equal(t, []string{}, entry.AnswerPills)
		assert.Equal(t, []string{}, entry.Starters)
		assert.Equal(t, -1, entry.CorrectIndex)
	})

	t.Run("Failed follow-up call degrades to defaults", func(t *testing.T) {
		provider := &scriptedProvider{
			chunks:   []string{"prose"},
			complete: func(*llm.GenerateRequest) (string, error) { return "", errors.New("timeout") },
		}

		entry, err := NewPipeline(time.Second).StreamProseWithFollowUp(ctx, provider, proseReq, summaryFollowUpRequest, func(string) error { return nil })

		require.NoError(t, err)
		assert.Equal(t, "prose", entry.Summary)
		assert.Equal(t, -1, entry.CorrectIndex)
	})

	t.Run("Out of range or missing correct index", func(t *testing.T) {
		for _, raw := range []string{
			`{"answerPills":["a","b"],"correctIndex":2}`,
			`{"answerPills":["a","b"],"correctIndex":-3}`,
			`{"answerPills":["a","b"]}`,
		} {
			provider := &scriptedProvider{complete: func(*llm.GenerateRequest) (string, error) { return raw, nil }}

			entry, err := NewPipeline(time.Second).StreamProseWithFollowUp(ctx, provider, proseReq, summaryFollowUpRequest, func(string) error { return nil })

			require.NoError(t, err)
			assert.Equal(t, -1, entry.CorrectIndex, raw)
		}
	})

	t.Run("Prose failure skips the follow-up", func(t *testing.T) {
		provider := &scriptedProvider{chunks: []string{"half"}, streamErr: errors.New("reset by peer")}

		_, err := NewPipeline(time.Second).StreamProseWithFollowUp(ctx, provider, proseReq, summaryFollowUpRequest, func(string) error { return nil })

		assert.ErrorIs(t, err, app_errors.ErrUpstream)
		assert.Zero(t, provider.completions())
	})
}
