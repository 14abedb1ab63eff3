package llm

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct{ name string }

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Generate(context.Context, *GenerateRequest) (*GenerateResponse, error) {
	return &GenerateResponse{}, nil
}
func (s *stubProvider) GenerateStream(_ context.Context, _ *GenerateRequest, ch chan<- StreamChunk) error {
	close(ch)
	return nil
}

func countingRegistrations(builds *atomic.Int32) []Registration {
	build := func(name string) Builder {
		return func() Provider {
			builds.Add(1)
			return &stubProvider{name: name}
		}
	}
	return []Registration{
		{ID: SafeDefaultModel, Provider: "openai", Configured: true, Build: build("openai")},
		{ID: "claude-3-haiku", Provider: "bedrock", Configured: false, Build: build("bedrock")},
	}
}

func TestRegistry_ResolveDefaultIsSameHandle(t *testing.T) {
	var builds atomic.Int32
	registry := NewRegistry("claude-3-haiku", countingRegistrations(&builds))

	byDefault, err := registry.Resolve("")
	require.NoError(t, err)
	byID, err := registry.Resolve("claude-3-haiku")
	require.NoError(t, err)

	assert.Same(t, byDefault, byID)
	assert.Equal(t, int32(1), builds.Load())
}

func TestRegistry_UnknownConfiguredDefaultFallsBack(t *testing.T) {
	var builds atomic.Int32
	registry := NewRegistry("gpt-7-ultra", countingRegistrations(&builds))

	assert.Equal(t, SafeDefaultModel, registry.DefaultID())
	handle, err := registry.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, "openai", handle.Name())
}

func TestRegistry_UnknownExplicitModel(t *testing.T) {
	var builds atomic.Int32
	registry := NewRegistry(SafeDefaultModel, countingRegistrations(&builds))

	_, err := registry.Resolve("not-a-model")
	assert.ErrorIs(t, err, ErrUnknownModel)
	assert.Equal(t, int32(0), builds.Load())
}

func TestRegistry_ConcurrentResolveBuildsOnce(t *testing.T) {
	var builds atomic.Int32
	registry := NewRegistry(SafeDefaultModel, countingRegistrations(&builds))

	const workers = 64
	handles := make([]Provider, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h, err := registry.Resolve(SafeDefaultModel)
			assert.NoError(t, err)
			handles[i] = h
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
	for _, h := range handles {
		assert.Same(t, handles[0], h)
	}
}

func TestRegistry_Models(t *testing.T) {
	registry := NewRegistry("", DefaultRegistrations(ProvidersConfig{OpenAIAPIKey: "k", AWSRegion: "us-east-1"}))

	models := registry.Models()
	require.NotEmpty(t, models)

	byID := map[string]ModelInfo{}
	for _, m := range models {
		byID[m.ID] = m
	}
	assert.True(t, byID["gpt-4o-mini"].Default)
	assert.True(t, byID["gpt-4o-mini"].Configured)
	assert.True(t, byID["claude-3-5-sonnet"].Configured)
	assert.False(t, byID["azure-gpt-4o"].Configured)
	assert.False(t, byID["llama3"].Configured)
}

func TestDefaultRegistrations_ResolveWithoutCredentials(t *testing.T) {
	registry := NewRegistry("", DefaultRegistrations(ProvidersConfig{}))
	for _, m := range registry.Models() {
		handle, err := registry.Resolve(m.ID)
		require.NoError(t, err, "resolving %s must not fail without credentials", m.ID)
		assert.Equal(t, m.Provider, handle.Name())
	}
}
