package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/repository"
	mock_repo "tutorflow/backend/internal/repository/mocks"
)

func TestScopes(t *testing.T) {
	assert.Equal(t, []model.Scope{model.TopicScope("T1")}, Scopes("T1", ""))
	assert.Equal(t, []model.Scope{model.ChapterScope("CH1"), model.TopicScope("T1")}, Scopes("T1", "CH1"))
}

func TestSummaryCache_ResolveDepth(t *testing.T) {
	ctx := context.Background()
	topicOnly := Scopes("T1", "")
	withChapter := Scopes("T1", "CH1")

	testCases := []struct {
		name      string
		scopes    []model.Scope
		requested int
		seed      func(store repository.SummaryStore)
		expected  int
	}{
		{name: "Explicit depth is kept", scopes: topicOnly, requested: 4, expected: 4},
		{name: "Depth above range clamps to 5", scopes: topicOnly, requested: 6, expected: 5},
		{name: "Zero without history is 1", scopes: topicOnly, requested: 0, expected: 1},
		{name: "Negative without history is 1", scopes: topicOnly, requested: -1, expected: 1},
		{
			name: "Zero recalls the most recent depth", scopes: topicOnly, requested: 0, expected: 3,
			seed: func(store repository.SummaryStore) {
				for _, d := range []int{2, 4, 3} {
					_ = store.Put(ctx, "u1", model.TopicScope("T1"), d, &model.SummaryEntry{})
				}
			},
		},
		{
			name: "Chapter depth wins over topic depth", scopes: withChapter, requested: 0, expected: 5,
			seed: func(store repository.SummaryStore) {
				_ = store.Put(ctx, "u1", model.TopicScope("T1"), 2, &model.SummaryEntry{})
				_ = store.Put(ctx, "u1", model.ChapterScope("CH1"), 5, &model.SummaryEntry{})
			},
		},
		{
			name: "Topic depth is used when the chapter has none", scopes: withChapter, requested: 0, expected: 2,
			seed: func(store repository.SummaryStore) {
				_ = store.Put(ctx, "u1", model.TopicScope("T1"), 2, &model.SummaryEntry{})
			},
		},
		{
			name: "Explicit depth ignores history", scopes: topicOnly, requested: 1, expected: 1,
			seed: func(store repository.SummaryStore) {
				_ = store.Put(ctx, "u1", model.TopicScope("T1"), 4, &model.SummaryEntry{})
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := repository.NewMemorySummaryStore()
			if tc.seed != nil {
				tc.seed(store)
			}
			cache := NewSummaryCache(store)

			assert.Equal(t, tc.expected, cache.ResolveDepth(ctx, "u1", tc.scopes, tc.requested))
		})
	}

	t.Run("Store error falls through to the next scope", func(t *testing.T) {
		store := mock_repo.NewMockSummaryStore(t)
		store.On("LastDepth", ctx, "u1", model.ChapterScope("CH1")).Return(0, false, errors.New("redis down")).Once()
		store.On("LastDepth", ctx, "u1", model.TopicScope("T1")).Return(4, true, nil).Once()

		assert.Equal(t, 4, NewSummaryCache(store).ResolveDepth(ctx, "u1", withChapter, 0))
	})
}

func TestSummaryCache_Lookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Chapter entry takes precedence", func(t *testing.T) {
		store := repository.NewMemorySummaryStore()
		require.NoError(t, store.Put(ctx, "u1", model.TopicScope("T1"), 2, &model.SummaryEntry{Summary: "topic"}))
		require.NoError(t, store.Put(ctx, "u1", model.ChapterScope("CH1"), 2, &model.SummaryEntry{Summary: "chapter"}))

		entry, ok := NewSummaryCache(store).Lookup(ctx, "u1", Scopes("T1", "CH1"), 2)

		require.True(t, ok)
		assert.Equal(t, "chapter", entry.Summary)
	})

	t.Run("Falls back to topic entry", func(t *testing.T) {
		store := repository.NewMemorySummaryStore()
		require.NoError(t, store.Put(ctx, "u1", model.TopicScope("T1"), 2, &model.SummaryEntry{Summary: "topic"}))

		entry, ok := NewSummaryCache(store).Lookup(ctx, "u1", Scopes("T1", "CH1"), 2)

		require.True(t, ok)
		assert.Equal(t, "topic", entry.Summary)
	})

	t.Run("Depth is clamped before the key is formed", func(t *testing.T) {
		store := repository.NewMemorySummaryStore()
		require.NoError(t, store.Put(ctx, "u1", model.TopicScope("T1"), 5, &model.SummaryEntry{Summary: "deep"}))

		entry, ok := NewSummaryCache(store).Lookup(ctx, "u1", Scopes("T1", ""), 9)

		require.True(t, ok)
		assert.Equal(t, "deep", entry.Summary)
	})

	t.Run("Store error is a miss", func(t *testing.T) {
		store := mock_repo.NewMockSummaryStore(t)
		store.On("Get", ctx, "u1", model.TopicScope("T1"), 1).Return(nil, errors.New("disk I/O error")).Once()

		_, ok := NewSummaryCache(store).Lookup(ctx, "u1", Scopes("T1", ""), 1)

		assert.False(t, ok)
	})
}

func TestSummaryCache_StoreAsync(t *testing.T) {
	t.Run("Write survives request cancellation", func(t *testing.T) {
		store := repository.NewMemorySummaryStore()
		cache := NewSummaryCache(store)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cache.StoreAsync(ctx, "u1", model.TopicScope("T1"), 7, &model.SummaryEntry{Summary: "kept"})
		cache.Wait()

		entry, err := store.Get(context.Background(), "u1", model.TopicScope("T1"), 5)
		require.NoError(t, err)
		assert.Equal(t, "kept", entry.Summary)
	})

	t.Run("Write failure is swallowed", func(t *testing.T) {
		store := mock_repo.NewMockSummaryStore(t)
		store.On("Put", mock.Anything, "u1", model.TopicScope("T1"), 1, mock.Anything).Return(errors.New("read-only")).Once()
		cache := NewSummaryCache(store)

		assert.NotPanics(t, func() {
			cache.StoreAsync(context.Background(), "u1", model.TopicScope("T1"), 1, &model.SummaryEntry{})
			cache.Wait()
		})
	})
}
