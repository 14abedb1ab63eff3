package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/repository"
)

const defaultCacheWriteTimeout = 10 * time.Second

// SummaryCache applies the depth and scope policy on top of a SummaryStore.
type SummaryCache struct {
	store        repository.SummaryStore
	writeTimeout time.Duration
	pending      sync.WaitGroup
}

func NewSummaryCache(store repository.SummaryStore) *SummaryCache {
	return &SummaryCache{store: store, writeTimeout: defaultCacheWriteTimeout}
}

// Scopes returns the lookup order for a request: chapter first when present,
// then topic.
func Scopes(topicID, chapterID string) []model.Scope {
	if chapterID == "" {
		return []model.Scope{model.TopicScope(topicID)}
	}
	return []model.Scope{model.ChapterScope(chapterID), model.TopicScope(topicID)}
}

// ResolveDepth maps a requested depth onto [1,5]. A requested depth of zero or
// less means "unspecified" and resolves to the depth most recently generated
// for the first scope that has one, else 1.
func (c *SummaryCache) ResolveDepth(ctx context.Context, userID string, scopes []model.Scope, requested int) int {
	if requested > 0 {
		return model.ClampDepth(requested)
	}
	for _, scope := range scopes {
		depth, ok, err := c.store.LastDepth(ctx, userID, scope)
		if err != nil {
			slog.WarnContext(ctx, "Could not read last summary depth.", "user_id", userID, "scope", scope.String(), "error", err)
			continue
		}
		if ok {
			return model.ClampDepth(depth)
		}
	}
	return model.MinDepth
}

// Lookup returns the first cached entry across scopes. Store errors count as
// a miss.
func (c *SummaryCache) Lookup(ctx context.Context, userID string, scopes []model.Scope, depth int) (*model.SummaryEntry, bool) {
	depth = model.ClampDepth(depth)
	for _, scope := range scopes {
		entry, err := c.store.Get(ctx, userID, scope, depth)
		if err == nil {
			return entry, true
		}
		if !errors.Is(err, repository.ErrNotFound) {
			slog.WarnContext(ctx, "Summary cache read failed, treating as miss.", "user_id", userID, "scope", scope.String(), "depth", depth, "error", err)
		}
	}
	return nil, false
}

// StoreAsync writes the entry in the background. The write outlives the
// request that produced it and its failure is only logged.
func (c *SummaryCache) StoreAsync(ctx context.Context, userID string, scope model.Scope, depth int, entry *model.SummaryEntry) {
	depth = model.ClampDepth(depth)
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.writeTimeout)

	c.pending.Add(1)
	go func() {
		defer c.pending.Done()
		defer cancel()
		if err := c.store.Put(writeCtx, userID, scope, depth, entry); err != nil {
			slog.ErrorContext(writeCtx, "Failed to write summary cache.", "user_id", userID, "scope", scope.String(), "depth", depth, "error", err)
			return
		}
		slog.DebugContext(writeCtx, "Summary cached.", "user_id", userID, "scope", scope.String(), "depth", depth)
	}()
}

// Wait blocks until every background write has settled.
func (c *SummaryCache) Wait() {
	c.pending.Wait()
}
