package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"tutorflow/backend/internal/model"
)

type redisSummaryStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSummaryStore keeps summaries in Redis so several replicas share one
// cache. A zero ttl keeps keys forever.
func NewRedisSummaryStore(rdb *redis.Client, ttl time.Duration) SummaryStore {
	return &redisSummaryStore{rdb: rdb, ttl: ttl}
}

// Key Generation Helpers
func (r *redisSummaryStore) entryKey(userID string, scope model.Scope, depth int) string {
	return fmt.Sprintf("summary:%s:%s:%s:%d", userID, scope.Kind, scope.ID, depth)
}

func (r *redisSummaryStore) lastDepthKey(userID string, scope model.Scope) string {
	return fmt.Sprintf("summary:%s:%s:%s:last_depth", userID, scope.Kind, scope.ID)
}

func (r *redisSummaryStore) Get(ctx context.Context, userID string, scope model.Scope, depth int) (*model.SummaryEntry, error) {
	fields, err := r.rdb.HGetAll(ctx, r.entryKey(userID, scope, depth)).Result()
	if err != nil {
		return nil, fmt.Errorf("could not read summary %s depth %d: %w", scope, depth, err)
	}
	payload, ok := fields["payload"]
	if !ok {
		return nil, ErrNotFound
	}

	var entry model.SummaryEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return nil, fmt.Errorf("corrupt summary payload for %s depth %d: %w", scope, depth, err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, fields["generated_at"]); err == nil {
		entry.GeneratedAt = ts
	}
	return &entry, nil
}

// Put writes the entry hash and the last-depth marker in one MULTI/EXEC.
func (r *redisSummaryStore) Put(ctx context.Context, userID string, scope model.Scope, depth int, entry *model.SummaryEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("could not encode summary: %w", err)
	}
	generatedAt := entry.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = time.Now().UTC()
	}

	key := r.entryKey(userID, scope, depth)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, "payload", string(payload), "generated_at", generatedAt.Format(time.RFC3339Nano))
	pipe.Set(ctx, r.lastDepthKey(userID, scope), depth, r.ttl)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to execute summary write pipeline: %w", err)
	}
	return nil
}

func (r *redisSummaryStore) LastDepth(ctx context.Context, userID string, scope model.Scope) (int, bool, error) {
	raw, err := r.rdb.Get(ctx, r.lastDepthKey(userID, scope)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("could not read last depth for %s: %w", scope, err)
	}
	depth, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt last depth for %s: %w", scope, err)
	}
	return depth, true, nil
}
