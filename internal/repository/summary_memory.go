package repository

import (
	"context"
	"slices"
	"sync"

	"tutorflow/backend/internal/model"
)

type summaryKey struct {
	userID string
	scope  model.Scope
	depth  int
}

type lastDepthKey struct {
	userID string
	scope  model.Scope
}

type memorySummaryStore struct {
	mu        sync.RWMutex
	entries   map[summaryKey]model.SummaryEntry
	lastDepth map[lastDepthKey]int
}

// NewMemorySummaryStore returns a process-local SummaryStore.
func NewMemorySummaryStore() SummaryStore {
	return &memorySummaryStore{
		entries:   make(map[summaryKey]model.SummaryEntry),
		lastDepth: make(map[lastDepthKey]int),
	}
}

func (m *memorySummaryStore) Get(_ context.Context, userID string, scope model.Scope, depth int) (*model.SummaryEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	entry, ok := m.entries[summaryKey{userID, scope, depth}]
	if !ok {
		return nil, ErrNotFound
	}
	entry.AnswerPills = slices.Clone(entry.AnswerPills)
	entry.Starters = slices.Clone(entry.Starters)
	return &entry, nil
}

func (m *memorySummaryStore) Put(_ context.Context, userID string, scope model.Scope, depth int, entry *model.SummaryEntry) error {
	stored := *entry
	stored.AnswerPills = slices.Clone(entry.AnswerPills)
	stored.Starters = slices.Clone(entry.Starters)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[summaryKey{userID, scope, depth}] = stored
	m.lastDepth[lastDepthKey{userID, scope}] = depth
	return nil
}

func (m *memorySummaryStore) LastDepth(_ context.Context, userID string, scope model.Scope) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	depth, ok := m.lastDepth[lastDepthKey{userID, scope}]
	return depth, ok, nil
}
