package repository

import (
	"context"

	"tutorflow/backend/internal/model"
)

// Repository defines the interface for the tutoring data the generation engine
// reads and writes. Course, topic and chapter records are owned elsewhere; this
// layer only looks them up.
type Repository interface {
	GetSession(ctx context.Context, sessionID string) (*model.Session, error)
	UpdateSessionTitle(ctx context.Context, sessionID, title string) error

	LoadHistory(ctx context.Context, sessionID string) ([]model.ConversationMessage, error)
	AppendMessage(ctx context.Context, sessionID string, message *model.ConversationMessage) error
	OverwriteMessage(ctx context.Context, messageID, content string, depth int) error

	LoadCourseContext(ctx context.Context, courseID string) (*model.CourseContext, error)
	LoadTopicName(ctx context.Context, topicID string) (string, error)
	LoadChapterName(ctx context.Context, chapterID string) (string, error)
}

// SummaryStore persists generated topic summaries keyed by (user, scope, depth)
// and remembers the depth most recently generated per (user, scope).
//
// Put must be an atomic upsert: concurrent writers to the same key resolve as
// last-writer-wins, and the last-depth record moves with the entry.
type SummaryStore interface {
	// Get returns ErrNotFound on a miss.
	Get(ctx context.Context, userID string, scope model.Scope, depth int) (*model.SummaryEntry, error)
	Put(ctx context.Context, userID string, scope model.Scope, depth int, entry *model.SummaryEntry) error
	// LastDepth reports false when nothing has been generated for the scope.
	LastDepth(ctx context.Context, userID string, scope model.Scope) (int, bool, error)
}
