package model

import (
	"time"
)

// Role is the author of a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ContentType describes how the client should render a message body.
type ContentType string

const (
	ContentText       ContentType = "text"
	ContentQuiz       ContentType = "quiz"
	ContentFlashcards ContentType = "flashcards"
	ContentVideos     ContentType = "videos"
)

// Depth bounds. Depth controls how detailed an explanation is.
const (
	MinDepth = 1
	MaxDepth = 5
)

// Session is a tutoring conversation owned by one user and anchored to a topic
// (and optionally a chapter) of a course.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CourseID  string    `json:"course_id"`
	TopicID   string    `json:"topic_id"`
	ChapterID *string   `json:"chapter_id,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConversationMessage stores a single message in a session.
type ConversationMessage struct {
	ID          string      `json:"id"`
	SessionID   string      `json:"session_id"`
	Role        Role        `json:"role"`
	Content     string      `json:"content"`
	ContentType ContentType `json:"content_type"`
	CreatedAt   time.Time   `json:"created_at"`
	Depth       *int        `json:"depth,omitempty"` // Verbosity the assistant message was generated at.
}

// CourseContext is the subset of a course record that shapes prompts.
type CourseContext struct {
	Name        string `json:"name"`
	Goal        string `json:"goal,omitempty"`
	YearOfStudy string `json:"year_of_study,omitempty"`
	ExamName    string `json:"exam_name,omitempty"`
}

// GenerationContext is rebuilt from course and session lookups on every request.
type GenerationContext struct {
	CourseName  string
	TopicName   string
	ChapterName string
	Goal        string
	YearOfStudy string
	ExamName    string
	Depth       int
}

// ClampDepth maps any integer into [MinDepth, MaxDepth].
func ClampDepth(depth int) int {
	if depth < MinDepth {
		return MinDepth
	}
	if depth > MaxDepth {
		return MaxDepth
	}
	return depth
}

// IntPtr is a small helper for optional integer fields.
func IntPtr(v int) *int { return &v }
