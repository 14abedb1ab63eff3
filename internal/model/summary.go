package model

import (
	"fmt"
	"time"
)

// ScopeKind is the grouping a cached summary belongs to.
type ScopeKind string

const (
	ScopeTopic   ScopeKind = "topic"
	ScopeChapter ScopeKind = "chapter"
)

// Scope identifies the topic or chapter a summary was generated for.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// TopicScope and ChapterScope are convenience constructors.
func TopicScope(topicID string) Scope     { return Scope{Kind: ScopeTopic, ID: topicID} }
func ChapterScope(chapterID string) Scope { return Scope{Kind: ScopeChapter, ID: chapterID} }

func (s Scope) String() string { return fmt.Sprintf("%s:%s", s.Kind, s.ID) }

// SummaryEntry is a generated topic overview plus its comprehension check.
type SummaryEntry struct {
	Summary      string    `json:"summary"`
	Question     string    `json:"question"`
	AnswerPills  []string  `json:"answerPills"`
	CorrectIndex int       `json:"correctIndex"`
	Explanation  string    `json:"explanation"`
	Starters     []string  `json:"starters"`
	GeneratedAt  time.Time `json:"generatedAt"`
}
