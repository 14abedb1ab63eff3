package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"tutorflow/backend/internal/llm"
	"tutorflow/backend/internal/model"
	"tutorflow/backend/internal/repository"
)

// scriptedProvider streams fixed chunks and answers non-streaming calls with
// complete. It records every request it receives.
type scriptedProvider struct {
	chunks    []string
	streamErr error
	complete  func(req *llm.GenerateRequest) (string, error)

	mu             sync.Mutex
	streamRequests []*llm.GenerateRequest
	completeCalls  []*llm.GenerateRequest
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Generate(_ context.Context, req *llm.GenerateRequest) (*llm.GenerateResponse, error) {
	p.mu.Lock()
	p.completeCalls = append(p.completeCalls, req)
	p.mu.Unlock()
	if p.complete == nil {
		return &llm.GenerateResponse{Response: ""}, nil
	}
	text, err := p.complete(req)
	if err != nil {
		return nil, err
	}
	return &llm.GenerateResponse{Model: "scripted", Response: text}, nil
}

func (p *scriptedProvider) GenerateStream(ctx context.Context, req *llm.GenerateRequest, ch chan<- llm.StreamChunk) error {
	defer close(ch)
	p.mu.Lock()
	p.streamRequests = append(p.streamRequests, req)
	p.mu.Unlock()
	for _, c := range p.chunks {
		select {
		case ch <- llm.StreamChunk{Content: c}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return p.streamErr
}

func (p *scriptedProvider) completions() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.completeCalls)
}

func (p *scriptedProvider) lastStreamRequest() *llm.GenerateRequest {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.streamRequests) == 0 {
		return nil
	}
	return p.streamRequests[len(p.streamRequests)-1]
}

// isHistorySummary tells the history summarization call apart from others.
func isHistorySummary(req *llm.GenerateRequest) bool {
	return len(req.Messages) > 0 && strings.Contains(req.Messages[0].Content, "Summarize this tutoring conversation")
}

type staticResolver struct {
	provider llm.Provider
}

func (r staticResolver) Resolve(modelID string) (llm.Provider, error) {
	if modelID != "" && modelID != "scripted" {
		return nil, fmt.Errorf("%w: %q", llm.ErrUnknownModel, modelID)
	}
	return r.provider, nil
}

// memRepo is an in-memory Repository for scenario tests.
type memRepo struct {
	mu        sync.Mutex
	sessions  map[string]*model.Session
	messages  map[string][]model.ConversationMessage
	courses   map[string]*model.CourseContext
	topics    map[string]string
	chapters  map[string]string
	appendErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		sessions: map[string]*model.Session{},
		messages: map[string][]model.ConversationMessage{},
		courses:  map[string]*model.CourseContext{"C1": {Name: "Biology", Goal: "Pass the exam"}},
		topics:   map[string]string{"T1": "Cell energy"},
		chapters: map[string]string{"CH1": "Mitochondria"},
	}
}

func (r *memRepo) addSession(id, userID string) *model.Session {
	s := &model.Session{ID: id, UserID: userID, CourseID: "C1", TopicID: "T1", CreatedAt: time.Now(), UpdatedAt: time.Now()}
	r.sessions[id] = s
	return s
}

func (r *memRepo) seed(sessionID string, n int) {
	for i := 0; i < n; i++ {
		role := model.RoleAssistant
		if i%2 == 1 {
			role = model.RoleUser
		}
		r.messages[sessionID] = append(r.messages[sessionID], model.ConversationMessage{
			ID:        fmt.Sprintf("m%d", i),
			SessionID: sessionID,
			Role:      role,
			Content:   fmt.Sprintf("%s turn %d", role, i),
			Depth:     model.IntPtr(3),
		})
	}
}

func (r *memRepo) history(sessionID string) []model.ConversationMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.ConversationMessage(nil), r.messages[sessionID]...)
}

func (r *memRepo) GetSession(_ context.Context, sessionID string) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *memRepo) UpdateSessionTitle(_ context.Context, sessionID, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return repository.ErrNotFound
	}
	s.Title = title
	return nil
}

func (r *memRepo) LoadHistory(_ context.Context, sessionID string) ([]model.ConversationMessage, error) {
	return r.history(sessionID), nil
}

func (r *memRepo) AppendMessage(_ context.Context, sessionID string, message *model.ConversationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.appendErr != nil && message.Role == model.RoleAssistant {
		return r.appendErr
	}
	r.messages[sessionID] = append(r.messages[sessionID], *message)
	return nil
}

func (r *memRepo) OverwriteMessage(_ context.Context, messageID, content string, depth int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for sid, msgs := range r.messages {
		for i := range msgs {
			if msgs[i].ID == messageID {
				r.messages[sid][i].Content = content
				r.messages[sid][i].Depth = model.IntPtr(depth)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (r *memRepo) LoadCourseContext(_ context.Context, courseID string) (*model.CourseContext, error) {
	c, ok := r.courses[courseID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return c, nil
}

func (r *memRepo) LoadTopicName(_ context.Context, topicID string) (string, error) {
	if name, ok := r.topics[topicID]; ok {
		return name, nil
	}
	return "", repository.ErrNotFound
}

func (r *memRepo) LoadChapterName(_ context.Context, chapterID string) (string, error) {
	if name, ok := r.chapters[chapterID]; ok {
		return name, nil
	}
	return "", repository.ErrNotFound
}

// collect drains a stream, failing the test if it does not close in time.
func collect(t *testing.T, events <-chan model.StreamEvent) []model.StreamEvent {
	t.Helper()
	var out []model.StreamEvent
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("stream did not close")
			return out
		}
	}
}

// assertStreamShape checks chunks followed by exactly one terminal event.
func assertStreamShape(t *testing.T, events []model.StreamEvent) model.StreamEvent {
	t.Helper()
	if len(events) == 0 {
		t.Fatal("stream produced no events")
	}
	for i, ev := range events[:len(events)-1] {
		if ev.IsTerminal() {
			t.Fatalf("event %d is terminal but more events follow", i)
		}
	}
	last := events[len(events)-1]
	if !last.IsTerminal() {
		t.Fatalf("last event %q is not terminal", last.Type)
	}
	return last
}

func chunkText(events []model.StreamEvent) string {
	var b strings.Builder
	for _, ev := range events {
		if ev.Type == model.EventChunk {
			b.WriteString(ev.Content)
		}
	}
	return b.String()
}
